// Package layout implements the squarified treemap algorithm of Bruls,
// Huizing and Van Wijk, partitioning a rectangle into sub-rectangles with
// areas proportional to a sequence of non-negative weights while keeping
// aspect ratios close to one.
package layout

import (
	"math"
	"sort"

	"github.com/squaremap/squaremap/pkg/errors"
	"github.com/squaremap/squaremap/pkg/geom"
)

// Item is a keyed weight to lay out. Keys let callers recover which output
// rectangle belongs to which input after the internal descending sort.
type Item struct {
	Key    string
	Weight float64
}

// Layout partitions rect among items with areas proportional to their
// weights and returns the assignment keyed by item key.
//
// Weights are sorted descending internally (stable, so equal weights keep
// their input order); the returned map removes any ordering ambiguity.
// Zero and NaN weights are dropped before layout and map to degenerate
// zero-area rectangles at the container origin.
//
// Returns an INVALID_WEIGHT error when any weight is negative, or when the
// total weight is zero while the rectangle has positive area.
func Layout(items []Item, rect geom.Rect) (map[string]geom.Rect, error) {
	total := 0.0
	for i, it := range items {
		if it.Weight < 0 {
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"negative weight %v for %q (index %d)", it.Weight, it.Key, i)
		}
		if !math.IsNaN(it.Weight) {
			total += it.Weight
		}
	}

	out := make(map[string]geom.Rect, len(items))

	live := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Weight > 0 && !math.IsNaN(it.Weight) {
			live = append(live, it)
		} else {
			out[it.Key] = geom.Rect{X: rect.X, Y: rect.Y}
		}
	}

	if len(live) == 0 || rect.Area() <= 0 {
		if total == 0 && rect.Area() > 0 && len(items) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"total weight is zero for a rectangle of area %v", rect.Area())
		}
		for _, it := range live {
			out[it.Key] = geom.Rect{X: rect.X, Y: rect.Y}
		}
		return out, nil
	}

	sort.SliceStable(live, func(i, j int) bool { return live[i].Weight > live[j].Weight })

	sizes := make([]float64, len(live))
	for i, it := range live {
		sizes[i] = it.Weight
	}
	rects := Squarify(Normalize(sizes, rect.W, rect.H), rect)

	for i, it := range live {
		out[it.Key] = rects[i]
	}
	return out, nil
}

// Normalize scales sizes so that their sum equals width*height, the
// precondition for [Squarify].
func Normalize(sizes []float64, width, height float64) []float64 {
	total := 0.0
	for _, s := range sizes {
		total += s
	}
	out := make([]float64, len(sizes))
	if total == 0 {
		return out
	}
	scale := width * height / total
	for i, s := range sizes {
		out[i] = s * scale
	}
	return out
}

// Squarify lays out sizes inside rect and returns one rectangle per size,
// in input order. Sizes must be sorted descending and normalized so their
// sum equals the rectangle area; [Layout] is the keyed front end that
// establishes both preconditions.
//
// The algorithm repeatedly grows a row along the shorter dimension of the
// remaining free rectangle while the worst aspect ratio in the row does not
// deteriorate, then fixes the row and recurses on the leftover space.
func Squarify(sizes []float64, rect geom.Rect) []geom.Rect {
	if len(sizes) == 0 {
		return nil
	}
	if len(sizes) == 1 {
		return layoutRow(sizes, rect)
	}

	// Grow the row while adding the next item does not worsen the worst
	// aspect ratio. With all-equal weights this is deterministic in input
	// order: the first non-improving item closes the row.
	i := 1
	for i < len(sizes) && worstRatio(sizes[:i], rect) >= worstRatio(sizes[:i+1], rect) {
		i++
	}

	row := layoutRow(sizes[:i], rect)
	rest := Squarify(sizes[i:], leftover(sizes[:i], rect))
	return append(row, rest...)
}

// layoutRow places a row of sizes along the shorter dimension of rect:
// a vertical strip on the left when the rectangle is wide, a horizontal
// strip at the bottom when it is tall.
func layoutRow(sizes []float64, rect geom.Rect) []geom.Rect {
	covered := 0.0
	for _, s := range sizes {
		covered += s
	}

	out := make([]geom.Rect, len(sizes))
	if covered <= 0 {
		for i := range out {
			out[i] = geom.Rect{X: rect.X, Y: rect.Y}
		}
		return out
	}

	if rect.W >= rect.H {
		width := covered / rect.H
		y := rect.Y
		for i, s := range sizes {
			h := s / width
			out[i] = geom.Rect{X: rect.X, Y: y, W: width, H: h}
			y += h
		}
	} else {
		height := covered / rect.W
		x := rect.X
		for i, s := range sizes {
			w := s / height
			out[i] = geom.Rect{X: x, Y: rect.Y, W: w, H: height}
			x += w
		}
	}
	return out
}

// leftover returns the free rectangle remaining after a row of sizes is
// placed by layoutRow.
func leftover(sizes []float64, rect geom.Rect) geom.Rect {
	covered := 0.0
	for _, s := range sizes {
		covered += s
	}
	if covered <= 0 {
		return rect
	}
	if rect.W >= rect.H {
		width := covered / rect.H
		return geom.Rect{X: rect.X + width, Y: rect.Y, W: rect.W - width, H: rect.H}
	}
	height := covered / rect.W
	return geom.Rect{X: rect.X, Y: rect.Y + height, W: rect.W, H: rect.H - height}
}

// worstRatio is the largest aspect ratio among the rectangles a row of
// sizes would produce inside rect.
func worstRatio(sizes []float64, rect geom.Rect) float64 {
	worst := 0.0
	for _, r := range layoutRow(sizes, rect) {
		if ar := r.AspectRatio(); ar > worst {
			worst = ar
		}
	}
	return worst
}
