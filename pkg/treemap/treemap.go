package treemap

import (
	"context"
	"image/color"
	"math"
	"time"

	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/observability"
	"github.com/squaremap/squaremap/pkg/render"
	"github.com/squaremap/squaremap/pkg/textfit"
	"github.com/squaremap/squaremap/pkg/treemap/layout"
)

// labelRefSize is the measurement size labels start from. The no-wrap fit
// is exact regardless of the starting size; this only anchors the linear
// scaling.
const labelRefSize = 12.0

// Plot builds one treemap: records are projected and grouped per level,
// every level is squarified inside its parent rectangles, and rectangles
// and autofitted labels are drawn through r.
//
// Levels draw root first; when a later level fails, the handles of
// everything already drawn are still returned alongside the error.
func Plot(ctx context.Context, r render.Renderer, spec Spec) (*Container, error) {
	c := newContainer()

	f, err := project(&spec)
	if err != nil {
		return c, err
	}

	levels := groupLevels(f)
	if len(levels) == 0 {
		return c, nil
	}

	if err := layoutLevels(ctx, &spec, levels); err != nil {
		return c, err
	}

	fills := newFiller(&spec, f, c)

	start := time.Now()
	observability.Plot().OnDrawStart(ctx, len(levels))
	err = drawLevels(ctx, r, &spec, levels, fills, c)
	observability.Plot().OnDrawComplete(ctx, len(c.Patches), len(c.Texts), time.Since(start), err)
	return c, err
}

// layoutLevels assigns rectangles level by level, each group constrained to
// its parent's rectangle from the previous depth (inset by the inter-level
// padding, except for synthetic parents).
func layoutLevels(ctx context.Context, spec *Spec, levels [][]*group) error {
	root := geom.Rect{W: spec.normX(), H: spec.normY()}
	byKey := make(map[string]*group)

	for d, groups := range levels {
		depth := d + 1
		start := time.Now()
		observability.Plot().OnLayoutStart(ctx, depth, len(groups))

		err := layoutLevel(spec, groups, depth, root, byKey)

		observability.Plot().OnLayoutComplete(ctx, depth, time.Since(start), err)
		if err != nil {
			return err
		}
		for _, g := range groups {
			byKey[g.key] = g
		}
	}
	return nil
}

func layoutLevel(spec *Spec, groups []*group, depth int, root geom.Rect, byKey map[string]*group) error {
	// Batch the level's groups per parent, preserving order.
	order := make([]string, 0)
	batches := make(map[string][]*group)
	for _, g := range groups {
		pk := g.parentKey()
		if _, ok := batches[pk]; !ok {
			order = append(order, pk)
		}
		batches[pk] = append(batches[pk], g)
	}

	for _, pk := range order {
		batch := batches[pk]

		rect := root
		if depth > 1 {
			parent, ok := byKey[pk]
			if !ok {
				continue
			}
			rect = parent.rect
			if !parent.synthetic() {
				rect = rect.Inset(spec.Pad)
			}
		}

		items := make([]layout.Item, len(batch))
		for i, g := range batch {
			w := g.weight
			// Split mode reserves one uniform cell per root sibling so the
			// deeper levels land in predictable sub-rectangles.
			if spec.Split && depth == 1 {
				w = 1
			}
			items[i] = layout.Item{Key: g.key, Weight: w}
		}

		rects, err := layout.Layout(items, rect)
		if err != nil {
			return err
		}
		for _, g := range batch {
			g.rect = rects[g.key]
		}
	}
	return nil
}

// filler resolves the fill color of a leaf group.
type filler struct {
	base     color.Color
	colormap *Colormap
	norm     Normalizer
	numeric  bool
	column   func(row int) (string, float64)
	colors   map[string]color.Color
}

func newFiller(spec *Spec, f *frame, c *Container) *filler {
	fl := &filler{base: spec.Rect.Fill}
	if f.fill == nil {
		return fl
	}

	fl.column = func(row int) (string, float64) {
		return f.fill.Value(row), f.fill.Float(row)
	}

	if f.numeric {
		fl.numeric = true
		fl.colormap = spec.Colormap
		if fl.colormap == nil {
			fl.colormap = Viridis
		}
		min, max := math.Inf(1), math.Inf(-1)
		for i := 0; i < f.fill.Len(); i++ {
			v := f.fill.Float(i)
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
		fl.norm = Normalizer{Min: min, Max: max}
		c.Mapp = &Mappable{Norm: fl.norm, Colormap: fl.colormap}
		return fl
	}

	values := make([]string, f.fill.Len())
	for i := range values {
		values[i] = f.fill.Value(i)
	}
	fl.colors = categoryColors(values, spec.Palette)

	seen := make(map[string]bool)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			c.Legend = append(c.Legend, LegendEntry{Value: v, Color: fl.colors[v]})
		}
	}
	return fl
}

func (fl *filler) colorFor(row int) color.Color {
	if fl.column == nil {
		return fl.base
	}
	value, num := fl.column(row)
	if fl.numeric {
		if math.IsNaN(num) {
			return fl.base
		}
		return fl.colormap.At(fl.norm.Norm(num))
	}
	return fl.colors[value]
}

// drawLevels forwards rectangles and labels to the renderer, root level
// first. Leaf rectangles take the fill color; non-leaf levels draw only
// when a per-level style override exists.
func drawLevels(ctx context.Context, r render.Renderer, spec *Spec, levels [][]*group, fills *filler, c *Container) error {
	depthCount := len(levels)

	for d, groups := range levels {
		depth := d + 1
		leaf := depth == depthCount

		style, labels, draw := levelStyle(spec, depth, leaf)

		for _, g := range groups {
			if g.rect.Empty() {
				// Zero-weight groups keep a degenerate rectangle; nothing
				// to draw.
				continue
			}
			rect := flip(spec, g.rect)

			if draw {
				st := render.Style{
					Fill:        style.Fill,
					Stroke:      style.Stroke,
					StrokeWidth: style.StrokeWidth,
				}
				if st.Stroke == nil {
					st.Stroke = color.White
					st.StrokeWidth = 1
				}
				if leaf {
					st.Fill = fills.colorFor(g.row)
				}
				if err := r.DrawRect(rect, st); err != nil {
					return err
				}
				c.addPatch(g, depth, st.Fill)
			}

			if labels.Show && g.label != "" && !g.rect.Empty() {
				if err := drawLabel(r, spec, labels, g, depth, rect, c); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// levelStyle picks the rectangle and label options for a depth. Non-leaf
// depths use the ParentRects/ParentLabels overrides, outermost first, and
// stay undrawn without one.
func levelStyle(spec *Spec, depth int, leaf bool) (RectStyle, LabelOptions, bool) {
	if leaf {
		return spec.Rect, spec.Label, true
	}
	idx := depth - 1
	var style RectStyle
	var labels LabelOptions
	draw := false
	if idx < len(spec.ParentRects) {
		style = spec.ParentRects[idx]
		style.Fill = nil // parents never paint over their children
		draw = true
	}
	if idx < len(spec.ParentLabels) {
		labels = spec.ParentLabels[idx]
	}
	return style, labels, draw
}

func drawLabel(r render.Renderer, spec *Spec, lo LabelOptions, g *group, depth int, rect geom.Rect, c *Container) error {
	pl, err := resolvePlace(lo.Place, rect)
	if err != nil {
		return err
	}

	res, err := textfit.FitRect(r, textfit.Text{
		Content: g.label,
		Font:    lo.Font,
		Size:    labelRefSize,
	}, r.Transform(), rect.W, rect.H, textfit.Options{
		Wrap:    lo.Wrap,
		Grow:    lo.Grow,
		PadX:    lo.PadX,
		PadY:    lo.PadY,
		MinSize: lo.MinSize,
		MaxSize: lo.MaxSize,
	})
	if err != nil {
		return err
	}

	st := render.TextStyle{Color: lo.Color}
	if err := r.DrawText(res.Content, pl.pos, pl.anchor, lo.Font, res.Size, st); err != nil {
		return err
	}
	c.addText(g, depth, res.Content, res.Size, res.Fits)
	return nil
}

// flip mirrors a rectangle vertically when the spec asks for a top-down
// chart.
func flip(spec *Spec, r geom.Rect) geom.Rect {
	if !spec.Top {
		return r
	}
	return geom.Rect{X: r.X, Y: spec.normY() - r.Y - r.H, W: r.W, H: r.H}
}
