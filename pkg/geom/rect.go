// Package geom provides the rectangle and affine transform primitives shared
// by the layout engine, the text-fitting engine and the renderers.
//
// Rectangles live in the layout's normalized coordinate space, not in pixels.
// The [Affine] transform maps between that space and device pixels; the
// conversion helpers [DistanceToPixels] and [PixelsToDistance] translate
// displacements (not absolute points) between the two spaces.
package geom

import "math"

// Point is a location in a two-dimensional coordinate space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with the origin at the lower-left
// corner (X, Y). Width and height are always >= 0 for rectangles produced
// by the layout engine.
type Rect struct {
	X, Y, W, H float64
}

// Area returns the rectangle area.
func (r Rect) Area() float64 { return r.W * r.H }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the top edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether r fully contains s, allowing for a small
// floating-point tolerance on each edge.
func (r Rect) Contains(s Rect, eps float64) bool {
	return s.X >= r.X-eps && s.Y >= r.Y-eps &&
		s.MaxX() <= r.MaxX()+eps && s.MaxY() <= r.MaxY()+eps
}

// Padding is a four-sided inset in layout units.
type Padding struct {
	Left, Right, Top, Bottom float64
}

// Uniform returns a padding with the same inset on all four sides.
func Uniform(v float64) Padding {
	return Padding{Left: v, Right: v, Top: v, Bottom: v}
}

// Inset shrinks the rectangle by the given padding. A rectangle too small to
// absorb the padding collapses to a degenerate zero-area rectangle centered
// on the available space instead of going negative.
func (r Rect) Inset(p Padding) Rect {
	out := Rect{
		X: r.X + p.Left,
		Y: r.Y + p.Bottom,
		W: r.W - p.Left - p.Right,
		H: r.H - p.Top - p.Bottom,
	}
	if out.W < 0 {
		out.X = r.X + r.W/2
		out.W = 0
	}
	if out.H < 0 {
		out.Y = r.Y + r.H/2
		out.H = 0
	}
	return out
}

// AspectRatio returns max(w/h, h/w), the "badness" measure minimized by the
// squarified layout. Degenerate rectangles report +Inf.
func (r Rect) AspectRatio() float64 {
	if r.W <= 0 || r.H <= 0 {
		return math.Inf(1)
	}
	return math.Max(r.W/r.H, r.H/r.W)
}
