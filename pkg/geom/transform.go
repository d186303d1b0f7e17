package geom

import (
	"math"

	"github.com/squaremap/squaremap/pkg/errors"
)

// Affine is a two-dimensional affine transform:
//
//	x' = XX*x + XY*y + X0
//	y' = YX*x + YY*y + Y0
//
// It covers the general case of scaled, translated and rotated coordinate
// systems, including the non-uniform and y-flipped transforms used by the
// raster renderer.
type Affine struct {
	XX, XY, X0 float64
	YX, YY, Y0 float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{XX: 1, YY: 1}
}

// Scale returns a transform that scales x by sx and y by sy.
func Scale(sx, sy float64) Affine {
	return Affine{XX: sx, YY: sy}
}

// Translate returns a transform that offsets points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{XX: 1, YY: 1, X0: tx, Y0: ty}
}

// Rotate returns a transform that rotates points by theta radians around
// the origin.
func Rotate(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{XX: cos, XY: -sin, YX: sin, YY: cos}
}

// Apply maps a point through the transform.
func (a Affine) Apply(p Point) Point {
	return Point{
		X: a.XX*p.X + a.XY*p.Y + a.X0,
		Y: a.YX*p.X + a.YY*p.Y + a.Y0,
	}
}

// Then returns the transform equivalent to applying a first, then b.
func (a Affine) Then(b Affine) Affine {
	return Affine{
		XX: b.XX*a.XX + b.XY*a.YX,
		XY: b.XX*a.XY + b.XY*a.YY,
		X0: b.XX*a.X0 + b.XY*a.Y0 + b.X0,
		YX: b.YX*a.XX + b.YY*a.YX,
		YY: b.YX*a.XY + b.YY*a.YY,
		Y0: b.YX*a.X0 + b.YY*a.Y0 + b.Y0,
	}
}

// Invert returns the inverse transform. A singular transform (zero
// determinant) cannot be inverted and yields an INVALID_TRANSFORM error.
func (a Affine) Invert() (Affine, error) {
	det := a.XX*a.YY - a.XY*a.YX
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Affine{}, errors.New(errors.ErrCodeInvalidTransform,
			"transform is not invertible (determinant %v)", det)
	}
	inv := Affine{
		XX: a.YY / det,
		XY: -a.XY / det,
		YX: -a.YX / det,
		YY: a.XX / det,
	}
	inv.X0 = -(inv.XX*a.X0 + inv.XY*a.Y0)
	inv.Y0 = -(inv.YX*a.X0 + inv.YY*a.Y0)
	return inv, nil
}

// DistanceToPixels maps a displacement in logical units to a displacement in
// pixels. Both the origin and the offset point are pushed through the
// transform and subtracted, so translation components cancel and rotated or
// non-uniform transforms are handled correctly.
func DistanceToPixels(t Affine, dx, dy float64) (px, py float64) {
	origin := t.Apply(Point{})
	end := t.Apply(Point{X: dx, Y: dy})
	return end.X - origin.X, end.Y - origin.Y
}

// PixelsToDistance is the exact inverse of [DistanceToPixels], mapping a
// pixel displacement back to logical units via the inverted transform.
func PixelsToDistance(t Affine, px, py float64) (dx, dy float64, err error) {
	inv, err := t.Invert()
	if err != nil {
		return 0, 0, err
	}
	dx, dy = DistanceToPixels(inv, px, py)
	return dx, dy, nil
}
