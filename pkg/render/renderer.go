package render

import (
	"fmt"
	"image/color"

	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/textfit"
)

// Style controls how a rectangle is drawn. A nil Fill leaves the interior
// unpainted; a nil Stroke omits the outline.
type Style struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
	Dashed      bool
}

// TextStyle controls how text is drawn.
type TextStyle struct {
	Color       color.Color
	Rotation    float64 // degrees counterclockwise around the anchor point
	LineSpacing float64 // line height multiplier; <= 0 uses the renderer default
}

// Anchor is the fractional attachment point of a text block: (0,0) is the
// top-left corner, (0.5,0.5) the center, (1,1) the bottom-right corner.
type Anchor struct {
	AX, AY float64
}

// Renderer is the capability interface the orchestrator draws through.
// Implementations must keep measurement reproducible: MeasureText may not
// depend on mutable state changed by drawing calls.
type Renderer interface {
	textfit.Measurer

	// Size returns the device surface dimensions in pixels.
	Size() (width, height float64)

	// Transform maps layout coordinates to device pixels.
	Transform() geom.Affine

	// DrawRect draws a rectangle given in layout coordinates.
	DrawRect(r geom.Rect, st Style) error

	// DrawText draws content anchored at pos (layout coordinates).
	DrawText(content string, pos geom.Point, anchor Anchor, font textfit.Font, size float64, st TextStyle) error
}

// viewport builds the layout-to-pixel transform for a norm-space of
// normX x normY mapped onto a surface of width x height pixels with the
// y axis flipped (layout y grows up, device y grows down).
func viewport(normX, normY, width, height float64) geom.Affine {
	return geom.Affine{
		XX: width / normX,
		YY: -height / normY,
		Y0: height,
	}
}

// hexColor formats a color as #rrggbb for SVG attributes.
func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// alpha returns the color's opacity in [0,1].
func alpha(c color.Color) float64 {
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}
