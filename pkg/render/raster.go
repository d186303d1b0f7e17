package render

import (
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/textfit"
)

// RasterOption configures a Raster renderer.
type RasterOption func(*Raster)

// WithDPI sets the device resolution used for font faces. Default 72,
// where one point equals one pixel.
func WithDPI(dpi float64) RasterOption {
	return func(r *Raster) { r.fonts = NewFontCache(dpi) }
}

// WithViewport sets the layout coordinate range mapped onto the surface.
// Default 100x100.
func WithViewport(normX, normY float64) RasterOption {
	return func(r *Raster) { r.normX, r.normY = normX, normY }
}

// WithBackground fills the surface with a color before any drawing.
func WithBackground(c color.Color) RasterOption {
	return func(r *Raster) { r.background = c }
}

// WithLineSpacing sets the multi-line spacing multiplier used for
// measurement and drawing. Default 1.2.
func WithLineSpacing(ls float64) RasterOption {
	return func(r *Raster) { r.lineSpacing = ls }
}

// Raster renders to an in-memory RGBA image via fogleman/gg and encodes the
// result as PNG. Text metrics come from the shared freetype [FontCache], so
// fitted sizes agree with the SVG backend.
type Raster struct {
	dc          *gg.Context
	fonts       *FontCache
	width       float64
	height      float64
	normX       float64
	normY       float64
	lineSpacing float64
	background  color.Color
}

// NewRaster creates a raster renderer with a surface of width x height
// pixels.
func NewRaster(width, height int, opts ...RasterOption) *Raster {
	r := &Raster{
		dc:          gg.NewContext(width, height),
		fonts:       NewFontCache(72),
		width:       float64(width),
		height:      float64(height),
		normX:       100,
		normY:       100,
		lineSpacing: textfit.DefaultLineSpacing,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.background != nil {
		r.dc.SetColor(r.background)
		r.dc.Clear()
	}
	return r
}

// Size returns the surface dimensions in pixels.
func (r *Raster) Size() (float64, float64) { return r.width, r.height }

// DPI returns the resolution used for font faces.
func (r *Raster) DPI() float64 { return r.fonts.DPI() }

// Transform maps layout coordinates to pixels, flipping y so that layout
// space grows upward while the image grows downward.
func (r *Raster) Transform() geom.Affine {
	return viewport(r.normX, r.normY, r.width, r.height)
}

// MeasureText reports the pixel bounding box of content at the given font
// and size. Measurement never touches the drawing context, keeping results
// reproducible mid-loop.
func (r *Raster) MeasureText(content string, f textfit.Font, size float64) (float64, float64, error) {
	return r.fonts.Measure(content, f, size, r.lineSpacing)
}

// DrawRect draws a rectangle given in layout coordinates.
func (r *Raster) DrawRect(rect geom.Rect, st Style) error {
	t := r.Transform()
	a := t.Apply(geom.Point{X: rect.X, Y: rect.Y})
	b := t.Apply(geom.Point{X: rect.MaxX(), Y: rect.MaxY()})

	x := math.Min(a.X, b.X)
	y := math.Min(a.Y, b.Y)
	w := math.Abs(b.X - a.X)
	h := math.Abs(b.Y - a.Y)

	if st.Dashed {
		r.dc.SetDash(4, 4)
		defer r.dc.SetDash()
	}

	r.dc.DrawRectangle(x, y, w, h)
	if st.Fill != nil {
		r.dc.SetColor(st.Fill)
		if st.Stroke != nil {
			r.dc.FillPreserve()
		} else {
			r.dc.Fill()
		}
	}
	if st.Stroke != nil {
		lw := st.StrokeWidth
		if lw <= 0 {
			lw = 1
		}
		r.dc.SetColor(st.Stroke)
		r.dc.SetLineWidth(lw)
		r.dc.Stroke()
	}
	return nil
}

// DrawText draws content anchored at pos in layout coordinates. Multi-line
// content is stacked with the renderer's line spacing.
func (r *Raster) DrawText(content string, pos geom.Point, anchor Anchor, f textfit.Font, size float64, st TextStyle) error {
	face, err := r.fonts.Face(f, size)
	if err != nil {
		return err
	}
	r.dc.SetFontFace(face)

	if st.Color != nil {
		r.dc.SetColor(st.Color)
	} else {
		r.dc.SetColor(color.Black)
	}

	p := r.Transform().Apply(pos)

	if st.Rotation != 0 {
		r.dc.Push()
		// Device y grows down, so a counterclockwise layout rotation is a
		// negative rotation in device space.
		r.dc.RotateAbout(-gg.Radians(st.Rotation), p.X, p.Y)
		defer r.dc.Pop()
	}

	ls := st.LineSpacing
	if ls <= 0 {
		ls = r.lineSpacing
	}

	lines := strings.Split(content, "\n")
	lh := lineHeight(face)
	total := lh * (float64(len(lines))*ls - ls + 1)
	top := p.Y - anchor.AY*total

	for i, line := range lines {
		cy := top + lh/2 + float64(i)*lh*ls
		r.dc.DrawStringAnchored(line, p.X, cy, anchor.AX, 0.5)
	}
	return nil
}

// EncodePNG writes the rendered surface as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// SavePNG writes the rendered surface to a file.
func (r *Raster) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}
