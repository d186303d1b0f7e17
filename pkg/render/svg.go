package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"strings"

	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/textfit"
)

// SVGOption configures an SVG renderer.
type SVGOption func(*SVG)

// WithSVGViewport sets the layout coordinate range mapped onto the surface.
// Default 100x100.
func WithSVGViewport(normX, normY float64) SVGOption {
	return func(s *SVG) { s.normX, s.normY = normX, normY }
}

// WithSVGBackground fills the surface with a color before any drawing.
func WithSVGBackground(c color.Color) SVGOption {
	return func(s *SVG) { s.background = c }
}

// WithSVGFontFamily sets the CSS font-family emitted for text elements.
func WithSVGFontFamily(family string) SVGOption {
	return func(s *SVG) { s.fontFamily = family }
}

// SVG renders to an SVG document. Text measurement uses the same freetype
// metrics as the raster backend, so a fit computed against this renderer
// draws identically as PNG.
type SVG struct {
	buf         bytes.Buffer
	fonts       *FontCache
	width       float64
	height      float64
	normX       float64
	normY       float64
	lineSpacing float64
	background  color.Color
	fontFamily  string
}

// NewSVG creates an SVG renderer with a surface of width x height pixels.
func NewSVG(width, height int, opts ...SVGOption) *SVG {
	s := &SVG{
		fonts:       NewFontCache(72),
		width:       float64(width),
		height:      float64(height),
		normX:       100,
		normY:       100,
		lineSpacing: textfit.DefaultLineSpacing,
		fontFamily:  "DejaVu Sans, sans-serif",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Size returns the surface dimensions in pixels.
func (s *SVG) Size() (float64, float64) { return s.width, s.height }

// DPI returns the resolution used for font metrics.
func (s *SVG) DPI() float64 { return s.fonts.DPI() }

// Transform maps layout coordinates to pixels with the y axis flipped.
func (s *SVG) Transform() geom.Affine {
	return viewport(s.normX, s.normY, s.width, s.height)
}

// MeasureText reports the pixel bounding box of content at the given font
// and size.
func (s *SVG) MeasureText(content string, f textfit.Font, size float64) (float64, float64, error) {
	return s.fonts.Measure(content, f, size, s.lineSpacing)
}

// DrawRect appends a rect element in pixel coordinates.
func (s *SVG) DrawRect(rect geom.Rect, st Style) error {
	t := s.Transform()
	a := t.Apply(geom.Point{X: rect.X, Y: rect.MaxY()})
	b := t.Apply(geom.Point{X: rect.MaxX(), Y: rect.Y})

	fmt.Fprintf(&s.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"`,
		a.X, a.Y, b.X-a.X, b.Y-a.Y)

	if st.Fill != nil {
		fmt.Fprintf(&s.buf, ` fill="%s"`, hexColor(st.Fill))
		if op := alpha(st.Fill); op < 1 {
			fmt.Fprintf(&s.buf, ` fill-opacity="%.3f"`, op)
		}
	} else {
		s.buf.WriteString(` fill="none"`)
	}
	if st.Stroke != nil {
		lw := st.StrokeWidth
		if lw <= 0 {
			lw = 1
		}
		fmt.Fprintf(&s.buf, ` stroke="%s" stroke-width="%.2f"`, hexColor(st.Stroke), lw)
		if st.Dashed {
			s.buf.WriteString(` stroke-dasharray="4 4"`)
		}
	}
	s.buf.WriteString("/>\n")
	return nil
}

// DrawText appends a text element anchored at pos in layout coordinates.
// Multi-line content becomes stacked tspans.
func (s *SVG) DrawText(content string, pos geom.Point, anchor Anchor, f textfit.Font, size float64, st TextStyle) error {
	face, err := s.fonts.Face(f, size)
	if err != nil {
		return err
	}

	p := s.Transform().Apply(pos)

	fill := "#000000"
	if st.Color != nil {
		fill = hexColor(st.Color)
	}

	ls := st.LineSpacing
	if ls <= 0 {
		ls = s.lineSpacing
	}

	lines := strings.Split(content, "\n")
	lh := lineHeight(face)
	total := lh * (float64(len(lines))*ls - ls + 1)
	top := p.Y - anchor.AY*total

	weight := ""
	if f.Bold {
		weight = ` font-weight="bold"`
	}
	style := ""
	if f.Italic {
		style = ` font-style="italic"`
	}
	rotate := ""
	if st.Rotation != 0 {
		rotate = fmt.Sprintf(` transform="rotate(%.2f %.2f %.2f)"`, -st.Rotation, p.X, p.Y)
	}

	fmt.Fprintf(&s.buf,
		`  <text font-family="%s" font-size="%.2f" fill="%s"%s%s%s text-anchor="%s">`+"\n",
		escapeXML(s.fontFamily), size, fill, weight, style, rotate, textAnchor(anchor.AX))

	for i, line := range lines {
		cy := top + lh/2 + float64(i)*lh*ls
		fmt.Fprintf(&s.buf, `    <tspan x="%.2f" y="%.2f" dominant-baseline="central">%s</tspan>`+"\n",
			p.X, cy, escapeXML(line))
	}
	s.buf.WriteString("  </text>\n")
	return nil
}

// Bytes returns the complete SVG document.
func (s *SVG) Bytes() []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	if s.background != nil {
		fmt.Fprintf(&out, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexColor(s.background))
	}
	out.Write(s.buf.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes()
}

func textAnchor(ax float64) string {
	switch {
	case ax <= 0.25:
		return "start"
	case ax >= 0.75:
		return "end"
	default:
		return "middle"
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
