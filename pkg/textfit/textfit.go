package textfit

import (
	"math"
	"strings"

	"github.com/squaremap/squaremap/pkg/errors"
	"github.com/squaremap/squaremap/pkg/geom"
)

// DefaultLineSpacing is the line spacing multiplier used when a Text does
// not specify one.
const DefaultLineSpacing = 1.2

// referenceSize is the measurement size used when a Text carries no size.
const referenceSize = 12.0

// Font identifies a typeface for measurement and drawing. The zero value
// selects the renderer's default face.
type Font struct {
	Family string
	Bold   bool
	Italic bool
}

// Measurer is the capability interface the engine needs from a renderer.
//
// MeasureText returns the pixel bounding box of content rendered at the
// given font and size. Content may contain newlines; implementations stack
// lines using the text's line spacing. DPI reports the device resolution
// used to convert pixel heights back into font points.
type Measurer interface {
	MeasureText(content string, font Font, size float64) (width, height float64, err error)
	DPI() float64
}

// Text describes the text to fit. The engine never mutates it.
type Text struct {
	Content     string
	Font        Font
	Size        float64 // current font size in points; <= 0 uses a reference size
	Rotation    float64 // degrees counterclockwise
	LineSpacing float64 // line height multiplier; <= 0 uses DefaultLineSpacing
}

// Box is the target region in pixels.
type Box struct {
	Width, Height float64
}

// Options controls the fit.
type Options struct {
	Wrap    bool    // allow line wrapping to grow the text
	Grow    bool    // wrap policy: maximize size instead of horizontal fill
	PadX    float64 // horizontal padding in pixels, applied to both sides
	PadY    float64 // vertical padding in pixels, applied to both sides
	MinSize float64 // floor for the fitted size; fits=false when binding
	MaxSize float64 // optional ceiling for the fitted size; 0 means none
}

// Result is the outcome of a fit. It is stateless per invocation; the caller
// applies it to its own drawing objects.
type Result struct {
	Size    float64  // fitted font size in points
	Content string   // possibly multi-line (newline-joined) content
	Lines   []string // wrapped lines; nil when unwrapped
	Fits    bool     // false when the unconstrained fit fell below MinSize
	Box     Box      // padded target box in pixels, usable for a debug outline
}

// Fit computes the maximal font size for txt inside box.
//
// Returns an INVALID_BOX error when the box has a negative dimension and an
// UNSUPPORTED_ROTATION error when wrapping is requested for text that is not
// axis-aligned (rotation not a multiple of 90 degrees).
func Fit(m Measurer, txt Text, box Box, opts Options) (Result, error) {
	if box.Width < 0 || box.Height < 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidBox,
			"box dimensions must be >= 0, got %gx%g", box.Width, box.Height)
	}
	if opts.Wrap && !axisAligned(txt.Rotation) {
		return Result{}, errors.New(errors.ErrCodeUnsupportedRotation,
			"wrap requires a rotation that is a multiple of 90 degrees, got %g", txt.Rotation)
	}

	w := math.Max(0, box.Width-2*opts.PadX)
	h := math.Max(0, box.Height-2*opts.PadY)

	size := txt.Size
	if size <= 0 {
		size = referenceSize
	}
	ls := txt.LineSpacing
	if ls <= 0 {
		ls = DefaultLineSpacing
	}

	res := Result{Size: size, Content: txt.Content, Fits: true, Box: Box{Width: w, Height: h}}
	if strings.TrimSpace(txt.Content) == "" {
		return clamp(res, opts), nil
	}

	// Text rotated by an odd multiple of 90 degrees occupies the box with
	// its footprint swapped, so fit against the transposed dimensions. The
	// reported Box stays in box orientation for outlining.
	fw, fh := w, h
	if quarterTurn(txt.Rotation) {
		fw, fh = fh, fw
	}

	bw, bh, err := m.MeasureText(txt.Content, txt.Font, size)
	if err != nil {
		return Result{}, err
	}
	if bw > 0 && bh > 0 {
		res.Size = size * math.Min(fw/bw, fh/bh)
	}

	if opts.Wrap {
		best, ok, err := findBestWrap(m, txt.Content, txt.Font, size, ls, fw, fh, opts.Grow)
		if err != nil {
			return Result{}, err
		}
		// Never regress below the single-line fit.
		if ok && best.size > res.Size {
			res.Size = best.size
			res.Lines = best.lines
			res.Content = strings.Join(best.lines, "\n")
		}
	}

	return clamp(res, opts), nil
}

// FitRect fits txt into a logical-space box of the given width and height,
// converting to pixels through the transform before delegating to [Fit].
func FitRect(m Measurer, txt Text, t geom.Affine, width, height float64, opts Options) (Result, error) {
	if width < 0 || height < 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidBox,
			"box dimensions must be >= 0, got %gx%g", width, height)
	}
	px, py := geom.DistanceToPixels(t, width, height)
	return Fit(m, txt, Box{Width: math.Abs(px), Height: math.Abs(py)}, opts)
}

func clamp(res Result, opts Options) Result {
	if opts.MaxSize > 0 && res.Size > opts.MaxSize {
		res.Size = opts.MaxSize
	}
	if opts.MinSize > 0 && res.Size < opts.MinSize {
		// Best effort: report the miss but never shrink below the floor.
		res.Size = opts.MinSize
		res.Fits = false
	}
	return res
}

func axisAligned(rotation float64) bool {
	r := math.Mod(rotation, 90)
	const eps = 1e-9
	return math.Abs(r) < eps || math.Abs(math.Abs(r)-90) < eps
}

// quarterTurn reports whether rotation is an odd multiple of 90 degrees.
func quarterTurn(rotation float64) bool {
	r := math.Abs(math.Mod(rotation, 180))
	const eps = 1e-9
	return math.Abs(r-90) < eps
}

// PixelsToPoints converts a pixel length to font points at the given DPI.
func PixelsToPoints(dpi, pixels float64) float64 {
	if dpi <= 0 {
		dpi = 72
	}
	return pixels * 72 / dpi
}

// PointsToPixels converts a length in font points to pixels at the given DPI.
func PointsToPixels(dpi, points float64) float64 {
	if dpi <= 0 {
		dpi = 72
	}
	return points * dpi / 72
}
