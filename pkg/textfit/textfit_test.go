package textfit

import (
	"math"
	"strings"
	"testing"

	"github.com/squaremap/squaremap/pkg/errors"
	"github.com/squaremap/squaremap/pkg/geom"
)

// fakeMeasurer returns metrics that scale linearly with font size: every
// rune is charW*size wide and a line is lineH*size tall. Content passed to
// MeasureText is always a single line in these tests.
type fakeMeasurer struct {
	charW float64
	lineH float64
}

func (m fakeMeasurer) MeasureText(content string, _ Font, size float64) (float64, float64, error) {
	longest := 0
	lines := 0
	for _, line := range strings.Split(content, "\n") {
		lines++
		if l := runeLen(line); l > longest {
			longest = l
		}
	}
	return m.charW * size * float64(longest), m.lineH * size * float64(lines), nil
}

func (m fakeMeasurer) DPI() float64 { return 72 }

// fixedMeasurer reports one fixed bounding box at a reference size and
// scales it linearly from there.
type fixedMeasurer struct {
	w, h, ref float64
}

func (m fixedMeasurer) MeasureText(_ string, _ Font, size float64) (float64, float64, error) {
	return m.w * size / m.ref, m.h * size / m.ref, nil
}

func (m fixedMeasurer) DPI() float64 { return 72 }

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// A 300x20 bounding box at size 10 inside a 200x50 box scales by the width
// ratio: 10 * min(200/300, 50/20) = 6.667.
func TestFitScalesToTightestDimension(t *testing.T) {
	m := fixedMeasurer{w: 300, h: 20, ref: 10}
	res, err := Fit(m, Text{Content: "Hello, World!", Size: 10}, Box{Width: 200, Height: 50}, Options{})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if !approx(res.Size, 10*200.0/300.0) {
		t.Errorf("Size = %v, want %v", res.Size, 10*200.0/300.0)
	}
	if !res.Fits {
		t.Error("Fits = false, want true")
	}
	if res.Content != "Hello, World!" {
		t.Errorf("Content = %q, want unchanged", res.Content)
	}
}

func TestFitHeightBound(t *testing.T) {
	m := fixedMeasurer{w: 50, h: 40, ref: 10}
	res, err := Fit(m, Text{Content: "x", Size: 10}, Box{Width: 200, Height: 50}, Options{})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	// Height is the binding dimension: 10 * 50/40.
	if !approx(res.Size, 12.5) {
		t.Errorf("Size = %v, want 12.5", res.Size)
	}
}

func TestFitMonotonicInBoxSize(t *testing.T) {
	m := fakeMeasurer{charW: 0.6, lineH: 1.2}
	txt := Text{Content: "monotone growth", Size: 12}

	prev := 0.0
	for _, w := range []float64{20, 40, 80, 160, 320} {
		res, err := Fit(m, txt, Box{Width: w, Height: w / 2}, Options{})
		if err != nil {
			t.Fatalf("Fit error at width %v: %v", w, err)
		}
		if res.Size < prev {
			t.Errorf("size shrank from %v to %v when the box grew to %v", prev, res.Size, w)
		}
		prev = res.Size
	}
}

func TestFitPadding(t *testing.T) {
	m := fixedMeasurer{w: 100, h: 10, ref: 10}
	plain, err := Fit(m, Text{Content: "x", Size: 10}, Box{Width: 100, Height: 100}, Options{})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	padded, err := Fit(m, Text{Content: "x", Size: 10}, Box{Width: 100, Height: 100}, Options{PadX: 10, PadY: 10})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if !approx(plain.Size, 10) {
		t.Errorf("plain Size = %v, want 10", plain.Size)
	}
	// Padding shrinks the usable width to 80.
	if !approx(padded.Size, 8) {
		t.Errorf("padded Size = %v, want 8", padded.Size)
	}
	if padded.Box != (Box{Width: 80, Height: 80}) {
		t.Errorf("padded Box = %+v, want the padded pixel box", padded.Box)
	}
}

// A quarter turn swaps the footprint: the 300-wide bounding box now runs
// along the box height, so the 50px height binds instead of the width.
func TestFitQuarterTurnSwapsBox(t *testing.T) {
	m := fixedMeasurer{w: 300, h: 20, ref: 10}
	box := Box{Width: 200, Height: 50}

	for _, rot := range []float64{90, -90, 270} {
		res, err := Fit(m, Text{Content: "sideways", Size: 10, Rotation: rot}, box, Options{})
		if err != nil {
			t.Fatalf("rotation %v: Fit error: %v", rot, err)
		}
		if want := 10 * 50.0 / 300.0; !approx(res.Size, want) {
			t.Errorf("rotation %v: Size = %v, want %v", rot, res.Size, want)
		}
		if res.Box != box {
			t.Errorf("rotation %v: Box = %+v, want the box orientation kept", rot, res.Box)
		}
	}

	// A half turn keeps the footprint orientation.
	res, err := Fit(m, Text{Content: "upside down", Size: 10, Rotation: 180}, box, Options{})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if want := 10 * 200.0 / 300.0; !approx(res.Size, want) {
		t.Errorf("Size = %v, want %v", res.Size, want)
	}
}

func TestFitWrapQuarterTurn(t *testing.T) {
	m := fakeMeasurer{charW: 1, lineH: 1.5}
	txt := Text{Content: "aaaa bbbb cccc dddd", Size: 12}

	// A 60x40 box seen through a quarter turn wraps like an upright 40x60
	// box: grow mode stacks all four words.
	flat, err := Fit(m, Text{Content: txt.Content, Size: 12, Rotation: 90}, Box{Width: 60, Height: 40}, Options{Wrap: true, Grow: true})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	upright, err := Fit(m, txt, Box{Width: 40, Height: 60}, Options{Wrap: true, Grow: true})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if !approx(flat.Size, upright.Size) || len(flat.Lines) != len(upright.Lines) {
		t.Errorf("rotated fit = %+v, upright fit = %+v, want identical", flat, upright)
	}
}

func TestFitInvalidBox(t *testing.T) {
	m := fakeMeasurer{charW: 1, lineH: 1}
	_, err := Fit(m, Text{Content: "x"}, Box{Width: -1, Height: 10}, Options{})
	if err == nil {
		t.Fatal("expected error for negative box width")
	}
	if !errors.Is(err, errors.ErrCodeInvalidBox) {
		t.Errorf("error code = %v, want INVALID_BOX", errors.GetCode(err))
	}
}

func TestFitWrapRejectsOffAxisRotation(t *testing.T) {
	m := fakeMeasurer{charW: 1, lineH: 1}

	_, err := Fit(m, Text{Content: "a b", Rotation: 45}, Box{Width: 10, Height: 10}, Options{Wrap: true})
	if err == nil {
		t.Fatal("expected error for wrap with 45 degree rotation")
	}
	if !errors.Is(err, errors.ErrCodeUnsupportedRotation) {
		t.Errorf("error code = %v, want UNSUPPORTED_ROTATION", errors.GetCode(err))
	}

	for _, rot := range []float64{0, 90, -90, 180, 270} {
		if _, err := Fit(m, Text{Content: "a b", Rotation: rot}, Box{Width: 10, Height: 10}, Options{Wrap: true}); err != nil {
			t.Errorf("rotation %v: unexpected error %v", rot, err)
		}
	}
}

// Wrapping a four-word string into a tall narrow box: grow mode stacks all
// four words for the largest size, fill mode prefers the two-line split
// whose lines hug the box width.
func TestFitWrapPolicies(t *testing.T) {
	m := fakeMeasurer{charW: 1, lineH: 1.5}
	txt := Text{Content: "aaaa bbbb cccc dddd", Size: 12}
	box := Box{Width: 40, Height: 60}

	grow, err := Fit(m, txt, box, Options{Wrap: true, Grow: true})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if !approx(grow.Size, 10) {
		t.Errorf("grow Size = %v, want 10", grow.Size)
	}
	if len(grow.Lines) != 4 {
		t.Errorf("grow Lines = %v, want one word per line", grow.Lines)
	}

	fill, err := Fit(m, txt, box, Options{Wrap: true})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if !approx(fill.Size, 40.0/9) {
		t.Errorf("fill Size = %v, want %v", fill.Size, 40.0/9)
	}
	if len(fill.Lines) != 2 || fill.Lines[0] != "aaaa bbbb" || fill.Lines[1] != "cccc dddd" {
		t.Errorf("fill Lines = %v, want [aaaa bbbb, cccc dddd]", fill.Lines)
	}
	if fill.Content != "aaaa bbbb\ncccc dddd" {
		t.Errorf("fill Content = %q", fill.Content)
	}
}

// The wrapped result must never be smaller than the single-line fit.
func TestFitWrapNeverRegresses(t *testing.T) {
	m := fakeMeasurer{charW: 0.5, lineH: 1.2}
	txt := Text{Content: "one two three", Size: 12}

	// A wide flat box favors the single line.
	box := Box{Width: 400, Height: 8}
	plain, err := Fit(m, txt, box, Options{})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	wrapped, err := Fit(m, txt, box, Options{Wrap: true})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if wrapped.Size < plain.Size {
		t.Errorf("wrap regressed: %v < %v", wrapped.Size, plain.Size)
	}
}

func TestFitSingleWordNeverWraps(t *testing.T) {
	m := fakeMeasurer{charW: 1, lineH: 1.2}
	res, err := Fit(m, Text{Content: "indivisible", Size: 12}, Box{Width: 20, Height: 100}, Options{Wrap: true})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if res.Lines != nil {
		t.Errorf("Lines = %v, want nil for a single word", res.Lines)
	}
}

func TestFitClamp(t *testing.T) {
	m := fixedMeasurer{w: 100, h: 10, ref: 10}

	capped, err := Fit(m, Text{Content: "x", Size: 10}, Box{Width: 1000, Height: 1000}, Options{MaxSize: 36})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if capped.Size != 36 || !capped.Fits {
		t.Errorf("capped = %+v, want Size 36 Fits true", capped)
	}

	floored, err := Fit(m, Text{Content: "x", Size: 10}, Box{Width: 10, Height: 10}, Options{MinSize: 5})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if floored.Size != 5 {
		t.Errorf("floored Size = %v, want the MinSize floor", floored.Size)
	}
	if floored.Fits {
		t.Error("Fits = true for a fit below MinSize")
	}
}

func TestFitEmptyContent(t *testing.T) {
	m := fakeMeasurer{charW: 1, lineH: 1}
	res, err := Fit(m, Text{Content: "   ", Size: 9}, Box{Width: 10, Height: 10}, Options{})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if res.Size != 9 || !res.Fits {
		t.Errorf("res = %+v, want the input size untouched", res)
	}
}

func TestFitRectConvertsThroughTransform(t *testing.T) {
	m := fixedMeasurer{w: 100, h: 10, ref: 10}
	// 2x pixel scale doubles the effective box.
	res, err := FitRect(m, Text{Content: "x", Size: 10}, geom.Scale(2, 2), 100, 100, Options{})
	if err != nil {
		t.Fatalf("FitRect error: %v", err)
	}
	if !approx(res.Size, 20) {
		t.Errorf("Size = %v, want 20", res.Size)
	}

	// A y-flipped viewport produces negative pixel displacement; the box
	// must use the magnitude.
	flip := geom.Affine{XX: 1, YY: -1, Y0: 100}
	res, err = FitRect(m, Text{Content: "x", Size: 10}, flip, 100, 100, Options{})
	if err != nil {
		t.Fatalf("FitRect error: %v", err)
	}
	if !approx(res.Size, 10) {
		t.Errorf("Size = %v, want 10", res.Size)
	}
}

func TestPixelPointConversions(t *testing.T) {
	if got := PixelsToPoints(144, 10); !approx(got, 5) {
		t.Errorf("PixelsToPoints(144, 10) = %v, want 5", got)
	}
	if got := PointsToPixels(144, 5); !approx(got, 10) {
		t.Errorf("PointsToPixels(144, 5) = %v, want 10", got)
	}
	// Non-positive DPI falls back to 72.
	if got := PixelsToPoints(0, 7); !approx(got, 7) {
		t.Errorf("PixelsToPoints(0, 7) = %v, want 7", got)
	}
}
