package treemap

import (
	"image/color"

	"github.com/squaremap/squaremap/pkg/dataset"
	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/textfit"
)

// Spec describes one treemap build. Exactly one weight source must be set:
// the Area column, the AreaConst constant, the AreaValues array (with Data),
// or the bare Weights slice (without Data).
type Spec struct {
	// Data is the tabular input. Nil when plotting bare Weights.
	Data *dataset.Table

	// Weights are direct leaf weights used when Data is nil.
	Weights []float64

	// Area names the weight column in Data.
	Area string

	// AreaConst assigns the same weight to every record when > 0.
	AreaConst float64

	// AreaValues are per-record weights; length must match Data.
	AreaValues []float64

	// Levels are the hierarchy columns, outermost first. Empty treats each
	// record as its own leaf.
	Levels []string

	// Labels names the label column. Empty uses the innermost level value.
	Labels string

	// LabelValues are per-record labels; length must match the input.
	LabelValues []string

	// Fill names the column that colors leaf rectangles: numeric columns
	// map through Colormap with min/max normalization, categorical columns
	// cycle Palette with a stable per-category assignment.
	Fill string

	// NormX, NormY define the layout coordinate range. Zero defaults to 100.
	NormX, NormY float64

	// Top flips the chart upside down (first rows at the top).
	Top bool

	// Split reserves a uniform placeholder weight for every root cell so
	// deeper levels fit within predictable sub-rectangles.
	Split bool

	// Pad is the inter-level inset applied to a parent rectangle before its
	// children are laid out. Synthetic groups (empty level value) are not
	// inset.
	Pad geom.Padding

	// Rect styles the leaf rectangles. Fill is overridden per rectangle
	// when Fill is set on the spec.
	Rect RectStyle

	// Label controls leaf labels.
	Label LabelOptions

	// ParentRects optionally styles non-leaf rectangles, outermost level
	// first. Missing entries leave that level undrawn.
	ParentRects []RectStyle

	// ParentLabels optionally enables labels on non-leaf levels, outermost
	// level first.
	ParentLabels []LabelOptions

	// Colormap maps normalized numeric fill values to colors.
	// Nil defaults to Viridis.
	Colormap *Colormap

	// Palette supplies categorical fill colors. Nil defaults to the built-in
	// ten-color palette.
	Palette []color.Color
}

// RectStyle styles a drawn rectangle.
type RectStyle struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

// LabelOptions is the explicit configuration for one level of labels.
// Renderer pass-through style properties stay separate from the fitting
// options on purpose.
type LabelOptions struct {
	Show    bool
	Wrap    bool    // allow line wrapping when growing the label
	Grow    bool    // wrap policy: maximize size over horizontal fill
	Place   string  // placement keyword, e.g. "center", "top left", "bc"
	MinSize float64 // floor for the fitted size
	MaxSize float64 // optional ceiling for the fitted size
	PadX    float64 // horizontal fit padding in pixels
	PadY    float64 // vertical fit padding in pixels
	Color   color.Color
	Font    textfit.Font
}

func (s *Spec) normX() float64 {
	if s.NormX <= 0 {
		return 100
	}
	return s.NormX
}

func (s *Spec) normY() float64 {
	if s.NormY <= 0 {
		return 100
	}
	return s.NormY
}
