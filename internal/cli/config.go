package cli

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/textfit"
	"github.com/squaremap/squaremap/pkg/treemap"
)

// styleConfig is the TOML schema for --config files. Every section is
// optional; unset values keep the built-in defaults.
//
// Example:
//
//	[rect]
//	fill = "#4c78a8"
//	stroke = "#ffffff"
//	stroke_width = 1.5
//
//	[label]
//	show = true
//	wrap = true
//	place = "top left"
//	min_size = 5
//
//	[[parents]]
//	stroke = "#333333"
//	stroke_width = 2
//
//	[[parents.label]]
type styleConfig struct {
	Rect    rectConfig    `toml:"rect"`
	Label   labelConfig   `toml:"label"`
	Parents []levelConfig `toml:"parents"`
	Pad     padConfig     `toml:"pad"`
}

type rectConfig struct {
	Fill        string  `toml:"fill"`
	Stroke      string  `toml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width"`
}

type labelConfig struct {
	Show    *bool   `toml:"show"`
	Wrap    bool    `toml:"wrap"`
	Grow    bool    `toml:"grow"`
	Place   string  `toml:"place"`
	MinSize float64 `toml:"min_size"`
	MaxSize float64 `toml:"max_size"`
	PadX    float64 `toml:"pad_x"`
	PadY    float64 `toml:"pad_y"`
	Color   string  `toml:"color"`
	Family  string  `toml:"family"`
	Bold    bool    `toml:"bold"`
	Italic  bool    `toml:"italic"`
}

// levelConfig styles one parent level, outermost first.
type levelConfig struct {
	rectConfig
	Label labelConfig `toml:"label"`
}

type padConfig struct {
	Left   float64 `toml:"left"`
	Right  float64 `toml:"right"`
	Top    float64 `toml:"top"`
	Bottom float64 `toml:"bottom"`
}

// loadStyleConfig reads a TOML style file and applies it to the spec.
func loadStyleConfig(path string, spec *treemap.Spec) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var cfg styleConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return applyStyleConfig(&cfg, spec)
}

func applyStyleConfig(cfg *styleConfig, spec *treemap.Spec) error {
	rect, err := cfg.Rect.style()
	if err != nil {
		return err
	}
	mergeRect(&spec.Rect, rect)

	label, err := cfg.Label.options()
	if err != nil {
		return err
	}
	if cfg.Label.Show == nil {
		label.Show = spec.Label.Show
	}
	spec.Label = label

	for i, lvl := range cfg.Parents {
		rect, err := lvl.rectConfig.style()
		if err != nil {
			return fmt.Errorf("parents[%d]: %w", i, err)
		}
		spec.ParentRects = append(spec.ParentRects, rect)

		pl, err := lvl.Label.options()
		if err != nil {
			return fmt.Errorf("parents[%d]: %w", i, err)
		}
		spec.ParentLabels = append(spec.ParentLabels, pl)
	}

	if cfg.Pad != (padConfig{}) {
		spec.Pad = geom.Padding{
			Left:   cfg.Pad.Left,
			Right:  cfg.Pad.Right,
			Top:    cfg.Pad.Top,
			Bottom: cfg.Pad.Bottom,
		}
	}
	return nil
}

func (c rectConfig) style() (treemap.RectStyle, error) {
	st := treemap.RectStyle{StrokeWidth: c.StrokeWidth}
	var err error
	if st.Fill, err = parseColor(c.Fill); err != nil {
		return st, err
	}
	if st.Stroke, err = parseColor(c.Stroke); err != nil {
		return st, err
	}
	return st, nil
}

func (c labelConfig) options() (treemap.LabelOptions, error) {
	lo := treemap.LabelOptions{
		Wrap:    c.Wrap,
		Grow:    c.Grow,
		Place:   c.Place,
		MinSize: c.MinSize,
		MaxSize: c.MaxSize,
		PadX:    c.PadX,
		PadY:    c.PadY,
		Font: textfit.Font{
			Family: c.Family,
			Bold:   c.Bold,
			Italic: c.Italic,
		},
	}
	if c.Show != nil {
		lo.Show = *c.Show
	}
	var err error
	if lo.Color, err = parseColor(c.Color); err != nil {
		return lo, err
	}
	return lo, nil
}

func mergeRect(dst *treemap.RectStyle, src treemap.RectStyle) {
	if src.Fill != nil {
		dst.Fill = src.Fill
	}
	if src.Stroke != nil {
		dst.Stroke = src.Stroke
	}
	if src.StrokeWidth > 0 {
		dst.StrokeWidth = src.StrokeWidth
	}
}

// parseColor parses "#rgb", "#rrggbb", or "#rrggbbaa" hex notation.
// An empty string parses to nil (keep the default).
func parseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = strings.Repeat(string(hex[0]), 2) +
			strings.Repeat(string(hex[1]), 2) +
			strings.Repeat(string(hex[2]), 2)
	}
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q: want #rgb, #rrggbb, or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %v", s, err)
	}
	c := color.RGBA{A: 0xff}
	if len(hex) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	c.G = uint8(v >> 8)
	c.R = uint8(v >> 16)
	return c, nil
}
