package io

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/treemap"
)

// ReadJSON decodes a JSON manifest from r into a container.
//
// The input must be a JSON object with a "patches" array; "texts" and
// "legend" are optional. Each patch must have a "key" field. Duplicate
// patch or text keys are an error.
//
// The returned container is independent of r and can be modified safely
// after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*treemap.Container, error) {
	var data manifest
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	c := &treemap.Container{
		Patches: make(map[string]treemap.RectHandle, len(data.Patches)),
		Texts:   make(map[string]treemap.TextHandle, len(data.Texts)),
	}

	for _, p := range data.Patches {
		if p.Key == "" {
			return nil, fmt.Errorf("patch without key")
		}
		if _, ok := c.Patches[p.Key]; ok {
			return nil, fmt.Errorf("duplicate patch key %s", p.Key)
		}
		fill, err := parseColor(p.Fill)
		if err != nil {
			return nil, fmt.Errorf("patch %s: %w", p.Key, err)
		}
		c.Patches[p.Key] = treemap.RectHandle{
			ID:    p.ID,
			Key:   p.Key,
			Level: p.Level,
			Rect:  geom.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H},
			Fill:  fill,
		}
	}

	for _, t := range data.Texts {
		if _, ok := c.Texts[t.Key]; ok {
			return nil, fmt.Errorf("duplicate text key %s", t.Key)
		}
		c.Texts[t.Key] = treemap.TextHandle{
			ID:      t.ID,
			Key:     t.Key,
			Level:   t.Level,
			Content: t.Content,
			Size:    t.Size,
			Fits:    t.Fits,
		}
	}

	for _, e := range data.Legend {
		col, err := parseColor(e.Color)
		if err != nil {
			return nil, fmt.Errorf("legend %s: %w", e.Value, err)
		}
		c.Legend = append(c.Legend, treemap.LegendEntry{Value: e.Value, Color: col})
	}

	return c, nil
}

// ImportJSON reads a JSON manifest file at path and returns the decoded
// container. It returns the same validation errors as [ReadJSON].
func ImportJSON(path string) (*treemap.Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// parseColor parses #rrggbb or #rrggbbaa hex notation. Empty input parses
// to nil.
func parseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q", s)
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
