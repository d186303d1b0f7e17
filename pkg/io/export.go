package io

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"sort"

	"github.com/squaremap/squaremap/pkg/treemap"
)

type manifest struct {
	Patches []patch       `json:"patches"`
	Texts   []text        `json:"texts,omitempty"`
	Legend  []legendEntry `json:"legend,omitempty"`
}

type patch struct {
	ID    string  `json:"id,omitempty"`
	Key   string  `json:"key"`
	Level int     `json:"level"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Fill  string  `json:"fill,omitempty"`
}

type text struct {
	ID      string  `json:"id,omitempty"`
	Key     string  `json:"key"`
	Level   int     `json:"level"`
	Content string  `json:"content"`
	Size    float64 `json:"size"`
	Fits    bool    `json:"fits"`
}

type legendEntry struct {
	Value string `json:"value"`
	Color string `json:"color"`
}

// WriteJSON encodes a container as a JSON manifest and writes it to w.
// Patches and texts are sorted by level then key so output is stable across
// runs. The format can be re-imported with [ReadJSON].
func WriteJSON(c *treemap.Container, w io.Writer) error {
	out := manifest{
		Patches: make([]patch, 0, len(c.Patches)),
		Texts:   make([]text, 0, len(c.Texts)),
	}

	for _, p := range c.Patches {
		out.Patches = append(out.Patches, patch{
			ID:    p.ID,
			Key:   p.Key,
			Level: p.Level,
			X:     p.Rect.X,
			Y:     p.Rect.Y,
			W:     p.Rect.W,
			H:     p.Rect.H,
			Fill:  formatColor(p.Fill),
		})
	}
	sort.Slice(out.Patches, func(i, j int) bool {
		if out.Patches[i].Level != out.Patches[j].Level {
			return out.Patches[i].Level < out.Patches[j].Level
		}
		return out.Patches[i].Key < out.Patches[j].Key
	})

	for _, t := range c.Texts {
		out.Texts = append(out.Texts, text{
			ID:      t.ID,
			Key:     t.Key,
			Level:   t.Level,
			Content: t.Content,
			Size:    t.Size,
			Fits:    t.Fits,
		})
	}
	sort.Slice(out.Texts, func(i, j int) bool {
		if out.Texts[i].Level != out.Texts[j].Level {
			return out.Texts[i].Level < out.Texts[j].Level
		}
		return out.Texts[i].Key < out.Texts[j].Key
	})

	for _, e := range c.Legend {
		out.Legend = append(out.Legend, legendEntry{
			Value: e.Value,
			Color: formatColor(e.Color),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a container manifest to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(c *treemap.Container, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}

// formatColor renders a color as #rrggbb or #rrggbbaa hex notation.
func formatColor(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, a := c.RGBA()
	if a == 0xffff {
		return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r>>8, g>>8, b>>8, a>>8)
}
