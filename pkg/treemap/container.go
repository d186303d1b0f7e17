package treemap

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/squaremap/squaremap/pkg/geom"
)

// RectHandle identifies one drawn rectangle.
type RectHandle struct {
	ID    string
	Key   string // slash-joined hierarchical key
	Level int    // 1-based hierarchy depth
	Rect  geom.Rect
	Fill  color.Color
}

// TextHandle identifies one drawn label.
type TextHandle struct {
	ID      string
	Key     string
	Level   int
	Content string  // final, possibly wrapped content
	Size    float64 // fitted font size in points
	Fits    bool
}

// LegendEntry pairs a categorical fill value with its assigned color, in
// first-appearance order, for building an external legend.
type LegendEntry struct {
	Value string
	Color color.Color
}

// Mappable carries the continuous color scale of a numeric fill, usable for
// an external colorbar.
type Mappable struct {
	Norm     Normalizer
	Colormap *Colormap
}

// Container bundles the artifact handles of one treemap build. It is
// assembled incrementally while levels draw, so a build that fails midway
// still exposes everything drawn so far.
type Container struct {
	Patches map[string]RectHandle
	Texts   map[string]TextHandle
	Legend  []LegendEntry
	Mapp    *Mappable
}

func newContainer() *Container {
	return &Container{
		Patches: make(map[string]RectHandle),
		Texts:   make(map[string]TextHandle),
	}
}

func (c *Container) addPatch(g *group, level int, fill color.Color) {
	c.Patches[g.Key()] = RectHandle{
		ID:    uuid.NewString(),
		Key:   g.Key(),
		Level: level,
		Rect:  g.rect,
		Fill:  fill,
	}
}

func (c *Container) addText(g *group, level int, content string, size float64, fits bool) {
	c.Texts[g.Key()] = TextHandle{
		ID:      uuid.NewString(),
		Key:     g.Key(),
		Level:   level,
		Content: content,
		Size:    size,
		Fits:    fits,
	}
}
