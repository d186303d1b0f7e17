package treemap

import (
	"testing"

	"github.com/squaremap/squaremap/pkg/errors"
	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/render"
)

func TestResolvePlace(t *testing.T) {
	r := geom.Rect{X: 10, Y: 20, W: 40, H: 60}

	tests := []struct {
		place  string
		pos    geom.Point
		anchor render.Anchor
	}{
		{"", geom.Point{X: 30, Y: 50}, render.Anchor{AX: 0.5, AY: 0.5}},
		{"c", geom.Point{X: 30, Y: 50}, render.Anchor{AX: 0.5, AY: 0.5}},
		{"center", geom.Point{X: 30, Y: 50}, render.Anchor{AX: 0.5, AY: 0.5}},
		{"centre", geom.Point{X: 30, Y: 50}, render.Anchor{AX: 0.5, AY: 0.5}},
		{"top left", geom.Point{X: 10, Y: 80}, render.Anchor{AX: 0, AY: 0}},
		{"tl", geom.Point{X: 10, Y: 80}, render.Anchor{AX: 0, AY: 0}},
		{"top right", geom.Point{X: 50, Y: 80}, render.Anchor{AX: 1, AY: 0}},
		{"bottom left", geom.Point{X: 10, Y: 20}, render.Anchor{AX: 0, AY: 1}},
		{"br", geom.Point{X: 50, Y: 20}, render.Anchor{AX: 1, AY: 1}},
		{"bc", geom.Point{X: 30, Y: 20}, render.Anchor{AX: 0.5, AY: 1}},
		{"cl", geom.Point{X: 10, Y: 50}, render.Anchor{AX: 0, AY: 0.5}},
		{"cc", geom.Point{X: 30, Y: 50}, render.Anchor{AX: 0.5, AY: 0.5}},
		{"  Top Left  ", geom.Point{X: 10, Y: 80}, render.Anchor{AX: 0, AY: 0}},
		{"bottom centre", geom.Point{X: 30, Y: 20}, render.Anchor{AX: 0.5, AY: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.place, func(t *testing.T) {
			got, err := resolvePlace(tt.place, r)
			if err != nil {
				t.Fatalf("resolvePlace(%q) error: %v", tt.place, err)
			}
			if got.pos != tt.pos {
				t.Errorf("pos = %+v, want %+v", got.pos, tt.pos)
			}
			if got.anchor != tt.anchor {
				t.Errorf("anchor = %+v, want %+v", got.anchor, tt.anchor)
			}
		})
	}
}

func TestResolvePlaceInvalid(t *testing.T) {
	r := geom.Rect{W: 10, H: 10}
	for _, place := range []string{"middle", "xy", "left top", "top", "top left corner", "t l c"} {
		t.Run(place, func(t *testing.T) {
			_, err := resolvePlace(place, r)
			if err == nil {
				t.Fatalf("resolvePlace(%q) succeeded", place)
			}
			if !errors.Is(err, errors.ErrCodeInvalidPlacement) {
				t.Errorf("error code = %v, want INVALID_PLACEMENT", errors.GetCode(err))
			}
		})
	}
}
