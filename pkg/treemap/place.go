package treemap

import (
	"strings"

	"github.com/squaremap/squaremap/pkg/errors"
	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/render"
)

// placement is a resolved label anchor: the attachment point inside the
// rectangle and the fractional anchor of the text block at that point.
type placement struct {
	pos    geom.Point
	anchor render.Anchor
}

// resolvePlace parses a placement keyword against a rectangle. Accepted
// forms, with British spelling of centre allowed throughout:
//
//   - "center" / "centre" / "c"
//   - two-letter codes, vertical first: "tl", "tc", "tr", "cl", "cr",
//     "bl", "bc", "br", "cc"
//   - two words, vertical first: "top left", "bottom center", ...
//
// Unrecognized keywords fail with an INVALID_PLACEMENT error.
func resolvePlace(place string, r geom.Rect) (placement, error) {
	place = strings.ToLower(strings.TrimSpace(place))
	if place == "" || place == "c" || place == "center" || place == "centre" {
		return placement{pos: r.Center(), anchor: render.Anchor{AX: 0.5, AY: 0.5}}, nil
	}

	var vpart, hpart string
	if fields := strings.Fields(place); len(fields) == 2 {
		vpart, hpart = fields[0], fields[1]
	} else if len(place) == 2 {
		vpart, hpart = expandCode(place[0]), expandCode(place[1])
	} else {
		return placement{}, invalidPlace(place)
	}

	p := placement{}
	switch canonical(vpart) {
	case "top":
		p.pos.Y = r.MaxY()
		p.anchor.AY = 0
	case "center":
		p.pos.Y = r.CenterY()
		p.anchor.AY = 0.5
	case "bottom":
		p.pos.Y = r.Y
		p.anchor.AY = 1
	default:
		return placement{}, invalidPlace(place)
	}

	switch canonical(hpart) {
	case "left":
		p.pos.X = r.X
		p.anchor.AX = 0
	case "center":
		p.pos.X = r.CenterX()
		p.anchor.AX = 0.5
	case "right":
		p.pos.X = r.MaxX()
		p.anchor.AX = 1
	default:
		return placement{}, invalidPlace(place)
	}

	return p, nil
}

func expandCode(c byte) string {
	switch c {
	case 't':
		return "top"
	case 'b':
		return "bottom"
	case 'l':
		return "left"
	case 'r':
		return "right"
	case 'c':
		return "center"
	}
	return ""
}

func canonical(s string) string {
	if s == "centre" {
		return "center"
	}
	return s
}

func invalidPlace(place string) error {
	return errors.New(errors.ErrCodeInvalidPlacement,
		`invalid placement %q: use "center", a two-letter code like "tl", or "<top|center|bottom> <left|center|right>"`, place)
}
