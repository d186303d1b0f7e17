package cli

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/treemap"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.Color
	}{
		{"", nil},
		{"#4c78a8", color.RGBA{0x4c, 0x78, 0xa8, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"#a1b", color.RGBA{0xaa, 0x11, 0xbb, 0xff}},
		{"#11223380", color.RGBA{0x11, 0x22, 0x33, 0x80}},
		{"4c78a8", color.RGBA{0x4c, 0x78, 0xa8, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseColor(tt.input)
			if err != nil {
				t.Fatalf("parseColor(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	for _, input := range []string{"#12", "#12345", "#zzzzzz"} {
		if _, err := parseColor(input); err == nil {
			t.Errorf("parseColor(%q) accepted", input)
		}
	}
}

func TestLoadStyleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.toml")
	content := `
[rect]
fill = "#336699"
stroke_width = 2.5

[label]
show = false
place = "top left"

[pad]
left = 1
right = 1
top = 2
bottom = 2

[[parents]]
stroke = "#333333"
stroke_width = 2

[parents.label]
show = true
min_size = 6
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	spec := treemap.Spec{
		Rect:  treemap.RectStyle{Fill: color.RGBA{0x4c, 0x78, 0xa8, 0xff}, StrokeWidth: 1},
		Label: treemap.LabelOptions{Show: true, Wrap: true, MinSize: 4},
	}
	if err := loadStyleConfig(path, &spec); err != nil {
		t.Fatalf("loadStyleConfig error: %v", err)
	}

	if spec.Rect.Fill != (color.RGBA{0x33, 0x66, 0x99, 0xff}) {
		t.Errorf("rect fill = %v", spec.Rect.Fill)
	}
	if spec.Rect.StrokeWidth != 2.5 {
		t.Errorf("rect stroke width = %v", spec.Rect.StrokeWidth)
	}

	if spec.Label.Show {
		t.Error("label show=false should override the default")
	}
	if spec.Label.Place != "top left" {
		t.Errorf("label place = %q", spec.Label.Place)
	}

	if spec.Pad != (geom.Padding{Left: 1, Right: 1, Top: 2, Bottom: 2}) {
		t.Errorf("pad = %+v", spec.Pad)
	}

	if len(spec.ParentRects) != 1 || len(spec.ParentLabels) != 1 {
		t.Fatalf("parents = %d rects, %d labels, want 1 each",
			len(spec.ParentRects), len(spec.ParentLabels))
	}
	if spec.ParentRects[0].Stroke != (color.RGBA{0x33, 0x33, 0x33, 0xff}) {
		t.Errorf("parent stroke = %v", spec.ParentRects[0].Stroke)
	}
	if !spec.ParentLabels[0].Show || spec.ParentLabels[0].MinSize != 6 {
		t.Errorf("parent label = %+v", spec.ParentLabels[0])
	}
}

func TestApplyStyleConfigKeepsDefaults(t *testing.T) {
	spec := treemap.Spec{
		Rect:  treemap.RectStyle{Fill: color.RGBA{0x4c, 0x78, 0xa8, 0xff}},
		Label: treemap.LabelOptions{Show: true, Wrap: true, MinSize: 4},
		Pad:   geom.Uniform(3),
	}

	// An empty config changes nothing that matters.
	if err := applyStyleConfig(&styleConfig{}, &spec); err != nil {
		t.Fatalf("applyStyleConfig error: %v", err)
	}
	if spec.Rect.Fill != (color.RGBA{0x4c, 0x78, 0xa8, 0xff}) {
		t.Errorf("unset rect fill should keep the default, got %v", spec.Rect.Fill)
	}
	if !spec.Label.Show {
		t.Error("unset label show should keep the default")
	}
	if spec.Pad != geom.Uniform(3) {
		t.Errorf("unset pad should keep the default, got %+v", spec.Pad)
	}
}

func TestMergeRect(t *testing.T) {
	dst := treemap.RectStyle{Fill: color.White, Stroke: color.Black, StrokeWidth: 1}
	mergeRect(&dst, treemap.RectStyle{Stroke: color.RGBA{0xff, 0, 0, 0xff}})

	if dst.Fill != color.White {
		t.Error("unset fill should not clear the destination")
	}
	if dst.Stroke != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("stroke = %v", dst.Stroke)
	}
	if dst.StrokeWidth != 1 {
		t.Errorf("stroke width = %v", dst.StrokeWidth)
	}
}
