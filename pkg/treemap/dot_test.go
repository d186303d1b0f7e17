package treemap

import (
	"context"
	"strings"
	"testing"

	"github.com/squaremap/squaremap/pkg/dataset"
	"github.com/squaremap/squaremap/pkg/errors"
)

func TestToDOT(t *testing.T) {
	dot, err := ToDOT(Spec{
		Data:   salesTable(t),
		Area:   "sales",
		Levels: []string{"region", "city"},
	})
	if err != nil {
		t.Fatalf("ToDOT error: %v", err)
	}

	if !strings.HasPrefix(dot, "digraph hierarchy {") {
		t.Errorf("missing digraph header:\n%s", dot)
	}

	// Root nodes carry the aggregated weight.
	if !strings.Contains(dot, `"North" [label="North\nweight: 6"]`) {
		t.Errorf("missing North node:\n%s", dot)
	}
	if !strings.Contains(dot, `"South" [label="South\nweight: 10"]`) {
		t.Errorf("missing South node:\n%s", dot)
	}

	// Leaf nodes use the full slash-joined key.
	if !strings.Contains(dot, `"South/Munich" [label="Munich\nweight: 8"]`) {
		t.Errorf("missing Munich node:\n%s", dot)
	}

	// Edges run parent to child.
	for _, edge := range []string{
		`"North" -> "North/Hamburg";`,
		`"North" -> "North/Bremen";`,
		`"South" -> "South/Munich";`,
		`"South" -> "South/Stuttgart";`,
	} {
		if !strings.Contains(dot, edge) {
			t.Errorf("missing edge %s:\n%s", edge, dot)
		}
	}
}

func TestToDOTSynthetic(t *testing.T) {
	tbl := dataset.New(2)
	if err := tbl.AddStrings("region", []string{"North", ""}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddStrings("city", []string{"Hamburg", "Munich"}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddFloats("sales", []float64{1, 2}); err != nil {
		t.Fatal(err)
	}

	dot, err := ToDOT(Spec{Data: tbl, Area: "sales", Levels: []string{"region", "city"}})
	if err != nil {
		t.Fatalf("ToDOT error: %v", err)
	}

	if !strings.Contains(dot, `label="(none)\nweight: 2"`) {
		t.Errorf("synthetic group label missing:\n%s", dot)
	}
	if !strings.Contains(dot, "dashed") || !strings.Contains(dot, "lightgrey") {
		t.Errorf("synthetic group styling missing:\n%s", dot)
	}
}

func TestToDOTInvalidSpec(t *testing.T) {
	_, err := ToDOT(Spec{Data: salesTable(t), Levels: []string{"region"}})
	if err == nil {
		t.Fatal("spec without a weight source accepted")
	}
	if !errors.Is(err, errors.ErrCodeMissingArea) {
		t.Errorf("error code = %v, want MISSING_AREA", errors.GetCode(err))
	}
}

func TestRenderDOTSVG(t *testing.T) {
	dot, err := ToDOT(Spec{
		Data:   salesTable(t),
		Area:   "sales",
		Levels: []string{"region", "city"},
	})
	if err != nil {
		t.Fatalf("ToDOT error: %v", err)
	}

	svg, err := RenderDOTSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderDOTSVG error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not SVG:\n%.200s", svg)
	}
	if !strings.Contains(string(svg), "North") {
		t.Error("North node missing from SVG output")
	}
}

func TestRenderDOTSVGMalformed(t *testing.T) {
	_, err := RenderDOTSVG(context.Background(), "digraph {")
	if err == nil {
		t.Fatal("malformed DOT accepted")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}
