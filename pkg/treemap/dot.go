package treemap

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/squaremap/squaremap/pkg/errors"
)

// ToDOT converts the grouping hierarchy of a spec to Graphviz DOT format.
// Each group becomes a box node labeled with its value and aggregated
// weight; edges run from parents to children. The resulting DOT string can
// be rendered with [RenderDOTSVG].
//
// Synthetic groups (rows without a value at some level) are rendered with
// dashed outlines and grey fill.
func ToDOT(spec Spec) (string, error) {
	f, err := project(&spec)
	if err != nil {
		return "", err
	}
	levels := groupLevels(f)

	var buf bytes.Buffer
	buf.WriteString("digraph hierarchy {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, groups := range levels {
		for _, g := range groups {
			attrs := []string{fmt.Sprintf("label=%q", dotLabel(g))}
			if g.synthetic() {
				attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", g.Key(), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("\n")
	for d, groups := range levels {
		if d == 0 {
			continue
		}
		for _, g := range groups {
			parent := strings.Join(g.path[:len(g.path)-1], "/")
			fmt.Fprintf(&buf, "  %q -> %q;\n", parent, g.Key())
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func dotLabel(g *group) string {
	value := g.path[len(g.path)-1]
	if value == "" {
		value = "(none)"
	}
	if g.label != "" && g.label != value {
		value = g.label
	}
	return fmt.Sprintf("%s\nweight: %g", value, g.weight)
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return buf.Bytes(), nil
}
