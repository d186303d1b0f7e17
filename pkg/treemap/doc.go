// Package treemap builds hierarchical proportional-area charts: records are
// grouped along an ordered list of hierarchy levels, aggregated weights are
// laid out with the squarified algorithm level by level, and every rectangle
// and autofitted label is forwarded to a [render.Renderer].
//
// # Pipeline
//
//	records -> grouped/aggregated per level -> squarified per level
//	        -> per-rectangle draw + per-label autofit -> renderer
//
// The orchestrator owns the level groups only for the duration of one
// [Plot] call; the layout and fitting engines it drives are pure functions.
//
// # Example
//
//	tbl, _ := dataset.FromCSV(f)
//	r := render.NewSVG(800, 600)
//	c, err := treemap.Plot(ctx, r, treemap.Spec{
//	    Data:   tbl,
//	    Area:   "gdp",
//	    Levels: []string{"region", "country"},
//	    Fill:   "region",
//	    Label:  treemap.LabelOptions{Show: true, Wrap: true, Grow: true},
//	})
//
// Levels draw incrementally from the root down, so a failed build leaves
// the already drawn levels visible; callers wanting atomicity validate
// input beforehand.
package treemap
