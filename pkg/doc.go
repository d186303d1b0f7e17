// Package pkg provides the core libraries for squarified treemap rendering.
//
// # Overview
//
// Squaremap turns tabular data into treemaps: rectangles whose areas are
// proportional to a weight column, nested by hierarchy columns, with labels
// automatically sized to fit their boxes. The pkg directory is organized
// into these areas:
//
//  1. [dataset] - Tabular input (CSV parsing, typed columns)
//  2. [treemap] - Grouping, squarified layout, and plot orchestration
//  3. [textfit] - Font-size fitting and line wrapping for labels
//  4. [render] - Drawing backends (PNG via fogleman/gg, SVG)
//  5. [geom] - Rectangles, padding, and affine transforms
//  6. [io] - JSON manifests of build results
//  7. [cache] - Content-addressed artifact cache for the CLI
//
// # Architecture
//
// The typical data flow through squaremap:
//
//	CSV / columns
//	         ↓
//	    [treemap] grouping (aggregate weights per hierarchy level)
//	         ↓
//	    [treemap/layout] squarify (rectangles per level)
//	         ↓
//	    [textfit] label fitting (size, wrapping)
//	         ↓
//	    [render] PNG/SVG output
//
// # Quick Start
//
//	table, _ := dataset.FromCSV(file)
//	r := render.NewRaster(800, 600)
//	c, err := treemap.Plot(ctx, r, treemap.Spec{
//	    Data:   table,
//	    Area:   "sales",
//	    Levels: []string{"region", "city"},
//	    Label:  treemap.LabelOptions{Show: true, Wrap: true},
//	})
//
// Errors carry structured codes from the [errors] package, and the
// [observability] package exposes hooks for timing layout and draw phases.
//
// [dataset]: https://pkg.go.dev/github.com/squaremap/squaremap/pkg/dataset
// [treemap]: https://pkg.go.dev/github.com/squaremap/squaremap/pkg/treemap
// [treemap/layout]: https://pkg.go.dev/github.com/squaremap/squaremap/pkg/treemap/layout
// [textfit]: https://pkg.go.dev/github.com/squaremap/squaremap/pkg/textfit
// [render]: https://pkg.go.dev/github.com/squaremap/squaremap/pkg/render
// [geom]: https://pkg.go.dev/github.com/squaremap/squaremap/pkg/geom
// [io]: https://pkg.go.dev/github.com/squaremap/squaremap/pkg/io
// [cache]: https://pkg.go.dev/github.com/squaremap/squaremap/pkg/cache
// [errors]: https://pkg.go.dev/github.com/squaremap/squaremap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/squaremap/squaremap/pkg/observability
package pkg
