// Package render provides the renderer capability surface consumed by the
// treemap orchestrator and the text-fitting engine, plus two concrete
// backends.
//
// # Capability interface
//
// [Renderer] bundles what the core algorithms need from a drawing surface:
// pixel text measurement (the [textfit.Measurer] contract), the affine
// transform from layout coordinates to device pixels, and primitive drawing
// of rectangles and anchored text. The orchestrator performs no pixel output
// itself; everything is forwarded through this interface.
//
// # Backends
//
//   - [Raster]: fogleman/gg raster surface with freetype glyph metrics,
//     encoded as PNG.
//   - [SVG]: vector output sharing the same freetype metrics so measured
//     fits match the raster backend.
//
// Both backends resolve fonts through [FontCache], which locates system
// TTF files with flopp/go-findfont and caches parsed fonts and sized faces.
package render
