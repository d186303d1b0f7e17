// Package textfit solves for the largest font size that keeps rendered text
// inside a pixel box, optionally wrapping the text over multiple lines.
//
// # Overview
//
// The engine is a pure function over a [Measurer], the capability interface
// implemented by renderers that can report pixel bounding boxes for a string
// at a given font and size. No renderer state is retained between calls and
// no text object is mutated; callers apply the returned [Result] to their own
// drawing objects.
//
// # Fitting
//
// In no-wrap mode the fitted size is exact: for a fixed string, a rendered
// bounding box scales linearly with font size, so a single measurement at the
// current size determines the scale factor
//
//	size' = size * min(boxW/bboxW, boxH/bboxH)
//
// In wrap mode the engine additionally searches over candidate line counts
// (see wrap.go) and prefers the wrapped rendering only when it yields a
// strictly larger font size than the single-line fit.
//
// # Example
//
//	res, err := textfit.Fit(measurer, textfit.Text{
//	    Content: "Hello, World!",
//	    Size:    10,
//	}, textfit.Box{Width: 200, Height: 50}, textfit.Options{})
//	if err != nil {
//	    return err
//	}
//	// res.Size == 6.67 when the unwrapped bbox measures 300x20 px.
package textfit
