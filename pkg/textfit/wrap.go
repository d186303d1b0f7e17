package textfit

import "math"

// wrapCandidate is one evaluated wrapping: the lines, the font size the
// two bounds admit, and how closely the widest lines hug the box edge.
type wrapCandidate struct {
	lines []string
	size  float64
	gap   float64
	n     int
}

// findBestWrap searches candidate line counts n = 2..len(words) for the best
// wrapped rendering of content inside a w x h pixel box.
//
// Each candidate's font size is the minimum of two closed-form bounds:
//
//   - height bound: stacking n lines at spacing ls occupies
//     (n*ls - ls + 1) line heights, so the per-line height in pixels is
//     h / (n*ls - ls + 1), converted to points via the measurer's DPI.
//   - width bound: every line is measured once at the reference size and the
//     admissible scale is set by the widest line, min over lines of
//     ref * w / measured(line).
//
// This avoids iterative converge-and-check measurement loops; glyph metrics
// scale linearly with font size for a fixed string, so one measurement per
// line suffices.
//
// Selection: grow picks the candidate with the largest size; otherwise the
// candidate whose rendered lines come closest to the box width wins. Ties
// keep the earlier (smaller) line count.
func findBestWrap(m Measurer, content string, font Font, ref, ls, w, h float64, grow bool) (wrapCandidate, bool, error) {
	words := SplitWords(content)
	if len(words) < 2 {
		return wrapCandidate{}, false, nil
	}

	var best wrapCandidate
	found := false

	for n := 2; n <= len(words); n++ {
		lines := wrapWords(words, wrapTarget(words, n))

		heightBound := PixelsToPoints(m.DPI(), h/(float64(n)*ls-ls+1))

		widthBound := math.Inf(1)
		widths := make([]float64, len(lines))
		for i, line := range lines {
			lw, _, err := m.MeasureText(line, font, ref)
			if err != nil {
				return wrapCandidate{}, false, err
			}
			widths[i] = lw
			if lw > 0 {
				if b := ref * w / lw; b < widthBound {
					widthBound = b
				}
			}
		}

		size := math.Min(heightBound, widthBound)
		if size <= 0 || math.IsInf(size, 0) {
			continue
		}

		gap := math.Inf(1)
		for _, lw := range widths {
			if g := math.Abs(lw*size/ref - w); g < gap {
				gap = g
			}
		}

		cand := wrapCandidate{lines: lines, size: size, gap: gap, n: n}
		switch {
		case !found:
			best, found = cand, true
		case grow && cand.size > best.size:
			best = cand
		case !grow && cand.gap < best.gap:
			best = cand
		}
	}

	return best, found, nil
}
