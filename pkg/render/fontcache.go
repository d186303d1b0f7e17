package render

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/squaremap/squaremap/pkg/errors"
	"github.com/squaremap/squaremap/pkg/textfit"
)

// fallbackFamilies are tried in order when the requested family cannot be
// located on the system.
var fallbackFamilies = []string{"DejaVuSans", "LiberationSans", "FreeSans", "Arial"}

// FontCache locates system TTF files, parses them once, and hands out sized
// faces for measurement and drawing. It is safe for concurrent use.
type FontCache struct {
	mu    sync.Mutex
	dpi   float64
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	path string
	size float64
}

// NewFontCache creates a cache producing faces at the given DPI.
// A non-positive dpi defaults to 72, where points equal pixels.
func NewFontCache(dpi float64) *FontCache {
	if dpi <= 0 {
		dpi = 72
	}
	return &FontCache{
		dpi:   dpi,
		fonts: make(map[string]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// DPI returns the resolution faces are built at.
func (fc *FontCache) DPI() float64 { return fc.dpi }

// Face returns a sized face for the font, resolving the family through the
// system font directories. Results are cached per (file, size).
func (fc *FontCache) Face(f textfit.Font, size float64) (font.Face, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	path, err := fc.resolve(f)
	if err != nil {
		return nil, err
	}

	key := faceKey{path: path, size: size}
	if face, ok := fc.faces[key]; ok {
		return face, nil
	}

	ttf, ok := fc.fonts[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "read font %s", path)
		}
		ttf, err = truetype.Parse(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "parse font %s", path)
		}
		fc.fonts[path] = ttf
	}

	face := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: fc.dpi})
	fc.faces[key] = face
	return face, nil
}

// resolve maps a Font to a TTF file path. Bold and italic request the
// conventional -Bold / -Oblique / -Italic file name variants before falling
// back to the plain face.
func (fc *FontCache) resolve(f textfit.Font) (string, error) {
	families := fallbackFamilies
	if f.Family != "" {
		families = append([]string{f.Family}, fallbackFamilies...)
	}

	for _, family := range families {
		for _, name := range variantNames(family, f.Bold, f.Italic) {
			if path, err := findfont.Find(name + ".ttf"); err == nil {
				return path, nil
			}
		}
	}
	return "", errors.New(errors.ErrCodeFontNotFound,
		"no usable font found for family %q", f.Family)
}

func variantNames(family string, bold, italic bool) []string {
	base := strings.ReplaceAll(family, " ", "")
	var names []string
	switch {
	case bold && italic:
		names = append(names, base+"-BoldOblique", base+"-BoldItalic")
	case bold:
		names = append(names, base+"-Bold")
	case italic:
		names = append(names, base+"-Oblique", base+"-Italic")
	}
	return append(names, base)
}

// lineHeight returns the glyph extent (ascent + descent) of a face in
// pixels, the per-line height used when stacking wrapped lines.
func lineHeight(face font.Face) float64 {
	m := face.Metrics()
	return fixedToFloat(m.Ascent + m.Descent)
}

// Measure returns the pixel bounding box of content at the given font and
// size. Newlines split the content into stacked lines: the width is the
// widest line and the height follows the stacking formula
// lineHeight * (n*spacing - spacing + 1).
func (fc *FontCache) Measure(content string, f textfit.Font, size, spacing float64) (w, h float64, err error) {
	face, err := fc.Face(f, size)
	if err != nil {
		return 0, 0, err
	}
	if spacing <= 0 {
		spacing = textfit.DefaultLineSpacing
	}

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if lw := fixedToFloat(font.MeasureString(face, line)); lw > w {
			w = lw
		}
	}

	n := float64(len(lines))
	h = lineHeight(face) * (n*spacing - spacing + 1)
	return w, h, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
