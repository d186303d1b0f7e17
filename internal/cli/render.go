package cli

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/squaremap/squaremap/pkg/cache"
	"github.com/squaremap/squaremap/pkg/dataset"
	"github.com/squaremap/squaremap/pkg/errors"
	"github.com/squaremap/squaremap/pkg/geom"
	chartio "github.com/squaremap/squaremap/pkg/io"
	"github.com/squaremap/squaremap/pkg/render"
	"github.com/squaremap/squaremap/pkg/treemap"
)

const (
	defaultWidth  = 800 // default viewport width in pixels
	defaultHeight = 600 // default viewport height in pixels

	// artifactTTL bounds how long cached artifacts stay valid. Inputs are
	// content-addressed, so this only caps disk growth.
	artifactTTL = 30 * 24 * time.Hour
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file path (or base path for multiple formats)
	formats   []string // output formats: "svg", "png", "dot", "dot-svg", "json"
	area      string   // weight column name
	areaConst float64  // constant weight per record
	levels    []string // hierarchy columns, outermost first
	labels    string   // label column name
	fill      string   // fill column name
	width     int      // viewport width in pixels
	height    int      // viewport height in pixels
	pad       float64  // uniform inter-level padding
	split     bool     // uniform root cells
	top       bool     // flip the chart vertically
	config    string   // TOML style config path
	noCache   bool     // bypass the artifact cache
}

// newRenderCmd creates the render command for generating treemaps.
// It reads a CSV file and writes one output file per requested format.
//
// Default settings:
//   - format: svg
//   - width: 800px, height: 600px
//   - labels shown, centered, wrapping enabled
func newRenderCmd() *cobra.Command {
	var formatsStr, levelsStr string
	opts := renderOpts{
		width:  defaultWidth,
		height: defaultHeight,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a CSV file as a treemap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			opts.levels = parseLevels(levelsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, dot-svg, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.area, "area", "a", "", "numeric column holding rectangle weights")
	cmd.Flags().Float64Var(&opts.areaConst, "area-const", 0, "constant weight per record (count mode)")
	cmd.Flags().StringVarP(&levelsStr, "levels", "l", "", "hierarchy column(s), outermost first (comma-separated)")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "column holding leaf labels")
	cmd.Flags().StringVar(&opts.fill, "fill", "", "column coloring the leaves (numeric or categorical)")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "viewport width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "viewport height in pixels")
	cmd.Flags().Float64Var(&opts.pad, "pad", 0, "uniform padding between hierarchy levels")
	cmd.Flags().BoolVar(&opts.split, "split", false, "give every root cell the same size")
	cmd.Flags().BoolVar(&opts.top, "top", false, "place the first rows at the top")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML style configuration file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// parseLevels parses the --levels flag into hierarchy column names.
func parseLevels(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "dot": true, "dot-svg": true, "json": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'dot', 'dot-svg', or 'json')", f)
		}
	}
	return nil
}

// formatExt maps a format name to its output file extension. The dot-svg
// format writes "<base>.dot.svg" so it never collides with the treemap svg.
func formatExt(format string) string {
	if format == "dot-svg" {
		return "dot.svg"
	}
	return format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output has a
// format extension (.svg, .png, .dot), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the CSV, builds the spec, and writes one file per format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", input)
	}

	table, err := dataset.FromCSV(bytes.NewReader(data))
	if err != nil {
		return err
	}
	logger.Infof("Loaded table: %d rows, %d columns", table.Len(), len(table.Names()))

	spec, styleHash, err := buildSpec(table, opts)
	if err != nil {
		return err
	}

	store, keyer, err := openCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	inputHash := cache.Hash(data)
	for _, format := range opts.formats {
		if err := renderFormat(ctx, spec, format, input, inputHash, styleHash, store, keyer, opts); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
	}
	return nil
}

// buildSpec assembles the treemap spec from flags and the optional style
// config. The returned hash covers the style file so cache keys change with
// it.
func buildSpec(table *dataset.Table, opts *renderOpts) (treemap.Spec, string, error) {
	spec := treemap.Spec{
		Data:      table,
		Area:      opts.area,
		AreaConst: opts.areaConst,
		Levels:    opts.levels,
		Labels:    opts.labels,
		Fill:      opts.fill,
		Top:       opts.top,
		Split:     opts.split,
		Pad:       geom.Uniform(opts.pad),
		Rect:      treemap.RectStyle{Fill: color.RGBA{0x4c, 0x78, 0xa8, 0xff}},
		Label:     treemap.LabelOptions{Show: true, Wrap: true, MinSize: 4},
	}

	styleHash := ""
	if opts.config != "" {
		if err := loadStyleConfig(opts.config, &spec); err != nil {
			return spec, "", err
		}
		data, err := os.ReadFile(opts.config)
		if err != nil {
			return spec, "", err
		}
		styleHash = cache.Hash(data)
	}
	return spec, styleHash, nil
}

// openCache returns the artifact cache, or a null cache when disabled.
func openCache(ctx context.Context, disabled bool) (cache.Cache, cache.Keyer, error) {
	if disabled {
		loggerFromContext(ctx).Debug("Artifact cache disabled")
		return cache.NewNullCache(), cache.NewDefaultKeyer(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, nil, fmt.Errorf("get cache dir: %w", err)
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	return store, cache.NewDefaultKeyer(), nil
}

// renderFormat produces one output file, consulting the cache first.
func renderFormat(ctx context.Context, spec treemap.Spec, format, input, inputHash, styleHash string, store cache.Cache, keyer cache.Keyer, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	key := keyer.ArtifactKey(inputHash, cache.ArtifactKeyOpts{
		Format: format,
		Width:  opts.width,
		Height: opts.height,
		Style:  styleHash + flagFingerprint(opts),
	})

	data, ok, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if ok {
		logger.Debugf("Cache hit for %s", format)
	} else {
		p := newProgress(logger)
		data, err = renderChart(ctx, spec, format, opts)
		if err != nil {
			return err
		}
		p.done(fmt.Sprintf("Rendered %s (%d bytes)", format, len(data)))

		if err := store.Set(ctx, key, data, artifactTTL); err != nil {
			logger.Warnf("Cache write failed: %v", err)
		}
	}

	path := opts.output
	if path == "" || len(opts.formats) > 1 {
		path = basePath(opts.output, input) + "." + formatExt(format)
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	logger.Infof("Generated %s", path)
	return nil
}

// flagFingerprint folds the layout-affecting flags into the cache key.
func flagFingerprint(o *renderOpts) string {
	return fmt.Sprintf("|%s|%g|%s|%s|%s|%g|%t|%t",
		o.area, o.areaConst, strings.Join(o.levels, ","), o.labels, o.fill, o.pad, o.split, o.top)
}

// renderChart draws the treemap in the requested format.
func renderChart(ctx context.Context, spec treemap.Spec, format string, opts *renderOpts) ([]byte, error) {
	switch format {
	case "svg":
		r := render.NewSVG(opts.width, opts.height)
		if _, err := treemap.Plot(ctx, r, spec); err != nil {
			return nil, err
		}
		return r.Bytes(), nil
	case "png":
		r := render.NewRaster(opts.width, opts.height,
			render.WithBackground(color.White))
		if _, err := treemap.Plot(ctx, r, spec); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := r.EncodePNG(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "dot":
		dot, err := treemap.ToDOT(spec)
		if err != nil {
			return nil, err
		}
		return []byte(dot), nil
	case "dot-svg":
		dot, err := treemap.ToDOT(spec)
		if err != nil {
			return nil, err
		}
		return treemap.RenderDOTSVG(ctx, dot)
	case "json":
		r := render.NewSVG(opts.width, opts.height)
		c, err := treemap.Plot(ctx, r, spec)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := chartio.WriteJSON(c, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// cacheDir returns the artifact cache directory, honoring XDG_CACHE_HOME.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
