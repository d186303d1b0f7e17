package cli

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/squaremap/squaremap/pkg/dataset"
	"github.com/squaremap/squaremap/pkg/errors"
	"github.com/squaremap/squaremap/pkg/geom"
	"github.com/squaremap/squaremap/pkg/render"
	"github.com/squaremap/squaremap/pkg/treemap"
)

var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	previewDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// newPreviewCmd creates the preview command: an interactive terminal
// rendering of the treemap, useful for checking grouping and weights before
// writing image files.
func newPreviewCmd() *cobra.Command {
	var levelsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview a treemap in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.levels = parseLevels(levelsStr)
			return runPreview(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.area, "area", "a", "", "numeric column holding rectangle weights")
	cmd.Flags().Float64Var(&opts.areaConst, "area-const", 0, "constant weight per record (count mode)")
	cmd.Flags().StringVarP(&levelsStr, "levels", "l", "", "hierarchy column(s), outermost first (comma-separated)")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "column holding leaf labels")
	cmd.Flags().StringVar(&opts.fill, "fill", "", "column coloring the leaves")
	cmd.Flags().Float64Var(&opts.pad, "pad", 0, "uniform padding between hierarchy levels")
	cmd.Flags().BoolVar(&opts.split, "split", false, "give every root cell the same size")

	return cmd
}

func runPreview(cmd *cobra.Command, input string, opts *renderOpts) error {
	f, err := os.Open(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", input)
	}
	table, csvErr := dataset.FromCSV(f)
	f.Close()
	if csvErr != nil {
		return csvErr
	}

	spec, _, err := buildSpec(table, opts)
	if err != nil {
		return err
	}
	// Terminal cells are the labels here; the fitted ones would not be
	// readable at this resolution.
	spec.Label.Show = false

	// Layout happens against a throwaway surface; only the rectangle
	// handles are kept.
	r := render.NewSVG(defaultWidth, defaultHeight)
	c, err := treemap.Plot(cmd.Context(), r, spec)
	if err != nil {
		return err
	}

	m := newPreviewModel(input, &spec, c)
	_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
	return err
}

// previewModel is the bubbletea model for the treemap preview.
type previewModel struct {
	input   string
	normX   float64
	normY   float64
	patches []treemap.RectHandle
	deepest int // deepest level, drawn on top
	width   int
	height  int
	legend  []treemap.LegendEntry
}

func newPreviewModel(input string, spec *treemap.Spec, c *treemap.Container) previewModel {
	patches := make([]treemap.RectHandle, 0, len(c.Patches))
	deepest := 0
	for _, p := range c.Patches {
		patches = append(patches, p)
		if p.Level > deepest {
			deepest = p.Level
		}
	}
	// Shallow levels first so leaves paint over their parents.
	sort.Slice(patches, func(i, j int) bool {
		if patches[i].Level != patches[j].Level {
			return patches[i].Level < patches[j].Level
		}
		return patches[i].Key < patches[j].Key
	})

	normX, normY := spec.NormX, spec.NormY
	if normX <= 0 {
		normX = 100
	}
	if normY <= 0 {
		normY = 100
	}

	return previewModel{
		input:   input,
		normX:   normX,
		normY:   normY,
		patches: patches,
		deepest: deepest,
		width:   80,
		height:  24,
		legend:  c.Legend,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(previewTitleStyle.Render("Treemap Preview"))
	b.WriteString(previewDimStyle.Render("  " + m.input))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("q quit"))
	b.WriteString("\n\n")

	gw := m.width
	gh := m.height - 5 - legendLines(m.legend)
	if gw < 10 {
		gw = 10
	}
	if gh < 5 {
		gh = 5
	}
	b.WriteString(m.renderGrid(gw, gh))

	if len(m.legend) > 0 {
		b.WriteString("\n")
		for _, e := range m.legend {
			sw := lipgloss.NewStyle().Foreground(lipgloss.Color(hexOf(e.Color))).Render("■")
			b.WriteString(fmt.Sprintf("%s %s  ", sw, e.Value))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func legendLines(legend []treemap.LegendEntry) int {
	if len(legend) == 0 {
		return 0
	}
	return 2
}

// cell is one character of the preview grid.
type cell struct {
	bg    string // hex background color, empty for unpainted
	ch    rune
	fg    string
	label bool
}

// renderGrid rasterizes the patches onto a character grid. Leaf rectangles
// paint their fill; every rectangle gets its last key segment written into
// the top-left corner when it fits.
func (m previewModel) renderGrid(gw, gh int) string {
	grid := make([][]cell, gh)
	for y := range grid {
		grid[y] = make([]cell, gw)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}

	sx := float64(gw) / m.normX
	sy := float64(gh) / m.normY

	for _, p := range m.patches {
		x0, y0, x1, y1 := cellBounds(p.Rect, sx, sy, gw, gh)
		if p.Level == m.deepest && p.Fill != nil {
			hex := hexOf(p.Fill)
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					grid[y][x].bg = hex
				}
			}
		}
		writeLabel(grid, p, x0, y0, x1)
	}

	var b strings.Builder
	for y := 0; y < gh; y++ {
		b.WriteString(renderRow(grid[y]))
		b.WriteString("\n")
	}
	return b.String()
}

func cellBounds(r geom.Rect, sx, sy float64, gw, gh int) (x0, y0, x1, y1 int) {
	x0 = clampInt(int(r.X*sx), 0, gw)
	x1 = clampInt(int(r.MaxX()*sx), 0, gw)
	y0 = clampInt(int(r.Y*sy), 0, gh)
	y1 = clampInt(int(r.MaxY()*sy), 0, gh)
	return x0, y0, x1, y1
}

func writeLabel(grid [][]cell, p treemap.RectHandle, x0, y0, x1 int) {
	segs := strings.Split(p.Key, "/")
	name := segs[len(segs)-1]
	if name == "" || y0 >= len(grid) {
		return
	}
	for i, r := range name {
		x := x0 + i
		if x >= x1-1 || x >= len(grid[y0]) {
			break
		}
		grid[y0][x].ch = r
		grid[y0][x].label = true
		grid[y0][x].fg = "255"
	}
}

// renderRow styles contiguous runs that share colors to keep the escape
// sequence count down.
func renderRow(row []cell) string {
	var b strings.Builder
	i := 0
	for i < len(row) {
		j := i
		for j < len(row) && row[j].bg == row[i].bg && row[j].fg == row[i].fg {
			j++
		}
		var text strings.Builder
		for k := i; k < j; k++ {
			text.WriteRune(row[k].ch)
		}
		st := lipgloss.NewStyle()
		if row[i].bg != "" {
			st = st.Background(lipgloss.Color(row[i].bg))
		}
		if row[i].fg != "" {
			st = st.Foreground(lipgloss.Color(row[i].fg))
		}
		b.WriteString(st.Render(text.String()))
		i = j
	}
	return b.String()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func hexOf(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
