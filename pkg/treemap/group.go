package treemap

import (
	"math"
	"strconv"
	"strings"

	"github.com/squaremap/squaremap/pkg/dataset"
	"github.com/squaremap/squaremap/pkg/errors"
	"github.com/squaremap/squaremap/pkg/geom"
)

// keySep joins level values into internal group keys. Exported container
// keys use "/" instead; the unit separator avoids collisions with values
// that contain slashes.
const keySep = "\x1f"

// frame is the projected input: one weighted, labeled, hierarchical path
// per record. Records with NaN weights are dropped during projection
// (documented policy), negative weights fail immediately.
type frame struct {
	paths   [][]string
	weights []float64
	labels  []string
	rows    []int // original record index, for fill lookup
	fill    *dataset.Column
	numeric bool
}

// project validates the spec's data selection and flattens it into a frame.
func project(spec *Spec) (*frame, error) {
	if spec.Data == nil {
		return projectWeights(spec)
	}
	return projectTable(spec)
}

// projectWeights handles the bare-weights form: every weight is its own
// leaf in a single-level hierarchy.
func projectWeights(spec *Spec) (*frame, error) {
	if len(spec.Weights) == 0 {
		return nil, errors.New(errors.ErrCodeMissingArea,
			"no weights given: set Weights, or provide Data with an area source")
	}
	if spec.LabelValues != nil && len(spec.LabelValues) != len(spec.Weights) {
		return nil, errors.New(errors.ErrCodeLengthMismatch,
			"%d labels for %d weights", len(spec.LabelValues), len(spec.Weights))
	}

	f := &frame{}
	for i, w := range spec.Weights {
		if w < 0 {
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"negative weight %v at index %d", w, i)
		}
		if math.IsNaN(w) {
			continue
		}
		label := strconv.Itoa(i)
		if spec.LabelValues != nil {
			label = spec.LabelValues[i]
		}
		f.paths = append(f.paths, []string{label})
		f.weights = append(f.weights, w)
		f.labels = append(f.labels, label)
		f.rows = append(f.rows, i)
	}
	return f, nil
}

// projectTable selects area, level, label and fill values from the table.
func projectTable(spec *Spec) (*frame, error) {
	tbl := spec.Data
	n := tbl.Len()

	weights, err := selectWeights(spec, tbl, n)
	if err != nil {
		return nil, err
	}

	levelCols := make([]*dataset.Column, len(spec.Levels))
	for i, name := range spec.Levels {
		if err := errors.ValidateColumnName(name); err != nil {
			return nil, err
		}
		col, ok := tbl.Column(name)
		if !ok {
			return nil, errors.New(errors.ErrCodeColumnNotFound,
				"level column %q not in data", name)
		}
		levelCols[i] = col
	}

	var labelCol *dataset.Column
	if spec.Labels != "" {
		col, ok := tbl.Column(spec.Labels)
		if !ok {
			return nil, errors.New(errors.ErrCodeColumnNotFound,
				"label column %q not in data", spec.Labels)
		}
		labelCol = col
	}
	if spec.LabelValues != nil && len(spec.LabelValues) != n {
		return nil, errors.New(errors.ErrCodeLengthMismatch,
			"%d labels for %d records", len(spec.LabelValues), n)
	}

	f := &frame{}
	if spec.Fill != "" {
		col, ok := tbl.Column(spec.Fill)
		if !ok {
			return nil, errors.New(errors.ErrCodeColumnNotFound,
				"fill column %q not in data", spec.Fill)
		}
		f.fill = col
		f.numeric = col.Numeric()
	}

	for i := 0; i < n; i++ {
		w := weights[i]
		if w < 0 {
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"negative weight %v at record %d", w, i)
		}
		if math.IsNaN(w) {
			continue
		}

		var path []string
		if len(levelCols) == 0 {
			path = []string{strconv.Itoa(i)}
		} else {
			path = make([]string, len(levelCols))
			for j, col := range levelCols {
				path[j] = col.Value(i)
			}
		}

		label := path[len(path)-1]
		switch {
		case spec.LabelValues != nil:
			label = spec.LabelValues[i]
		case labelCol != nil:
			label = labelCol.Value(i)
		}

		f.paths = append(f.paths, path)
		f.weights = append(f.weights, w)
		f.labels = append(f.labels, label)
		f.rows = append(f.rows, i)
	}
	return f, nil
}

// selectWeights resolves the spec's weight source against the table.
func selectWeights(spec *Spec, tbl *dataset.Table, n int) ([]float64, error) {
	switch {
	case spec.Area != "":
		col, ok := tbl.Column(spec.Area)
		if !ok {
			return nil, errors.New(errors.ErrCodeColumnNotFound,
				"area column %q not in data", spec.Area)
		}
		if !col.Numeric() {
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"area column %q is not numeric", spec.Area)
		}
		return col.Floats(), nil

	case spec.AreaValues != nil:
		if len(spec.AreaValues) != n {
			return nil, errors.New(errors.ErrCodeLengthMismatch,
				"%d area values for %d records", len(spec.AreaValues), n)
		}
		return spec.AreaValues, nil

	case spec.AreaConst > 0:
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = spec.AreaConst
		}
		return weights, nil

	default:
		return nil, errors.New(errors.ErrCodeMissingArea,
			"area must be specified for tabular data: a column name, a constant, or per-record values")
	}
}

// group is one aggregated node at a given hierarchy depth: the sum of its
// record weights, the first label and fill row, and the rectangle assigned
// during layout.
type group struct {
	path  []string
	key   string
	label string
	row   int // first record index, used for fill lookup

	weight float64
	rect   geom.Rect
}

// synthetic reports whether the group's own level value is empty. Synthetic
// groups hold records with no value at that depth and are excluded from
// inter-level padding.
func (g *group) synthetic() bool {
	return g.path[len(g.path)-1] == ""
}

// parentKey returns the internal key of the enclosing group, or "" at the
// root level.
func (g *group) parentKey() string {
	if len(g.path) <= 1 {
		return ""
	}
	return strings.Join(g.path[:len(g.path)-1], keySep)
}

// Key returns the exported, slash-joined hierarchical key.
func (g *group) Key() string {
	return strings.Join(g.path, "/")
}

// groupLevels aggregates the frame once per hierarchy depth. levels[d-1]
// holds the depth-d groups in first-appearance order, which keeps layout
// deterministic for equal weights.
func groupLevels(f *frame) [][]*group {
	if len(f.paths) == 0 {
		return nil
	}
	depth := len(f.paths[0])
	levels := make([][]*group, depth)

	for d := 1; d <= depth; d++ {
		index := make(map[string]*group)
		var ordered []*group

		for i, path := range f.paths {
			prefix := path[:d]
			key := strings.Join(prefix, keySep)
			g, ok := index[key]
			if !ok {
				label := prefix[d-1]
				if d == depth {
					label = f.labels[i]
				}
				g = &group{
					path:  append([]string(nil), prefix...),
					key:   key,
					label: label,
					row:   f.rows[i],
				}
				index[key] = g
				ordered = append(ordered, g)
			}
			g.weight += f.weights[i]
		}
		levels[d-1] = ordered
	}
	return levels
}
