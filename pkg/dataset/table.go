// Package dataset provides the small column-oriented table the treemap
// orchestrator consumes: named columns selected for areas, hierarchy levels,
// labels and fills, with numeric-versus-categorical detection.
package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/squaremap/squaremap/pkg/errors"
)

// Column is a named column of row values. A column is numeric when every
// non-empty cell parses as a float; numeric columns are used for weights and
// continuous fills, string columns for levels and categorical fills.
type Column struct {
	name    string
	values  []string
	floats  []float64
	numeric bool
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Numeric reports whether every non-empty value parses as a number.
func (c *Column) Numeric() bool { return c.numeric }

// Len returns the number of rows.
func (c *Column) Len() int { return len(c.values) }

// Value returns the raw string value at row i.
func (c *Column) Value(i int) string { return c.values[i] }

// Float returns the numeric value at row i. Non-numeric and empty cells
// report NaN.
func (c *Column) Float(i int) float64 {
	if c.floats == nil {
		return math.NaN()
	}
	return c.floats[i]
}

// Floats returns the parsed numeric values, or nil for string columns.
func (c *Column) Floats() []float64 { return c.floats }

// Table is an immutable set of equally sized named columns.
type Table struct {
	cols  []*Column
	index map[string]*Column
	rows  int
}

// New creates an empty table expecting rows rows per column.
func New(rows int) *Table {
	return &Table{index: make(map[string]*Column), rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.name
	}
	return out
}

// Column looks up a column by name. The second return reports existence;
// callers translate a miss into a COLUMN_NOT_FOUND error with context.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.index[name]
	return c, ok
}

// AddStrings appends a string column. Returns a LENGTH_MISMATCH error when
// the value count differs from the table's row count.
func (t *Table) AddStrings(name string, values []string) error {
	if len(values) != t.rows {
		return errors.New(errors.ErrCodeLengthMismatch,
			"column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	c := &Column{name: name, values: values}
	c.floats, c.numeric = parseFloats(values)
	t.add(c)
	return nil
}

// AddFloats appends a numeric column. Returns a LENGTH_MISMATCH error when
// the value count differs from the table's row count.
func (t *Table) AddFloats(name string, values []float64) error {
	if len(values) != t.rows {
		return errors.New(errors.ErrCodeLengthMismatch,
			"column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	t.add(&Column{name: name, values: strs, floats: values, numeric: true})
	return nil
}

func (t *Table) add(c *Column) {
	if old, ok := t.index[c.name]; ok {
		for i, existing := range t.cols {
			if existing == old {
				t.cols[i] = c
				break
			}
		}
	} else {
		t.cols = append(t.cols, c)
	}
	t.index[c.name] = c
}

// parseFloats attempts to parse every non-empty cell as a float. The column
// is numeric only when all non-empty cells parse; empty cells become NaN.
func parseFloats(values []string) ([]float64, bool) {
	floats := make([]float64, len(values))
	for i, v := range values {
		if v == "" {
			floats[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		floats[i] = f
	}
	return floats, true
}

// FromCSV reads a table from CSV data with a header row.
func FromCSV(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "csv input is empty")
	}

	header := records[0]
	rows := records[1:]
	t := New(len(rows))

	for col, name := range header {
		values := make([]string, len(rows))
		for i, row := range rows {
			if col < len(row) {
				values[i] = row[col]
			}
		}
		if err := t.AddStrings(name, values); err != nil {
			return nil, err
		}
	}
	return t, nil
}
