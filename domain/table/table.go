// Package table holds the in-memory tabular model shared by every pipeline
// stage: ordered named columns of typed cells with significant row order.
package table

import (
	"fmt"

	"datacleaner/domain/core"
)

// ColumnType is the logical type of a whole column
type ColumnType string

const (
	TypeNumeric  ColumnType = "numeric"
	TypeText     ColumnType = "text"
	TypeDateTime ColumnType = "datetime"
)

// Column is a named, ordered sequence of cells
type Column struct {
	Name  string     `json:"name"`
	Type  ColumnType `json:"type"`
	Cells []Cell     `json:"cells"`
}

// NullCount returns the number of missing cells
func (c *Column) NullCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.IsNull() {
			n++
		}
	}
	return n
}

// NonNull returns the non-missing cells in row order
func (c *Column) NonNull() []Cell {
	out := make([]Cell, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.IsNull() {
			out = append(out, cell)
		}
	}
	return out
}

// Floats returns the non-null values of a numeric column
func (c *Column) Floats() ([]float64, error) {
	out := make([]float64, 0, len(c.Cells))
	for i, cell := range c.Cells {
		if cell.IsNull() {
			continue
		}
		if cell.Type != CellNumber {
			return nil, fmt.Errorf("%w: column %q row %d", core.ErrNotNumeric, c.Name, i)
		}
		out = append(out, cell.Number)
	}
	return out, nil
}

// Table is an ordered collection of uniquely named columns sharing one row count
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New creates an empty table
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// AddColumn appends a column. The first column fixes the row count.
func (t *Table) AddColumn(name string, typ ColumnType, cells []Cell) error {
	if _, exists := t.index[name]; exists {
		return core.NewDuplicateColumnError(name)
	}
	if len(t.columns) > 0 && len(cells) != t.rows {
		return core.NewRowCountError(name, len(cells), t.rows)
	}
	if len(t.columns) == 0 {
		t.rows = len(cells)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, &Column{Name: name, Type: typ, Cells: cells})
	return nil
}

// Columns returns the columns in order. Callers may modify cells in place
// but must not change their length.
func (t *Table) Columns() []*Column {
	return t.columns
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	return t.columns[i], nil
}

// ColumnNames returns the column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) NumRows() int    { return t.rows }
func (t *Table) NumColumns() int { return len(t.columns) }

// RowKey returns a value that is equal for two rows exactly when every
// cell is equal.
func (t *Table) RowKey(i int) string {
	row := make([]Cell, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Cells[i]
	}
	return rowKey(row)
}

// KeepRows retains only the given row indexes, in the order given
func (t *Table) KeepRows(indexes []int) error {
	for _, i := range indexes {
		if i < 0 || i >= t.rows {
			return fmt.Errorf("%w: %d of %d", core.ErrRowIndexOutOfRange, i, t.rows)
		}
	}
	for _, c := range t.columns {
		kept := make([]Cell, len(indexes))
		for k, i := range indexes {
			kept[k] = c.Cells[i]
		}
		c.Cells = kept
	}
	t.rows = len(indexes)
	return nil
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := New()
	out.rows = t.rows
	for _, c := range t.columns {
		cells := make([]Cell, len(c.Cells))
		copy(cells, c.Cells)
		out.index[c.Name] = len(out.columns)
		out.columns = append(out.columns, &Column{Name: c.Name, Type: c.Type, Cells: cells})
	}
	return out
}

// Equal reports whether both tables have the same column names, types
// and cells in the same order.
func (t *Table) Equal(other *Table) bool {
	if t.rows != other.rows || len(t.columns) != len(other.columns) {
		return false
	}
	for j, c := range t.columns {
		oc := other.columns[j]
		if c.Name != oc.Name || c.Type != oc.Type {
			return false
		}
		for i := range c.Cells {
			if !c.Cells[i].Equal(oc.Cells[i]) {
				return false
			}
		}
	}
	return true
}
