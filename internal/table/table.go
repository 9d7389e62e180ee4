package table

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns the NFC normalization of a column name.
// All name comparisons in this package go through it.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// Column is a named, typed sequence of cells.
// Cells is never mutated after construction; tables share cell slices.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Value
}

// NewColumn builds a column, verifying every cell is admissible for kind.
func NewColumn(name string, kind Kind, cells ...Value) (Column, error) {
	if name == "" {
		return Column{}, fmt.Errorf("column name must be non-empty")
	}
	if !ValidKinds[kind] {
		return Column{}, fmt.Errorf("invalid column kind %q", kind)
	}
	for i, c := range cells {
		if c == nil {
			return Column{}, fmt.Errorf("column %q cell %d: nil cell (use Null{})", name, i)
		}
		if !admits(kind, c) {
			return Column{}, fmt.Errorf("column %q cell %d: value does not fit kind %q", name, i, kind)
		}
	}
	return Column{Name: NormalizeName(name), Kind: kind, Cells: cells}, nil
}

// HasNull reports whether any cell in the column is missing.
func (c Column) HasNull() bool {
	for _, v := range c.Cells {
		if _, isNull := v.(Null); isNull {
			return true
		}
	}
	return false
}

// Table is an ordered set of equally-sized named columns.
// Tables are immutable values: every transformation returns a new Table.
type Table struct {
	cols []Column
}

// New builds a table from columns. Names must be unique after NFC
// normalization and all columns must have the same length.
func New(cols ...Column) (*Table, error) {
	seen := make(map[string]bool, len(cols))
	rows := -1
	out := make([]Column, len(cols))
	for i, c := range cols {
		name := NormalizeName(c.Name)
		if name == "" {
			return nil, fmt.Errorf("column %d: empty name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = true
		if rows == -1 {
			rows = len(c.Cells)
		} else if len(c.Cells) != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(c.Cells), rows)
		}
		c.Name = name
		out[i] = c
	}
	return &Table{cols: out}, nil
}

// NumRows returns the row count. A zero-column table has zero rows.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int { return len(t.cols) }

// ColumnNames returns the column names in display order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Columns returns a copy of the column headers (cell slices shared).
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// Column returns the named column, comparing under NFC normalization.
func (t *Table) Column(name string) (Column, bool) {
	name = NormalizeName(name)
	for _, c := range t.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Cell returns the value at (row, column name).
func (t *Table) Cell(row int, name string) (Value, bool) {
	c, ok := t.Column(name)
	if !ok || row < 0 || row >= len(c.Cells) {
		return nil, false
	}
	return c.Cells[row], true
}

// Slice returns a new table containing the selected row indices, in
// selector order. Indices may repeat. Out-of-range indices are an error.
func (t *Table) Slice(sel []int) (*Table, error) {
	rows := t.NumRows()
	for _, i := range sel {
		if i < 0 || i >= rows {
			return nil, fmt.Errorf("row index %d out of range [0,%d)", i, rows)
		}
	}
	cols := make([]Column, len(t.cols))
	for ci, c := range t.cols {
		cells := make([]Value, len(sel))
		for i, ri := range sel {
			cells[i] = c.Cells[ri]
		}
		cols[ci] = Column{Name: c.Name, Kind: c.Kind, Cells: cells}
	}
	return &Table{cols: cols}, nil
}

// SetColumn returns a new table with col added (at the end) or replacing
// the same-named column in place. Length must match the row count, except
// on a zero-column table where any length is accepted.
func (t *Table) SetColumn(col Column) (*Table, error) {
	col.Name = NormalizeName(col.Name)
	if col.Name == "" {
		return nil, fmt.Errorf("empty column name")
	}
	if len(t.cols) > 0 && len(col.Cells) != t.NumRows() {
		return nil, fmt.Errorf("column %q has %d rows, table has %d", col.Name, len(col.Cells), t.NumRows())
	}
	cols := make([]Column, len(t.cols))
	copy(cols, t.cols)
	for i, c := range cols {
		if c.Name == col.Name {
			cols[i] = col
			return &Table{cols: cols}, nil
		}
	}
	return &Table{cols: append(cols, col)}, nil
}

// DropColumn returns a new table without the named column.
// Dropping an absent column is a no-op returning the receiver.
func (t *Table) DropColumn(name string) *Table {
	name = NormalizeName(name)
	for i, c := range t.cols {
		if c.Name == name {
			cols := make([]Column, 0, len(t.cols)-1)
			cols = append(cols, t.cols[:i]...)
			cols = append(cols, t.cols[i+1:]...)
			return &Table{cols: cols}
		}
	}
	return t
}

// SelectColumns returns a new table holding only the named columns, in
// the table's own column order. Every name must exist; duplicates in the
// request are collapsed.
func (t *Table) SelectColumns(names []string) (*Table, error) {
	want := make(map[string]bool, len(names))
	for _, name := range names {
		name = NormalizeName(name)
		if !t.HasColumn(name) {
			return nil, fmt.Errorf("no column %q", name)
		}
		want[name] = true
	}
	cols := make([]Column, 0, len(want))
	for _, c := range t.cols {
		if want[c.Name] {
			cols = append(cols, c)
		}
	}
	return &Table{cols: cols}, nil
}

// Rename returns a new table with the column renamed.
// The new name must not collide with an existing column.
func (t *Table) Rename(old, new string) (*Table, error) {
	old, new = NormalizeName(old), NormalizeName(new)
	if !t.HasColumn(old) {
		return nil, fmt.Errorf("no column %q", old)
	}
	if old != new && t.HasColumn(new) {
		return nil, fmt.Errorf("column %q already exists", new)
	}
	cols := make([]Column, len(t.cols))
	copy(cols, t.cols)
	for i, c := range cols {
		if c.Name == old {
			cols[i] = Column{Name: new, Kind: c.Kind, Cells: c.Cells}
		}
	}
	return &Table{cols: cols}, nil
}

// SameColumns reports structural equality of column sets: same names with
// same kinds, ignoring display order.
func (t *Table) SameColumns(other *Table) bool {
	if len(t.cols) != len(other.cols) {
		return false
	}
	for _, c := range t.cols {
		oc, ok := other.Column(c.Name)
		if !ok || oc.Kind != c.Kind {
			return false
		}
	}
	return true
}

// Equal reports full structural equality: same columns in the same display
// order with cell-wise equal content.
func (t *Table) Equal(other *Table) bool {
	if len(t.cols) != len(other.cols) {
		return false
	}
	for i, c := range t.cols {
		oc := other.cols[i]
		if c.Name != oc.Name || c.Kind != oc.Kind || len(c.Cells) != len(oc.Cells) {
			return false
		}
		for j := range c.Cells {
			if !ValueEqual(c.Cells[j], oc.Cells[j]) {
				return false
			}
		}
	}
	return true
}
