// Package testutil provides table and instance builders for tests.
//
// The column builders panic on mistyped values, since that is a bug in
// the fixture itself; MustTable and MustCast take a *testing.T and fail
// the test on construction errors. Nil cell values become missing cells.
package testutil

import (
	"testing"

	"github.com/roach88/reframe/internal/lattice"
	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

// IntCol builds an int column. A nil value becomes a missing cell.
func IntCol(name string, vals ...any) table.Column {
	cells := make([]table.Value, len(vals))
	for i, v := range vals {
		if v == nil {
			cells[i] = table.Null{}
			continue
		}
		switch n := v.(type) {
		case int:
			cells[i] = table.Int(n)
		case int64:
			cells[i] = table.Int(n)
		default:
			panic("IntCol: value must be int, int64, or nil")
		}
	}
	return table.Column{Name: name, Kind: table.KindInt, Cells: cells}
}

// FloatCol builds a float column. A nil value becomes a missing cell.
func FloatCol(name string, vals ...any) table.Column {
	cells := make([]table.Value, len(vals))
	for i, v := range vals {
		if v == nil {
			cells[i] = table.Null{}
			continue
		}
		f, ok := v.(float64)
		if !ok {
			panic("FloatCol: value must be float64 or nil")
		}
		cells[i] = table.Float(f)
	}
	return table.Column{Name: name, Kind: table.KindFloat, Cells: cells}
}

// StringCol builds a string column. A nil value becomes a missing cell.
func StringCol(name string, vals ...any) table.Column {
	cells := make([]table.Value, len(vals))
	for i, v := range vals {
		if v == nil {
			cells[i] = table.Null{}
			continue
		}
		s, ok := v.(string)
		if !ok {
			panic("StringCol: value must be string or nil")
		}
		cells[i] = table.String(s)
	}
	return table.Column{Name: name, Kind: table.KindString, Cells: cells}
}

// BoolCol builds a bool column. A nil value becomes a missing cell.
func BoolCol(name string, vals ...any) table.Column {
	cells := make([]table.Value, len(vals))
	for i, v := range vals {
		if v == nil {
			cells[i] = table.Null{}
			continue
		}
		b, ok := v.(bool)
		if !ok {
			panic("BoolCol: value must be bool or nil")
		}
		cells[i] = table.Bool(b)
	}
	return table.Column{Name: name, Kind: table.KindBool, Cells: cells}
}

// MustTable builds a table from columns, failing the test on error.
func MustTable(t *testing.T, cols ...table.Column) *table.Table {
	t.Helper()
	tbl, err := table.New(cols...)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return tbl
}

// MustCast casts a base instance of tbl up to tag through the lattice,
// failing the test if the cast is refused. Fixtures are supposed to
// satisfy their own variants; a refusal is a fixture bug.
func MustCast(t *testing.T, lat *lattice.Lattice, tbl *table.Table, tag variant.Tag) *variant.Instance {
	t.Helper()
	inst, err := lat.Cast(variant.NewBase(tbl), tag)
	if err != nil {
		t.Fatalf("cast fixture to %q: %v", tag, err)
	}
	return inst
}
