package table

import "fmt"

// UnifyKinds returns the common kind two column kinds widen to when tables
// are combined. Equal kinds unify to themselves; int and float unify to
// float. Everything else is incompatible.
func UnifyKinds(a, b Kind) (Kind, bool) {
	if a == b {
		return a, true
	}
	if (a == KindInt && b == KindFloat) || (a == KindFloat && b == KindInt) {
		return KindFloat, true
	}
	return "", false
}

// widen converts a cell to the given kind. The only non-identity widening
// is int to float; Null widens to any kind.
func widen(v Value, to Kind) Value {
	if _, isNull := v.(Null); isNull {
		return v
	}
	if iv, ok := v.(Int); ok && to == KindFloat {
		return Float(float64(iv))
	}
	return v
}

// Concat appends b's rows under a's rows. The column sets must match by
// name; kinds are unified per column (int widens to float). Column display
// order follows a. Tables with differing column name sets cannot concat.
func Concat(a, b *Table) (*Table, error) {
	if len(a.cols) != len(b.cols) {
		return nil, fmt.Errorf("column count mismatch: %d vs %d", len(a.cols), len(b.cols))
	}
	cols := make([]Column, len(a.cols))
	for i, ca := range a.cols {
		cb, ok := b.Column(ca.Name)
		if !ok {
			return nil, fmt.Errorf("column %q missing from right-hand table", ca.Name)
		}
		kind, ok := UnifyKinds(ca.Kind, cb.Kind)
		if !ok {
			return nil, fmt.Errorf("column %q: cannot unify kinds %q and %q", ca.Name, ca.Kind, cb.Kind)
		}
		cells := make([]Value, 0, len(ca.Cells)+len(cb.Cells))
		for _, v := range ca.Cells {
			cells = append(cells, widen(v, kind))
		}
		for _, v := range cb.Cells {
			cells = append(cells, widen(v, kind))
		}
		cols[i] = Column{Name: ca.Name, Kind: kind, Cells: cells}
	}
	return &Table{cols: cols}, nil
}
