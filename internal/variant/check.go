package variant

import "github.com/roach88/reframe/internal/table"

// Check reports whether candidate still satisfies origin's variant
// invariants. It is pure: same inputs always give the same answer, no
// side effects, and ill-typed input (a missing required column, say) is a
// normal false rather than an error.
func Check(candidate *table.Table, origin *Instance) bool {
	if candidate == nil || origin == nil {
		return false
	}
	v := origin.Variant
	if v == nil || v.IsBase() {
		return true
	}

	// Required columns present with required kinds.
	for _, cs := range v.Signature {
		col, ok := candidate.Column(cs.Name)
		if !ok || col.Kind != cs.Kind {
			return false
		}
	}

	// Closed column set: no additions or removals relative to the origin
	// payload, and shared columns keep their kinds.
	if v.ClosedColumns && origin.Table != nil {
		if candidate.NumColumns() != origin.Table.NumColumns() {
			return false
		}
		for _, oc := range origin.Table.Columns() {
			cc, ok := candidate.Column(oc.Name)
			if !ok || cc.Kind != oc.Kind {
				return false
			}
		}
	}

	// Row rigidity: the count pinned by meta, falling back to the origin
	// payload's count.
	if v.RowRigid {
		want := origin.Meta.FixedRows
		if want == 0 && origin.Table != nil {
			want = origin.Table.NumRows()
		}
		if candidate.NumRows() != want {
			return false
		}
	}

	// No-missing columns.
	for _, name := range v.NoMissing {
		col, ok := candidate.Column(name)
		if !ok || col.HasNull() {
			return false
		}
	}

	if v.Predicate != nil && !v.Predicate(candidate, origin) {
		return false
	}
	return true
}
