package variant

import (
	"github.com/roach88/reframe/internal/table"
)

// NewKeyed builds a variant whose designated key column must exist, be
// non-missing, and contain no duplicate values. The key is part of the
// variant's static definition; instances carry no extra metadata.
//
// The key column is appended to the signature if not already listed, and
// is sticky: column selection keeps it even when the caller drops it.
func NewKeyed(tag Tag, key string, kind table.Kind, extra ...ColumnSpec) *Variant {
	key = table.NormalizeName(key)
	sig := make([]ColumnSpec, 0, len(extra)+1)
	hasKey := false
	for _, cs := range extra {
		if table.NormalizeName(cs.Name) == key {
			hasKey = true
		}
		sig = append(sig, cs)
	}
	if !hasKey {
		sig = append(sig, ColumnSpec{Name: key, Kind: kind})
	}
	return &Variant{
		Tag:       tag,
		Signature: sig,
		NoMissing: []string{key},
		Sticky:    []string{key},
		Predicate: func(candidate *table.Table, _ *Instance) bool {
			return uniqueColumn(candidate, key)
		},
		NewMeta: func(*table.Table) (Meta, bool) { return Meta{}, true },
	}
}

// uniqueColumn reports whether the named column exists and holds pairwise
// distinct non-missing values.
func uniqueColumn(t *table.Table, name string) bool {
	col, ok := t.Column(name)
	if !ok {
		return false
	}
	seen := make(map[table.Value]bool, len(col.Cells))
	for _, v := range col.Cells {
		if _, isNull := v.(table.Null); isNull {
			return false
		}
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// NewGrouped builds a variant whose instances are grouped by a set of key
// columns held in instance metadata.
//
// Meta policy (re-derive, not copy): on reconstruction, group keys whose
// columns vanished from the candidate are dropped; the instance survives
// as long as at least one group key remains. Casting a bare table up uses
// defaultKeys, all of which must be present.
func NewGrouped(tag Tag, defaultKeys ...string) *Variant {
	keys := normalizeNames(defaultKeys)
	return &Variant{
		Tag: tag,
		Predicate: func(candidate *table.Table, origin *Instance) bool {
			return len(liveKeys(candidate, origin.Meta.GroupKeys)) > 0
		},
		RederiveMeta: func(candidate *table.Table, origin Meta) Meta {
			return Meta{GroupKeys: liveKeys(candidate, origin.GroupKeys)}
		},
		NewMeta: func(candidate *table.Table) (Meta, bool) {
			if len(liveKeys(candidate, keys)) != len(keys) || len(keys) == 0 {
				return Meta{}, false
			}
			return Meta{GroupKeys: keys}, true
		},
	}
}

func normalizeNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = table.NormalizeName(n)
	}
	return out
}

// liveKeys returns the subset of keys still present as columns, in the
// original key order.
func liveKeys(t *table.Table, keys []string) []string {
	var live []string
	for _, k := range keys {
		if t.HasColumn(k) {
			live = append(live, k)
		}
	}
	return live
}

// NewPartition builds a row-rigid variant: an instance represents a fixed
// partition whose row count is pinned in metadata. Any slice that does not
// reproduce every row demotes; the row-slice override additionally demotes
// on reordering, since a partition's row order is significant.
func NewPartition(tag Tag) *Variant {
	v := &Variant{
		Tag:      tag,
		RowRigid: true,
		NewMeta: func(candidate *table.Table) (Meta, bool) {
			return Meta{FixedRows: candidate.NumRows()}, true
		},
	}
	v.RowSliceHook = func(inst *Instance, sel []int) (*Instance, error) {
		sliced, err := inst.Table.Slice(sel)
		if err != nil {
			return nil, err
		}
		if !identitySelector(sel, inst.Table.NumRows()) {
			return NewBase(sliced), nil
		}
		return Reconstruct(sliced, inst), nil
	}
	return v
}

// identitySelector reports whether sel is exactly 0..n-1 in order.
func identitySelector(sel []int, n int) bool {
	if len(sel) != n {
		return false
	}
	for i, s := range sel {
		if s != i {
			return false
		}
	}
	return true
}
