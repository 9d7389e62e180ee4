package verbs

import (
	"fmt"

	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

// RowSlice applies a row selector to an instance through its proxy and
// restores variant metadata via the supervisor. The selector may reorder
// and repeat indices; out-of-range indices are an error. Whether the tag
// survives is decided by Reconstruct, not by the selector shape, unless
// the variant overrides this hook.
func RowSlice(inst *variant.Instance, sel []int) (*variant.Instance, error) {
	if inst == nil || inst.Table == nil {
		return nil, fmt.Errorf("row slice: nil instance")
	}
	if v := inst.Variant; v != nil && v.RowSliceHook != nil {
		return v.RowSliceHook(inst, sel)
	}
	p := variant.ToProxy(inst)
	sliced, err := p.Table.Slice(sel)
	if err != nil {
		return nil, fmt.Errorf("row slice: %w", err)
	}
	return variant.FromProxy(variant.Proxy{Table: sliced, Tagged: p.Tagged}, inst), nil
}

// ColModify applies column updates to a copy of the instance's payload:
// each update adds or overwrites the same-named column, preserving all
// untouched columns and all rows. The result routes through the
// supervisor, unless the variant overrides this hook.
func ColModify(inst *variant.Instance, updates []table.Column) (*variant.Instance, error) {
	if inst == nil || inst.Table == nil {
		return nil, fmt.Errorf("col modify: nil instance")
	}
	if v := inst.Variant; v != nil && v.ColModifyHook != nil {
		return v.ColModifyHook(inst, updates)
	}
	updated := inst.Table
	for _, col := range updates {
		next, err := updated.SetColumn(col)
		if err != nil {
			return nil, fmt.Errorf("col modify %q: %w", col.Name, err)
		}
		updated = next
	}
	return variant.Reconstruct(updated, inst), nil
}

// ColSelect keeps only the named columns of the instance's payload. The
// variant's sticky columns are re-added to the request if left out, so a
// keyed instance keeps its key column through any selection. Unknown
// requested names are an error; the result routes through the supervisor
// and demotes when the surviving columns no longer satisfy the variant.
func ColSelect(inst *variant.Instance, names []string) (*variant.Instance, error) {
	if inst == nil || inst.Table == nil {
		return nil, fmt.Errorf("col select: nil instance")
	}
	keep := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = table.NormalizeName(name)
		if !seen[name] {
			seen[name] = true
			keep = append(keep, name)
		}
	}
	if v := inst.Variant; v != nil {
		for _, name := range v.Sticky {
			name = table.NormalizeName(name)
			if !seen[name] && inst.Table.HasColumn(name) {
				seen[name] = true
				keep = append(keep, name)
			}
		}
	}
	selected, err := inst.Table.SelectColumns(keep)
	if err != nil {
		return nil, fmt.Errorf("col select: %w", err)
	}
	return variant.Reconstruct(selected, inst), nil
}

// Reconstruct exposes the supervisor directly for verbs that need to
// decide reconstruction without going through slice or modify.
func Reconstruct(candidate *table.Table, template *variant.Instance) *variant.Instance {
	return variant.Reconstruct(candidate, template)
}
