package verbs

import (
	"fmt"

	"github.com/roach88/reframe/internal/lattice"
	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

// Concat row-concatenates two instances using the lattice algorithm:
// resolve the common type, cast both operands to it, combine the proxies
// structurally, then reconstruct once against a representative of the
// common type. Casts toward the common type cannot fail by construction;
// the structural combine can (mismatched column sets), and that error is
// surfaced. Whether the common tag survives the combined content is the
// supervisor's call: concatenating two disjoint keyed tables keeps the
// tag, concatenating a keyed table with itself demotes.
func Concat(l *lattice.Lattice, x, y *variant.Instance) (*variant.Instance, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("concat: nil instance")
	}
	common := l.CommonType(x.Tag(), y.Tag())
	xc, err := l.Cast(x, common)
	if err != nil {
		return nil, fmt.Errorf("concat: cast left to %s: %w", common, err)
	}
	yc, err := l.Cast(y, common)
	if err != nil {
		return nil, fmt.Errorf("concat: cast right to %s: %w", common, err)
	}

	px, py := variant.ToProxy(xc), variant.ToProxy(yc)
	combined, err := table.Concat(px.Table, py.Table)
	if err != nil {
		return nil, fmt.Errorf("concat: %w", err)
	}
	template := xc
	if merged := mergeGroupKeys(xc.Meta.GroupKeys, yc.Meta.GroupKeys); len(merged) > len(xc.Meta.GroupKeys) {
		template = &variant.Instance{
			Table:   xc.Table,
			Variant: xc.Variant,
			Meta:    variant.Meta{GroupKeys: merged, FixedRows: xc.Meta.FixedRows},
		}
	}
	return variant.Reconstruct(combined, template), nil
}

// mergeGroupKeys unions both operands' group keys, left operand's order
// first. Concat already requires matching column sets, so every merged
// key is live in the combined payload.
func mergeGroupKeys(left, right []string) []string {
	if len(right) == 0 {
		return left
	}
	seen := make(map[string]bool, len(left)+len(right))
	merged := make([]string, 0, len(left)+len(right))
	for _, lists := range [][]string{left, right} {
		for _, k := range lists {
			if !seen[k] {
				seen[k] = true
				merged = append(merged, k)
			}
		}
	}
	return merged
}
