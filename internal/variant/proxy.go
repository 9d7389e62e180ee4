package variant

import "github.com/roach88/reframe/internal/table"

// Proxy is the ephemeral structural representation of an instance handed
// to generic operators (row slicing, concatenation). It is produced from
// an Instance, consumed by a structural operation, and never persisted.
type Proxy struct {
	// Table is the payload. Always shared with the source instance, never
	// copied: producing a proxy is cost-free.
	Table *table.Table

	// Tagged reports whether the proxy may still be presented as
	// upholding the origin's invariants. Variants with no-missing
	// constraints are untagged: a generic operator could interleave
	// states that violate them, so the proxy must not claim the subtype.
	Tagged bool
}

// ToProxy strips an instance down to its structural representation. The
// default is the identity payload; only no-missing constraints force the
// untagged form. No copy in either case.
func ToProxy(inst *Instance) Proxy {
	tagged := true
	if inst.Variant != nil && len(inst.Variant.NoMissing) > 0 {
		tagged = false
	}
	return Proxy{Table: inst.Table, Tagged: tagged}
}

// FromProxy restores variant metadata after a structural operation by
// delegating to the supervisor. A proxy never bypasses Reconstruct.
func FromProxy(p Proxy, origin *Instance) *Instance {
	return Reconstruct(p.Table, origin)
}
