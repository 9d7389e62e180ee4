package lattice

import (
	"fmt"

	"github.com/roach88/reframe/internal/variant"
)

// pairKey is an unordered tag pair. normalize keeps the smaller tag first
// so the pair table is symmetric by construction.
type pairKey struct{ a, b variant.Tag }

func normalize(a, b variant.Tag) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Lattice resolves common types and performs directed casts over a closed
// variant registry. Built once during setup, read-only afterwards.
type Lattice struct {
	reg   *variant.Registry
	pairs map[pairKey]variant.Tag
}

// New creates a lattice over a registry with no refined pair rules.
func New(reg *variant.Registry) *Lattice {
	return &Lattice{reg: reg, pairs: make(map[pairKey]variant.Tag)}
}

// RegisterCommon installs a refined common type for a pair of distinct
// variants. The rule is stored unordered, so resolution stays commutative.
// All three tags must be registered; a pair may only be ruled once.
func (l *Lattice) RegisterCommon(a, b, common variant.Tag) error {
	for _, tag := range []variant.Tag{a, b, common} {
		if _, ok := l.reg.Lookup(tag); !ok {
			return fmt.Errorf("unknown tag %q", tag)
		}
	}
	if a == b {
		return fmt.Errorf("pair rule for identical tags %q is fixed by reflexivity", a)
	}
	key := normalize(a, b)
	if _, exists := l.pairs[key]; exists {
		return fmt.Errorf("pair (%s, %s) already ruled", key.a, key.b)
	}
	l.pairs[key] = common
	return nil
}

// Validate checks that the installed pair rules keep CommonType
// associative over every registered tag triple: common(common(a,b),c)
// must equal common(a,common(b,c)). Call once after the last
// RegisterCommon; a rule set that fails here would make combination
// results depend on operand grouping. The registry is closed and small,
// so the cubic walk is cheap.
func (l *Lattice) Validate() error {
	tags := l.reg.Tags()
	for _, a := range tags {
		for _, b := range tags {
			for _, c := range tags {
				left := l.CommonType(l.CommonType(a, b), c)
				right := l.CommonType(a, l.CommonType(b, c))
				if left != right {
					return fmt.Errorf(
						"pair rules break associativity: common(common(%s,%s),%s) = %s but common(%s,common(%s,%s)) = %s",
						a, b, c, left, a, b, c, right)
				}
			}
		}
	}
	return nil
}

// CommonType returns the most refined tag both operands can be losslessly
// cast up to. Identical tags resolve to themselves; any pair involving an
// unregistered tag, and any distinct pair without a registered rule,
// resolves to base.
func (l *Lattice) CommonType(a, b variant.Tag) variant.Tag {
	if _, ok := l.reg.Lookup(a); !ok {
		return variant.TagBase
	}
	if _, ok := l.reg.Lookup(b); !ok {
		return variant.TagBase
	}
	if a == b {
		return a
	}
	if a == variant.TagBase || b == variant.TagBase {
		return variant.TagBase
	}
	if common, ok := l.pairs[normalize(a, b)]; ok {
		return common
	}
	return variant.TagBase
}

// Cast converts an instance to the target tag.
//
//   - Same tag: identity, x itself is returned.
//   - Base target: always succeeds, strips variant metadata.
//   - Stricter target: succeeds only if x's structure exactly satisfies
//     the target variant; otherwise *CastError with ErrCodeIncompatible.
//     Structure is never silently discarded.
func (l *Lattice) Cast(x *variant.Instance, to variant.Tag) (*variant.Instance, error) {
	if x.Tag() == to {
		return x, nil
	}
	if to == variant.TagBase {
		return variant.NewBase(x.Table), nil
	}
	target, ok := l.reg.Lookup(to)
	if !ok {
		return nil, &CastError{
			Code:    ErrCodeUnknownTag,
			From:    x.Tag(),
			To:      to,
			Message: "target tag not registered",
		}
	}

	meta := variant.Meta{}
	if target.NewMeta != nil {
		meta, ok = target.NewMeta(x.Table)
		if !ok {
			return nil, &CastError{
				Code:    ErrCodeIncompatible,
				From:    x.Tag(),
				To:      to,
				Message: "cannot derive variant metadata from candidate",
			}
		}
	}

	template := &variant.Instance{Table: x.Table, Variant: target, Meta: meta}
	if !variant.Check(x.Table, template) {
		return nil, &CastError{
			Code:    ErrCodeIncompatible,
			From:    x.Tag(),
			To:      to,
			Message: "candidate does not satisfy target invariants",
		}
	}
	return template, nil
}
