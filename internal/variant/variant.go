package variant

import (
	"github.com/roach88/reframe/internal/table"
)

// Tag identifies a variant in the registry. TagBase is the universal
// untagged table: every other variant refines it.
type Tag string

// TagBase is the bottom of the refinement lattice.
const TagBase Tag = "base"

// ColumnSpec is one required column in a variant's signature.
type ColumnSpec struct {
	Name string     `json:"name"`
	Kind table.Kind `json:"kind"`
}

// Meta is instance-level auxiliary metadata. It travels with an Instance,
// not with the Variant definition, and is copied or re-derived on
// reconstruction according to the variant's meta policy.
type Meta struct {
	// GroupKeys are the grouping columns of a grouped instance.
	GroupKeys []string `json:"group_keys,omitempty"`

	// FixedRows pins the row count of a row-rigid instance.
	// Zero means "pin to the origin payload's row count".
	FixedRows int `json:"fixed_rows,omitempty"`
}

// Predicate is the extra invariant of a variant beyond its structural
// signature. Must be deterministic and side-effect-free; ill-typed input
// is a normal false, never an error.
type Predicate func(candidate *table.Table, origin *Instance) bool

// Variant is the static description of a refined table subtype.
type Variant struct {
	// Tag uniquely identifies the variant in a registry.
	Tag Tag

	// Signature lists columns that must be present with exact kinds.
	Signature []ColumnSpec

	// RowRigid pins the row count (via Meta.FixedRows or the origin
	// payload) so row-slicing anything but the full set demotes.
	RowRigid bool

	// ClosedColumns forbids adding or removing columns relative to the
	// origin payload.
	ClosedColumns bool

	// NoMissing lists columns that must not contain missing cells. A
	// variant with NoMissing constraints gets an untagged proxy (see
	// ToProxy).
	NoMissing []string

	// Sticky lists columns a column-selection verb must keep even when
	// the caller leaves them out. Selection that would drop a sticky
	// column silently re-adds it instead.
	Sticky []string

	// Predicate is the extra invariant; nil means none.
	Predicate Predicate

	// NewMeta derives instance metadata when casting a bare table up to
	// this variant. Returning false rejects the upcast. Nil means the
	// zero Meta is always acceptable.
	NewMeta func(candidate *table.Table) (Meta, bool)

	// RederiveMeta is the per-variant metadata policy applied on every
	// successful reconstruction. Nil means copy the origin's Meta
	// verbatim.
	RederiveMeta func(candidate *table.Table, origin Meta) Meta

	// RowSliceHook and ColModifyHook optionally override the default verb
	// behavior. Overrides must still let Reconstruct be the final arbiter
	// of whether the tag survives.
	RowSliceHook  func(inst *Instance, sel []int) (*Instance, error)
	ColModifyHook func(inst *Instance, updates []table.Column) (*Instance, error)
}

// IsBase reports whether the variant is the untagged base.
func (v *Variant) IsBase() bool { return v.Tag == TagBase }

// baseVariant is the universal no-invariant variant.
var baseVariant = &Variant{Tag: TagBase}

// Base returns the base variant shared by all registries.
func Base() *Variant { return baseVariant }

// Instance is a table tagged with a variant and its auxiliary metadata.
// An Instance with the base variant is a bare table.
type Instance struct {
	Table   *table.Table
	Variant *Variant
	Meta    Meta
}

// NewBase wraps a table as an untagged base instance, stripping all
// subtype-specific metadata.
func NewBase(t *table.Table) *Instance {
	return &Instance{Table: t, Variant: baseVariant}
}

// Tag returns the instance's variant tag.
func (in *Instance) Tag() Tag {
	if in.Variant == nil {
		return TagBase
	}
	return in.Variant.Tag
}

// IsBase reports whether the instance is a bare table.
func (in *Instance) IsBase() bool { return in.Tag() == TagBase }
