package schema

import (
	"fmt"
	"sort"

	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

// Family selects the construction recipe for a compiled variant.
type Family string

const (
	FamilyKeyed     Family = "keyed"
	FamilyGrouped   Family = "grouped"
	FamilyPartition Family = "partition"
	FamilyCustom    Family = "custom"
)

// ValidFamilies defines the allowed variant families.
var ValidFamilies = map[Family]bool{
	FamilyKeyed:     true,
	FamilyGrouped:   true,
	FamilyPartition: true,
	FamilyCustom:    true,
}

// Def is a compiled variant definition, the intermediate between CUE
// source and a registry entry.
type Def struct {
	Tag           string            `json:"tag"`
	Family        Family            `json:"family"`
	Key           string            `json:"key,omitempty"`      // keyed: designated key column
	KeyKind       table.Kind        `json:"key_kind,omitempty"` // keyed: key column kind
	GroupKeys     []string          `json:"group_keys,omitempty"`
	Signature     map[string]string `json:"signature,omitempty"` // column name -> kind name
	RowRigid      bool              `json:"row_rigid,omitempty"`
	ClosedColumns bool              `json:"closed_columns,omitempty"`
	NoMissing     []string          `json:"no_missing,omitempty"`
}

// signatureSpecs converts the signature map to sorted column specs so the
// built variant is deterministic regardless of map iteration order.
func (d *Def) signatureSpecs() []variant.ColumnSpec {
	names := make([]string, 0, len(d.Signature))
	for name := range d.Signature {
		names = append(names, name)
	}
	sort.Strings(names)
	specs := make([]variant.ColumnSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, variant.ColumnSpec{
			Name: name,
			Kind: table.Kind(d.Signature[name]),
		})
	}
	return specs
}

// Build constructs the variant a validated definition describes.
// Callers should run Validate first; Build reports only structural
// problems Validate would have caught.
func Build(def *Def) (*variant.Variant, error) {
	if errs := Validate(def); len(errs) > 0 {
		return nil, fmt.Errorf("invalid variant definition %q: %s", def.Tag, errs[0].Error())
	}
	tag := variant.Tag(def.Tag)
	switch def.Family {
	case FamilyKeyed:
		v := variant.NewKeyed(tag, def.Key, def.KeyKind, def.signatureSpecs()...)
		v.RowRigid = def.RowRigid
		v.ClosedColumns = def.ClosedColumns
		v.NoMissing = appendMissing(v.NoMissing, def.NoMissing)
		return v, nil
	case FamilyGrouped:
		v := variant.NewGrouped(tag, def.GroupKeys...)
		v.Signature = def.signatureSpecs()
		v.RowRigid = def.RowRigid
		v.ClosedColumns = def.ClosedColumns
		v.NoMissing = appendMissing(nil, def.NoMissing)
		return v, nil
	case FamilyPartition:
		v := variant.NewPartition(tag)
		v.Signature = def.signatureSpecs()
		v.ClosedColumns = def.ClosedColumns
		v.NoMissing = appendMissing(nil, def.NoMissing)
		return v, nil
	case FamilyCustom:
		return &variant.Variant{
			Tag:           tag,
			Signature:     def.signatureSpecs(),
			RowRigid:      def.RowRigid,
			ClosedColumns: def.ClosedColumns,
			NoMissing:     appendMissing(nil, def.NoMissing),
		}, nil
	default:
		return nil, fmt.Errorf("invalid variant family %q", def.Family)
	}
}

// appendMissing merges no-missing column lists without duplicates,
// normalizing names.
func appendMissing(base []string, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, lst := range [][]string{base, extra} {
		for _, name := range lst {
			n := table.NormalizeName(name)
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
