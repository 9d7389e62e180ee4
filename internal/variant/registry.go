package variant

import (
	"fmt"
	"sort"

	"github.com/roach88/reframe/internal/table"
)

// Registry is the closed set of variants known to a running system.
// It is built once during setup and read-only afterwards.
type Registry struct {
	variants map[Tag]*Variant
}

// NewRegistry creates a registry holding only the base variant.
func NewRegistry() *Registry {
	return &Registry{variants: map[Tag]*Variant{TagBase: baseVariant}}
}

// Register adds a variant definition. Duplicate tags and signature columns
// with invalid kinds are rejected; the base tag cannot be redefined.
func (r *Registry) Register(v *Variant) error {
	if v == nil || v.Tag == "" {
		return fmt.Errorf("variant must have a non-empty tag")
	}
	if v.Tag == TagBase {
		return fmt.Errorf("tag %q is reserved for the base table", TagBase)
	}
	if _, exists := r.variants[v.Tag]; exists {
		return fmt.Errorf("variant %q already registered", v.Tag)
	}
	seen := make(map[string]bool, len(v.Signature))
	for _, cs := range v.Signature {
		name := table.NormalizeName(cs.Name)
		if name == "" {
			return fmt.Errorf("variant %q: empty signature column name", v.Tag)
		}
		if seen[name] {
			return fmt.Errorf("variant %q: duplicate signature column %q", v.Tag, name)
		}
		seen[name] = true
		if !table.ValidKinds[cs.Kind] {
			return fmt.Errorf("variant %q: column %q has invalid kind %q", v.Tag, name, cs.Kind)
		}
	}
	r.variants[v.Tag] = v
	return nil
}

// Lookup returns the variant for a tag.
func (r *Registry) Lookup(tag Tag) (*Variant, bool) {
	v, ok := r.variants[tag]
	return v, ok
}

// Tags returns all registered tags in sorted order.
func (r *Registry) Tags() []Tag {
	tags := make([]Tag, 0, len(r.variants))
	for t := range r.variants {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
