package variant

import "github.com/roach88/reframe/internal/table"

// Reconstruct is the supervisor: after any structural transformation it
// either reattaches origin's variant onto candidate or demotes candidate
// to a bare base instance. It is the single mandatory call site for every
// row-slice and column-modify; no other path may expose a tagged Instance.
//
// On success the result carries origin's variant, candidate's columns and
// rows, and metadata per the variant's policy (re-derived when the variant
// defines RederiveMeta, copied verbatim otherwise). On failure the result
// is a base instance with candidate's content and no variant metadata.
//
// Reconstruct is idempotent: reconstructing its own result against the
// same origin yields the same tag and content. Invariant failure is not
// an error, only a silent demotion; callers that care compare the result
// tag to origin's tag.
func Reconstruct(candidate *table.Table, origin *Instance) *Instance {
	if candidate == nil {
		return nil
	}
	if origin == nil || origin.Variant == nil || origin.Variant.IsBase() {
		return NewBase(candidate)
	}
	if !Check(candidate, origin) {
		return NewBase(candidate)
	}
	v := origin.Variant
	meta := origin.Meta
	if v.RederiveMeta != nil {
		meta = v.RederiveMeta(candidate, origin.Meta)
	}
	return &Instance{Table: candidate, Variant: v, Meta: meta}
}
