// Package lattice implements common-type resolution and directed casting
// over the variant refinement lattice.
//
// The lattice is law-checkable by construction: CommonType is a lookup
// over an explicit, symmetric pair table on a closed tag set, so
// reflexivity (CommonType(X,X)=X), commutativity, and associativity are
// testable properties rather than emergent behavior of dynamic dispatch.
// The default resolution for distinct variants is the base table, the
// safest common ancestor; registered pair rules may refine specific pairs.
//
// Cast is consistent with CommonType: casting down (toward base) always
// succeeds, casting to the same tag is the identity, and casting up to a
// stricter variant either matches the target's structure exactly or fails
// with a CastError. An upcast never silently discards structure.
package lattice
