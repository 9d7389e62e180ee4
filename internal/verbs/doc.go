// Package verbs is the public operation surface of the core: three hooks
// through which every higher-level table verb is expected to route.
//
// RowSlice and ColModify decompose a verb into a structural operation on
// the proxy representation followed by one supervisor call; Reconstruct
// exposes the supervisor directly for verbs that decide reconstruction on
// their own. Concat is the combination operator built on the lattice:
// resolve the common type, cast both operands, combine structurally,
// reconstruct once at the end.
//
// A variant may override RowSlice or ColModify individually (partition
// variants reject reordering selectors, for example), but the supervisor
// remains the final arbiter of whether a tag survives.
package verbs
