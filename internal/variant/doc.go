// Package variant defines refined subtypes of the base table and the
// machinery that keeps their invariants honest across transformations.
//
// A Variant is a static description of a subtype: required column
// signature, rigidity flags, and an extra invariant predicate. An Instance
// is a table tagged with a Variant plus instance-level auxiliary metadata
// (group keys, fixed row counts). The Reconstruct supervisor is the single
// arbiter of whether a tag survives a transformation: every row-slice and
// column-modify routes through it, and a failed check demotes the result
// to the untagged base table rather than raising an error.
//
// Key design constraints:
//   - Check is a pure function of (candidate, origin's variant, origin's
//     meta). Never of history, never effectful, never an error.
//   - A tag is never trusted blindly: anything that re-enters the system
//     (catalog loads included) passes through Reconstruct.
//   - The variant set is closed at registry construction. Dispatch is a
//     lookup over tags, not dynamic method resolution.
package variant
