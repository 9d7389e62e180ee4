// Package table provides the immutable base tabular value: named, typed
// columns over ordered rows.
//
// This package contains the structural layer only. All other internal
// packages import table; table imports nothing internal. Variant tagging,
// invariant checking, and reconstruction live above it in internal/variant.
//
// Key design constraints:
//   - Value semantics everywhere: every transformation returns a new Table,
//     never mutates in place. Cell slices may be shared between tables
//     because cells are immutable scalars.
//   - Column names compare under NFC normalization so visually identical
//     names cannot alias distinct columns.
//   - Fingerprints use canonical JSON with a domain-separated SHA-256, so
//     two tables with equal content always hash identically.
package table
