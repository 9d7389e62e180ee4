// Package schema compiles variant definitions written in CUE into
// registry entries.
//
// A definition file declares one or more variants under the "variant"
// field:
//
//	variant: orders: {
//		family:    "keyed"
//		key:       "id"
//		key_kind:  "int"
//		signature: {amount: "float", region: "string"}
//	}
//
//	variant: decile: {
//		family: "partition"
//	}
//
// Compilation goes through an intermediate Def, which is validated
// (collecting all errors, not fail-fast) and then built into a
// variant.Variant using the built-in family constructors. Custom families
// beyond keyed/grouped/partition declare structural constraints only
// (signature, row_rigid, closed_columns, no_missing); arbitrary predicates
// stay in Go, registered programmatically.
package schema
