// Package harness runs conformance scenarios against the verb hooks.
//
// A scenario is a YAML file declaring input tables (optionally cast up to
// a variant), a pipeline of verb steps (row_slice, col_modify, concat,
// reconstruct), and the tag each step's result is expected to carry. The
// runner produces a deterministic decision trace - one event per step
// recording which tag survived - that golden tests compare against
// committed fixtures.
//
// Scenarios validate the reconstruction contract end to end: the harness
// only ever goes through the public verb surface, never reaches into the
// supervisor's internals.
package harness
