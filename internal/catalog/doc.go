// Package catalog provides durable storage for tagged table snapshots.
// Uses SQLite with WAL mode for concurrent read access.
//
// A snapshot row records the table payload (interchange JSON), the variant
// tag and metadata it claimed at save time, a content fingerprint, and a
// UUIDv7 snapshot ID. A stored tag is never trusted blindly: Load runs the
// payload back through the reconstruction supervisor against the current
// registry, so a snapshot whose variant definition changed underneath it
// comes back demoted to base rather than wrongly tagged.
package catalog
