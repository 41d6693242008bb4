// Package spell defines the canonical spell record and the operations that
// give it a stable identity.
//
// A CanonicalSpell moves through four pure stages:
//
//	Normalize        canonical field values, defaults materialized
//	Validate         full record, metadata included, against the schema
//	ToCanonicalJSON  metadata and defaults pruned, RFC 8785 bytes
//	ComputeHash      lowercase hex SHA-256 of those bytes
//
// Two records that mean the same thing hash the same regardless of key
// order, metadata, set ordering, or whether defaults were written out.
// Sequences (material components, multiple saves, sequence-mode damage
// parts) keep their order and so affect the hash.
//
// Nothing in this package performs I/O or holds mutable shared state; all
// functions are safe for concurrent use on independent records.
package spell
