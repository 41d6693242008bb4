// Package store provides SQLite-backed persistence for canonical spells.
//
// Each row keeps the normalized record (canonical_data) next to its content
// hash. The hash is the identity of the mechanics:
//   - content_hash is UNIQUE where not NULL, so two records with the same
//     mechanics cannot both be stored
//   - Put looks the hash up before inserting and returns the existing row
//     on a match
//   - rows imported before hashing existed carry a NULL hash until a
//     backfill fills it in
//
// # Ordering
//
// Rows are stamped with a logical seq on insert. All list queries use
// ORDER BY seq ASC, id ASC COLLATE BINARY so results are identical across
// runs regardless of wall time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
