// Package canon implements RFC 8785 canonical JSON and the content hash
// computed over it.
//
// canon imports nothing internal. Higher layers convert their domain types
// into a Value tree (usually via FromGo), prune it, and serialize it with
// MarshalCanonical.
//
// Key constraints:
//   - Object keys sorted by UTF-16 code units
//   - NFC applied to every string and key at the serialization boundary
//   - Numbers formatted as ECMAScript would print them
//   - Hash is plain SHA-256 over the canonical bytes, lowercase hex
package canon
