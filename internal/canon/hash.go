package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// HashLength is the length of a hex-encoded SHA-256 digest.
const HashLength = 64

var hashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Hash returns the lowercase hex SHA-256 digest of data.
// No domain prefix is mixed in: the digest must be reproducible by any
// SHA-256 tool given the canonical bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashValue canonicalizes v and hashes the result.
func HashValue(v Value) (string, error) {
	data, err := MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// IsHash reports whether s is a well-formed content hash.
func IsHash(s string) bool {
	return hashPattern.MatchString(s)
}

// MustHashValue is like HashValue but panics on error.
// Use only in tests.
func MustHashValue(v Value) string {
	h, err := HashValue(v)
	if err != nil {
		panic(err)
	}
	return h
}
