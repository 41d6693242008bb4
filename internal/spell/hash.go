package spell

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/spellcanon/internal/canon"
)

// ComputeHash returns the content hash of s: the lowercase hex SHA-256 of
// its canonical JSON. s is cloned and normalized first, and the full
// normalized record must validate, so malformed metadata blocks hashing
// even though metadata never reaches the hashed bytes.
func ComputeHash(s *CanonicalSpell) (string, error) {
	if s == nil {
		return "", fmt.Errorf("compute hash: spell is nil")
	}
	if s.HasSchool() && s.HasSphere() {
		return "", classifierConflict(s)
	}
	n := Normalize(s)
	if err := validateNormalized(n); err != nil {
		return "", err
	}
	data, err := canonicalBytes(n)
	if err != nil {
		return "", fmt.Errorf("compute hash: %w", err)
	}
	return canon.Hash(data), nil
}

// ToCanonicalJSON normalizes s and returns its pruned canonical JSON. It
// does not validate; use ComputeHash when the record may be malformed.
func ToCanonicalJSON(s *CanonicalSpell) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("canonical json: spell is nil")
	}
	return canonicalBytes(Normalize(s))
}

// CanonicalValue returns the pruned canonical value of s before
// serialization.
func CanonicalValue(s *CanonicalSpell) (canon.Value, error) {
	if s == nil {
		return nil, fmt.Errorf("canonical value: spell is nil")
	}
	return prunedValue(Normalize(s))
}

// StructuredJSON returns the normalized record with defaults and metadata
// intact. This is the form stored for display and editing.
func StructuredJSON(s *CanonicalSpell) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("structured json: spell is nil")
	}
	data, err := json.Marshal(Normalize(s))
	if err != nil {
		return nil, fmt.Errorf("structured json: %w", err)
	}
	return data, nil
}

func canonicalBytes(n *CanonicalSpell) ([]byte, error) {
	v, err := prunedValue(n)
	if err != nil {
		return nil, err
	}
	return canon.MarshalCanonical(v)
}

func prunedValue(n *CanonicalSpell) (canon.Value, error) {
	v, err := canon.FromGo(n)
	if err != nil {
		return nil, fmt.Errorf("convert spell: %w", err)
	}
	return canon.Prune(v, pruneRules), nil
}
