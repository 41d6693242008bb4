package spell

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decode parses a JSON spell record. Unknown fields are rejected. When
// tradition is absent it is derived from whichever of school or sphere is
// set; a record naming both, or neither, fails with a ConstructionError.
func Decode(data []byte) (*CanonicalSpell, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var s CanonicalSpell
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode spell: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode spell: trailing data after record")
	}

	if err := resolveClassifier(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// resolveClassifier enforces the construction boundary: exactly one of
// school and sphere, and a tradition that agrees with it.
func resolveClassifier(s *CanonicalSpell) error {
	school := strings.TrimSpace(s.School) != ""
	sphere := strings.TrimSpace(s.Sphere) != ""
	tradition := strings.ToUpper(strings.TrimSpace(string(s.Tradition)))

	switch {
	case tradition == "BOTH":
		return &ConstructionError{
			Record:  recordName(s.ID, s.Name),
			Fields:  []string{"tradition"},
			Message: "tradition BOTH is no longer supported; split the record into an ARCANE and a DIVINE spell",
		}
	case school && sphere:
		return classifierConflict(s)
	case !school && !sphere:
		return &ConstructionError{
			Record:  recordName(s.ID, s.Name),
			Fields:  []string{"school", "sphere"},
			Message: "neither school nor sphere is set; a spell has exactly one",
		}
	}

	switch tradition {
	case "":
		if school {
			s.Tradition = Arcane
		} else {
			s.Tradition = Divine
		}
	case string(Arcane):
		if !school {
			return &ConstructionError{
				Record:  recordName(s.ID, s.Name),
				Fields:  []string{"tradition", "sphere"},
				Message: fmt.Sprintf("ARCANE spell has sphere %q but no school", s.Sphere),
			}
		}
	case string(Divine):
		if !sphere {
			return &ConstructionError{
				Record:  recordName(s.ID, s.Name),
				Fields:  []string{"tradition", "school"},
				Message: fmt.Sprintf("DIVINE spell has school %q but no sphere", s.School),
			}
		}
	}
	return nil
}
