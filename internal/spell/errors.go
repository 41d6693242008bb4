package spell

import (
	"fmt"
	"strings"
)

// Validation error codes (E200-E299)
const (
	// Schema violations reported by the CUE oracle
	ErrSchema            = "E201" // any other schema violation
	ErrClassifierMissing = "E203" // school (ARCANE) or sphere (DIVINE) missing
	ErrLevelRange        = "E205" // level outside 0..12
	ErrSubSpec           = "E208" // violation inside a mechanical sub-spec
	ErrMetadata          = "E209" // malformed id, version, timestamps, refs or artifacts

	// Cross-field rules checked in Go
	ErrTraditionConflict  = "E202" // both school and sphere populated
	ErrSchemaVersion      = "E204" // negative schema_version
	ErrQuestSpell         = "E206" // quest spell must be DIVINE and level 8
	ErrCantripLevel       = "E207" // cantrip must be level 0
	ErrHighLevelTradition = "E210" // levels above 9 are ARCANE only
)

// ValidationError is a single rule failure at a field path.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors collects every failure found in one record.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Codes returns the distinct codes in the order they first appear.
func (errs ValidationErrors) Codes() []string {
	var codes []string
	seen := make(map[string]bool)
	for _, e := range errs {
		if !seen[e.Code] {
			seen[e.Code] = true
			codes = append(codes, e.Code)
		}
	}
	return codes
}

// ConstructionError reports a raw record that cannot be mapped to a
// CanonicalSpell, such as one naming both a school and a sphere.
type ConstructionError struct {
	Record  string
	Fields  []string
	Message string
}

func (e *ConstructionError) Error() string {
	record := e.Record
	if record == "" {
		record = "<unnamed>"
	}
	return fmt.Sprintf("construct spell %q: %s (%s)", record, e.Message, strings.Join(e.Fields, ", "))
}

func classifierConflict(s *CanonicalSpell) *ConstructionError {
	return &ConstructionError{
		Record:  recordName(s.ID, s.Name),
		Fields:  []string{"school", "sphere"},
		Message: fmt.Sprintf("both school %q and sphere %q are set; a spell has exactly one", s.School, s.Sphere),
	}
}

func recordName(id, name string) string {
	switch {
	case id != "" && name != "":
		return id + " " + name
	case name != "":
		return name
	}
	return id
}
