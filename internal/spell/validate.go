package spell

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/spellcanon/internal/schema"
)

// Validate normalizes a copy of s and checks the full record, metadata
// included, against the schema and the cross-field rules. It returns nil
// or a ValidationErrors holding every failure found.
//
// A record with both a school and a sphere fails with a single
// ErrTraditionConflict; nothing else is meaningful until that is resolved.
func Validate(s *CanonicalSpell) error {
	if s == nil {
		return ValidationErrors{{Field: "spell", Message: "spell is nil", Code: ErrSchema}}
	}
	if s.HasSchool() && s.HasSphere() {
		return ValidationErrors{{
			Field:   "school",
			Message: fmt.Sprintf("both school %q and sphere %q are set", s.School, s.Sphere),
			Code:    ErrTraditionConflict,
		}}
	}
	return validateNormalized(Normalize(s))
}

// validateNormalized checks a record that has already been normalized.
func validateNormalized(s *CanonicalSpell) error {
	var errs ValidationErrors

	// E204: negative versions are never migrated
	if s.SchemaVersion < 0 {
		errs = append(errs, ValidationError{
			Field:   "schema_version",
			Message: fmt.Sprintf("schema_version must be >= 0, got %d", s.SchemaVersion),
			Code:    ErrSchemaVersion,
		})
	}

	errs = append(errs, domainRules(s)...)

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("validate: marshal spell: %w", err)
	}
	violations, err := schema.Default().Validate(data)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	for _, v := range violations {
		errs = append(errs, ValidationError{
			Field:   fieldOrRoot(v.Path),
			Message: v.Message,
			Code:    codeForPath(v.Path),
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// domainRules checks the rules that relate several fields to each other.
func domainRules(s *CanonicalSpell) []ValidationError {
	var errs []ValidationError

	// E206: quest spells are DIVINE and sit at level 8
	if s.IsQuestSpell == 1 {
		if s.Tradition != Divine {
			errs = append(errs, ValidationError{
				Field:   "is_quest_spell",
				Message: fmt.Sprintf("quest spells must be DIVINE, got %s", s.Tradition),
				Code:    ErrQuestSpell,
			})
		}
		if s.Level != 8 {
			errs = append(errs, ValidationError{
				Field:   "level",
				Message: fmt.Sprintf("quest spells must be level 8, got %d", s.Level),
				Code:    ErrQuestSpell,
			})
		}
	}

	// E207: cantrips are level 0
	if s.IsCantrip == 1 && s.Level != 0 {
		errs = append(errs, ValidationError{
			Field:   "level",
			Message: fmt.Sprintf("cantrips must be level 0, got %d", s.Level),
			Code:    ErrCantripLevel,
		})
	}

	// E210: levels 10-12 exist only for ARCANE spells
	if s.Level > 9 && s.Tradition != Arcane {
		errs = append(errs, ValidationError{
			Field:   "level",
			Message: fmt.Sprintf("levels above 9 are restricted to ARCANE spells, got level %d %s", s.Level, s.Tradition),
			Code:    ErrHighLevelTradition,
		})
	}

	return errs
}

var (
	subSpecFields = []string{
		"range", "area", "duration", "casting_time", "damage", "saving_throw",
		"magic_resistance", "experience_cost", "components", "material_components",
	}
	metadataFields = []string{"id", "version", "created_at", "updated_at", "source_refs", "artifacts"}
)

// codeForPath maps a schema violation to a code by the top-level field it
// was reported at.
func codeForPath(path string) string {
	head, _, _ := strings.Cut(path, ".")
	switch {
	case head == "school" || head == "sphere":
		return ErrClassifierMissing
	case head == "level":
		return ErrLevelRange
	case slices.Contains(subSpecFields, head):
		return ErrSubSpec
	case slices.Contains(metadataFields, head):
		return ErrMetadata
	}
	return ErrSchema
}

func fieldOrRoot(path string) string {
	if path == "" {
		return "spell"
	}
	return path
}
