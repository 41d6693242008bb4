package spell

// Tradition is the casting tradition of a spell. Exactly one classifier
// goes with it: ARCANE spells have a school, DIVINE spells a sphere.
type Tradition string

const (
	Arcane Tradition = "ARCANE"
	Divine Tradition = "DIVINE"
)

// CanonicalSpell is the normalized, hashable form of a spell record.
//
// Optional fields are pointers or omitempty values so that a record read
// from JSON round-trips without gaining fields. Normalize materializes
// defaults; the canonical serialization prunes them again, so a default
// written out explicitly hashes the same as one left absent.
type CanonicalSpell struct {
	ID            string `json:"id,omitempty"`
	SchemaVersion int64  `json:"schema_version"`

	Name        string    `json:"name"`
	Tradition   Tradition `json:"tradition"`
	School      string    `json:"school,omitempty"`
	Sphere      string    `json:"sphere,omitempty"`
	Subschools  []string  `json:"subschools,omitempty"`
	Descriptors []string  `json:"descriptors,omitempty"`
	ClassList   []string  `json:"class_list,omitempty"`
	Level       int64     `json:"level"`

	Range              *RangeSpec              `json:"range,omitempty"`
	Components         *Components             `json:"components,omitempty"`
	MaterialComponents []MaterialComponentSpec `json:"material_components,omitempty"`
	CastingTime        *CastingTime            `json:"casting_time,omitempty"`
	Duration           *DurationSpec           `json:"duration,omitempty"`
	Area               *AreaSpec               `json:"area,omitempty"`
	Damage             *DamageSpec             `json:"damage,omitempty"`
	SavingThrow        *SavingThrowSpec        `json:"saving_throw,omitempty"`
	MagicResistance    *MagicResistanceSpec    `json:"magic_resistance,omitempty"`
	ExperienceCost     *ExperienceSpec         `json:"experience_cost,omitempty"`

	Reversible   *int64   `json:"reversible,omitempty"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags,omitempty"`
	IsQuestSpell int64    `json:"is_quest_spell"`
	IsCantrip    int64    `json:"is_cantrip"`

	// Provenance and bookkeeping. None of these take part in the hash.
	SourceRefs []SourceRef `json:"source_refs,omitempty"`
	Edition    string      `json:"edition,omitempty"`
	Author     string      `json:"author,omitempty"`
	Version    string      `json:"version,omitempty"`
	License    string      `json:"license,omitempty"`
	SourceText string      `json:"source_text,omitempty"`
	Artifacts  []Artifact  `json:"artifacts,omitempty"`
	CreatedAt  string      `json:"created_at,omitempty"`
	UpdatedAt  string      `json:"updated_at,omitempty"`
}

// SourceRef points at a published source for the spell.
type SourceRef struct {
	System string `json:"system,omitempty"`
	Book   string `json:"book"`
	Page   any    `json:"page,omitempty"`
	Note   string `json:"note,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Artifact records a file the spell was imported from.
type Artifact struct {
	Type       string `json:"type"`
	Path       string `json:"path"`
	Hash       string `json:"hash"`
	ImportedAt string `json:"imported_at,omitempty"`
}

// Components flags the verbal, somatic, material and other components a
// spell requires.
type Components struct {
	Verbal      bool `json:"verbal"`
	Somatic     bool `json:"somatic"`
	Material    bool `json:"material"`
	Focus       bool `json:"focus"`
	DivineFocus bool `json:"divine_focus"`
	Experience  bool `json:"experience"`
}

// MaterialComponentSpec is one entry of the ordered material list.
type MaterialComponentSpec struct {
	Name        string   `json:"name"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	GpValue     *float64 `json:"gp_value,omitempty"`
	IsConsumed  *bool    `json:"is_consumed,omitempty"`
	Description string   `json:"description,omitempty"`
}

// CastingTime is how long casting takes.
type CastingTime struct {
	Text           string   `json:"text"`
	Unit           string   `json:"unit"`
	BaseValue      *float64 `json:"base_value,omitempty"`
	PerLevel       *float64 `json:"per_level,omitempty"`
	LevelDivisor   *float64 `json:"level_divisor,omitempty"`
	RawLegacyValue string   `json:"raw_legacy_value,omitempty"`
}

// HasSchool reports whether a school is populated.
func (s *CanonicalSpell) HasSchool() bool {
	return s.School != ""
}

// HasSphere reports whether a sphere is populated.
func (s *CanonicalSpell) HasSphere() bool {
	return s.Sphere != ""
}

// Classifier returns the school or sphere, whichever the tradition uses.
func (s *CanonicalSpell) Classifier() string {
	if s.Tradition == Divine {
		return s.Sphere
	}
	return s.School
}
