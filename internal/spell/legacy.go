package spell

import (
	"encoding/json"
	"strings"
	"unicode"
)

// LegacyRecord is a flat spell row as stored before structured specs
// existed. Lists may be JSON arrays or comma separated text. Free-text
// mechanics are parsed by collaborators; their output goes in Parsed.
type LegacyRecord struct {
	ID                 string `json:"id,omitempty" yaml:"id,omitempty"`
	Name               string `json:"name,omitempty" yaml:"name,omitempty"`
	School             string `json:"school,omitempty" yaml:"school,omitempty"`
	Sphere             string `json:"sphere,omitempty" yaml:"sphere,omitempty"`
	ClassList          string `json:"class_list,omitempty" yaml:"class_list,omitempty"`
	Level              int64  `json:"level,omitempty" yaml:"level,omitempty"`
	Range              string `json:"range,omitempty" yaml:"range,omitempty"`
	Components         string `json:"components,omitempty" yaml:"components,omitempty"`
	MaterialComponents string `json:"material_components,omitempty" yaml:"material_components,omitempty"`
	CastingTime        string `json:"casting_time,omitempty" yaml:"casting_time,omitempty"`
	Duration           string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Area               string `json:"area,omitempty" yaml:"area,omitempty"`
	SavingThrow        string `json:"saving_throw,omitempty" yaml:"saving_throw,omitempty"`
	Reversible         int64  `json:"reversible,omitempty" yaml:"reversible,omitempty"`
	Description        string `json:"description,omitempty" yaml:"description,omitempty"`
	Tags               string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Edition            string `json:"edition,omitempty" yaml:"edition,omitempty"`
	Author             string `json:"author,omitempty" yaml:"author,omitempty"`
	License            string `json:"license,omitempty" yaml:"license,omitempty"`
	IsQuestSpell       int64  `json:"is_quest_spell,omitempty" yaml:"is_quest_spell,omitempty"`
	IsCantrip          int64  `json:"is_cantrip,omitempty" yaml:"is_cantrip,omitempty"`
	SourceText         string `json:"source_text,omitempty" yaml:"source_text,omitempty"`

	Parsed ParsedSpecs `json:"-" yaml:"-"`
}

// ParsedSpecs holds structured specs produced from a legacy row's free
// text. A nil spec with non-empty legacy text maps to the special kind
// carrying the raw text.
type ParsedSpecs struct {
	Range              *RangeSpec
	Area               *AreaSpec
	Duration           *DurationSpec
	CastingTime        *CastingTime
	MaterialComponents []MaterialComponentSpec
	Damage             *DamageSpec
	SavingThrow        *SavingThrowSpec
	MagicResistance    *MagicResistanceSpec
	ExperienceCost     *ExperienceSpec
}

// FromLegacy maps a legacy row to a CanonicalSpell. It fails with a
// ConstructionError when the row names both a school and a sphere, or
// neither.
func FromLegacy(r LegacyRecord) (*CanonicalSpell, error) {
	s := &CanonicalSpell{
		ID:           r.ID,
		Name:         r.Name,
		School:       strings.TrimSpace(r.School),
		Sphere:       strings.TrimSpace(r.Sphere),
		ClassList:    parseList(r.ClassList),
		Level:        r.Level,
		Description:  r.Description,
		Tags:         parseList(r.Tags),
		IsQuestSpell: r.IsQuestSpell,
		IsCantrip:    r.IsCantrip,
		Edition:      r.Edition,
		Author:       r.Author,
		License:      r.License,
		SourceText:   r.SourceText,

		Damage:          r.Parsed.Damage,
		MagicResistance: r.Parsed.MagicResistance,
		ExperienceCost:  r.Parsed.ExperienceCost,
	}
	if r.Reversible != 0 {
		s.Reversible = &r.Reversible
	}
	if err := resolveClassifier(s); err != nil {
		return nil, err
	}

	s.Range = r.Parsed.Range
	if s.Range == nil && strings.TrimSpace(r.Range) != "" {
		s.Range = &RangeSpec{Kind: RangeSpecial, RawLegacyValue: r.Range}
	}
	s.Area = r.Parsed.Area
	if s.Area == nil && strings.TrimSpace(r.Area) != "" {
		s.Area = &AreaSpec{Kind: AreaSpecial, RawLegacyValue: r.Area}
	}
	s.Duration = r.Parsed.Duration
	if s.Duration == nil && strings.TrimSpace(r.Duration) != "" {
		s.Duration = &DurationSpec{Kind: DurationSpecial, RawLegacyValue: r.Duration}
	}
	s.CastingTime = r.Parsed.CastingTime
	if s.CastingTime == nil && strings.TrimSpace(r.CastingTime) != "" {
		s.CastingTime = &CastingTime{Text: r.CastingTime, Unit: "special", RawLegacyValue: r.CastingTime}
	}
	s.SavingThrow = r.Parsed.SavingThrow
	if s.SavingThrow == nil && strings.TrimSpace(r.SavingThrow) != "" {
		s.SavingThrow = &SavingThrowSpec{Kind: SaveDMAdjudicated, DMGuidance: r.SavingThrow}
	}

	s.MaterialComponents = r.Parsed.MaterialComponents
	if s.MaterialComponents == nil && strings.TrimSpace(r.MaterialComponents) != "" {
		s.MaterialComponents = []MaterialComponentSpec{{Name: r.MaterialComponents}}
	}

	s.Components = parseComponents(r.Components)
	if len(s.MaterialComponents) > 0 {
		if s.Components == nil {
			s.Components = &Components{}
		}
		s.Components.Material = true
	}
	return s, nil
}

// parseList reads a JSON string array or, failing that, comma separated
// text. Blank entries are dropped.
func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			return list
		}
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseComponents reads component letters such as "V, S, M" or "V,S,DF".
func parseComponents(raw string) *Components {
	tokens := strings.FieldsFunc(strings.ToUpper(raw), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(tokens) == 0 {
		return nil
	}
	c := &Components{}
	for _, tok := range tokens {
		switch tok {
		case "V":
			c.Verbal = true
		case "S":
			c.Somatic = true
		case "M":
			c.Material = true
		case "F":
			c.Focus = true
		case "DF":
			c.DivineFocus = true
		case "XP", "E":
			c.Experience = true
		}
	}
	return c
}
