package spell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	s, err := Decode([]byte(`{"name":"Fireball","tradition":"ARCANE","school":"Evocation","level":3,"description":"Boom","is_cantrip":0,"is_quest_spell":0}`))
	require.NoError(t, err)
	assert.Equal(t, fireball(), s)
}

func TestDecodeDerivesTradition(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Tradition
	}{
		{"school implies arcane", `{"name":"x","school":"Evocation","level":1,"description":"d","is_cantrip":0,"is_quest_spell":0}`, Arcane},
		{"sphere implies divine", `{"name":"x","sphere":"Healing","level":1,"description":"d","is_cantrip":0,"is_quest_spell":0}`, Divine},
		{"explicit tradition kept", `{"name":"x","tradition":"arcane","school":"Evocation","level":1,"description":"d","is_cantrip":0,"is_quest_spell":0}`, "arcane"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Tradition)
		})
	}
}

func TestDecodeConstructionErrors(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		fields []string
	}{
		{
			name:   "school and sphere",
			json:   `{"name":"Fireball","school":"Evocation","sphere":"Healing","level":3,"description":"Boom","is_cantrip":0,"is_quest_spell":0}`,
			fields: []string{"school", "sphere"},
		},
		{
			name:   "neither classifier",
			json:   `{"name":"Fireball","tradition":"ARCANE","level":3,"description":"Boom","is_cantrip":0,"is_quest_spell":0}`,
			fields: []string{"school", "sphere"},
		},
		{
			name:   "legacy both tradition",
			json:   `{"name":"Fireball","tradition":"BOTH","school":"Evocation","sphere":"Healing","level":3,"description":"Boom","is_cantrip":0,"is_quest_spell":0}`,
			fields: []string{"tradition"},
		},
		{
			name:   "arcane with only sphere",
			json:   `{"name":"Fireball","tradition":"ARCANE","sphere":"Healing","level":3,"description":"Boom","is_cantrip":0,"is_quest_spell":0}`,
			fields: []string{"tradition", "sphere"},
		},
		{
			name:   "divine with only school",
			json:   `{"name":"Fireball","tradition":"DIVINE","school":"Evocation","level":3,"description":"Boom","is_cantrip":0,"is_quest_spell":0}`,
			fields: []string{"tradition", "school"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.json))
			var cerr *ConstructionError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Equal(t, "Fireball", cerr.Record)
			assert.Equal(t, tt.fields, cerr.Fields)
			assert.Contains(t, err.Error(), "Fireball")
		})
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"unknown field": `{"name":"x","school":"Evocation","level":1,"description":"d","is_cantrip":0,"is_quest_spell":0,"colour":"red"}`,
		"trailing data": `{"name":"x","school":"Evocation","level":1,"description":"d","is_cantrip":0,"is_quest_spell":0} {}`,
		"wrong type":    `{"name":"x","school":"Evocation","level":"three","description":"d","is_cantrip":0,"is_quest_spell":0}`,
		"not json":      `name: x`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(data))
			require.Error(t, err)
			var cerr *ConstructionError
			assert.False(t, errors.As(err, &cerr))
		})
	}
}

func TestConstructionErrorMessage(t *testing.T) {
	err := &ConstructionError{Record: "sp-1 Fireball", Fields: []string{"school", "sphere"}, Message: "conflict"}
	assert.Equal(t, `construct spell "sp-1 Fireball": conflict (school, sphere)`, err.Error())

	err = &ConstructionError{Fields: []string{"tradition"}, Message: "bad"}
	assert.Equal(t, `construct spell "<unnamed>": bad (tradition)`, err.Error())
}

func TestFromLegacy(t *testing.T) {
	s, err := FromLegacy(LegacyRecord{
		ID:                 "legacy-7",
		Name:               "Fireball",
		School:             " Evocation ",
		ClassList:          `["Wizard","Mage"]`,
		Level:              3,
		Range:              "10 yards + 10 yards/level",
		Components:         "V, S, M",
		MaterialComponents: "a tiny ball of bat guano and sulphur",
		CastingTime:        "3",
		Duration:           "Instantaneous",
		Area:               "20-foot radius",
		SavingThrow:        "1/2",
		Description:        "Boom",
		Tags:               "fire, attack, ",
		Reversible:         1,
	})
	require.NoError(t, err)

	assert.Equal(t, Arcane, s.Tradition)
	assert.Equal(t, "Evocation", s.School)
	assert.Equal(t, []string{"Wizard", "Mage"}, s.ClassList)
	assert.Equal(t, []string{"fire", "attack"}, s.Tags)
	assert.Equal(t, &Components{Verbal: true, Somatic: true, Material: true}, s.Components)
	assert.Equal(t, []MaterialComponentSpec{{Name: "a tiny ball of bat guano and sulphur"}}, s.MaterialComponents)
	assert.Equal(t, &RangeSpec{Kind: RangeSpecial, RawLegacyValue: "10 yards + 10 yards/level"}, s.Range)
	assert.Equal(t, &CastingTime{Text: "3", Unit: "special", RawLegacyValue: "3"}, s.CastingTime)
	assert.Equal(t, DurationSpecial, s.Duration.Kind)
	assert.Equal(t, AreaSpecial, s.Area.Kind)
	assert.Equal(t, SaveDMAdjudicated, s.SavingThrow.Kind)
	assert.Equal(t, int64(1), *s.Reversible)

	hash, err := ComputeHash(s)
	require.NoError(t, err)
	assert.Len(t, hash, 64)
}

func TestFromLegacyPrefersParsedSpecs(t *testing.T) {
	parsed := &RangeSpec{Kind: RangeDistance, Unit: "yd", Distance: Fixed(10)}
	s, err := FromLegacy(LegacyRecord{
		Name:        "Bless",
		Sphere:      "All",
		Level:       1,
		Range:       "60 yards",
		Description: "Blessing.",
		Parsed:      ParsedSpecs{Range: parsed},
	})
	require.NoError(t, err)
	assert.Equal(t, Divine, s.Tradition)
	assert.Same(t, parsed, s.Range)
}

func TestFromLegacyRejectsBothClassifiers(t *testing.T) {
	_, err := FromLegacy(LegacyRecord{ID: "9", Name: "Dual", School: "Evocation", Sphere: "Healing", Description: "x"})
	var cerr *ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "9 Dual", cerr.Record)
}

func TestParseComponents(t *testing.T) {
	tests := map[string]*Components{
		"":            nil,
		"V":           {Verbal: true},
		"v,s":         {Verbal: true, Somatic: true},
		"V, S, M, F":  {Verbal: true, Somatic: true, Material: true, Focus: true},
		"V,S,DF":      {Verbal: true, Somatic: true, DivineFocus: true},
		"V, S, M, XP": {Verbal: true, Somatic: true, Material: true, Experience: true},
	}
	for raw, want := range tests {
		assert.Equal(t, want, parseComponents(raw), raw)
	}
}
