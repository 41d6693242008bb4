package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fireball = `{
	"name": "Fireball",
	"tradition": "ARCANE",
	"school": "Evocation",
	"level": 3,
	"description": "Boom",
	"is_cantrip": 0,
	"is_quest_spell": 0,
	"schema_version": 2
}`

func TestDefaultCompiles(t *testing.T) {
	s := Default()
	require.NotNil(t, s)
	assert.Equal(t, int64(2), s.CurrentVersion())
	assert.Contains(t, s.EnumNames(), "RangeKind")
}

func TestCompileRejectsBrokenSchema(t *testing.T) {
	_, err := Compile(`#Spell: {`)
	require.Error(t, err)

	_, err = Compile(`#SchemaVersion: 1`)
	require.Error(t, err)
}

func TestValidateAcceptsMinimalSpell(t *testing.T) {
	v, err := Default().Validate([]byte(fireball))
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestValidateReportsPaths(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{
			name: "level out of range",
			doc:  `{"name":"X","tradition":"ARCANE","school":"Evocation","level":13,"description":"d","is_cantrip":0,"is_quest_spell":0}`,
			path: "level",
		},
		{
			name: "missing school for arcane",
			doc:  `{"name":"X","tradition":"ARCANE","level":1,"description":"d","is_cantrip":0,"is_quest_spell":0}`,
			path: "school",
		},
		{
			name: "missing sphere for divine",
			doc:  `{"name":"X","tradition":"DIVINE","level":1,"description":"d","is_cantrip":0,"is_quest_spell":0}`,
			path: "sphere",
		},
		{
			name: "bad version",
			doc:  `{"name":"X","tradition":"ARCANE","school":"Evocation","level":1,"description":"d","is_cantrip":0,"is_quest_spell":0,"version":"one"}`,
			path: "version",
		},
		{
			name: "unknown field",
			doc:  `{"name":"X","tradition":"ARCANE","school":"Evocation","level":1,"description":"d","is_cantrip":0,"is_quest_spell":0,"mana":3}`,
			path: "mana",
		},
		{
			name: "distance range without unit",
			doc:  `{"name":"X","tradition":"ARCANE","school":"Evocation","level":1,"description":"d","is_cantrip":0,"is_quest_spell":0,"range":{"kind":"distance","distance":{"mode":"fixed","value":10}}}`,
			path: "range.unit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Default().Validate([]byte(tt.doc))
			require.NoError(t, err)
			require.NotEmpty(t, v)

			var paths []string
			for _, e := range v {
				paths = append(paths, e.Path)
			}
			assert.Contains(t, paths, tt.path)
		})
	}
}

func TestValidateRejectsMalformedDocument(t *testing.T) {
	_, err := Default().Validate([]byte(`{"name":`))
	require.Error(t, err)
}

func TestDomainCanonical(t *testing.T) {
	s := Default()
	tests := []struct {
		enum, input, want string
	}{
		{"RangeKind", "DISTANCE_LOS", "distance_los"},
		{"RangeKind", "DistanceLos", "distance_los"},
		{"RangeKind", "Same Room", "same_room"},
		{"RangeKind", "touch", "touch"},
		{"RangeUnit", "Feet", "ft"},
		{"RangeUnit", "YARDS", "yd"},
		{"AreaUnit", "sq_ft", "ft2"},
		{"AreaUnit", "SqFt", "ft2"},
		{"DurationUnit", "Rounds", "round"},
		{"CastingTimeUnit", "Bonus Action", "bonus_action"},
		{"UnitKind", "GpValue1000", "gp_value_1000"},
		{"Tradition", "arcane", "ARCANE"},
		{"Tradition", " Divine ", "DIVINE"},
		{"School", "evocation", "Evocation"},
		{"School", "conjuration/summoning", "Conjuration/Summoning"},
		{"School", "elemental fire", "Elemental Fire"},
		{"Sphere", "HEALING", "Healing"},
		{"DamageType", "Totally New", "totally_new"},
		{"RangeKind", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.enum+"/"+tt.input, func(t *testing.T) {
			got := s.Enum(tt.enum).Canonical(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, s.Enum(tt.enum).Canonical(got), "must be idempotent")
		})
	}
}

func TestUnknownEnumFallsBack(t *testing.T) {
	d := Default().Enum("NoSuchEnum")
	assert.Equal(t, "some_value", d.Canonical("SomeValue"))
	assert.False(t, d.Contains("some_value"))
}
