package spell

import (
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fireball() *CanonicalSpell {
	return &CanonicalSpell{
		Name:         "Fireball",
		Tradition:    Arcane,
		School:       "Evocation",
		Level:        3,
		Description:  "Boom",
		IsCantrip:    0,
		IsQuestSpell: 0,
	}
}

func cureLightWounds() *CanonicalSpell {
	return &CanonicalSpell{
		Name:        "Cure Light Wounds",
		Tradition:   Divine,
		Sphere:      "Healing",
		Level:       1,
		Description: "Heals 1d8 points of damage.",
		Components:  &Components{Verbal: true, Somatic: true},
	}
}

func magicMissile() *CanonicalSpell {
	return &CanonicalSpell{
		Name:        "Magic Missile",
		Tradition:   Arcane,
		School:      "Evocation",
		Level:       1,
		Description: "Missiles.",
		Tags:        []string{"force", "attack", "force"},
		Components:  &Components{Verbal: true, Somatic: true},
		Range: &RangeSpec{
			Kind:     RangeDistance,
			Text:     "60 yards + 10 yards/level",
			Unit:     "yards",
			Distance: PerLevel(10),
		},
		Damage: &DamageSpec{
			Kind: DamageModeled,
			Parts: []DamagePart{{
				ID:          "missile",
				DamageType:  "force",
				Base:        DicePool{Terms: []DiceTerm{{Count: 1, Sides: 4}}, FlatModifier: ptr[int64](1)},
				Application: &Application{Scope: "per_missile"},
			}},
		},
	}
}

// shuffledJSON encodes v with the keys of every object in a random order.
func shuffledJSON(t *testing.T, rng *rand.Rand, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var generic any
	require.NoError(t, json.Unmarshal(data, &generic))

	var b strings.Builder
	writeShuffled(t, rng, &b, generic)
	return []byte(b.String())
}

func writeShuffled(t *testing.T, rng *rand.Rand, b *strings.Builder, v any) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			require.NoError(t, err)
			b.Write(kb)
			b.WriteByte(':')
			writeShuffled(t, rng, b, val[k])
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			writeShuffled(t, rng, b, elem)
		}
		b.WriteByte(']')
	default:
		data, err := json.Marshal(val)
		require.NoError(t, err)
		b.Write(data)
	}
}
