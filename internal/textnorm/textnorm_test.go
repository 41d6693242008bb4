package textnorm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeModes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		mode     Mode
		expected string
	}{
		{"structured collapses", "  Fire   ball\n\tprime ", Structured, "Fire ball prime"},
		{"lowercase structured", "  Part  ONE ", LowercaseStructured, "part one"},
		{"lowercase non-ascii", "\u00c9CLAIR", LowercaseStructured, "\u00e9clair"},
		{"textual keeps lines", "  line one  \r\n\tline two\t\rline three", Textual, "line one\nline two\nline three"},
		{"textual trims blank edges", "\n\n body \n\n", Textual, "body"},
		{"textual keeps inner blank line", "a\n\nb", Textual, "a\n\nb"},
		{"exact trims only", "  x = a  *  b  ", Exact, "x = a  *  b"},
		{"nfc", "cafe\u0301", Structured, "caf\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input, tt.mode)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, Normalize(got, tt.mode), "must be idempotent")
		})
	}
}

func TestReplaceUnitAliases(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"10 yards", "10 yd"},
		{"1 yard", "1 yd"},
		{"30 feet", "30 ft"},
		{"1 foot", "1 ft"},
		{"2 miles", "2 mi"},
		{"6 inches", "6 inch"},
		{"10 yd.", "10 yd"},
		{"in the backyard", "in the backyard"},
		{"a footprint", "a footprint"},
		{"10 yd", "10 yd"},
		{"5 ft + 1 foot/level", "5 ft + 1 ft/level"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ReplaceUnitAliases(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, ReplaceUnitAliases(got))
		})
	}
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 0.333333, ClampFloat(1.0/3.0))
	assert.Equal(t, 2.5, ClampFloat(2.5))
	assert.Equal(t, 1.0, ClampFloat(0.9999999))
	assert.False(t, math.Signbit(ClampFloat(-0.0000001)))
	assert.True(t, math.IsNaN(ClampFloat(math.NaN())))

	for _, f := range []float64{0.1, 1.0 / 7.0, 123456.7654321, -3.0000004} {
		once := ClampFloat(f)
		assert.Equal(t, once, ClampFloat(once))
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"DistanceLos":   "distance_los",
		"DISTANCE_LOS":  "distance_los",
		"distance-los":  "distance_los",
		"Distance LOS":  "distance_los",
		"BonusAction":   "bonus_action",
		"per_level":     "per_level",
		"  Spaced  Out": "spaced_out",
		"trailing_":     "trailing",
	}
	for in, want := range tests {
		assert.Equal(t, want, SnakeCase(in), in)
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Evocation", TitleCase("eVOCATION"))
	assert.Equal(t, "Lesser Divination", TitleCase("  lesser   divination "))
}
