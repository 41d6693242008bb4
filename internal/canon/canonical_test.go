package canon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"string", String("hello"), `"hello"`},
		{"empty string", String(""), `""`},
		{"int", Int(42), "42"},
		{"negative int", Int(-100), "-100"},
		{"zero", Int(0), "0"},
		{"max int64", Int(9223372036854775807), "9223372036854775807"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"null", Null{}, "null"},
		{"empty array", Array{}, "[]"},
		{"empty object", Object{}, "{}"},
		{"array of ints", Array{Int(1), Int(2), Int(3)}, "[1,2,3]"},
		{"simple object", Object{"a": Int(1)}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalNumbers(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"integral float", 3.0, "3"},
		{"fraction", 0.5, "0.5"},
		{"negative fraction", -2.25, "-2.25"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"shortest repr", 0.1, "0.1"},
		{"small fixed", 0.000001, "0.000001"},
		{"small exponent", 0.0000001, "1e-7"},
		{"large fixed", 1e20, "100000000000000000000"},
		{"large exponent", 1e21, "1e+21"},
		{"large mantissa", 1.5e300, "1.5e+300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(Float(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := MarshalCanonical(Object{"x": Array{Float(f)}})
		require.Error(t, err)

		var serr *SerializationError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "x[0]", serr.Path)
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := Object{
		"zebra": Int(1),
		"alpha": Int(2),
		"beta":  Object{"b": Int(1), "a": Int(2)},
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":{"a":2,"b":1},"zebra":1}`, string(result))
}

func TestMarshalCanonicalUTF16Ordering(t *testing.T) {
	// U+E000 sorts after U+10000 in UTF-16 (surrogate 0xD800 < 0xE000)
	// but before it in UTF-8.
	obj := Object{
		"\uE000":     Int(1),
		"\U00010000": Int(2),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"\uE000\":1}", string(result))
}

func TestMarshalCanonicalEscaping(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"html chars", "<a & b>", `"<a & b>"`},
		{"quote and backslash", `say "hi" \ bye`, `"say \"hi\" \\ bye"`},
		{"short escapes", "a\nb\tc\rd\be\ff", `"a\nb\tc\rd\be\ff"`},
		{"other control", "\x01\x1f", `"\u0001\u001f"`},
		{"line separators literal", "a\u2028b\u2029c", "\"a\u2028b\u2029c\""},
		{"non-ascii literal", "caf\u00e9 \u2728", "\"caf\u00e9 \u2728\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(String(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalNFC(t *testing.T) {
	// NFD "e" + combining acute must serialize identically to precomposed U+00E9.
	nfd := String("cafe\u0301")
	nfc := String("caf\u00e9")

	a, err := MarshalCanonical(Object{"ke\u0301y": nfd})
	require.NoError(t, err)
	b, err := MarshalCanonical(Object{"k\u00e9y": nfc})
	require.NoError(t, err)

	assert.Equal(t, string(b), string(a))
	assert.Equal(t, "{\"k\u00e9y\":\"caf\u00e9\"}", string(a))
}

func TestMarshalCanonicalNFCKeyCollision(t *testing.T) {
	obj := Object{
		"cafe\u0301": Int(1),
		"caf\u00e9":  Int(2),
	}

	_, err := MarshalCanonical(obj)
	var serr *SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "NFC")
}

func TestMarshalCanonicalInvalidUTF8(t *testing.T) {
	_, err := MarshalCanonical(Object{"name": String("bad\xff")})
	var serr *SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "name", serr.Path)
}

func TestMarshalCanonicalDeterministic(t *testing.T) {
	obj := Object{
		"c": Array{Int(3), Float(0.25), String("x")},
		"a": Object{"z": Bool(true), "y": Null{}},
		"b": String("b"),
	}

	first, err := MarshalCanonical(obj)
	require.NoError(t, err)
	for range 50 {
		again, err := MarshalCanonical(obj)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
