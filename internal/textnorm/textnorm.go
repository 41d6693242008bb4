// Package textnorm holds the string and number normalization primitives
// applied to spell fields before hashing.
package textnorm

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Mode selects how a string field is normalized.
type Mode int

const (
	// Structured collapses all whitespace runs (newlines included) to a
	// single space and trims the ends.
	Structured Mode = iota
	// LowercaseStructured is Structured followed by Unicode lowercasing.
	LowercaseStructured
	// Textual keeps line breaks, unifies CRLF/CR to LF, trims horizontal
	// whitespace on each line and drops leading and trailing blank lines.
	Textual
	// Exact only trims the ends.
	Exact
)

func (m Mode) String() string {
	switch m {
	case Structured:
		return "structured"
	case LowercaseStructured:
		return "lowercase_structured"
	case Textual:
		return "textual"
	case Exact:
		return "exact"
	}
	return "unknown"
}

// Normalize applies NFC and then the given mode. It is idempotent.
func Normalize(s string, mode Mode) string {
	s = norm.NFC.String(s)
	switch mode {
	case Structured:
		return strings.Join(strings.Fields(s), " ")
	case LowercaseStructured:
		return cases.Lower(language.Und).String(strings.Join(strings.Fields(s), " "))
	case Textual:
		return textual(s)
	default:
		return strings.TrimSpace(s)
	}
}

func textual(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimFunc(line, isHorizontalSpace)
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func isHorizontalSpace(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

// Longer tokens are listed first so "yards" wins over "yard".
var unitAliasPattern = regexp.MustCompile(
	`\b(?:yards|yard|feet|foot|miles|mile|inches|inch)\b|\b(?:yd|ft|mi)\.|\bin\.\b`,
)

var unitAliases = map[string]string{
	"yards": "yd", "yard": "yd", "yd.": "yd",
	"feet": "ft", "foot": "ft", "ft.": "ft",
	"miles": "mi", "mile": "mi", "mi.": "mi",
	"inches": "inch", "inch": "inch", "in.": "inch",
}

// ReplaceUnitAliases rewrites spelled-out distance units in free text to
// their abbreviations. Only whole words are replaced, so "backyard" and
// "footprint" are left alone.
func ReplaceUnitAliases(s string) string {
	return unitAliasPattern.ReplaceAllStringFunc(s, func(m string) string {
		if r, ok := unitAliases[m]; ok {
			return r
		}
		return m
	})
}

// Precision is the number of fractional decimal digits kept by ClampFloat.
const Precision = 6

var scale = math.Pow10(Precision)

// ClampFloat rounds f to Precision fractional digits. Negative zero becomes
// zero. NaN and infinities pass through unchanged.
func ClampFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	r := math.Round(f*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// SnakeCase converts "DistanceLos", "DISTANCE_LOS", "distance-los" and
// "Distance LOS" to "distance_los".
func SnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(strings.TrimSpace(s))
	pendingSep := false
	for i, r := range runes {
		if r == ' ' || r == '-' || r == '_' {
			pendingSep = b.Len() > 0
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				pendingSep = true
			}
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// TitleCase capitalizes each word and lowercases the rest, after collapsing
// whitespace.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(Normalize(s, Structured))
}
