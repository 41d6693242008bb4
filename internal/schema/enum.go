package schema

import (
	"strings"

	"github.com/roach88/spellcanon/internal/textnorm"
)

// Domain is the set of canonical spellings for one enumerated field.
type Domain struct {
	Name    string
	Values  []string
	aliases map[string]string
	title   bool
}

// Title-cased domains keep their display spelling when an input matches
// nothing; every other domain falls back to snake_case.
var titleDomains = map[string]bool{
	"School": true,
	"Sphere": true,
}

func newDomain(name string, values []string, aliases map[string]string) *Domain {
	return &Domain{
		Name:    name,
		Values:  values,
		aliases: aliases,
		title:   titleDomains[name],
	}
}

// Contains reports whether s is exactly one of the canonical values.
func (d *Domain) Contains(s string) bool {
	for _, v := range d.Values {
		if v == s {
			return true
		}
	}
	return false
}

// Canonical maps s to its canonical spelling. Matching is tried in order:
// case-insensitive against the values, the alias table, the snake_case form
// of s against values and aliases. Unmatched input falls back to snake_case
// or title case depending on the domain. Empty input stays empty.
func (d *Domain) Canonical(s string) string {
	t := textnorm.Normalize(s, textnorm.Structured)
	if t == "" {
		return ""
	}

	for _, v := range d.Values {
		if strings.EqualFold(v, t) {
			return v
		}
	}
	if a, ok := d.aliases[strings.ToLower(t)]; ok {
		return a
	}

	snake := textnorm.SnakeCase(t)
	for _, v := range d.Values {
		if strings.EqualFold(v, snake) {
			return v
		}
	}
	if a, ok := d.aliases[snake]; ok {
		return a
	}

	if d.title {
		return textnorm.TitleCase(t)
	}
	return snake
}
