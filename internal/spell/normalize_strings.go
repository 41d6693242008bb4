package spell

import (
	"strings"

	"github.com/roach88/spellcanon/internal/textnorm"
)

// normalizeStrings applies each string field's mode. Identifiers and short
// labels are Structured, prose is Textual, formula expressions are Exact.
func normalizeStrings(s *CanonicalSpell) {
	str(&s.Name, textnorm.Structured)
	str(&s.Description, textnorm.Textual)
	strs(s.Subschools, textnorm.Structured)
	strs(s.Descriptors, textnorm.Structured)
	strs(s.ClassList, textnorm.Structured)
	strs(s.Tags, textnorm.Structured)

	str(&s.ID, textnorm.Exact)
	str(&s.Edition, textnorm.Structured)
	str(&s.Author, textnorm.Structured)
	str(&s.Version, textnorm.Structured)
	str(&s.License, textnorm.Structured)
	str(&s.SourceText, textnorm.Textual)
	str(&s.CreatedAt, textnorm.Exact)
	str(&s.UpdatedAt, textnorm.Exact)
	for i := range s.SourceRefs {
		ref := &s.SourceRefs[i]
		str(&ref.System, textnorm.Structured)
		str(&ref.Book, textnorm.Structured)
		str(&ref.Note, textnorm.Textual)
		str(&ref.URL, textnorm.Exact)
		if page, ok := ref.Page.(string); ok {
			ref.Page = textnorm.Normalize(page, textnorm.Structured)
		}
	}
	for i := range s.Artifacts {
		a := &s.Artifacts[i]
		str(&a.Type, textnorm.Exact)
		str(&a.Path, textnorm.Exact)
		str(&a.Hash, textnorm.LowercaseStructured)
		str(&a.ImportedAt, textnorm.Exact)
	}

	if r := s.Range; r != nil {
		str(&r.Text, textnorm.Structured)
		str(&r.Notes, textnorm.Textual)
		str(&r.RawLegacyValue, textnorm.Exact)
	}
	if a := s.Area; a != nil {
		str(&a.Notes, textnorm.Textual)
		str(&a.RawLegacyValue, textnorm.Exact)
	}
	if d := s.Duration; d != nil {
		str(&d.Condition, textnorm.Structured)
		str(&d.Notes, textnorm.Textual)
		str(&d.RawLegacyValue, textnorm.Exact)
	}
	if ct := s.CastingTime; ct != nil {
		str(&ct.Text, textnorm.Structured)
		str(&ct.RawLegacyValue, textnorm.Exact)
	}
	for i := range s.MaterialComponents {
		m := &s.MaterialComponents[i]
		str(&m.Name, textnorm.Structured)
		str(&m.Unit, textnorm.Structured)
		str(&m.Description, textnorm.Textual)
	}

	if d := s.Damage; d != nil {
		normalizeDamageStrings(d)
	}
	if st := s.SavingThrow; st != nil {
		str(&st.DMGuidance, textnorm.Textual)
		str(&st.Notes, textnorm.Textual)
		for _, save := range st.saves() {
			str(&save.ID, textnorm.LowercaseStructured)
			str(&save.OnSuccess.Notes, textnorm.Textual)
			str(&save.OnFailure.Notes, textnorm.Textual)
		}
	}
	if mr := s.MagicResistance; mr != nil {
		str(&mr.SpecialRule, textnorm.Textual)
		str(&mr.Notes, textnorm.Textual)
		if mr.Partial != nil {
			strs(mr.Partial.PartIDs, textnorm.LowercaseStructured)
		}
	}
	if xp := s.ExperienceCost; xp != nil {
		normalizeExperienceStrings(xp)
	}
}

func normalizeDamageStrings(d *DamageSpec) {
	str(&d.DMGuidance, textnorm.Textual)
	str(&d.Notes, textnorm.Textual)
	for i := range d.Parts {
		p := &d.Parts[i]
		str(&p.ID, textnorm.LowercaseStructured)
		str(&p.Label, textnorm.Textual)
		str(&p.Notes, textnorm.Textual)
		for j := range p.Scaling {
			str(&p.Scaling[j].Notes, textnorm.Textual)
		}
	}
}

func normalizeExperienceStrings(xp *ExperienceSpec) {
	str(&xp.DMGuidance, textnorm.Textual)
	str(&xp.SourceText, textnorm.Textual)
	str(&xp.Notes, textnorm.Textual)
	if pu := xp.PerUnit; pu != nil {
		str(&pu.UnitLabel, textnorm.Textual)
	}
	if f := xp.Formula; f != nil {
		str(&f.Expr, textnorm.Exact)
		for i := range f.Vars {
			v := &f.Vars[i]
			v.Name = varName(v.Name)
			str(&v.Label, textnorm.Textual)
		}
	}
	for i := range xp.Tiered {
		t := &xp.Tiered[i]
		str(&t.When, textnorm.Structured)
		str(&t.Notes, textnorm.Textual)
	}
}

// varName lowercases a formula variable name, joins words with
// underscores and truncates it to maxVarNameLen characters.
func varName(s string) string {
	s = strings.ReplaceAll(textnorm.Normalize(s, textnorm.LowercaseStructured), " ", "_")
	if r := []rune(s); len(r) > maxVarNameLen {
		s = string(r[:maxVarNameLen])
	}
	return s
}

func str(p *string, mode textnorm.Mode) {
	*p = textnorm.Normalize(*p, mode)
}

func strs(list []string, mode textnorm.Mode) {
	for i := range list {
		list[i] = textnorm.Normalize(list[i], mode)
	}
}
