package spell

import (
	"github.com/roach88/spellcanon/internal/schema"
	"github.com/roach88/spellcanon/internal/textnorm"
)

// Normalize returns a normalized copy of s; the input is not modified.
// Normalization never fails and is idempotent.
//
// Passes run in a fixed order over the whole record:
//  1. schema version migration
//  2. tradition resolution
//  3. enum canonicalization
//  4. unit alias rewriting in free text
//  5. string normalization per field mode
//  6. numeric clamping
//  7. default materialization
//  8. set deduplication and list ordering
func Normalize(s *CanonicalSpell) *CanonicalSpell {
	if s == nil {
		return nil
	}
	out := s.Clone()
	n := &normalizer{schema: schema.Default()}
	for _, pass := range n.passes() {
		pass(out)
	}
	return out
}

type normalizer struct {
	schema *schema.Schema
}

func (n *normalizer) passes() []func(*CanonicalSpell) {
	return []func(*CanonicalSpell){
		n.migrate,
		n.resolveTradition,
		n.canonicalizeEnums,
		rewriteUnitAliases,
		normalizeStrings,
		clampNumbers,
		materializeDefaults,
		sortCollections,
	}
}

func (n *normalizer) migrate(s *CanonicalSpell) {
	_ = migrateVersion(s, n.schema.CurrentVersion())
}

// resolveTradition canonicalizes the tradition and clears the classifier
// that does not belong to it. Records with both classifiers never reach
// this point; they are rejected at construction.
func (n *normalizer) resolveTradition(s *CanonicalSpell) {
	s.Tradition = Tradition(n.schema.Enum("Tradition").Canonical(string(s.Tradition)))
	switch s.Tradition {
	case Arcane:
		s.Sphere = ""
	case Divine:
		s.School = ""
	}
}

func rewriteUnitAliases(s *CanonicalSpell) {
	if s.Range != nil {
		s.Range.Text = textnorm.ReplaceUnitAliases(s.Range.Text)
	}
}

func clampNumbers(s *CanonicalSpell) {
	if r := s.Range; r != nil {
		clampScalar(r.Distance)
	}
	if a := s.Area; a != nil {
		for _, sc := range a.scalars() {
			clampScalar(*sc)
		}
		clampPtr(a.AngleDeg)
	}
	if d := s.Duration; d != nil {
		clampScalar(d.Duration)
		clampScalar(d.Uses)
	}
	if ct := s.CastingTime; ct != nil {
		clampPtr(ct.BaseValue)
		clampPtr(ct.PerLevel)
		clampPtr(ct.LevelDivisor)
	}
	for i := range s.MaterialComponents {
		m := &s.MaterialComponents[i]
		clampPtr(m.Quantity)
		clampPtr(m.GpValue)
	}
	if d := s.Damage; d != nil {
		for i := range d.Parts {
			p := &d.Parts[i]
			clampPool(&p.Base)
			for j := range p.Scaling {
				rule := &p.Scaling[j]
				clampDice(rule.DiceIncrement)
				for k := range rule.LevelBands {
					clampPool(&rule.LevelBands[k].Base)
				}
			}
		}
	}
}

func clampScalar(sc *SpellScalar) {
	if sc == nil {
		return
	}
	clampPtr(sc.Value)
	clampPtr(sc.PerLevel)
	clampPtr(sc.CapValue)
}

func clampPtr(f *float64) {
	if f != nil {
		*f = textnorm.ClampFloat(*f)
	}
}

func clampPool(p *DicePool) {
	for i := range p.Terms {
		clampDice(&p.Terms[i])
	}
}

// clampDice pulls dice into their declared bounds: a die has at least one
// side and a count is never negative.
func clampDice(t *DiceTerm) {
	if t == nil {
		return
	}
	t.Count = max(t.Count, 0)
	t.Sides = max(t.Sides, 1)
}
