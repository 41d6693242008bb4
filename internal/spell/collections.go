package spell

import (
	"cmp"
	"slices"

	"github.com/roach88/spellcanon/internal/canon"
)

// sortCollections orders every set-valued field and every list whose order
// carries no meaning. Sequences (material components, multiple saves,
// sequence-mode damage parts, source refs) keep their input order.
func sortCollections(s *CanonicalSpell) {
	s.Subschools = sortedSet(s.Subschools)
	s.Descriptors = sortedSet(s.Descriptors)
	s.ClassList = sortedSet(s.ClassList)
	s.Tags = sortedSet(s.Tags)

	if r := s.Range; r != nil {
		r.Requires = sortedSet(r.Requires)
	}
	if mr := s.MagicResistance; mr != nil && mr.Partial != nil {
		mr.Partial.PartIDs = sortedSet(mr.Partial.PartIDs)
	}

	if d := s.Damage; d != nil {
		sortDamage(d)
	}

	if xp := s.ExperienceCost; xp != nil {
		if f := xp.Formula; f != nil {
			slices.SortStableFunc(f.Vars, func(a, b FormulaVar) int {
				return canon.CompareUTF16(a.Name, b.Name)
			})
		}
		slices.SortStableFunc(xp.Tiered, func(a, b TieredXP) int {
			return cmp.Or(
				canon.CompareUTF16(a.When, b.When),
				cmp.Compare(a.AmountXP, b.AmountXP),
			)
		})
	}
}

func sortDamage(d *DamageSpec) {
	for i := range d.Parts {
		p := &d.Parts[i]
		slices.SortStableFunc(p.Scaling, func(a, b ScalingRule) int {
			return cmp.Or(
				canon.CompareUTF16(a.Kind, b.Kind),
				canon.CompareUTF16(a.Driver, b.Driver),
				cmpPtr(a.Step, b.Step),
			)
		})
		for j := range p.Scaling {
			slices.SortStableFunc(p.Scaling[j].LevelBands, func(a, b LevelBand) int {
				return cmp.Or(cmp.Compare(a.Min, b.Min), cmp.Compare(a.Max, b.Max))
			})
		}
	}

	if d.CombineMode == CombineSequence {
		return
	}
	// Parts with equal ids fall back to their canonical bytes so the
	// order never depends on input position.
	slices.SortStableFunc(d.Parts, func(a, b DamagePart) int {
		return cmp.Or(
			canon.CompareUTF16(a.ID, b.ID),
			canon.CompareUTF16(canonicalKey(a), canonicalKey(b)),
		)
	})
}

// sortedSet drops empty and duplicate entries and sorts by UTF-16 code
// units, the same order canonical JSON uses for keys. A nil input stays nil.
func sortedSet(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != "" {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, canon.CompareUTF16)
	return slices.Compact(out)
}

func canonicalKey(v any) string {
	cv, err := canon.FromGo(v)
	if err != nil {
		return ""
	}
	b, err := canon.MarshalCanonical(cv)
	if err != nil {
		return ""
	}
	return string(b)
}

func cmpPtr[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}
