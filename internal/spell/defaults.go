package spell

import "github.com/roach88/spellcanon/internal/canon"

// Defaults written by materializeDefaults. pruneRules below removes the
// same values from the canonical form; the two must stay in step.
const (
	defaultCastingUnit      = "segment"
	defaultCombineMode      = CombineSum
	defaultApplicationScope = "per_target"
	defaultTickDriver       = "fixed"
	defaultDamageSave       = "none"
	defaultMrInteraction    = "normal"
	defaultSaveVs           = "spell"
	defaultSaveAppliesTo    = "each_target"
	defaultSaveTiming       = "on_effect"
	defaultMrAppliesTo      = "whole_spell"
	defaultPayer            = "caster"
	defaultPaymentTiming    = "on_completion"
	defaultPaymentSemantics = "spend"
	defaultRecoverability   = "normal_earning"
	defaultRounding         = "none"
)

func materializeDefaults(s *CanonicalSpell) {
	setDefault(&s.Reversible, 0)
	if s.Components == nil {
		s.Components = &Components{}
	}
	if s.MaterialComponents == nil {
		s.MaterialComponents = []MaterialComponentSpec{}
	}
	for i := range s.MaterialComponents {
		m := &s.MaterialComponents[i]
		setDefault(&m.Quantity, 1)
		setDefault(&m.IsConsumed, false)
	}

	if ct := s.CastingTime; ct != nil {
		if ct.Unit == "" {
			ct.Unit = defaultCastingUnit
		}
		setDefault(&ct.PerLevel, 0)
		setDefault(&ct.LevelDivisor, 1)
	}

	if r := s.Range; r != nil {
		defaultScalar(r.Distance)
	}
	if a := s.Area; a != nil {
		for _, sc := range a.scalars() {
			defaultScalar(*sc)
		}
	}
	if d := s.Duration; d != nil {
		defaultScalar(d.Duration)
		defaultScalar(d.Uses)
	}

	if d := s.Damage; d != nil {
		defaultDamage(d)
	}

	if st := s.SavingThrow; st != nil {
		for _, save := range st.saves() {
			setString(&save.SaveVs, defaultSaveVs)
			setDefault(&save.Modifier, 0)
			setString(&save.AppliesTo, defaultSaveAppliesTo)
			setString(&save.Timing, defaultSaveTiming)
		}
	}

	if mr := s.MagicResistance; mr != nil {
		setString(&mr.AppliesTo, defaultMrAppliesTo)
	}

	if xp := s.ExperienceCost; xp != nil {
		setString(&xp.Payer, defaultPayer)
		setString(&xp.PaymentTiming, defaultPaymentTiming)
		setString(&xp.PaymentSemantics, defaultPaymentSemantics)
		setDefault(&xp.CanReduceLevel, true)
		setString(&xp.Recoverability, defaultRecoverability)
		if xp.PerUnit != nil {
			setString(&xp.PerUnit.Rounding, defaultRounding)
		}
		if xp.Formula != nil {
			setString(&xp.Formula.Rounding, defaultRounding)
			if xp.Formula.Vars == nil {
				xp.Formula.Vars = []FormulaVar{}
			}
		}
		// A spell that costs experience always lists it as a component.
		if xp.Kind != XPNone {
			s.Components.Experience = true
		}
	}
}

func defaultDamage(d *DamageSpec) {
	if d.CombineMode == "" {
		d.CombineMode = defaultCombineMode
	}
	for i := range d.Parts {
		p := &d.Parts[i]
		defaultPool(&p.Base)
		if p.Application == nil {
			p.Application = &Application{}
		}
		setString(&p.Application.Scope, defaultApplicationScope)
		setDefault(&p.Application.Ticks, 1)
		setString(&p.Application.TickDriver, defaultTickDriver)
		if p.Save == nil {
			p.Save = &DamageSave{}
		}
		setString(&p.Save.Kind, defaultDamageSave)
		if p.Save.Kind == "partial" && p.Save.Partial == nil {
			p.Save.Partial = &SavePartial{Numerator: 1, Denominator: 2}
		}
		setString(&p.MrInteraction, defaultMrInteraction)
		for j := range p.Scaling {
			rule := &p.Scaling[j]
			setDefault(&rule.Step, 1)
			if rule.DiceIncrement != nil {
				setDefault(&rule.DiceIncrement.PerDieModifier, 0)
			}
			for k := range rule.LevelBands {
				defaultPool(&rule.LevelBands[k].Base)
			}
		}
	}
}

func defaultPool(p *DicePool) {
	if p.Terms == nil {
		p.Terms = []DiceTerm{}
	}
	setDefault(&p.FlatModifier, 0)
	for i := range p.Terms {
		setDefault(&p.Terms[i].PerDieModifier, 0)
	}
}

// defaultScalar gives a per-level scalar an explicit zero base.
func defaultScalar(sc *SpellScalar) {
	if sc != nil && sc.Mode == ScalarPerLevel {
		setDefault(&sc.Value, 0)
	}
}

func setDefault[T any](p **T, v T) {
	if *p == nil {
		*p = &v
	}
}

func setString(p *string, v string) {
	if *p == "" {
		*p = v
	}
}

// Keys that describe where a record came from rather than what the spell
// does. They never reach the canonical form.
var (
	rootMetadataKeys = []string{
		"id", "schema_version", "source_refs", "edition", "author",
		"version", "license", "created_at", "updated_at",
	}
	deepMetadataKeys = []string{"artifacts", "source_text"}
)

// scalarPaths lists every object path that holds a SpellScalar.
var scalarPaths = []string{
	"range.distance",
	"area.radius", "area.diameter", "area.length", "area.width", "area.height",
	"area.thickness", "area.edge", "area.surface_area", "area.volume",
	"area.tile_count", "area.count",
	"duration.duration", "duration.uses",
}

var pruneRules = buildPruneRules()

func buildPruneRules() canon.PruneRules {
	str := func(s string) canon.Value { return canon.String(s) }
	required := func(path string, keys ...string) []canon.Field {
		out := make([]canon.Field, len(keys))
		for i, k := range keys {
			out[i] = canon.Field{Path: path, Key: k}
		}
		return out
	}
	defaults := func(path string, kv map[string]canon.Value) []canon.DefaultRule {
		out := make([]canon.DefaultRule, 0, len(kv))
		for k, v := range kv {
			out = append(out, canon.DefaultRule{Path: path, Key: k, Value: v})
		}
		return out
	}

	rules := canon.PruneRules{
		RootKeys: rootMetadataKeys,
		DeepKeys: deepMetadataKeys,
		Objects: []canon.ObjectDefault{
			{Path: "damage", Value: canon.Object{"kind": str(string(DamageNone))}},
			{Path: "saving_throw", Value: canon.Object{"kind": str(string(SaveNone))}},
			{Path: "magic_resistance", Value: canon.Object{"kind": str(string(MRUnknown))}},
			{Path: "experience_cost", Value: canon.Object{"kind": str(string(XPNone))}},
		},
	}

	for _, fields := range [][]canon.Field{
		required("", "name", "tradition", "level", "description", "is_quest_spell", "is_cantrip"),
		required("casting_time", "text", "unit"),
		required("parts[]", "id", "damage_type", "base", "application", "save"),
		required("base", "terms"),
		required("formula", "expr", "vars"),
	} {
		rules.Required = append(rules.Required, fields...)
	}

	for _, d := range [][]canon.DefaultRule{
		defaults("", map[string]canon.Value{"reversible": canon.Int(0)}),
		defaults("components", map[string]canon.Value{
			"verbal": canon.Bool(false), "somatic": canon.Bool(false), "material": canon.Bool(false),
			"focus": canon.Bool(false), "divine_focus": canon.Bool(false), "experience": canon.Bool(false),
		}),
		defaults("material_components[]", map[string]canon.Value{
			"quantity": canon.Int(1), "is_consumed": canon.Bool(false),
		}),
		defaults("casting_time", map[string]canon.Value{
			"per_level": canon.Int(0), "level_divisor": canon.Int(1),
		}),
		defaults("damage", map[string]canon.Value{"combine_mode": str(string(defaultCombineMode))}),
		defaults("parts[]", map[string]canon.Value{"mr_interaction": str(defaultMrInteraction)}),
		defaults("base", map[string]canon.Value{"flat_modifier": canon.Int(0)}),
		defaults("terms[]", map[string]canon.Value{"per_die_modifier": canon.Int(0)}),
		defaults("dice_increment", map[string]canon.Value{"per_die_modifier": canon.Int(0)}),
		defaults("scaling[]", map[string]canon.Value{"step": canon.Int(1)}),
		defaults("application", map[string]canon.Value{
			"ticks": canon.Int(1), "tick_driver": str(defaultTickDriver),
		}),
		defaults("saving_throw.single", saveDefaults()),
		defaults("saving_throw.multiple[]", saveDefaults()),
		defaults("magic_resistance", map[string]canon.Value{"applies_to": str(defaultMrAppliesTo)}),
		defaults("experience_cost", map[string]canon.Value{
			"payer":             str(defaultPayer),
			"payment_timing":    str(defaultPaymentTiming),
			"payment_semantics": str(defaultPaymentSemantics),
			"can_reduce_level":  canon.Bool(true),
			"recoverability":    str(defaultRecoverability),
		}),
		defaults("experience_cost.per_unit", map[string]canon.Value{"rounding": str(defaultRounding)}),
		defaults("experience_cost.formula", map[string]canon.Value{"rounding": str(defaultRounding)}),
	} {
		rules.Defaults = append(rules.Defaults, d...)
	}

	perLevel := func(o canon.Object) bool {
		return canon.Equal(o["mode"], canon.String(string(ScalarPerLevel)))
	}
	for _, path := range scalarPaths {
		rules.Defaults = append(rules.Defaults, canon.DefaultRule{
			Path: path, Key: "value", Value: canon.Int(0), When: perLevel,
		})
	}

	return rules
}

func saveDefaults() map[string]canon.Value {
	return map[string]canon.Value{
		"save_vs":    canon.String(defaultSaveVs),
		"modifier":   canon.Int(0),
		"applies_to": canon.String(defaultSaveAppliesTo),
		"timing":     canon.String(defaultSaveTiming),
	}
}
