package spell

// canonicalizeEnums rewrites every enumerated field to its canonical
// spelling as declared by the schema.
func (n *normalizer) canonicalizeEnums(s *CanonicalSpell) {
	n.enum("School", &s.School)
	n.enum("Sphere", &s.Sphere)

	if r := s.Range; r != nil {
		enumKind(n, "RangeKind", &r.Kind)
		n.enum("RangeUnit", &r.Unit)
		n.enum("RangeAnchor", &r.Anchor)
		n.enum("RegionUnit", &r.RegionUnit)
		for i := range r.Requires {
			n.enum("RangeContext", &r.Requires[i])
		}
		n.scalar(r.Distance)
	}

	if a := s.Area; a != nil {
		enumKind(n, "AreaKind", &a.Kind)
		n.enum("AreaUnit", &a.Unit)
		n.enum("AreaShapeUnit", &a.ShapeUnit)
		n.enum("TileUnit", &a.TileUnit)
		n.enum("CountSubject", &a.CountSubject)
		n.enum("RegionUnit", &a.RegionUnit)
		n.enum("ScopeUnit", &a.ScopeUnit)
		n.enum("MovesWith", &a.MovesWith)
		for _, sc := range a.scalars() {
			n.scalar(*sc)
		}
	}

	if d := s.Duration; d != nil {
		enumKind(n, "DurationKind", &d.Kind)
		n.enum("DurationUnit", &d.Unit)
		n.scalar(d.Duration)
		n.scalar(d.Uses)
	}

	if ct := s.CastingTime; ct != nil {
		n.enum("CastingTimeUnit", &ct.Unit)
	}

	if d := s.Damage; d != nil {
		n.damage(d)
	}

	if st := s.SavingThrow; st != nil {
		enumKind(n, "SavingThrowKind", &st.Kind)
		for _, save := range st.saves() {
			n.enum("SaveType", &save.SaveType)
			n.enum("SaveVs", &save.SaveVs)
			n.enum("SaveAppliesTo", &save.AppliesTo)
			n.enum("SaveTiming", &save.Timing)
			n.enum("SaveResult", &save.OnSuccess.Result)
			n.enum("SaveResult", &save.OnFailure.Result)
		}
	}

	if mr := s.MagicResistance; mr != nil {
		enumKind(n, "MagicResistanceKind", &mr.Kind)
		n.enum("MrAppliesTo", &mr.AppliesTo)
		if mr.Partial != nil {
			n.enum("MrPartialScope", &mr.Partial.Scope)
		}
	}

	if xp := s.ExperienceCost; xp != nil {
		n.experience(xp)
	}
}

func (n *normalizer) damage(d *DamageSpec) {
	enumKind(n, "DamageKind", &d.Kind)
	enumKind(n, "DamageCombineMode", &d.CombineMode)
	for i := range d.Parts {
		p := &d.Parts[i]
		n.enum("DamageType", &p.DamageType)
		n.enum("MrInteraction", &p.MrInteraction)
		for j := range p.Scaling {
			n.enum("ScalingKind", &p.Scaling[j].Kind)
			n.enum("ScalingDriver", &p.Scaling[j].Driver)
		}
		if app := p.Application; app != nil {
			n.enum("ApplicationScope", &app.Scope)
			n.enum("TickDriver", &app.TickDriver)
		}
		if p.Save != nil {
			n.enum("DamageSaveKind", &p.Save.Kind)
		}
	}
}

func (n *normalizer) experience(xp *ExperienceSpec) {
	enumKind(n, "ExperienceKind", &xp.Kind)
	n.enum("ExperiencePayer", &xp.Payer)
	n.enum("PaymentTiming", &xp.PaymentTiming)
	n.enum("PaymentSemantics", &xp.PaymentSemantics)
	n.enum("Recoverability", &xp.Recoverability)
	if pu := xp.PerUnit; pu != nil {
		n.enum("UnitKind", &pu.UnitKind)
		n.enum("Rounding", &pu.Rounding)
	}
	if f := xp.Formula; f != nil {
		n.enum("Rounding", &f.Rounding)
		for i := range f.Vars {
			n.enum("VarKind", &f.Vars[i].VarKind)
		}
	}
}

func (n *normalizer) scalar(sc *SpellScalar) {
	if sc == nil {
		return
	}
	enumKind(n, "ScalarMode", &sc.Mode)
	n.enum("ScalarRounding", &sc.Rounding)
}

func (n *normalizer) enum(name string, p *string) {
	enumKind(n, name, p)
}

func enumKind[T ~string](n *normalizer, name string, p *T) {
	if *p == "" {
		return
	}
	*p = T(n.schema.Enum(name).Canonical(string(*p)))
}

// saves returns the single save and every entry of multiple, in order.
func (st *SavingThrowSpec) saves() []*SingleSave {
	var out []*SingleSave
	if st.Single != nil {
		out = append(out, st.Single)
	}
	for i := range st.Multiple {
		out = append(out, &st.Multiple[i])
	}
	return out
}
