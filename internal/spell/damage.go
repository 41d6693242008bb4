package spell

// DamageKind says whether damage is absent, modeled as dice, or left to the
// DM.
type DamageKind string

const (
	DamageNone          DamageKind = "none"
	DamageModeled       DamageKind = "modeled"
	DamageDMAdjudicated DamageKind = "dm_adjudicated"
)

// CombineMode says how multiple damage parts combine.
type CombineMode string

const (
	CombineSum       CombineMode = "sum"
	CombineMax       CombineMode = "max"
	CombineChooseOne CombineMode = "choose_one"
	// CombineSequence parts apply in the listed order, so their order is
	// significant and never sorted.
	CombineSequence CombineMode = "sequence"
)

// DamageSpec is the structured damage model of a spell.
type DamageSpec struct {
	Kind        DamageKind   `json:"kind"`
	CombineMode CombineMode  `json:"combine_mode,omitempty"`
	Parts       []DamagePart `json:"parts,omitempty"`
	DMGuidance  string       `json:"dm_guidance,omitempty"`
	Notes       string       `json:"notes,omitempty"`
}

// DamagePart is one typed damage roll.
type DamagePart struct {
	ID            string        `json:"id"`
	Label         string        `json:"label,omitempty"`
	DamageType    string        `json:"damage_type"`
	Base          DicePool      `json:"base"`
	Scaling       []ScalingRule `json:"scaling,omitempty"`
	ClampTotal    *ClampSpec    `json:"clamp_total,omitempty"`
	Application   *Application  `json:"application,omitempty"`
	Save          *DamageSave   `json:"save,omitempty"`
	MrInteraction string        `json:"mr_interaction,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// DiceTerm is NdS with an optional per-die modifier.
type DiceTerm struct {
	Count          int64  `json:"count"`
	Sides          int64  `json:"sides"`
	PerDieModifier *int64 `json:"per_die_modifier,omitempty"`
}

// DicePool is a sum of dice terms plus a flat modifier.
type DicePool struct {
	Terms        []DiceTerm `json:"terms"`
	FlatModifier *int64     `json:"flat_modifier,omitempty"`
}

// ScalingRule grows damage with a driver such as caster level.
type ScalingRule struct {
	Kind          string      `json:"kind"`
	Driver        string      `json:"driver"`
	Step          *int64      `json:"step,omitempty"`
	MaxSteps      *int64      `json:"max_steps,omitempty"`
	DiceIncrement *DiceTerm   `json:"dice_increment,omitempty"`
	FlatIncrement *int64      `json:"flat_increment,omitempty"`
	LevelBands    []LevelBand `json:"level_bands,omitempty"`
	Notes         string      `json:"notes,omitempty"`
}

// LevelBand replaces the base dice within a level range.
type LevelBand struct {
	Min  int64    `json:"min"`
	Max  int64    `json:"max"`
	Base DicePool `json:"base"`
}

// ClampSpec bounds the rolled total.
type ClampSpec struct {
	MinTotal *int64 `json:"min_total,omitempty"`
	MaxTotal *int64 `json:"max_total,omitempty"`
}

// Application says what a roll applies to and how many times.
type Application struct {
	Scope      string `json:"scope"`
	Ticks      *int64 `json:"ticks,omitempty"`
	TickDriver string `json:"tick_driver,omitempty"`
}

// DamageSave is the effect of a successful save on this part.
type DamageSave struct {
	Kind    string       `json:"kind"`
	Partial *SavePartial `json:"partial,omitempty"`
}

// SavePartial is the fraction of damage taken on a partial save.
type SavePartial struct {
	Numerator   int64 `json:"numerator"`
	Denominator int64 `json:"denominator"`
}
