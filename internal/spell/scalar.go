package spell

// ScalarMode says whether a scalar is a fixed amount or scales with level.
type ScalarMode string

const (
	ScalarFixed    ScalarMode = "fixed"
	ScalarPerLevel ScalarMode = "per_level"
)

// SpellScalar is a numeric quantity that is either fixed or grows per
// caster level, optionally capped.
type SpellScalar struct {
	Mode     ScalarMode `json:"mode"`
	Value    *float64   `json:"value,omitempty"`
	PerLevel *float64   `json:"per_level,omitempty"`
	MinLevel *int64     `json:"min_level,omitempty"`
	MaxLevel *int64     `json:"max_level,omitempty"`
	CapValue *float64   `json:"cap_value,omitempty"`
	CapLevel *int64     `json:"cap_level,omitempty"`
	Rounding string     `json:"rounding,omitempty"`
}

// Fixed returns a fixed scalar.
func Fixed(v float64) *SpellScalar {
	return &SpellScalar{Mode: ScalarFixed, Value: &v}
}

// PerLevel returns a scalar growing by v per level.
func PerLevel(v float64) *SpellScalar {
	return &SpellScalar{Mode: ScalarPerLevel, PerLevel: &v}
}
