package spell

// DurationKind classifies how long a spell lasts.
type DurationKind string

const (
	DurationInstant        DurationKind = "instant"
	DurationTime           DurationKind = "time"
	DurationConcentration  DurationKind = "concentration"
	DurationConditional    DurationKind = "conditional"
	DurationPermanent      DurationKind = "permanent"
	DurationUntilDispelled DurationKind = "until_dispelled"
	DurationUntilTriggered DurationKind = "until_triggered"
	DurationUsageLimited   DurationKind = "usage_limited"
	DurationPlanar         DurationKind = "planar"
	DurationSpecial        DurationKind = "special"
)

// DurationSpec describes a spell's duration.
type DurationSpec struct {
	Kind           DurationKind `json:"kind"`
	Unit           string       `json:"unit,omitempty"`
	Duration       *SpellScalar `json:"duration,omitempty"`
	Condition      string       `json:"condition,omitempty"`
	Uses           *SpellScalar `json:"uses,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	RawLegacyValue string       `json:"raw_legacy_value,omitempty"`
}
