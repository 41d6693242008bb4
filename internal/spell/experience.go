package spell

// ExperienceKind says how an experience cost is computed.
type ExperienceKind string

const (
	XPNone          ExperienceKind = "none"
	XPFixed         ExperienceKind = "fixed"
	XPPerUnit       ExperienceKind = "per_unit"
	XPFormula       ExperienceKind = "formula"
	XPTiered        ExperienceKind = "tiered"
	XPDMAdjudicated ExperienceKind = "dm_adjudicated"
)

// maxVarNameLen bounds formula variable names.
const maxVarNameLen = 32

// ExperienceSpec is the experience point cost of casting.
type ExperienceSpec struct {
	Kind             ExperienceKind `json:"kind"`
	Payer            string         `json:"payer,omitempty"`
	PaymentTiming    string         `json:"payment_timing,omitempty"`
	PaymentSemantics string         `json:"payment_semantics,omitempty"`
	CanReduceLevel   *bool          `json:"can_reduce_level,omitempty"`
	Recoverability   string         `json:"recoverability,omitempty"`
	AmountXP         *int64         `json:"amount_xp,omitempty"`
	PerUnit          *PerUnitXP     `json:"per_unit,omitempty"`
	Formula          *FormulaXP     `json:"formula,omitempty"`
	Tiered           []TieredXP     `json:"tiered,omitempty"`
	DMGuidance       string         `json:"dm_guidance,omitempty"`
	SourceText       string         `json:"source_text,omitempty"`
	Notes            string         `json:"notes,omitempty"`
}

// PerUnitXP charges a fixed amount per unit of something.
type PerUnitXP struct {
	XPPerUnit int64  `json:"xp_per_unit"`
	UnitKind  string `json:"unit_kind"`
	UnitLabel string `json:"unit_label,omitempty"`
	Rounding  string `json:"rounding,omitempty"`
	MinXP     *int64 `json:"min_xp,omitempty"`
	MaxXP     *int64 `json:"max_xp,omitempty"`
}

// FormulaXP computes the cost from an expression over named variables.
// Expr is kept verbatim apart from trimming.
type FormulaXP struct {
	Expr     string       `json:"expr"`
	Vars     []FormulaVar `json:"vars"`
	Rounding string       `json:"rounding,omitempty"`
	MinXP    *int64       `json:"min_xp,omitempty"`
	MaxXP    *int64       `json:"max_xp,omitempty"`
}

// FormulaVar names one input of a FormulaXP.
type FormulaVar struct {
	Name    string `json:"name"`
	VarKind string `json:"var_kind"`
	Label   string `json:"label,omitempty"`
}

// TieredXP is one tier of a tiered cost.
type TieredXP struct {
	When     string `json:"when"`
	AmountXP int64  `json:"amount_xp"`
	Notes    string `json:"notes,omitempty"`
}
