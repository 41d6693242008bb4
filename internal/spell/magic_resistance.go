package spell

// MagicResistanceKind says how magic resistance interacts with a spell.
type MagicResistanceKind string

const (
	MRUnknown MagicResistanceKind = "unknown"
	MRNormal  MagicResistanceKind = "normal"
	MRIgnores MagicResistanceKind = "ignores_mr"
	MRPartial MagicResistanceKind = "partial"
	MRSpecial MagicResistanceKind = "special"
)

// MagicResistanceSpec is the structured magic resistance rule.
type MagicResistanceSpec struct {
	Kind        MagicResistanceKind `json:"kind"`
	AppliesTo   string              `json:"applies_to,omitempty"`
	Partial     *PartialMR          `json:"partial,omitempty"`
	SpecialRule string              `json:"special_rule,omitempty"`
	Notes       string              `json:"notes,omitempty"`
}

// PartialMR limits resistance to part of the spell. PartIDs is a set.
type PartialMR struct {
	Scope   string   `json:"scope"`
	PartIDs []string `json:"part_ids,omitempty"`
}
