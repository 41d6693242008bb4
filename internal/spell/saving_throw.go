package spell

// SavingThrowKind says how many saves a spell allows.
type SavingThrowKind string

const (
	SaveNone          SavingThrowKind = "none"
	SaveSingle        SavingThrowKind = "single"
	SaveMultiple      SavingThrowKind = "multiple"
	SaveDMAdjudicated SavingThrowKind = "dm_adjudicated"
)

// SavingThrowSpec is the structured saving throw of a spell. Multiple
// saves are resolved in the listed order.
type SavingThrowSpec struct {
	Kind       SavingThrowKind `json:"kind"`
	Single     *SingleSave     `json:"single,omitempty"`
	Multiple   []SingleSave    `json:"multiple,omitempty"`
	DMGuidance string          `json:"dm_guidance,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// SingleSave is one saving throw and its outcomes.
type SingleSave struct {
	ID        string      `json:"id,omitempty"`
	SaveType  string      `json:"save_type"`
	SaveVs    string      `json:"save_vs,omitempty"`
	Modifier  *int64      `json:"modifier,omitempty"`
	AppliesTo string      `json:"applies_to,omitempty"`
	Timing    string      `json:"timing,omitempty"`
	OnSuccess SaveOutcome `json:"on_success"`
	OnFailure SaveOutcome `json:"on_failure"`
}

// SaveOutcome is the result of a save.
type SaveOutcome struct {
	Result string `json:"result"`
	Notes  string `json:"notes,omitempty"`
}
