package spell

// RangeKind classifies how far a spell reaches.
type RangeKind string

const (
	RangePersonal         RangeKind = "personal"
	RangeTouch            RangeKind = "touch"
	RangeDistance         RangeKind = "distance"
	RangeDistanceLOS      RangeKind = "distance_los"
	RangeDistanceLOE      RangeKind = "distance_loe"
	RangeLOS              RangeKind = "los"
	RangeLOE              RangeKind = "loe"
	RangeSight            RangeKind = "sight"
	RangeHearing          RangeKind = "hearing"
	RangeVoice            RangeKind = "voice"
	RangeSenses           RangeKind = "senses"
	RangeSameRoom         RangeKind = "same_room"
	RangeSameStructure    RangeKind = "same_structure"
	RangeSameDungeonLevel RangeKind = "same_dungeon_level"
	RangeWilderness       RangeKind = "wilderness"
	RangeSamePlane        RangeKind = "same_plane"
	RangeInterplanar      RangeKind = "interplanar"
	RangeAnywhereOnPlane  RangeKind = "anywhere_on_plane"
	RangeDomain           RangeKind = "domain"
	RangeUnlimited        RangeKind = "unlimited"
	RangeSpecial          RangeKind = "special"
)

// IsDistance reports whether the kind carries a measured distance.
func (k RangeKind) IsDistance() bool {
	switch k {
	case RangeDistance, RangeDistanceLOS, RangeDistanceLOE:
		return true
	}
	return false
}

// RangeSpec describes a spell's range. Kind special keeps whatever legacy
// text could not be structured in RawLegacyValue.
type RangeSpec struct {
	Kind           RangeKind    `json:"kind"`
	Text           string       `json:"text,omitempty"`
	Unit           string       `json:"unit,omitempty"`
	Distance       *SpellScalar `json:"distance,omitempty"`
	Requires       []string     `json:"requires,omitempty"`
	Anchor         string       `json:"anchor,omitempty"`
	RegionUnit     string       `json:"region_unit,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	RawLegacyValue string       `json:"raw_legacy_value,omitempty"`
}
