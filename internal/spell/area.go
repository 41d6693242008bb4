package spell

// AreaKind classifies the shape or extent of a spell's area of effect.
type AreaKind string

const (
	AreaRadiusCircle AreaKind = "radius_circle"
	AreaRadiusSphere AreaKind = "radius_sphere"
	AreaCone         AreaKind = "cone"
	AreaLine         AreaKind = "line"
	AreaRect         AreaKind = "rect"
	AreaRectPrism    AreaKind = "rect_prism"
	AreaCylinder     AreaKind = "cylinder"
	AreaWall         AreaKind = "wall"
	AreaCube         AreaKind = "cube"
	AreaVolume       AreaKind = "volume"
	AreaSurface      AreaKind = "surface"
	AreaTiles        AreaKind = "tiles"
	AreaCreatures    AreaKind = "creatures"
	AreaObjects      AreaKind = "objects"
	AreaRegion       AreaKind = "region"
	AreaScope        AreaKind = "scope"
	AreaPoint        AreaKind = "point"
	AreaSpecial      AreaKind = "special"
)

// AreaSpec describes an area of effect.
type AreaSpec struct {
	Kind           AreaKind     `json:"kind"`
	Unit           string       `json:"unit,omitempty"`
	ShapeUnit      string       `json:"shape_unit,omitempty"`
	Radius         *SpellScalar `json:"radius,omitempty"`
	Diameter       *SpellScalar `json:"diameter,omitempty"`
	Length         *SpellScalar `json:"length,omitempty"`
	Width          *SpellScalar `json:"width,omitempty"`
	Height         *SpellScalar `json:"height,omitempty"`
	Thickness      *SpellScalar `json:"thickness,omitempty"`
	Edge           *SpellScalar `json:"edge,omitempty"`
	AngleDeg       *float64     `json:"angle_deg,omitempty"`
	SurfaceArea    *SpellScalar `json:"surface_area,omitempty"`
	Volume         *SpellScalar `json:"volume,omitempty"`
	TileUnit       string       `json:"tile_unit,omitempty"`
	TileCount      *SpellScalar `json:"tile_count,omitempty"`
	Count          *SpellScalar `json:"count,omitempty"`
	CountSubject   string       `json:"count_subject,omitempty"`
	RegionUnit     string       `json:"region_unit,omitempty"`
	ScopeUnit      string       `json:"scope_unit,omitempty"`
	MovesWith      string       `json:"moves_with,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	RawLegacyValue string       `json:"raw_legacy_value,omitempty"`
}

// scalars returns every scalar slot of the area, in field order.
func (a *AreaSpec) scalars() []**SpellScalar {
	return []**SpellScalar{
		&a.Radius, &a.Diameter, &a.Length, &a.Width, &a.Height, &a.Thickness,
		&a.Edge, &a.SurfaceArea, &a.Volume, &a.TileCount, &a.Count,
	}
}
