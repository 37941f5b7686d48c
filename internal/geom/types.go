package geom

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Ring is a closed sequence of lon/lat vertices. The closing vertex may be
// repeated or implied.
type Ring [][2]float64

// Polygon is a list of rings: first outer, following holes.
type Polygon []Ring

// Geometry is one or more polygons belonging to a single region.
type Geometry struct {
	Polygons []Polygon
	BBox     BBox
}

// Feature is a geometry with the attributes read alongside it. Text
// attributes go to Props, numeric ones to Values.
type Feature struct {
	Props    map[string]string
	Values   map[string]float64
	Geometry Geometry
}

func newFeature() Feature {
	return Feature{Props: map[string]string{}, Values: map[string]float64{}}
}
