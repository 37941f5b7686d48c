package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentroid(t *testing.T) {
	for _, tc := range []struct {
		name   string
		wkt    string
		cx, cy float64
	}{
		{"square", "POLYGON((0 0, 2 0, 2 2, 0 2, 0 0))", 1, 1},
		{"clockwise square", "POLYGON((0 0, 0 2, 2 2, 2 0))", 1, 1},
		// An L shape: the area centroid is pulled toward the heavy corner,
		// away from the bbox center at (1, 1).
		{"l shape", "POLYGON((0 0, 2 0, 2 1, 1 1, 1 2, 0 2, 0 0))", 5.0 / 6, 5.0 / 6},
		{"square with hole", "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0), (2 0, 4 0, 4 4, 2 4, 2 0))", 1, 2},
		{"far from origin", "POLYGON((-100 40, -98 40, -98 42, -100 42, -100 40))", -99, 41},
		{"two squares", "MULTIPOLYGON(((0 0, 1 0, 1 1, 0 1, 0 0)), ((3 0, 4 0, 4 1, 3 1, 3 0)))", 2, 0.5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ParseWKT(tc.wkt)
			require.NoError(t, err)
			x, y, ok := g.Centroid()
			require.True(t, ok)
			assert.InDelta(t, tc.cx, x, 1e-9)
			assert.InDelta(t, tc.cy, y, 1e-9)
		})
	}
}

func TestCentroidDegenerate(t *testing.T) {
	g := MustParseWKT("POLYGON((0 0, 1 1, 2 2))")
	x, y, ok := g.Centroid()
	require.True(t, ok)
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)

	_, _, ok = Geometry{}.Centroid()
	assert.False(t, ok)
}

func TestAreaAndContains(t *testing.T) {
	g := MustParseWKT("POLYGON((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 3 1, 3 3, 1 3, 1 1))")
	assert.InDelta(t, 12, g.Area(), 1e-9)
	assert.True(t, g.Contains(0.5, 0.5))
	assert.False(t, g.Contains(2, 2), "inside the hole")
	assert.False(t, g.Contains(5, 5))
	assert.Equal(t, BBox{0, 0, 4, 4}, g.BBox)
}

func TestParseWKTErrors(t *testing.T) {
	for _, s := range []string{"", "POINT(1 2)", "POLYGON(1 2)", "POLYGON((1 2, 3 4))"} {
		_, err := ParseWKT(s)
		assert.Error(t, err, s)
	}
}

func TestDecodeGeoJSON(t *testing.T) {
	const doc = `{
	  "type": "FeatureCollection",
	  "features": [
	    {"type": "Feature", "properties": {"STUSPS": "AA", "pop": 12.5, "flag": true},
	     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
	    {"type": "Feature", "properties": {"STUSPS": "BB"},
	     "geometry": {"type": "MultiPolygon", "coordinates": [[[[2,0],[3,0],[3,1],[2,0]]], [[[5,5],[6,5],[6,6],[5,5]]]]}},
	    {"type": "Feature", "properties": {"STUSPS": "CC"},
	     "geometry": {"type": "Point", "coordinates": [1, 2]}}
	  ]
	}`
	feats, err := DecodeGeoJSON(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, feats, 2)
	assert.Equal(t, "AA", feats[0].Props["STUSPS"])
	assert.Equal(t, 12.5, feats[0].Values["pop"])
	assert.Equal(t, "true", feats[0].Props["flag"])
	assert.Len(t, feats[1].Geometry.Polygons, 2)
	assert.Equal(t, BBox{2, 0, 6, 6}, feats[1].Geometry.BBox)

	_, err = DecodeGeoJSON(strings.NewReader(`{"features": []}`))
	assert.Error(t, err)
}

func TestReadValues(t *testing.T) {
	const doc = "state,rate,count\nca,1.5,10\nTX,,20\nNY,abc,3e2\n"
	tab, cols, err := ReadValues(strings.NewReader(doc), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"rate", "count"}, cols)
	assert.Equal(t, map[string]float64{"rate": 1.5, "count": 10}, tab["CA"])
	_, ok := tab["TX"]["rate"]
	assert.False(t, ok, "empty cell reads as missing")
	assert.Equal(t, 300.0, tab["NY"]["count"])

	_, _, err = ReadValues(strings.NewReader("x,y\n1,2\n"), "")
	assert.Error(t, err)

	tab, _, err = ReadValues(strings.NewReader("fips,v\n06,1\n"), "FIPS")
	require.NoError(t, err)
	assert.Equal(t, 1.0, tab["06"]["v"])
}

func TestDecodeKML(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document>
  <Placemark>
    <name>RI</name>
    <ExtendedData><Data name="rate"><value>4.25</value></Data><Data name="region"><value>NE</value></Data></ExtendedData>
    <Polygon><outerBoundaryIs><LinearRing><coordinates>
      0,0,0 4,0,0 4,4,0 0,4,0 0,0,0
    </coordinates></LinearRing></outerBoundaryIs>
    <innerBoundaryIs><LinearRing><coordinates>1,1 3,1 3,3 1,3 1,1</coordinates></LinearRing></innerBoundaryIs>
    </Polygon>
  </Placemark>
  <Placemark><name>nothing</name></Placemark>
</Document></kml>`
	feats, err := DecodeKML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, feats, 1)
	assert.Equal(t, "RI", feats[0].Props["name"])
	assert.Equal(t, "NE", feats[0].Props["region"])
	assert.Equal(t, 4.25, feats[0].Values["rate"])
	assert.InDelta(t, 12, feats[0].Geometry.Area(), 1e-9)
}

func TestLoadShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "squares.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	w.SetFields([]shp.Field{
		shp.StringField("STUSPS", 2),
		shp.FloatField("RATE", 10, 2),
	})
	// Outer rings are clockwise; the second part of the first record is a
	// counter-clockwise hole.
	outer := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}, {X: 0, Y: 0}}
	hole := []shp.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}, {X: 1, Y: 1}}
	other := []shp.Point{{X: 10, Y: 10}, {X: 10, Y: 11}, {X: 11, Y: 11}, {X: 11, Y: 10}, {X: 10, Y: 10}}
	p1 := shp.Polygon(*shp.NewPolyLine([][]shp.Point{outer, hole}))
	p2 := shp.Polygon(*shp.NewPolyLine([][]shp.Point{other}))
	w.Write(&p1)
	w.WriteAttribute(0, 0, "AA")
	w.WriteAttribute(0, 1, 2.5)
	w.Write(&p2)
	w.WriteAttribute(1, 0, "BB")
	w.WriteAttribute(1, 1, 7.0)
	w.Close()

	_, err = LoadShapefile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing attribute file")

	renameDBF(t, path)
	feats, err := LoadShapefile(path)
	require.NoError(t, err)
	require.Len(t, feats, 2)
	assert.Equal(t, "AA", feats[0].Props["STUSPS"])
	assert.InDelta(t, 2.5, feats[0].Values["RATE"], 1e-9)
	require.Len(t, feats[0].Geometry.Polygons, 1)
	assert.Len(t, feats[0].Geometry.Polygons[0], 2, "hole attached to its outer ring")
	assert.InDelta(t, 12, feats[0].Geometry.Area(), 1e-9)
	assert.Equal(t, "BB", feats[1].Props["STUSPS"])

	assert.InDelta(t, 1, feats[1].Geometry.Area(), 1e-9)

	_, err = LoadShapefile(filepath.Join(t.TempDir(), "missing.shp"))
	assert.Error(t, err)
}

// renameDBF moves the attribute file go-shp's writer names "<base>dbf" to
// "<base>.dbf", where readers look for it.
func renameDBF(t *testing.T, shpPath string) {
	t.Helper()
	base := strings.TrimSuffix(shpPath, ".shp")
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
}

func TestLoadWKT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tract.wkt")
	require.NoError(t, os.WriteFile(path, []byte("POLYGON((0 0, 3 0, 3 2, 0 2, 0 0))\n"), 0o644))
	feats, err := LoadWKT(path)
	require.NoError(t, err)
	require.Len(t, feats, 1)
	assert.Equal(t, "TRACT", feats[0].Props["code"])
	assert.Equal(t, "tract", feats[0].Props["name"])
	assert.InDelta(t, 6, feats[0].Geometry.Area(), 1e-9)

	bad := filepath.Join(t.TempDir(), "bad.wkt")
	require.NoError(t, os.WriteFile(bad, []byte("   "), 0o644))
	_, err = LoadWKT(bad)
	assert.Error(t, err)
}
