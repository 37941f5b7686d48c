package shapefiles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	attrs []string
	x, y  float64
}

// writeFixture writes unit squares with string attributes to dir/rel.
func writeFixture(t *testing.T, dir, rel string, fields []string, recs []record) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	defs := make([]shp.Field, len(fields))
	for i, f := range fields {
		defs[i] = shp.StringField(f, 16)
	}
	w.SetFields(defs)
	for i, rec := range recs {
		ring := []shp.Point{
			{X: rec.x, Y: rec.y}, {X: rec.x, Y: rec.y + 1}, {X: rec.x + 1, Y: rec.y + 1},
			{X: rec.x + 1, Y: rec.y}, {X: rec.x, Y: rec.y},
		}
		p := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
		w.Write(&p)
		for j, a := range rec.attrs {
			w.WriteAttribute(i, j, a)
		}
	}
	w.Close()
	// the writer names the attribute file "<base>dbf"
	base := strings.TrimSuffix(path, ".shp")
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
}

func TestLoadStates(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, StatesFile, []string{"STUSPS", "NAME"}, []record{
		{[]string{"CA", "California"}, 0, 0},
		{[]string{"AS", "American Samoa"}, 2, 0},
		{[]string{"TX", "Texas"}, 4, 0},
		{[]string{"MP", "Northern Mariana Islands"}, 6, 0},
		{[]string{"VI", "United States Virgin Islands"}, 8, 0},
		{[]string{"PR", "Puerto Rico"}, 10, 0},
	})
	c, err := LoadStates(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"CA", "TX", "PR"}, c.Codes())
	r, err := c.Get("TX")
	require.NoError(t, err)
	assert.Equal(t, "Texas", r.Name())

	_, err = LoadStates(t.TempDir())
	assert.Error(t, err)
}

func TestGetState(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, CountiesFile, []string{"GEOID", "STATEFP", "NAME"}, []record{
		{[]string{"06001", "06", "Alameda"}, 0, 0},
		{[]string{"48001", "48", "Anderson"}, 2, 0},
		{[]string{"06003", "06", "Alpine"}, 4, 0},
	})
	ca, err := GetState(dir, "ca")
	require.NoError(t, err)
	assert.Equal(t, []string{"06001", "06003"}, ca.Codes())

	ri, err := GetState(dir, "RI")
	require.NoError(t, err)
	assert.Equal(t, 0, ri.Len())

	_, err = GetState(dir, "XX")
	assert.ErrorIs(t, err, ErrUnknownState)
}
