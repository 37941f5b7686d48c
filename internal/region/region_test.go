package region

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geostates/internal/geom"
)

func square(x, y, size float64) geom.Geometry {
	return geom.MustParseWKT(fmt.Sprintf("POLYGON((%[1]g %[2]g, %[3]g %[2]g, %[3]g %[4]g, %[1]g %[4]g, %[1]g %[2]g))",
		x, y, x+size, y+size))
}

func testCollection(t *testing.T) *Collection {
	t.Helper()
	c := New()
	for i, code := range []string{"AA", "BB", "CC"} {
		require.NoError(t, c.Add(&Region{
			Code:     code,
			Geometry: square(float64(i*10), 0, 5),
			Values:   map[string]float64{"v": float64(i) * 2},
		}))
	}
	return c
}

func TestCollectionBasics(t *testing.T) {
	c := testCollection(t)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"AA", "BB", "CC"}, c.Codes())
	assert.True(t, c.Has("BB"))
	assert.False(t, c.Has("ZZ"))

	err := c.Add(&Region{Code: "AA"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = c.Get("ZZ")
	assert.ErrorIs(t, err, ErrNotFound)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "ZZ", nf.Code)

	v, err := c.Value("CC", "v")
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	_, err = c.Value("CC", "nope")
	assert.ErrorIs(t, err, ErrMissingValue)

	assert.Equal(t, geom.BBox{MinX: 0, MinY: 0, MaxX: 25, MaxY: 5}, c.Bounds())
}

func TestCollectionSubsets(t *testing.T) {
	c := testCollection(t)

	d := c.Drop("BB", "ZZ")
	assert.Equal(t, []string{"AA", "CC"}, d.Codes())
	assert.Equal(t, 3, c.Len(), "drop leaves the source alone")

	s, err := c.Select("CC", "AA")
	require.NoError(t, err)
	assert.Equal(t, []string{"CC", "AA"}, s.Codes())

	_, err = c.Select("AA", "ZZ")
	assert.ErrorIs(t, err, ErrNotFound)

	f := c.Filter(func(r *Region) bool { return r.Values["v"] > 0 })
	assert.Equal(t, []string{"BB", "CC"}, f.Codes())
}

func TestRange(t *testing.T) {
	c := testCollection(t)
	lo, hi, err := c.Range("v")
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 4.0, hi)

	r, _ := c.Get("BB")
	r.Values["v"] = math.NaN()
	_, _, err = c.Range("v")
	var mv *MissingValueError
	require.ErrorAs(t, err, &mv)
	assert.Equal(t, "BB", mv.Code)

	_, _, err = New().Range("v")
	assert.Error(t, err)
}

func TestJoin(t *testing.T) {
	c := testCollection(t)
	unmatched := c.Join(geom.Table{
		"AA": {"rate": 1.5},
		"ZZ": {"rate": 2},
		"XX": {"rate": 3},
	})
	assert.Equal(t, []string{"XX", "ZZ"}, unmatched)
	v, err := c.Value("AA", "rate")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func TestFromFeatures(t *testing.T) {
	feats := []geom.Feature{
		{Props: map[string]string{"STUSPS": "AA", "NAME": "Alpha"}, Geometry: square(0, 0, 1)},
		{Props: map[string]string{"NAME": "keyless"}, Geometry: square(2, 0, 1)},
		{Props: map[string]string{"STUSPS": "BB"}, Geometry: square(4, 0, 1)},
	}
	c, err := FromFeatures(feats, "STUSPS")
	require.NoError(t, err)
	assert.Equal(t, []string{"AA", "BB"}, c.Codes())
	r, _ := c.Get("AA")
	assert.Equal(t, "Alpha", r.Name())
	r, _ = c.Get("BB")
	assert.Equal(t, "BB", r.Name())

	_, err = FromFeatures(append(feats, feats[0]), "STUSPS")
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = FromFeatures(feats, "GEOID")
	assert.Error(t, err)
}

func TestFIPS(t *testing.T) {
	for postal, want := range map[string]string{"AL": "01", "ca": "06", "DC": "11", "WY": "56", "PR": "72", "GU": "66"} {
		got, ok := FIPS(postal)
		assert.True(t, ok, postal)
		assert.Equal(t, want, got, postal)
	}
	_, ok := FIPS("XX")
	assert.False(t, ok)

	p, ok := Postal("44")
	assert.True(t, ok)
	assert.Equal(t, "RI", p)

	codes := PostalCodes()
	assert.Len(t, codes, 56)
	assert.Equal(t, "AK", codes[0])
}

func TestIndex(t *testing.T) {
	c := testCollection(t)
	// a ring: the hole belongs to no region
	require.NoError(t, c.Add(&Region{
		Code:     "DD",
		Geometry: geom.MustParseWKT("POLYGON((0 20, 6 20, 6 26, 0 26, 0 20), (2 22, 4 22, 4 24, 2 24, 2 22))"),
	}))
	idx := NewIndex(c)
	assert.Equal(t, 4, idx.Size())

	r, ok := idx.At(12, 2)
	require.True(t, ok)
	assert.Equal(t, "BB", r.Code)

	_, ok = idx.At(7, 2)
	assert.False(t, ok, "between squares")

	r, ok = idx.At(1, 21)
	require.True(t, ok)
	assert.Equal(t, "DD", r.Code)

	_, ok = idx.At(3, 23)
	assert.False(t, ok, "inside the hole")
}
