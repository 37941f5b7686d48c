package geom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadWKT reads a file holding one POLYGON or MULTIPOLYGON as a single
// feature. Its code and name are the file name without extension.
func LoadWKT(path string) ([]Feature, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := ParseWKT(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	f := newFeature()
	f.Props["code"] = strings.ToUpper(name)
	f.Props["name"] = name
	f.Geometry = g
	return []Feature{f}, nil
}

// ParseWKT parses POLYGON and MULTIPOLYGON WKT into a Geometry.
// Supported: POLYGON((x y, ...), (hole...)), MULTIPOLYGON(((x y, ...)), ((...)))
func ParseWKT(wkt string) (Geometry, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Geometry{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	parseTuples := func(block string) Ring {
		var out Ring
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.TrimSpace(tup))
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			out = append(out, [2]float64{x, y})
		}
		return out
	}
	// parsePolygon takes the text between the outer "((" and "))".
	parsePolygon := func(body string) Polygon {
		// normalize spaces around ring separators
		norm := strings.ReplaceAll(body, "), (", "),(")
		norm = strings.ReplaceAll(norm, ") , (", "),(")
		var poly Polygon
		for _, rp := range strings.Split(norm, "),(") {
			poly = append(poly, parseTuples(rp))
		}
		return poly
	}
	var g Geometry
	switch {
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		i := strings.Index(s, "(((")
		j := strings.LastIndex(s, ")))")
		if i < 0 || j <= i {
			return Geometry{}, errors.New("wkt multipolygon: invalid")
		}
		body := s[i+3 : j]
		norm := strings.ReplaceAll(body, ")), ((", ")),((")
		norm = strings.ReplaceAll(norm, ")) , ((", ")),((")
		for _, pp := range strings.Split(norm, ")),((") {
			g.Add(parsePolygon(pp))
		}
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return Geometry{}, errors.New("wkt polygon: invalid")
		}
		g.Add(parsePolygon(s[i+2 : j]))
	default:
		return Geometry{}, errors.New("unsupported wkt type")
	}
	if g.Empty() {
		return Geometry{}, errors.New("wkt: no polygons parsed")
	}
	return g, nil
}

// MustParseWKT is like ParseWKT but panics on error. It is meant for
// fixtures and package-level tables.
func MustParseWKT(wkt string) Geometry {
	g, err := ParseWKT(wkt)
	if err != nil {
		panic("MustParseWKT: " + err.Error())
	}
	return g
}
