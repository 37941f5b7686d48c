package geom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"
)

// LoadShapefile reads polygon records and their DBF attributes. Numeric and
// float DBF fields go to Values; everything else goes to Props. Records that
// are not polygons are skipped. The .dbf next to path must exist.
func LoadShapefile(path string) ([]Feature, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	// go-shp reads no attributes, without an error, when the .dbf is absent
	dbf := strings.TrimSuffix(path, filepath.Ext(path)) + ".dbf"
	if _, err := os.Stat(dbf); err != nil {
		return nil, fmt.Errorf("shp: missing attribute file %s", dbf)
	}

	fields := r.Fields()
	var feats []Feature
	for r.Next() {
		n, s := r.Shape()
		p, ok := s.(*shp.Polygon)
		if !ok {
			continue
		}
		feat := newFeature()
		for _, poly := range shapeRings(p) {
			feat.Geometry.Add(poly)
		}
		if feat.Geometry.Empty() {
			continue
		}
		for i, f := range fields {
			name := f.String()
			raw := strings.TrimSpace(strings.Trim(r.ReadAttribute(n, i), "\x00"))
			switch f.Fieldtype {
			case 'N', 'F':
				if v, err := strconv.ParseFloat(raw, 64); err == nil {
					feat.Values[name] = v
					continue
				}
			}
			feat.Props[name] = raw
		}
		feats = append(feats, feat)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("shp: %w", err)
	}
	if len(feats) == 0 {
		return nil, errors.New("shp: no polygons found")
	}
	return feats, nil
}

// shapeRings splits a shapefile polygon record into polygons. Outer rings
// are clockwise in shapefiles; each counter-clockwise ring is attached as a
// hole to the first outer ring that contains it.
func shapeRings(p *shp.Polygon) []Polygon {
	var polys []Polygon
	var holes []Ring
	for i := range p.Parts {
		start := int(p.Parts[i])
		end := len(p.Points)
		if i+1 < len(p.Parts) {
			end = int(p.Parts[i+1])
		}
		if start < 0 || end > len(p.Points) || end-start < 3 {
			continue
		}
		ring := make(Ring, 0, end-start)
		for _, pt := range p.Points[start:end] {
			ring = append(ring, [2]float64{pt.X, pt.Y})
		}
		if ring.SignedArea() > 0 {
			holes = append(holes, ring)
			continue
		}
		polys = append(polys, Polygon{ring})
	}
	for _, h := range holes {
		attached := false
		for i := range polys {
			if ringContains(polys[i][0], h[0][0], h[0][1]) {
				polys[i] = append(polys[i], h)
				attached = true
				break
			}
		}
		if !attached {
			polys = append(polys, Polygon{h})
		}
	}
	return polys
}
