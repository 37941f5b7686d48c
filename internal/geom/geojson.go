package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadGeoJSON reads a GeoJSON file and returns its polygon features.
func LoadGeoJSON(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeGeoJSON(f)
}

// DecodeGeoJSON decodes a Feature, FeatureCollection, or bare geometry.
// Polygon and MultiPolygon geometries are kept; other geometry types are
// skipped. Feature properties are split into text and numeric attributes.
func DecodeGeoJSON(r io.Reader) ([]Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	parsePoint := func(v any) (pt [2]float64, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			lon, lok := a[0].(float64)
			lat, aok := a[1].(float64)
			if lok && aok {
				return [2]float64{lon, lat}, true
			}
		}
		return [2]float64{}, false
	}
	parseRing := func(v any) (ring Ring, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ring = append(ring, pt)
			}
		}
		return ring, true
	}
	parsePolygon := func(v any) (poly Polygon, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if ring, ok := parseRing(el); ok {
				poly = append(poly, ring)
			}
		}
		return poly, true
	}
	var walkGeom func(g map[string]any, out *Geometry)
	walkGeom = func(g map[string]any, out *Geometry) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Polygon":
			if poly, ok := parsePolygon(g["coordinates"]); ok {
				out.Add(poly)
			}
		case "MultiPolygon":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					if poly, ok := parsePolygon(el); ok {
						out.Add(poly)
					}
				}
			}
		case "GeometryCollection":
			if gs, ok := g["geometries"].([]any); ok {
				for _, sub := range gs {
					if sm, ok := sub.(map[string]any); ok {
						walkGeom(sm, out)
					}
				}
			}
		}
	}
	parseFeature := func(fm map[string]any) (Feature, bool) {
		feat := newFeature()
		if g, ok := fm["geometry"].(map[string]any); ok {
			walkGeom(g, &feat.Geometry)
		}
		if feat.Geometry.Empty() {
			return Feature{}, false
		}
		pm, _ := fm["properties"].(map[string]any)
		for k, v := range pm {
			switch t := v.(type) {
			case nil:
			case string:
				feat.Props[k] = t
			case float64:
				feat.Values[k] = t
			case bool:
				feat.Props[k] = fmt.Sprint(t)
			default:
				bs, _ := json.Marshal(t)
				feat.Props[k] = string(bs)
			}
		}
		return feat, true
	}

	var feats []Feature
	t, _ := raw["type"].(string)
	switch t {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "Feature":
		if f, ok := parseFeature(raw); ok {
			feats = append(feats, f)
		}
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					if feat, ok := parseFeature(fm); ok {
						feats = append(feats, feat)
					}
				}
			}
		}
	default:
		feat := newFeature()
		walkGeom(raw, &feat.Geometry)
		if !feat.Geometry.Empty() {
			feats = append(feats, feat)
		}
	}
	if len(feats) == 0 {
		return nil, errors.New("no polygon features found")
	}
	return feats, nil
}
