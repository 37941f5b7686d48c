package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadKML reads Placemark polygons from a KML file. The placemark name is
// stored as the "name" property; ExtendedData values are split into text
// and numeric attributes like GeoJSON properties.
func LoadKML(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeKML(f)
}

// DecodeKML is LoadKML over a reader.
func DecodeKML(r io.Reader) ([]Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	type kmlBoundary struct {
		Coordinates string `xml:"LinearRing>coordinates"`
	}
	type kmlPolygon struct {
		Outer kmlBoundary   `xml:"outerBoundaryIs"`
		Inner []kmlBoundary `xml:"innerBoundaryIs"`
	}
	type kmlData struct {
		Name  string `xml:"name,attr"`
		Value string `xml:"value"`
	}
	type kmlPlacemark struct {
		Name     string       `xml:"name"`
		Polygons []kmlPolygon `xml:"Polygon"`
		Multi    []kmlPolygon `xml:"MultiGeometry>Polygon"`
		Data     []kmlData    `xml:"ExtendedData>Data"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		Bare       []kmlPlacemark `xml:"Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	// KML coordinates are "lon,lat[,alt]" tuples separated by whitespace;
	// altitude is ignored.
	parseRing := func(s string) Ring {
		var ring Ring
		for _, tuple := range strings.Fields(s) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			ring = append(ring, [2]float64{lon, lat})
		}
		return ring
	}
	var feats []Feature
	for _, pm := range append(doc.Placemarks, doc.Bare...) {
		feat := newFeature()
		for _, kp := range append(pm.Polygons, pm.Multi...) {
			poly := Polygon{parseRing(kp.Outer.Coordinates)}
			for _, in := range kp.Inner {
				poly = append(poly, parseRing(in.Coordinates))
			}
			feat.Geometry.Add(poly)
		}
		if feat.Geometry.Empty() {
			continue
		}
		if pm.Name != "" {
			feat.Props["name"] = strings.TrimSpace(pm.Name)
		}
		for _, d := range pm.Data {
			v := strings.TrimSpace(d.Value)
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				feat.Values[d.Name] = f
			} else {
				feat.Props[d.Name] = v
			}
		}
		feats = append(feats, feat)
	}
	if len(feats) == 0 {
		return nil, errors.New("kml: no polygons found")
	}
	return feats, nil
}
