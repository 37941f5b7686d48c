package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// Table holds numeric columns keyed by region code: Table[code][column].
type Table map[string]map[string]float64

// LoadValues reads a CSV of per-region values. See ReadValues.
func LoadValues(path, key string) (Table, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadValues(f, key)
}

// ReadValues reads a CSV with one key column and any number of numeric
// columns. When key is empty the column is detected from the header:
// code|postal|stusps|abbr|state|geoid (case-insensitive). Cells that do not
// parse as numbers are left out, so they read as missing later on.
// It returns the table and the value column names in header order.
func ReadValues(r io.Reader, key string) (Table, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(recs) == 0 {
		return nil, nil, errors.New("empty csv")
	}
	header := recs[0]
	idxKey := -1
	for i, h := range header {
		lh := strings.ToLower(strings.TrimSpace(h))
		if key != "" {
			if lh == strings.ToLower(key) {
				idxKey = i
				break
			}
			continue
		}
		switch lh {
		case "code", "postal", "stusps", "abbr", "state", "geoid":
			if idxKey == -1 {
				idxKey = i
			}
		}
	}
	if idxKey == -1 {
		return nil, nil, errors.New("csv: key column not found")
	}
	var cols []string
	for i, h := range header {
		if i != idxKey {
			cols = append(cols, strings.TrimSpace(h))
		}
	}
	t := Table{}
	for _, row := range recs[1:] {
		if idxKey >= len(row) {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(row[idxKey]))
		if code == "" {
			continue
		}
		vals := t[code]
		if vals == nil {
			vals = map[string]float64{}
			t[code] = vals
		}
		for i, cell := range row {
			if i == idxKey || i >= len(header) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			vals[strings.TrimSpace(header[i])] = v
		}
	}
	if len(t) == 0 {
		return nil, nil, errors.New("csv: no rows parsed")
	}
	return t, cols, nil
}
