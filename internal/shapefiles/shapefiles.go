// Package shapefiles loads the bundled census cartographic boundary files
// for states and counties.
package shapefiles

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"geostates/internal/geom"
	"geostates/internal/region"
)

const (
	StatesFile   = "cb_2018_us_state_500k/cb_2018_us_state_500k.shp"
	CountiesFile = "cb_2018_us_county_500k/cb_2018_us_county_500k.shp"
)

// Territories present in the state file that no inset covers.
var droppedTerritories = []string{"AS", "MP", "VI"}

// ErrUnknownState is returned by GetState for a code with no FIPS entry.
var ErrUnknownState = errors.New("unknown state code")

// LoadStates reads the state boundaries under dir, keyed by STUSPS, without
// American Samoa, the Northern Mariana Islands and the Virgin Islands.
func LoadStates(dir string) (*region.Collection, error) {
	feats, err := geom.LoadShapefile(filepath.Join(dir, StatesFile))
	if err != nil {
		return nil, fmt.Errorf("load states: %w", err)
	}
	c, err := region.FromFeatures(feats, "STUSPS")
	if err != nil {
		return nil, fmt.Errorf("load states: %w", err)
	}
	c = c.Drop(droppedTerritories...)
	slog.Debug("states_loaded", "dir", dir, "regions", c.Len())
	return c, nil
}

// LoadCounties reads the county boundaries under dir, keyed by GEOID.
func LoadCounties(dir string) (*region.Collection, error) {
	feats, err := geom.LoadShapefile(filepath.Join(dir, CountiesFile))
	if err != nil {
		return nil, fmt.Errorf("load counties: %w", err)
	}
	c, err := region.FromFeatures(feats, "GEOID")
	if err != nil {
		return nil, fmt.Errorf("load counties: %w", err)
	}
	slog.Debug("counties_loaded", "dir", dir, "regions", c.Len())
	return c, nil
}

// GetState returns the counties of one state, selected by the STATEFP
// attribute.
func GetState(dir, postal string) (*region.Collection, error) {
	fips, ok := region.FIPS(postal)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, postal)
	}
	counties, err := LoadCounties(dir)
	if err != nil {
		return nil, err
	}
	return StateCounties(counties, fips), nil
}

// StateCounties filters a county collection to one state FIPS code.
func StateCounties(counties *region.Collection, fips string) *region.Collection {
	return counties.Filter(func(r *region.Region) bool {
		return strings.TrimSpace(r.Props["STATEFP"]) == fips
	})
}
