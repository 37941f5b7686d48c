package plot

import (
	"math"
	"strconv"
)

// placement moves a label away from its region centroid: either by a fixed
// offset in degrees, or to a text position joined to the centroid by a
// leader line.
type placement struct {
	dx, dy float64

	leader     bool
	tx, ty     float64
	armA, armB float64
}

func offset(dx, dy float64) placement { return placement{dx: dx, dy: dy} }

func callout(tx, ty, armA, armB float64) placement {
	return placement{leader: true, tx: tx, ty: ty, armA: armA, armB: armB}
}

type override struct {
	code string
	placement
}

// Centroids of these regions fall outside their outline or collide with
// their neighbours. Labels carrying a value are two lines tall, so the
// "both" table moves more of the northeast onto callouts.
var overrides = map[LabelMode][]override{
	LabelsPostal: {
		{"FL", offset(.75, 0)},
		{"MI", offset(.58, -.85)},
		{"LA", offset(-.5, 0)},
		{"CA", offset(-.4, 0)},
		{"MA", offset(0, .075)},
		{"RI", callout(-70, 40.5, -25, 0)},
		{"NJ", callout(-72.75, 39.4, 0, 0)},
		{"DE", callout(-73.5, 38.25, 0, 0)},
		{"DC", callout(-74.2, 36.5, -30, 0)},
		{"MD", callout(-74.4, 37.35, -30, 0)},
	},
	LabelsBoth: {
		{"FL", offset(.75, 0)},
		{"MI", offset(.58, -.85)},
		{"LA", offset(-.5, 0)},
		{"CA", offset(-.4, 0)},
		{"RI", callout(-69.25, 40.25, -32, 0)},
		{"MA", callout(-69, 42.5, -30, 30)},
		{"CT", callout(-70.5, 39.25, -30, 0)},
		{"NJ", callout(-72.75, 39.25, 0, 0)},
		{"DE", callout(-73.5, 38, 0, 0)},
		{"DC", callout(-74, 36, -30, 0)},
		{"MD", callout(-73, 37, -30, 0)},
	},
}

// Fixed inset label positions for regions whose centroid sits in open
// water between islands.
var fixedLabels = map[LabelMode]map[string][2]float64{
	LabelsPostal: {"HI": {-155.52, 19.61}, "GU": {144.715, 13.355}},
	LabelsBoth:   {"HI": {-155.55, 19.62}, "GU": {144.715, 13.355}},
}

// Single-line value labels fit where postal codes do.
func overridesFor(mode LabelMode) []override {
	if mode == LabelsValues {
		mode = LabelsPostal
	}
	return overrides[mode]
}

func fixedFor(mode LabelMode) map[string][2]float64 {
	if mode == LabelsValues {
		mode = LabelsPostal
	}
	return fixedLabels[mode]
}

// FormatValue rounds v to four decimals and prints it without trailing
// zeros.
func FormatValue(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func labelText(mode LabelMode, code string, value float64) string {
	switch mode {
	case LabelsValues:
		return FormatValue(value)
	case LabelsBoth:
		return code + "\n" + FormatValue(value)
	default:
		return code
	}
}
