package plot

import (
	"errors"
	"fmt"
	"strings"

	"geostates/internal/colormap"
)

// LabelMode selects the text drawn on each region.
type LabelMode string

const (
	LabelsPostal LabelMode = "postal"
	LabelsValues LabelMode = "values"
	LabelsBoth   LabelMode = "both"
)

// LabelModes lists the valid label modes in cycling order.
var LabelModes = []LabelMode{LabelsPostal, LabelsValues, LabelsBoth}

// LineStyle is the border style of the inset axes.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineNone   LineStyle = "none"
)

var LineStyles = []LineStyle{LineSolid, LineDashed, LineNone}

// LegendMode selects the value key drawn next to the map.
type LegendMode string

const (
	LegendNone     LegendMode = "none"
	LegendLegend   LegendMode = "legend"
	LegendColorbar LegendMode = "colorbar"
)

var LegendModes = []LegendMode{LegendNone, LegendLegend, LegendColorbar}

var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("invalid render configuration")
	// ErrNoColumn is returned when values are needed but no column was named.
	ErrNoColumn = errors.New("a value column is required")
)

// ConfigError reports one invalid option and the accepted values.
type ConfigError struct {
	Option string
	Value  string
	Valid  []string
}

func (e *ConfigError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("invalid %s %q", e.Option, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: must be one of %s", e.Option, e.Value, strings.Join(e.Valid, ", "))
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// Options configure one PlotStates call.
type Options struct {
	Labels       LabelMode
	ExtraRegions bool
	LineStyle    LineStyle
	Colormap     string
	Legend       LegendMode
	Bins         int

	// Figure size in inches and its resolution. Zero means the default.
	Width, Height float64
	DPI           float64
}

// DefaultOptions returns postal labels, solid inset borders, copper_r, no
// legend and 10 bins on a 20x10 inch figure.
func DefaultOptions() Options {
	return Options{
		Labels:    LabelsPostal,
		LineStyle: LineSolid,
		Colormap:  "copper_r",
		Legend:    LegendNone,
		Bins:      10,
		Width:     defaultWidth,
		Height:    defaultHeight,
		DPI:       defaultDPI,
	}
}

func names[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func oneOf[T ~string](option string, v T, valid []T) error {
	for _, ok := range valid {
		if v == ok {
			return nil
		}
	}
	return &ConfigError{Option: option, Value: string(v), Valid: names(valid)}
}

// Validate reports the first invalid option as a *ConfigError.
func (o Options) Validate() error {
	if err := oneOf("labels", o.Labels, LabelModes); err != nil {
		return err
	}
	if err := oneOf("linestyle", o.LineStyle, LineStyles); err != nil {
		return err
	}
	if o.Legend != "" {
		if err := oneOf("legend", o.Legend, LegendModes); err != nil {
			return err
		}
	}
	if o.Bins < 1 {
		return &ConfigError{Option: "bins", Value: fmt.Sprint(o.Bins), Valid: []string{"a positive integer"}}
	}
	if _, err := colormap.Lookup(o.Colormap); err != nil {
		return &ConfigError{Option: "colormap", Value: o.Colormap}
	}
	if o.Width < 0 || o.Height < 0 || o.DPI < 0 {
		return &ConfigError{Option: "figure size", Value: fmt.Sprintf("%gx%g@%g", o.Width, o.Height, o.DPI)}
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Legend == "" {
		o.Legend = LegendNone
	}
	if o.Width == 0 {
		o.Width = defaultWidth
	}
	if o.Height == 0 {
		o.Height = defaultHeight
	}
	if o.DPI == 0 {
		o.DPI = defaultDPI
	}
	return o
}

// ParseLabelMode, ParseLineStyle and ParseLegendMode accept the option
// names case-insensitively.
func ParseLabelMode(s string) (LabelMode, error) {
	v := LabelMode(strings.ToLower(strings.TrimSpace(s)))
	return v, oneOf("labels", v, LabelModes)
}

func ParseLineStyle(s string) (LineStyle, error) {
	v := LineStyle(strings.ToLower(strings.TrimSpace(s)))
	return v, oneOf("linestyle", v, LineStyles)
}

func ParseLegendMode(s string) (LegendMode, error) {
	v := LegendMode(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return LegendNone, nil
	}
	return v, oneOf("legend", v, LegendModes)
}
