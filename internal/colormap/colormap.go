// Package colormap provides named continuous color scales and reduces them
// to a fixed number of bins for legends and colorbars.
package colormap

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colormap maps [0, 1] to colors.
type Colormap = palette.Continuous

// stops are evenly spaced hex colors, sampled from the matplotlib maps of
// the same name.
var stops = map[string][]string{
	// copper saturates red at 0.8; the evenly spaced samples keep the knee
	"copper":   {"#000000", "#402819", "#805033", "#bf784c", "#ff9f66", "#ffc77f"},
	"plasma":   {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"inferno":  {"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"},
	"magma":    {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
	"cividis":  {"#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8678", "#a59c74", "#c3b369", "#e1cc55", "#fee838"},
	"Blues":    {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"},
	"Greens":   {"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b"},
	"Reds":     {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"},
	"Oranges":  {"#fff5eb", "#fee6ce", "#fdd0a2", "#fdae6b", "#fd8d3c", "#f16913", "#d94801", "#a63603", "#7f2704"},
	"Purples":  {"#fcfbfd", "#efedf5", "#dadaeb", "#bcbddc", "#9e9ac8", "#807dba", "#6a51a3", "#54278f", "#3f007d"},
	"Greys":    {"#ffffff", "#f0f0f0", "#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252", "#252525", "#000000"},
	"YlOrRd":   {"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c", "#fc4e2a", "#e31a1c", "#bd0026", "#800026"},
	"YlGnBu":   {"#ffffd9", "#edf8b1", "#c7e9b4", "#7fcdbb", "#41b6c4", "#1d91c0", "#225ea8", "#253494", "#081d58"},
	"RdBu":     {"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#f7f7f7", "#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061"},
	"coolwarm": {"#3b4cc0", "#6788ee", "#9abbff", "#c9d7f0", "#edd1c2", "#f7a889", "#e26952", "#b40426"},
}

var builtin = func() map[string]Colormap {
	m := map[string]Colormap{"viridis": palette.Viridis}
	for name, hexes := range stops {
		m[name] = FromHex(hexes...)
	}
	return m
}()

// FromHex builds an evenly spaced gradient. It panics on a malformed color;
// it is meant for tables like the one above.
func FromHex(hexes ...string) Colormap {
	g := palette.RGBGradient{Colors: make([]color.RGBA, len(hexes))}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(fmt.Sprintf("colormap: %v", err))
		}
		r, gr, b := c.RGB255()
		g.Colors[i] = color.RGBA{R: r, G: gr, B: b, A: 0xff}
	}
	return g
}

type reversed struct{ base Colormap }

func (r reversed) Map(x float64) color.Color { return r.base.Map(1 - x) }

// Lookup returns the named colormap. A "_r" suffix reverses it. Names not in
// the built-in table are looked up among the ColorBrewer palettes, using
// the variant with the most levels.
func Lookup(name string) (Colormap, error) {
	if base, ok := strings.CutSuffix(name, "_r"); ok {
		cm, err := Lookup(base)
		if err != nil {
			return nil, err
		}
		return reversed{cm}, nil
	}
	if cm, ok := builtin[name]; ok {
		return cm, nil
	}
	if cm, ok := fromBrewer(name); ok {
		return cm, nil
	}
	return nil, fmt.Errorf("unknown colormap %q", name)
}

func fromBrewer(name string) (Colormap, bool) {
	levels, ok := brewer.ByName[name]
	if !ok {
		return nil, false
	}
	best := -1
	for n := range levels {
		if n > best {
			best = n
		}
	}
	if best < 2 {
		return nil, false
	}
	g := palette.RGBGradient{}
	for _, c := range levels[best] {
		g.Colors = append(g.Colors, color.RGBAModel.Convert(c).(color.RGBA))
	}
	return g, true
}

// Names lists every colormap Lookup accepts, without the reversed forms.
func Names() []string {
	seen := map[string]bool{}
	for name := range builtin {
		seen[name] = true
	}
	for name := range brewer.ByName {
		seen[name] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
