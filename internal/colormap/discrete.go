package colormap

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/go-moremath/vec"
)

// Discrete is a colormap with a fixed number of colors. Map picks the bin
// that x falls in rather than blending.
type Discrete struct {
	colors []color.Color
}

// Discretize samples base at bins evenly spaced points of [0, 1].
func Discretize(bins int, base Colormap) (*Discrete, error) {
	if bins < 1 {
		return nil, fmt.Errorf("discretize: bins must be positive, got %d", bins)
	}
	d := &Discrete{colors: make([]color.Color, bins)}
	for i, x := range vec.Linspace(0, 1, bins) {
		d.colors[i] = base.Map(x)
	}
	return d, nil
}

// N is the number of bins.
func (d *Discrete) N() int { return len(d.colors) }

// At returns the color of bin i.
func (d *Discrete) At(i int) color.Color { return d.colors[i] }

// Colors returns a copy of the bin colors, lowest first.
func (d *Discrete) Colors() []color.Color {
	return append([]color.Color(nil), d.colors...)
}

// Map returns the color of the bin containing x. Values outside [0, 1] are
// clamped.
func (d *Discrete) Map(x float64) color.Color {
	return d.colors[d.Bin(x)]
}

// Bin returns the index of the bin containing x.
func (d *Discrete) Bin(x float64) int {
	n := len(d.colors)
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	i := int(x * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Norm maps data values linearly onto [0, 1].
type Norm struct {
	Min, Max float64
}

// Scale maps v into [0, 1], clamping values outside [Min, Max]. A
// degenerate range maps everything to 0.
func (n Norm) Scale(v float64) float64 {
	if n.Max <= n.Min {
		return 0
	}
	x := (v - n.Min) / (n.Max - n.Min)
	return math.Max(0, math.Min(1, x))
}
