package plot

import (
	"fmt"

	"github.com/aclements/go-moremath/vec"

	"geostates/internal/colormap"
)

// Bounds returns the bins+1 evenly spaced bin edges from lo to hi.
func Bounds(lo, hi float64, bins int) []float64 {
	return vec.Linspace(lo, hi, bins+1)
}

// newLegend builds one entry per bin, highest bin first, labelled with its
// edges rounded to integers.
func newLegend(d *colormap.Discrete, norm colormap.Norm) *Legend {
	b := Bounds(norm.Min, norm.Max, d.N())
	lg := &Legend{Loc: legendLoc}
	for i := d.N() - 1; i >= 0; i-- {
		lg.Entries = append(lg.Entries, LegendEntry{
			Label: fmt.Sprintf("%.0f-%.0f", b[i], b[i+1]),
			Color: d.At(i),
		})
	}
	return lg
}

// addColorbar places a narrow inset on ax showing the discrete ramp, with
// ticks at the bin edges.
func addColorbar(ax *Axes, d *colormap.Discrete, norm colormap.Norm) *Axes {
	cb := ax.Inset("colorbar", colorbarRect, Window{XMin: 0, XMax: 1, YMin: norm.Min, YMax: norm.Max})
	cb.StripTicks()
	cb.colorbar = &Colorbar{Colors: d.Colors(), Bounds: Bounds(norm.Min, norm.Max, d.N())}
	cb.YTicks = cb.colorbar.Ticks()
	return cb
}
