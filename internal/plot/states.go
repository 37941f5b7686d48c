// Package plot draws choropleth maps of the United States: a continental
// axes with fixed insets for Alaska, Hawaii and optionally Puerto Rico and
// Guam, region labels, and a legend or colorbar.
package plot

import (
	"fmt"
	"image/color"
	"log/slog"

	"geostates/internal/colormap"
	"geostates/internal/region"
)

func isInset(code string) bool {
	for _, c := range insetCodes {
		if c == code {
			return true
		}
	}
	return false
}

// PlotStates renders c colored by column and returns the continental axes.
// Options are validated before anything is drawn. Every region that gets a
// fixed label placement must be present, as must AK and HI, and PR and GU
// when ExtraRegions is set. An empty column colors every region with the
// middle of the colormap and is only allowed with postal labels and no
// legend.
func PlotStates(c *region.Collection, column string, opts Options) (*Axes, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if column == "" && (opts.Labels != LabelsPostal || opts.Legend != LegendNone) {
		return nil, fmt.Errorf("labels %s, legend %s: %w", opts.Labels, opts.Legend, ErrNoColumn)
	}

	required := []string{"AK", "HI"}
	if opts.ExtraRegions {
		required = append(required, "PR", "GU")
	}
	ovs := overridesFor(opts.Labels)
	for _, ov := range ovs {
		required = append(required, ov.code)
	}
	byCode := map[string]*region.Region{}
	for _, code := range required {
		r, err := c.Get(code)
		if err != nil {
			return nil, fmt.Errorf("plot states: %w", err)
		}
		byCode[code] = r
	}

	continental := c.Filter(func(r *region.Region) bool { return !isInset(r.Code) })
	rendered := append(continental.Regions(), byCode["AK"], byCode["HI"])
	if opts.ExtraRegions {
		rendered = append(rendered, byCode["PR"], byCode["GU"])
	}

	base, err := colormap.Lookup(opts.Colormap)
	if err != nil {
		return nil, err
	}
	var fill colormap.Colormap = base
	var disc *colormap.Discrete
	if opts.Legend != LegendNone {
		disc, err = colormap.Discretize(opts.Bins, base)
		if err != nil {
			return nil, err
		}
		fill = disc
	}

	values := map[string]float64{}
	var norm colormap.Norm
	if column != "" {
		scale := region.New()
		for _, r := range rendered {
			if err := scale.Add(r); err != nil {
				return nil, err
			}
		}
		if norm.Min, norm.Max, err = scale.Range(column); err != nil {
			return nil, fmt.Errorf("plot states: %w", err)
		}
		for _, r := range rendered {
			values[r.Code] = r.Values[column]
		}
	}
	colorOf := func(r *region.Region) color.Color {
		if column == "" {
			return fill.Map(0.5)
		}
		return fill.Map(norm.Scale(values[r.Code]))
	}
	fills := func(rs ...*region.Region) []color.Color {
		out := make([]color.Color, len(rs))
		for i, r := range rs {
			out[i] = colorOf(r)
		}
		return out
	}

	fig := NewFigure(opts.Width, opts.Height, opts.DPI)
	main := fig.AddAxes("continental", mainRect, continentalWindow)
	insets := []*Axes{
		main.Inset("AK", alaskaRect, alaskaWindow),
		main.Inset("HI", hawaiiRect, hawaiiWindow),
	}
	if opts.ExtraRegions {
		insets = append(insets,
			main.Inset("PR", puertoRicoRect, puertoRicoWindow),
			main.Inset("GU", guamRect, guamWindow),
		)
	}
	main.StripTicks()
	for _, ax := range insets {
		ax.StripTicks()
		applyLineStyle(ax, opts.LineStyle)
	}

	text := func(code string) string { return labelText(opts.Labels, code, values[code]) }
	moved := map[string]bool{}
	for _, ov := range ovs {
		moved[ov.code] = true
	}
	for _, r := range continental.Regions() {
		if moved[r.Code] {
			continue
		}
		x, y, ok := r.Geometry.Centroid()
		if !ok {
			slog.Debug("region_without_centroid", "code", r.Code)
			continue
		}
		main.Annotate(&Label{Code: r.Code, Text: text(r.Code), X: x, Y: y, Color: white})
	}
	for _, ov := range ovs {
		r := byCode[ov.code]
		x, y, _ := r.Geometry.Centroid()
		if ov.leader {
			main.Annotate(&Label{
				Code: r.Code, Text: text(r.Code), X: ov.tx, Y: ov.ty, Color: black,
				Leader: &Leader{X: x, Y: y, ArmA: ov.armA, ArmB: ov.armB},
			})
			continue
		}
		main.Annotate(&Label{Code: r.Code, Text: text(r.Code), X: x + ov.dx, Y: y + ov.dy, Color: white})
	}
	fixed := fixedFor(opts.Labels)
	for _, ax := range insets {
		r := byCode[ax.Name]
		x, y, _ := r.Geometry.Centroid()
		if p, ok := fixed[r.Code]; ok {
			x, y = p[0], p[1]
		}
		ax.Annotate(&Label{Code: r.Code, Text: text(r.Code), X: x, Y: y, Color: white})
	}

	switch opts.Legend {
	case LegendLegend:
		main.legend = newLegend(disc, norm)
	case LegendColorbar:
		addColorbar(main, disc, norm)
	}

	main.AddLayer(continental.Regions(), fills(continental.Regions()...), white)
	for _, ax := range insets {
		r := byCode[ax.Name]
		ax.AddLayer([]*region.Region{r}, fills(r), nil)
	}

	slog.Debug("render_done",
		"regions", len(rendered),
		"column", column,
		"labels", string(opts.Labels),
		"legend", string(opts.Legend),
		"extra", opts.ExtraRegions,
	)
	return main, nil
}

func applyLineStyle(ax *Axes, style LineStyle) {
	switch style {
	case LineNone:
		ax.SetAxisOff()
	case LineDashed:
		ax.Spine = Spine{Visible: true, Color: insetSpine, Dashed: true, Width: ax.Spine.Width}
	default:
		ax.Spine = Spine{Visible: true, Color: insetSpine, Width: ax.Spine.Width}
	}
}
