package plot

import (
	"image/color"
	"strconv"
	"strings"

	"geostates/internal/geom"
)

// Text and line sizes in points.
const (
	fontSize      = 10
	edgeWidth     = 1.0
	leaderWidth   = 1.0
	tickLength    = 3.5
	legendPad     = 0.6 * fontSize
	legendSwatch  = 10
	legendSpacing = 0.5 * fontSize
)

var legendFrame = color.NRGBA{0xcc, 0xcc, 0xcc, 0xcc}

// Anchor is the horizontal alignment of text.
type Anchor int

const (
	AnchorMiddle Anchor = iota
	AnchorStart
)

// Painter is a device a figure is drawn on. Coordinates are device pixels
// with y growing downwards.
type Painter interface {
	Rect(x0, y0, x1, y1 float64, fill color.Color)
	// Polygon fills rings with the even-odd rule.
	Polygon(rings [][][2]float64, fill color.Color)
	Line(pts [][2]float64, c color.Color, width float64, dashed, closed bool)
	// Text draws one line vertically centered on y.
	Text(x, y float64, s string, c color.Color, a Anchor)
	TextWidth(s string) float64
	LineHeight() float64
	Clip(x0, y0, x1, y1 float64)
	Unclip()
}

// Draw paints the whole figure on p: background, then each axes with its
// layers, frame, ticks, labels, legend and insets.
func (f *Figure) Draw(p Painter) {
	w, h := f.Pixels()
	p.Rect(0, 0, float64(w), float64(h), white)
	for _, ax := range f.axes {
		drawAxes(ax, p)
	}
}

func drawAxes(ax *Axes, p Painter) {
	f := ax.fig
	x0, y0, x1, y1 := ax.PixelBounds()
	if ax.AxisOn {
		p.Rect(x0, y0, x1, y1, white)
	}

	p.Clip(x0, y0, x1, y1)
	for _, l := range ax.layers {
		for i, r := range l.Regions {
			if !visible(ax, r.Geometry.BBox) {
				continue
			}
			rings := projectGeometry(ax, r.Geometry)
			if len(rings) == 0 {
				continue
			}
			p.Polygon(rings, l.Fills[i])
			if l.Edge != nil {
				for _, ring := range rings {
					p.Line(ring, l.Edge, f.Points(edgeWidth), false, true)
				}
			}
		}
	}
	if cb := ax.colorbar; cb != nil {
		for i, c := range cb.Colors {
			_, top := ax.ToPixel(0, cb.Bounds[i+1])
			_, bottom := ax.ToPixel(0, cb.Bounds[i])
			p.Rect(x0, top, x1, bottom, c)
		}
	}
	p.Unclip()

	if ax.AxisOn && ax.Spine.Visible {
		frame := [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
		p.Line(frame, ax.Spine.Color, f.Points(ax.Spine.Width), ax.Spine.Dashed, true)
	}
	drawTicks(ax, p)

	for _, l := range ax.labels {
		drawLabel(ax, l, p)
	}
	if ax.legend != nil {
		drawLegend(ax, ax.legend, p)
	}
	for _, in := range ax.insets {
		drawAxes(in, p)
	}
}

// visible reports whether b overlaps the window of ax.
func visible(ax *Axes, b geom.BBox) bool {
	w := ax.Window
	return b.MaxX >= w.XMin && b.MinX <= w.XMax && b.MaxY >= w.YMin && b.MinY <= w.YMax
}

// projectGeometry maps every ring to device pixels, outer rings first in
// each polygon.
func projectGeometry(ax *Axes, g geom.Geometry) [][][2]float64 {
	var out [][][2]float64
	for _, poly := range g.Polygons {
		for _, ring := range poly {
			if len(ring) < 3 {
				continue
			}
			pr := make([][2]float64, len(ring))
			for i, pt := range ring {
				x, y := ax.ToPixel(pt[0], pt[1])
				pr[i] = [2]float64{x, y}
			}
			out = append(out, pr)
		}
	}
	return out
}

// drawTicks puts x ticks below the axes and y ticks to the right of it,
// each with its value.
func drawTicks(ax *Axes, p Painter) {
	f := ax.fig
	x0, _, x1, y1 := ax.PixelBounds()
	tl := f.Points(tickLength)
	for _, v := range ax.YTicks {
		_, y := ax.ToPixel(0, v)
		p.Line([][2]float64{{x1, y}, {x1 + tl, y}}, black, f.Points(ax.Spine.Width), false, false)
		p.Text(x1+2*tl, y, tickLabel(v), black, AnchorStart)
	}
	for _, v := range ax.XTicks {
		x, _ := ax.ToPixel(v, 0)
		if x < x0 || x > x1 {
			continue
		}
		p.Line([][2]float64{{x, y1}, {x, y1 + tl}}, black, f.Points(ax.Spine.Width), false, false)
		p.Text(x, y1+tl+p.LineHeight()/2, tickLabel(v), black, AnchorMiddle)
	}
}

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func drawLabel(ax *Axes, l *Label, p Painter) {
	f := ax.fig
	x, y := ax.ToPixel(l.X, l.Y)
	if ld := l.Leader; ld != nil {
		tx, ty := ax.ToPixel(ld.X, ld.Y)
		pts := [][2]float64{{x, y}}
		if ld.ArmA != 0 {
			pts = append(pts, [2]float64{x + f.Points(ld.ArmA), y})
		}
		if ld.ArmB != 0 {
			pts = append(pts, [2]float64{tx + f.Points(ld.ArmB), ty})
		}
		pts = append(pts, [2]float64{tx, ty})
		p.Line(pts, black, f.Points(leaderWidth), false, false)
	}
	lines := strings.Split(l.Text, "\n")
	lh := p.LineHeight()
	top := y - lh*float64(len(lines)-1)/2
	for i, s := range lines {
		p.Text(x, top+lh*float64(i), s, l.Color, AnchorMiddle)
	}
}

func drawLegend(ax *Axes, lg *Legend, p Painter) {
	if len(lg.Entries) == 0 {
		return
	}
	f := ax.fig
	x0, y0, x1, y1 := ax.PixelBounds()
	pad := f.Points(legendPad)
	sw := f.Points(legendSwatch)
	gap := f.Points(legendSpacing)
	lh := p.LineHeight()

	textW := 0.0
	for _, e := range lg.Entries {
		textW = max(textW, p.TextWidth(e.Label))
	}
	rowH := max(lh, sw)
	boxW := pad + sw + gap + textW + pad
	boxH := pad + rowH*float64(len(lg.Entries)) + gap*float64(len(lg.Entries)-1) + pad

	left := x0 + lg.Loc[0]*(x1-x0)
	bottom := y1 - lg.Loc[1]*(y1-y0)
	top := bottom - boxH
	p.Rect(left, top, left+boxW, bottom, white)
	p.Line([][2]float64{{left, top}, {left + boxW, top}, {left + boxW, bottom}, {left, bottom}},
		legendFrame, f.Points(ax.Spine.Width), false, true)

	for i, e := range lg.Entries {
		cy := top + pad + rowH/2 + float64(i)*(rowH+gap)
		p.Rect(left+pad, cy-sw/2, left+pad+sw, cy+sw/2, e.Color)
		p.Text(left+pad+sw+gap, cy, e.Label, black, AnchorStart)
	}
}
