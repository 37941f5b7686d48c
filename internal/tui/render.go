package tui

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"geostates/internal/plot"
	"geostates/internal/region"
)

// view maps figure pixels onto the braille microgrid of a w x h cell area,
// fitting the whole figure and then applying zoom and pan.
type view struct {
	scale  float64
	ox, oy float64
}

func (m Model) viewFor(w, h int) (view, bool) {
	if m.fig == nil || w <= 1 || h <= 1 {
		return view{}, false
	}
	fw, fh := m.fig.Pixels()
	wMic, hMic := float64(w*2), float64(h*4)
	s := math.Min(wMic/float64(fw), hMic/float64(fh)) * m.zoom
	return view{
		scale: s,
		ox:    (wMic-float64(fw)*s)/2 + float64(m.offsetX*2),
		oy:    (hMic-float64(fh)*s)/2 + float64(m.offsetY*4),
	}, true
}

func (v view) micro(x, y float64) (float64, float64) {
	return v.ox + x*v.scale, v.oy + y*v.scale
}

func (v view) figure(mx, my float64) (float64, float64) {
	return (mx - v.ox) / v.scale, (my - v.oy) / v.scale
}

// cellToLonLat converts a map cell to data coordinates of the axes under
// it, and the region there if any.
func (m Model) cellToLonLat(cx, cy, w, h int) (lon, lat float64, r *region.Region, ok bool) {
	v, ok := m.viewFor(w, h)
	if !ok {
		return 0, 0, nil, false
	}
	fx, fy := v.figure(float64(cx*2)+1, float64(cy*4)+2)
	ax, ok := m.fig.AxesAt(fx, fy)
	if !ok || ax.Name == "colorbar" {
		return 0, 0, nil, false
	}
	lon, lat = ax.FromPixel(fx, fy)
	if m.index != nil {
		r, _ = m.index.At(lon, lat)
		// the continental axes does not draw the inset regions
		if r != nil && ax.Parent() == nil && isInsetCode(r.Code) {
			r = nil
		}
	}
	return lon, lat, r, true
}

func isInsetCode(code string) bool {
	switch code {
	case "AK", "HI", "PR", "GU":
		return true
	}
	return false
}

func (m Model) renderMap(w, h int) string {
	v, ok := m.viewFor(w, h)
	if !ok {
		lines := make([]string, h)
		msg := "no figure"
		if m.renderErr != nil {
			msg = "render error: " + m.renderErr.Error()
		}
		if h > 0 {
			lines[h/2] = dimStyle.Render(msg)
		}
		return strings.Join(lines, "\n")
	}
	br := newBrailleBuf(w, h)
	p := &termPainter{b: br, v: v}
	p.Unclip()
	m.fig.Draw(p)
	if m.hovering && m.hoverCode != "" {
		br.putText(m.hoverCellX, m.hoverCellY, "◯", hoverMark)
	}
	return strings.Join(br.toLines(), "\n")
}

// termPainter draws a figure onto the braille buffer. White fills are the
// paper: they erase dots instead of setting them.
type termPainter struct {
	b *brailleBuf
	v view

	cx0, cy0, cx1, cy1 int // clip, in micro-pixels
}

var (
	paper = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ink   = color.RGBA{0, 0, 0, 0xff}
	// black text is unreadable on a dark terminal
	inkText   = color.RGBA{0xe6, 0xe6, 0xe6, 0xff}
	hoverMark = color.RGBA{0xff, 0xa5, 0x00, 0xff}
)

func isPaper(c color.Color) bool {
	return color.RGBAModel.Convert(c).(color.RGBA) == paper
}

func (p *termPainter) plot(c color.Color) func(x, y int) {
	erase := isPaper(c)
	return func(x, y int) {
		if x < p.cx0 || x >= p.cx1 || y < p.cy0 || y >= p.cy1 {
			return
		}
		if erase {
			p.b.clearPixel(x, y)
		} else {
			p.b.setPixel(x, y, c)
		}
	}
}

func (p *termPainter) Rect(x0, y0, x1, y1 float64, c color.Color) {
	mx0, my0 := p.v.micro(x0, y0)
	mx1, my1 := p.v.micro(x1, y1)
	set := p.plot(c)
	for y := int(math.Round(my0)); y < int(math.Round(my1)); y++ {
		for x := int(math.Round(mx0)); x < int(math.Round(mx1)); x++ {
			set(x, y)
		}
	}
}

// Polygon fills with the even-odd rule per micro scanline, over the edges
// of every ring so holes stay empty.
func (p *termPainter) Polygon(rings [][][2]float64, c color.Color) {
	var edges [][2][2]float64
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, ring := range rings {
		for i := range ring {
			ax, ay := p.v.micro(ring[i][0], ring[i][1])
			j := (i + 1) % len(ring)
			bx, by := p.v.micro(ring[j][0], ring[j][1])
			edges = append(edges, [2][2]float64{{ax, ay}, {bx, by}})
			minY, maxY = math.Min(minY, ay), math.Max(maxY, ay)
		}
	}
	set := p.plot(c)
	y0 := max(p.cy0, int(math.Floor(minY)))
	y1 := min(p.cy1, int(math.Ceil(maxY))+1)
	for yMic := y0; yMic < y1; yMic++ {
		sy := float64(yMic) + 0.5
		var xs []float64
		for _, e := range edges {
			a, b := e[0], e[1]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			if (sy >= a[1] && sy < b[1]) || (sy >= b[1] && sy < a[1]) {
				t := (sy - a[1]) / (b[1] - a[1])
				xs = append(xs, a[0]+t*(b[0]-a[0]))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := int(math.Round(xs[i])); xMic < int(math.Round(xs[i+1])); xMic++ {
				set(xMic, yMic)
			}
		}
	}
}

func (p *termPainter) Line(pts [][2]float64, c color.Color, width float64, dashed, closed bool) {
	dash := 0
	if dashed {
		dash = 2
	}
	set := p.plot(c)
	n := len(pts)
	if !closed {
		n--
	}
	for i := 0; i < n; i++ {
		ax, ay := p.v.micro(pts[i][0], pts[i][1])
		b := pts[(i+1)%len(pts)]
		bx, by := p.v.micro(b[0], b[1])
		p.b.drawLineMicro(int(math.Round(ax)), int(math.Round(ay)), int(math.Round(bx)), int(math.Round(by)), dash, set)
	}
}

func (p *termPainter) Text(x, y float64, s string, c color.Color, a plot.Anchor) {
	mx, my := p.v.micro(x, y)
	cx, cy := int(mx/2), int(my/4)
	if a == plot.AnchorMiddle {
		cx -= len([]rune(s)) / 2
	}
	if color.RGBAModel.Convert(c).(color.RGBA) == ink {
		c = inkText
	}
	p.b.putText(cx, cy, s, c)
}

// One character is one cell: two micro-pixels wide, four tall.
func (p *termPainter) TextWidth(s string) float64 {
	return float64(len([]rune(s))) * 2 / p.v.scale
}

func (p *termPainter) LineHeight() float64 { return 4 / p.v.scale }

func (p *termPainter) Clip(x0, y0, x1, y1 float64) {
	mx0, my0 := p.v.micro(x0, y0)
	mx1, my1 := p.v.micro(x1, y1)
	p.cx0, p.cy0 = int(math.Floor(mx0)), int(math.Floor(my0))
	p.cx1, p.cy1 = int(math.Ceil(mx1)), int(math.Ceil(my1))
}

func (p *termPainter) Unclip() {
	p.cx0, p.cy0 = 0, 0
	p.cx1, p.cy1 = p.b.w*2, p.b.h*4
}
