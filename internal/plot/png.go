package plot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"geostates/internal/geom"
)

// WritePNG rasterizes the figure at its DPI. Text uses a fixed bitmap face
// regardless of DPI.
func (f *Figure) WritePNG(w io.Writer) error {
	return png.Encode(w, f.Image())
}

// Image rasterizes the figure.
func (f *Figure) Image() *image.RGBA {
	pw, ph := f.Pixels()
	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	p := &rasterPainter{
		dst:  dst,
		z:    vector.NewRasterizer(pw, ph),
		full: dst.Bounds(),
		face: basicfont.Face7x13,
	}
	p.area = p.full
	f.Draw(p)
	return dst
}

type rasterPainter struct {
	dst  *image.RGBA
	z    *vector.Rasterizer
	full image.Rectangle
	area image.Rectangle
	face font.Face
}

func (p *rasterPainter) fill(c color.Color) {
	if p.area.Empty() {
		return
	}
	p.z.Draw(p.dst, p.area, image.NewUniform(c), image.Point{})
}

// reset sizes the rasterizer to the clip area. Its mask starts at the
// area origin, so paths are offset by it.
func (p *rasterPainter) reset() {
	p.z.Reset(max(p.area.Dx(), 1), max(p.area.Dy(), 1))
	p.z.DrawOp = draw.Over
}

func (p *rasterPainter) moveTo(x, y float64) {
	p.z.MoveTo(float32(x-float64(p.area.Min.X)), float32(y-float64(p.area.Min.Y)))
}

func (p *rasterPainter) lineTo(x, y float64) {
	p.z.LineTo(float32(x-float64(p.area.Min.X)), float32(y-float64(p.area.Min.Y)))
}

func (p *rasterPainter) Rect(x0, y0, x1, y1 float64, c color.Color) {
	p.reset()
	p.addRing([][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, false)
	p.fill(c)
}

// The rasterizer accumulates signed coverage, so holes must wind against
// their outer ring. A ring is a hole when another ring of the path
// contains its first vertex an odd number of times.
func (p *rasterPainter) Polygon(rings [][][2]float64, c color.Color) {
	p.reset()
	for i, ring := range rings {
		depth := 0
		for j, other := range rings {
			if i != j && pointInRing(other, ring[0]) {
				depth++
			}
		}
		p.addRing(ring, depth%2 == 1)
	}
	p.fill(c)
}

func pointInRing(ring [][2]float64, pt [2]float64) bool {
	r := make(geom.Ring, len(ring))
	copy(r, ring)
	g := geom.Geometry{Polygons: []geom.Polygon{{r}}}
	return g.Contains(pt[0], pt[1])
}

func (p *rasterPainter) addRing(ring [][2]float64, hole bool) {
	r := make(geom.Ring, len(ring))
	copy(r, ring)
	// device y grows downwards, which flips the sign of the area
	ccw := r.SignedArea() < 0
	if ccw == hole {
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
	}
	p.moveTo(r[0][0], r[0][1])
	for _, pt := range r[1:] {
		p.lineTo(pt[0], pt[1])
	}
	p.z.ClosePath()
}

// line strokes each segment as a thin quad. All quads wind the same way, so
// overlaps saturate instead of cancelling.
func (p *rasterPainter) Line(pts [][2]float64, c color.Color, width float64, dashed, closed bool) {
	if len(pts) < 2 {
		return
	}
	p.reset()
	segs := make([][2][2]float64, 0, len(pts))
	for i := 0; i+1 < len(pts); i++ {
		segs = append(segs, [2][2]float64{pts[i], pts[i+1]})
	}
	if closed {
		segs = append(segs, [2][2]float64{pts[len(pts)-1], pts[0]})
	}
	hw := math.Max(width, 1) / 2
	for _, s := range segs {
		if dashed {
			for _, d := range dashes(s[0], s[1], 3.7*width, 1.6*width) {
				p.addQuad(d[0], d[1], hw)
			}
			continue
		}
		p.addQuad(s[0], s[1], hw)
	}
	p.fill(c)
}

func (p *rasterPainter) addQuad(a, b [2]float64, hw float64) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	// unit normal, and the segment extended by hw at both ends to close
	// the joints
	nx, ny := -dy/n*hw, dx/n*hw
	ex, ey := dx/n*hw, dy/n*hw
	a0 := [2]float64{a[0] - ex, a[1] - ey}
	b0 := [2]float64{b[0] + ex, b[1] + ey}
	p.moveTo(a0[0]+nx, a0[1]+ny)
	p.lineTo(b0[0]+nx, b0[1]+ny)
	p.lineTo(b0[0]-nx, b0[1]-ny)
	p.lineTo(a0[0]-nx, a0[1]-ny)
	p.z.ClosePath()
}

// dashes splits the segment a-b into on-intervals of the pattern.
func dashes(a, b [2]float64, on, off float64) [][2][2]float64 {
	n := math.Hypot(b[0]-a[0], b[1]-a[1])
	if n == 0 || on <= 0 {
		return nil
	}
	at := func(t float64) [2]float64 {
		return [2]float64{a[0] + (b[0]-a[0])*t/n, a[1] + (b[1]-a[1])*t/n}
	}
	var out [][2][2]float64
	for t := 0.0; t < n; t += on + off {
		out = append(out, [2][2]float64{at(t), at(math.Min(t+on, n))})
	}
	return out
}

func (p *rasterPainter) Text(x, y float64, s string, c color.Color, a Anchor) {
	d := &font.Drawer{Dst: p.dst, Src: image.NewUniform(c), Face: p.face}
	m := p.face.Metrics()
	if a == AnchorMiddle {
		x -= float64(d.MeasureString(s)) / 64 / 2
	}
	// baseline so that the cap height is centered on y
	base := y + float64(m.Ascent-m.Descent)/64/2
	d.Dot = fixed.P(int(math.Round(x)), int(math.Round(base)))
	d.DrawString(s)
}

func (p *rasterPainter) TextWidth(s string) float64 {
	return float64(font.MeasureString(p.face, s)) / 64
}

func (p *rasterPainter) LineHeight() float64 {
	return float64(p.face.Metrics().Height) / 64
}

func (p *rasterPainter) Clip(x0, y0, x1, y1 float64) {
	r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
	p.area = r.Intersect(p.full)
}

func (p *rasterPainter) Unclip() { p.area = p.full }
