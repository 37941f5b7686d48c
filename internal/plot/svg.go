package plot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"geostates/internal/colormap"
)

// WriteSVG draws the figure as an SVG document.
func (f *Figure) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	p := &svgPainter{canvas: svg.New(ew), fontPx: f.Points(fontSize)}
	pw, ph := f.Pixels()
	p.canvas.Start(pw, ph)
	f.Draw(p)
	p.canvas.End()
	return ew.err
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return len(b), nil
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}

type svgPainter struct {
	canvas *svg.SVG
	fontPx float64
	clips  int
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func paint(kind string, c color.Color) string {
	s := kind + ":" + colormap.Hex(c)
	if a := color.NRGBAModel.Convert(c).(color.NRGBA).A; a != 0xff {
		s += fmt.Sprintf(";%s-opacity:%s", kind, num(float64(a)/0xff))
	}
	return s
}

func pathData(rings [][][2]float64, closed bool) string {
	var sb strings.Builder
	for _, ring := range rings {
		for i, pt := range ring {
			if i == 0 {
				sb.WriteString("M")
			} else {
				sb.WriteString(" L")
			}
			sb.WriteString(num(pt[0]))
			sb.WriteString(" ")
			sb.WriteString(num(pt[1]))
		}
		if closed {
			sb.WriteString(" Z")
		}
	}
	return sb.String()
}

func (p *svgPainter) Rect(x0, y0, x1, y1 float64, fill color.Color) {
	d := pathData([][][2]float64{{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}}, true)
	p.canvas.Path(d, paint("fill", fill))
}

func (p *svgPainter) Polygon(rings [][][2]float64, fill color.Color) {
	p.canvas.Path(pathData(rings, true), paint("fill", fill)+";fill-rule:evenodd")
}

func (p *svgPainter) Line(pts [][2]float64, c color.Color, width float64, dashed, closed bool) {
	style := "fill:none;" + paint("stroke", c) + ";stroke-width:" + num(width)
	if dashed {
		style += ";stroke-dasharray:" + num(3.7*width) + "," + num(1.6*width)
	}
	if !closed && len(pts) == 2 && !dashed {
		xs := []int{int(math.Round(pts[0][0])), int(math.Round(pts[1][0]))}
		ys := []int{int(math.Round(pts[0][1])), int(math.Round(pts[1][1]))}
		p.canvas.Polyline(xs, ys, style)
		return
	}
	p.canvas.Path(pathData([][][2]float64{pts}, closed), style)
}

func (p *svgPainter) Text(x, y float64, s string, c color.Color, a Anchor) {
	ta := "middle"
	if a == AnchorStart {
		ta = "start"
	}
	p.canvas.Text(int(math.Round(x)), int(math.Round(y)), s,
		fmt.Sprintf("font-family:sans-serif;font-size:%spx;text-anchor:%s;dominant-baseline:central;%s",
			num(p.fontPx), ta, paint("fill", c)))
}

// Sans-serif glyphs average a little over half an em.
func (p *svgPainter) TextWidth(s string) float64 { return 0.6 * p.fontPx * float64(len(s)) }

func (p *svgPainter) LineHeight() float64 { return 1.2 * p.fontPx }

func (p *svgPainter) Clip(x0, y0, x1, y1 float64) {
	id := fmt.Sprintf("clip%d", p.clips)
	p.clips++
	p.canvas.ClipPath(`id="` + id + `"`)
	p.canvas.Path(pathData([][][2]float64{{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}}, true))
	p.canvas.ClipEnd()
	p.canvas.Group(`clip-path="url(#` + id + `)"`)
}

func (p *svgPainter) Unclip() { p.canvas.Gend() }
