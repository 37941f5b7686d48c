package plot

import (
	"image/color"

	"geostates/internal/region"
)

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black = color.RGBA{0, 0, 0, 0xff}
	// grey at half alpha, non-premultiplied
	insetSpine = color.NRGBA{0x80, 0x80, 0x80, 0x80}
)

// Figure is a resolution-independent scene: a set of axes, each with its
// layers, labels and decorations. WriteSVG and WritePNG draw it.
type Figure struct {
	// Width and Height in inches.
	Width, Height float64
	DPI           float64

	axes []*Axes
}

// NewFigure returns an empty figure. Zero arguments take the defaults.
func NewFigure(width, height, dpi float64) *Figure {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &Figure{Width: width, Height: height, DPI: dpi}
}

// Pixels is the figure size in device pixels.
func (f *Figure) Pixels() (w, h int) {
	return int(f.Width*f.DPI + 0.5), int(f.Height*f.DPI + 0.5)
}

// AddAxes adds top-level axes placed at r in figure fractions.
func (f *Figure) AddAxes(name string, r Rect, win Window) *Axes {
	ax := newAxes(f, nil, name, r, win)
	f.axes = append(f.axes, ax)
	return ax
}

// Axes returns the top-level axes in drawing order.
func (f *Figure) Axes() []*Axes { return f.axes }

// AxesAt returns the innermost visible axes covering the pixel (px, py),
// with py growing downwards. Insets are checked before their parent.
func (f *Figure) AxesAt(px, py float64) (*Axes, bool) {
	for i := len(f.axes) - 1; i >= 0; i-- {
		if ax, ok := f.axes[i].at(px, py); ok {
			return ax, true
		}
	}
	return nil, false
}

func (ax *Axes) at(px, py float64) (*Axes, bool) {
	for i := len(ax.insets) - 1; i >= 0; i-- {
		if in, ok := ax.insets[i].at(px, py); ok {
			return in, true
		}
	}
	x0, y0, x1, y1 := ax.PixelBounds()
	if px >= x0 && px <= x1 && py >= y0 && py <= y1 {
		return ax, true
	}
	return nil, false
}

// Spine is the frame drawn around an axes.
type Spine struct {
	Visible bool
	Color   color.Color
	Dashed  bool
	// Width in points.
	Width float64
}

// Axes is a rectangular drawing surface showing Window in data
// coordinates.
type Axes struct {
	Name   string
	Rect   Rect
	Window Window
	Spine  Spine
	// AxisOn false hides both the background and the spine.
	AxisOn bool
	// Tick positions in data coordinates; empty means no ticks.
	XTicks, YTicks []float64

	fig    *Figure
	parent *Axes
	insets []*Axes

	layers   []*Layer
	labels   []*Label
	legend   *Legend
	colorbar *Colorbar
}

func newAxes(f *Figure, parent *Axes, name string, r Rect, win Window) *Axes {
	return &Axes{
		Name:   name,
		Rect:   r,
		Window: win,
		Spine:  Spine{Visible: true, Color: black, Width: 0.8},
		AxisOn: true,
		fig:    f,
		parent: parent,
	}
}

// Figure returns the figure that holds ax.
func (ax *Axes) Figure() *Figure { return ax.fig }

// Parent is nil for top-level axes.
func (ax *Axes) Parent() *Axes { return ax.parent }

// Inset adds a child axes placed at r in fractions of ax.
func (ax *Axes) Inset(name string, r Rect, win Window) *Axes {
	in := newAxes(ax.fig, ax, name, r, win)
	ax.insets = append(ax.insets, in)
	return in
}

// Insets returns the child axes in drawing order.
func (ax *Axes) Insets() []*Axes { return ax.insets }

// FindInset returns the child axes with the given name.
func (ax *Axes) FindInset(name string) (*Axes, bool) {
	for _, in := range ax.insets {
		if in.Name == name {
			return in, true
		}
	}
	return nil, false
}

// StripTicks removes every tick from ax.
func (ax *Axes) StripTicks() {
	ax.XTicks, ax.YTicks = nil, nil
}

// SetAxisOff hides the spine and background of ax.
func (ax *Axes) SetAxisOff() {
	ax.AxisOn = false
}

// FigureRect is the placement of ax in figure fractions.
func (ax *Axes) FigureRect() Rect {
	if ax.parent == nil {
		return ax.Rect
	}
	p := ax.parent.FigureRect()
	return Rect{
		X: p.X + ax.Rect.X*p.W,
		Y: p.Y + ax.Rect.Y*p.H,
		W: ax.Rect.W * p.W,
		H: ax.Rect.H * p.H,
	}
}

// PixelBounds is the device rectangle of ax with y growing downwards.
func (ax *Axes) PixelBounds() (x0, y0, x1, y1 float64) {
	r := ax.FigureRect()
	w, h := ax.fig.Width*ax.fig.DPI, ax.fig.Height*ax.fig.DPI
	return r.X * w, (1 - r.Y - r.H) * h, (r.X + r.W) * w, (1 - r.Y) * h
}

func span(lo, hi, v float64) float64 {
	if hi == lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

// ToPixel maps data coordinates to device pixels.
func (ax *Axes) ToPixel(x, y float64) (px, py float64) {
	x0, y0, x1, y1 := ax.PixelBounds()
	fx := span(ax.Window.XMin, ax.Window.XMax, x)
	fy := span(ax.Window.YMin, ax.Window.YMax, y)
	return x0 + fx*(x1-x0), y1 - fy*(y1-y0)
}

// FromPixel is the inverse of ToPixel.
func (ax *Axes) FromPixel(px, py float64) (x, y float64) {
	x0, y0, x1, y1 := ax.PixelBounds()
	fx := span(x0, x1, px)
	fy := span(y0, y1, py)
	w := ax.Window
	return w.XMin + fx*(w.XMax-w.XMin), w.YMax - fy*(w.YMax-w.YMin)
}

// Points converts a length in points to device pixels.
func (f *Figure) Points(pt float64) float64 { return pt * f.DPI / 72 }

// Layer is a set of filled regions sharing an edge style.
type Layer struct {
	Regions []*region.Region
	Fills   []color.Color
	// Edge is nil for no outline.
	Edge color.Color
}

// AddLayer appends a layer; fills[i] colors regions[i].
func (ax *Axes) AddLayer(regions []*region.Region, fills []color.Color, edge color.Color) *Layer {
	l := &Layer{Regions: regions, Fills: fills, Edge: edge}
	ax.layers = append(ax.layers, l)
	return l
}

// Layers returns the layers in drawing order.
func (ax *Axes) Layers() []*Layer { return ax.layers }

// Leader is a callout line from a label to the point it names. The line
// leaves the text horizontally for ArmA points, runs to ArmB points right
// of the target, then to the target itself.
type Leader struct {
	X, Y       float64
	ArmA, ArmB float64
}

// Label is a text annotation at X, Y in data coordinates. Multi-line text
// is split on "\n".
type Label struct {
	Code  string
	Text  string
	X, Y  float64
	Color color.Color
	// Leader is nil for labels placed directly on their region.
	Leader *Leader
}

// Annotate adds a label to ax.
func (ax *Axes) Annotate(l *Label) {
	ax.labels = append(ax.labels, l)
}

// Labels returns the labels in the order they were added.
func (ax *Axes) Labels() []*Label { return ax.labels }

// FindLabel returns the label for a region code, searching ax and its
// insets.
func (ax *Axes) FindLabel(code string) (*Label, *Axes, bool) {
	for _, l := range ax.labels {
		if l.Code == code {
			return l, ax, true
		}
	}
	for _, in := range ax.insets {
		if l, owner, ok := in.FindLabel(code); ok {
			return l, owner, true
		}
	}
	return nil, nil, false
}

// LegendEntry is one swatch of a legend.
type LegendEntry struct {
	Label string
	Color color.Color
}

// Legend is a boxed list of swatches anchored by its lower-left corner at
// Loc, in axes fractions.
type Legend struct {
	Entries []LegendEntry
	Loc     [2]float64
}

// Legend returns the legend of ax, if any.
func (ax *Axes) Legend() *Legend { return ax.legend }

// Colorbar is a vertical ramp of discrete colors spanning Bounds.
type Colorbar struct {
	Colors []color.Color
	Bounds []float64
}

// Ticks are the tick positions of the colorbar axis.
func (cb *Colorbar) Ticks() []float64 { return append([]float64(nil), cb.Bounds...) }

// Colorbar returns the colorbar drawn in ax or any of its insets.
func (ax *Axes) Colorbar() *Colorbar {
	if ax.colorbar != nil {
		return ax.colorbar
	}
	for _, in := range ax.insets {
		if cb := in.Colorbar(); cb != nil {
			return cb
		}
	}
	return nil
}
