package tui

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geostates/internal/geom"
	"geostates/internal/plot"
	"geostates/internal/region"
)

func square(x, y, size float64) geom.Geometry {
	return geom.MustParseWKT(fmt.Sprintf("POLYGON((%[1]g %[2]g, %[3]g %[2]g, %[3]g %[4]g, %[1]g %[4]g, %[1]g %[2]g))",
		x, y, x+size, y+size))
}

func testStates(t *testing.T) *region.Collection {
	t.Helper()
	c := region.New()
	col := 0
	for i, code := range region.PostalCodes() {
		var g geom.Geometry
		switch code {
		case "AS", "MP", "VI", "PR", "GU":
			continue
		case "AK":
			g = square(-155, 58, 6)
		case "HI":
			g = square(-157, 20, 1)
		default:
			g = square(-125+float64(col%7)*8, 25+float64(col/7)*3.5, 2)
			col++
		}
		require.NoError(t, c.Add(&region.Region{Code: code, Geometry: g, Values: map[string]float64{"v": float64(i)}}))
	}
	return c
}

func testModel(t *testing.T) Model {
	t.Helper()
	return New(testStates(t), "v", plot.DefaultOptions(), t.TempDir()+"/out.svg")
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrailleBuf(t *testing.T) {
	b := newBrailleBuf(2, 1)
	red := color.RGBA{0xff, 0, 0, 0xff}
	b.setPixel(0, 0, red)
	b.setPixel(1, 3, red)
	b.setPixel(9, 9, red) // out of bounds
	assert.Equal(t, uint8(0x01|0x80), b.m[0][0])
	assert.Equal(t, red, b.cellInk(0, 0))
	assert.Nil(t, b.cellInk(1, 0))

	b.clearPixel(0, 0)
	assert.Equal(t, uint8(0x80), b.m[0][0])

	lines := b.toLines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], string(rune(0x2880)))

	b.putText(1, 0, "X", red)
	assert.Contains(t, b.toLines()[0], "X")
}

func TestDrawLineMicro(t *testing.T) {
	b := newBrailleBuf(10, 1)
	var solid, dashed int
	b.drawLineMicro(0, 0, 19, 0, 0, func(x, y int) { solid++ })
	b.drawLineMicro(0, 0, 19, 0, 2, func(x, y int) { dashed++ })
	assert.Equal(t, 20, solid)
	assert.Equal(t, 10, dashed)
}

func TestNext(t *testing.T) {
	assert.Equal(t, plot.LabelsValues, next(plot.LabelModes, plot.LabelsPostal))
	assert.Equal(t, plot.LabelModes[0], next(plot.LabelModes, plot.LabelModes[len(plot.LabelModes)-1]))
	assert.Equal(t, "a", next([]string{"a", "b"}, "zz"))
}

func TestTermPainterPolygonHole(t *testing.T) {
	b := newBrailleBuf(10, 5) // 20x20 micro-pixels
	p := &termPainter{b: b, v: view{scale: 1}}
	p.Unclip()
	outer := [][2]float64{{0, 0}, {20, 0}, {20, 20}, {0, 20}}
	hole := [][2]float64{{8, 8}, {12, 8}, {12, 12}, {8, 12}}
	blue := color.RGBA{0, 0, 0xff, 0xff}
	p.Polygon([][][2]float64{outer, hole}, blue)

	assert.Equal(t, blue, b.ink[2][2])
	assert.Nil(t, b.ink[10][10])

	// paper erases
	p.Rect(0, 0, 4, 4, color.White)
	assert.Nil(t, b.ink[1][1])
	assert.Equal(t, uint8(0), b.m[0][0]&0x01)
}

func TestTermPainterClip(t *testing.T) {
	b := newBrailleBuf(10, 5)
	p := &termPainter{b: b, v: view{scale: 1}}
	p.Clip(0, 0, 4, 4)
	p.Line([][2]float64{{0, 1}, {19, 1}}, color.Black, 1, false, false)
	assert.NotNil(t, b.ink[1][3])
	assert.Nil(t, b.ink[1][4])
}

func TestModelRenders(t *testing.T) {
	m := testModel(t)
	require.NoError(t, m.renderErr)
	require.NotNil(t, m.fig)
	assert.Equal(t, []string{"v"}, m.columns)

	out := m.renderMap(120, 40)
	assert.Equal(t, 40, len(strings.Split(out, "\n")))

	v, ok := m.viewFor(120, 40)
	require.True(t, ok)
	b := newBrailleBuf(120, 40)
	p := &termPainter{b: b, v: v}
	p.Unclip()
	m.fig.Draw(p)
	var text strings.Builder
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if g, ok := b.text[[2]int{x, y}]; ok {
				text.WriteRune(g.r)
			} else {
				text.WriteRune(' ')
			}
		}
		text.WriteRune('\n')
	}
	assert.Contains(t, text.String(), "TX")
}

func TestModelKeys(t *testing.T) {
	m := testModel(t)
	steps := []struct {
		key   string
		check func(Model)
	}{
		{"l", func(m Model) { assert.Equal(t, plot.LabelsValues, m.opts.Labels) }},
		{"g", func(m Model) { assert.Equal(t, plot.LegendModes[1], m.opts.Legend) }},
		{"s", func(m Model) { assert.Equal(t, plot.LineStyles[1], m.opts.LineStyle) }},
		{"c", func(m Model) { assert.NotEqual(t, "copper_r", m.opts.Colormap) }},
		{"b", func(m Model) { assert.Equal(t, 11, m.opts.Bins) }},
		{"B", func(m Model) { assert.Equal(t, 10, m.opts.Bins) }},
		{"+", func(m Model) { assert.InDelta(t, 1.2, m.zoom, 1e-9) }},
		{"0", func(m Model) { assert.Equal(t, 1.0, m.zoom) }},
	}
	for _, s := range steps {
		next, _ := m.Update(key(s.key))
		m = next.(Model)
		require.NoError(t, m.renderErr, s.key)
		s.check(m)
	}

	// extra regions need PR and GU, which the test states lack
	next, _ := m.Update(key("e"))
	m = next.(Model)
	assert.True(t, m.opts.ExtraRegions)
	assert.Error(t, m.renderErr)
	assert.Nil(t, m.fig)
	assert.Contains(t, m.renderMap(40, 10), "render error")
}

func TestModelWrite(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(key("w"))
	m = next.(Model)
	assert.Equal(t, "wrote "+m.outPath, m.status)
	assert.FileExists(t, m.outPath)
}

func TestApplyPaste(t *testing.T) {
	m := testModel(t)
	m.applyPaste("TX,5\nCA,7\nZZ,1")
	assert.Equal(t, pastedColumn, m.column)
	assert.Contains(t, m.columns, pastedColumn)
	v, err := m.states.Value("TX", pastedColumn)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
	assert.Contains(t, m.status, "unmatched=1")
	// the other states lack the pasted column
	assert.Error(t, m.renderErr)

	m.applyPaste("  ")
	assert.Equal(t, "paste: empty", m.status)
}

func TestHoverFindsRegion(t *testing.T) {
	m := testModel(t)
	const w, h = 400, 100
	tx, err := m.states.Get("TX")
	require.NoError(t, err)
	lon, lat, ok := tx.Geometry.Centroid()
	require.True(t, ok)

	ax := m.fig.Axes()[0]
	px, py := ax.ToPixel(lon, lat)
	v, ok := m.viewFor(w, h)
	require.True(t, ok)
	mx, my := v.micro(px, py)

	_, _, r, ok := m.cellToLonLat(int(mx/2), int(my/4), w, h)
	require.True(t, ok)
	require.NotNil(t, r)
	assert.Equal(t, "TX", r.Code)

	m.hoverCode = "TX"
	m.inspect()
	assert.Contains(t, m.inspectPopup, "code: TX")
	assert.Contains(t, m.inspectPopup, "fips: 48")
	assert.Contains(t, m.inspectPopup, `label: "TX"`)
}

func TestAttributes(t *testing.T) {
	m := testModel(t)
	cols, rows := m.buildAttributes()
	assert.Equal(t, []string{"code", "name", "v"}, cols)
	assert.Len(t, rows, m.states.Len())
	assert.Equal(t, "AK", rows[0][0])
}

func TestLoadWKTFile(t *testing.T) {
	m := testModel(t)
	path := filepath.Join(t.TempDir(), "tract.wkt")
	require.NoError(t, os.WriteFile(path, []byte("POLYGON((0 0, 3 0, 3 2, 0 2, 0 0))"), 0o644))
	m.loadPath(path)
	require.NotNil(t, m.states)
	assert.Equal(t, []string{"TRACT"}, m.states.Codes())
	// a lone region is not a states map
	assert.Error(t, m.renderErr)
}
