package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geostates/internal/colormap"
)

type glyph struct {
	r  rune
	fg color.Color
}

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	// ink holds the color of each set micro-pixel, 2x4 per cell
	ink  [][]color.Color
	text map[[2]int]glyph
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	ink := make([][]color.Color, h*4)
	for i := range ink {
		ink[i] = make([]color.Color, w*2)
	}
	return &brailleBuf{w: w, h: h, m: m, ink: ink, text: map[[2]int]glyph{}}
}

// dotBit is the braille bit of micro-pixel (rx, ry) within its cell.
func dotBit(rx, ry int) uint8 {
	if rx == 0 {
		switch ry {
		case 0:
			return 0x01
		case 1:
			return 0x02
		case 2:
			return 0x04
		default:
			return 0x40
		}
	}
	switch ry {
	case 0:
		return 0x08
	case 1:
		return 0x10
	case 2:
		return 0x20
	default:
		return 0x80
	}
}

func (b *brailleBuf) inBounds(mx, my int) bool {
	return mx >= 0 && my >= 0 && mx < b.w*2 && my < b.h*4
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, c color.Color) {
	if !b.inBounds(mx, my) {
		return
	}
	b.m[my/4][mx/2] |= dotBit(mx%2, my%4)
	b.ink[my][mx] = c
}

// clearPixel erases a micro-pixel; paper-colored fills use it.
func (b *brailleBuf) clearPixel(mx, my int) {
	if !b.inBounds(mx, my) {
		return
	}
	b.m[my/4][mx/2] &^= dotBit(mx%2, my%4)
	b.ink[my][mx] = nil
}

// drawLineMicro draws a line on the microgrid using Bresenham. A positive
// dash skips every other run of dash pixels.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, dash int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for step := 0; ; step++ {
		if dash <= 0 || (step/dash)%2 == 0 {
			plot(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// putText writes s into the cell row cy starting at cell cx. Text wins
// over braille dots in toLines.
func (b *brailleBuf) putText(cx, cy int, s string, fg color.Color) {
	if cy < 0 || cy >= b.h {
		return
	}
	for i, r := range []rune(s) {
		x := cx + i
		if x < 0 || x >= b.w {
			continue
		}
		b.text[[2]int{x, cy}] = glyph{r: r, fg: fg}
	}
}

// cellInk is the most common color among the set dots of a cell.
func (b *brailleBuf) cellInk(cx, cy int) color.Color {
	type tally struct {
		c color.Color
		n int
	}
	var counts []tally
	for my := cy * 4; my < cy*4+4; my++ {
		for mx := cx * 2; mx < cx*2+2; mx++ {
			c := b.ink[my][mx]
			if c == nil {
				continue
			}
			found := false
			for i := range counts {
				if counts[i].c == c {
					counts[i].n++
					found = true
					break
				}
			}
			if !found {
				counts = append(counts, tally{c, 1})
			}
		}
	}
	var best color.Color
	n := 0
	for _, t := range counts {
		if t.n > n {
			best, n = t.c, t.n
		}
	}
	return best
}

// toLines renders each row, grouping runs of equally styled cells into one
// lipgloss render.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		var runStyle lipgloss.Style
		runKey := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runKey == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(runStyle.Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			var r rune = ' '
			key := ""
			st := lipgloss.NewStyle()
			ink := b.cellInk(x, y)
			if g, ok := b.text[[2]int{x, y}]; ok {
				r = g.r
				fg := colormap.Hex(g.fg)
				key = "t" + fg
				st = st.Foreground(lipgloss.Color(fg)).Bold(true)
				if ink != nil {
					bg := colormap.Hex(ink)
					key += bg
					st = st.Background(lipgloss.Color(bg))
				}
			} else if mask := b.m[y][x]; mask != 0 {
				r = rune(0x2800 + int(mask))
				if ink != nil {
					fg := colormap.Hex(ink)
					key = "d" + fg
					st = st.Foreground(lipgloss.Color(fg))
				}
			}
			if key != runKey {
				flush()
				runKey, runStyle = key, st
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
