package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geostates/internal/geom"
	"geostates/internal/plot"
	"geostates/internal/region"
)

const pastedColumn = "pasted"

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.contentHeight()-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				m.applyPaste(m.ta.Value())
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showAttrs {
			switch msg.String() {
			case "a", "esc":
				m.showAttrs = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.contentHeight()-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = true
			m.refreshAttrs()
		case "i":
			m.inspect()
		case "esc":
			m.inspectPopup = ""
		case "l":
			m.opts.Labels = next(plot.LabelModes, m.opts.Labels)
			m.rerenderStatus("labels: " + string(m.opts.Labels))
		case "g":
			m.opts.Legend = next(plot.LegendModes, m.opts.Legend)
			m.rerenderStatus("legend: " + string(m.opts.Legend))
		case "s":
			m.opts.LineStyle = next(plot.LineStyles, m.opts.LineStyle)
			m.rerenderStatus("linestyle: " + string(m.opts.LineStyle))
		case "c":
			m.opts.Colormap = next(m.cmaps, m.opts.Colormap)
			m.rerenderStatus("colormap: " + m.opts.Colormap)
		case "b":
			if m.opts.Bins < 64 {
				m.opts.Bins++
			}
			m.rerenderStatus(fmt.Sprintf("bins: %d", m.opts.Bins))
		case "B":
			if m.opts.Bins > 1 {
				m.opts.Bins--
			}
			m.rerenderStatus(fmt.Sprintf("bins: %d", m.opts.Bins))
		case "e":
			m.opts.ExtraRegions = !m.opts.ExtraRegions
			m.rerenderStatus(fmt.Sprintf("extra regions: %v", m.opts.ExtraRegions))
		case "v":
			if len(m.columns) > 0 {
				m.column = next(m.columns, m.column)
				m.rerenderStatus("column: " + m.column)
			}
		case "w":
			if m.fig == nil {
				m.status = "nothing to write"
				break
			}
			if err := m.fig.Save(m.outPath); err != nil {
				m.status = "write error: " + err.Error()
			} else {
				m.status = "wrote " + m.outPath
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY += 1
		case "down":
			m.offsetY -= 1
		case "left":
			m.offsetX += 2
		case "right":
			m.offsetX -= 2
		}
	case tea.MouseMsg:
		ox, oy, w, h := m.mapArea()
		cx, cy := msg.X, msg.Y
		if cx >= ox && cx < ox+w && cy >= oy && cy < oy+h {
			m.hovering = true
			m.hoverCellX = cx - ox
			m.hoverCellY = cy - oy
			lon, lat, r, ok := m.cellToLonLat(m.hoverCellX, m.hoverCellY, w, h)
			m.hoverHasGeo = ok
			m.hoverLon, m.hoverLat = lon, lat
			m.hoverCode = ""
			if r != nil {
				m.hoverCode = r.Code
			}
		} else {
			m.hovering = false
			m.hoverCode = ""
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) rerenderStatus(s string) {
	m.rerender()
	if m.renderErr == nil {
		m.status = s
	}
}

// applyPaste joins "CODE,value" lines as the pasted column and shows it.
func (m *Model) applyPaste(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		m.status = "paste: empty"
		return
	}
	if m.states == nil {
		m.status = "paste: no regions loaded"
		return
	}
	t, _, err := geom.ReadValues(strings.NewReader("code,"+pastedColumn+"\n"+text), "code")
	if err != nil {
		m.status = "paste error: " + err.Error()
		return
	}
	unmatched := m.states.Join(t)
	m.column = pastedColumn
	m.setStates(m.states)
	m.status = fmt.Sprintf("pasted %d values, unmatched=%d", len(t), len(unmatched))
	if m.renderErr != nil {
		m.status += "; render error: " + m.renderErr.Error()
	}
}

// inspect fills the popup with the hovered region's details.
func (m *Model) inspect() {
	if m.hoverCode == "" || m.states == nil {
		m.inspectPopup = "no region under cursor"
		m.status = m.inspectPopup
		return
	}
	r, err := m.states.Get(m.hoverCode)
	if err != nil {
		m.inspectPopup = err.Error()
		return
	}
	meta := []string{
		fmt.Sprintf("code: %s", r.Code),
		fmt.Sprintf("name: %s", r.Name()),
	}
	if fips, ok := region.FIPS(r.Code); ok {
		meta = append(meta, "fips: "+fips)
	}
	if v, err := r.Value(m.column); err == nil {
		meta = append(meta, fmt.Sprintf("%s: %s", m.column, plot.FormatValue(v)))
	} else if m.column != "" {
		meta = append(meta, fmt.Sprintf("%s: missing", m.column))
	}
	b := r.Geometry.BBox
	meta = append(meta, fmt.Sprintf("bbox: [%.4f, %.4f, %.4f, %.4f]", b.MinX, b.MinY, b.MaxX, b.MaxY))
	if x, y, ok := r.Geometry.Centroid(); ok {
		meta = append(meta, fmt.Sprintf("centroid: %.4f, %.4f", x, y))
	}
	if m.fig != nil {
		for _, ax := range m.fig.Axes() {
			if l, _, ok := ax.FindLabel(r.Code); ok {
				meta = append(meta, fmt.Sprintf("label: %q", l.Text))
				break
			}
		}
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect " + r.Code
}
