package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

func (m Model) contentHeight() int {
	return max(4, m.height-headerHeight-footerHeight-m.popupHeight())
}

func (m Model) popupHeight() int {
	if p := m.popup(); p != "" {
		return lipgloss.Height(p)
	}
	return 0
}

// popup is the inspect box, or "" when hidden. It sits between the header
// and the map, pushing the map down.
func (m Model) popup() string {
	if m.inspectPopup == "" || m.showAttrs {
		return ""
	}
	maxPopupW := max(20, min(48, max(10, m.width)/2))
	return boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
}

// mapArea is the origin and size in cells of the map pane.
func (m Model) mapArea() (x, y, w, h int) {
	contentWidth := max(10, m.width)
	x = 0
	if m.showSidebar {
		x = sidebarWidth + 1
	}
	y = headerHeight + m.popupHeight()
	return x, y, max(10, contentWidth-x), m.contentHeight()
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentWidth := max(10, m.width)
	contentHeight := m.contentHeight()
	_, _, mapWidth, mapHeight := m.mapArea()

	header := titleStyle.Render(" geostates ─ choropleth preview ")
	if m.column != "" {
		header += dimStyle.Render("  column: " + m.column)
	}
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)

	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, contentHeight-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(mapWidth)
		m.ta.SetHeight(min(mapHeight, 12))
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.renderMap(mapWidth, mapHeight))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	hover := ""
	if m.hoverHasGeo {
		hover = fmt.Sprintf("  lon=%.4f lat=%.4f", m.hoverLon, m.hoverLat)
		if m.hoverCode != "" {
			hover = "  " + m.hoverCode + hover
			if v, err := m.hoverValue(); err == nil {
				hover += "  " + m.column + "=" + v
			}
		}
		hover = dimStyle.Render(hover + "  ")
	}
	left := lipgloss.JoinVertical(lipgloss.Left, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(hover))
	right := lipgloss.Place(spacerW+lipgloss.Width(hover), 1, lipgloss.Right, lipgloss.Center, hover)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, right))

	rows := []string{header}
	if p := m.popup(); p != "" {
		rows = append(rows, p)
	}
	rows = append(rows, body, footer)
	ui := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) hoverValue() (string, error) {
	v, err := m.states.Value(m.hoverCode, m.column)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%g", v), nil
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"l labels",
		"g legend",
		"s spines",
		"c cmap",
		"b/B bins",
		"e extra",
		"v column",
		"w write",
		"Tab files",
		"p paste",
		"a attrs",
		"i inspect",
		"h help",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}
