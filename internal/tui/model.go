package tui

import (
	"log/slog"
	"os"
	"sort"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geostates/internal/colormap"
	"geostates/internal/plot"
	"geostates/internal/region"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	states  *region.Collection
	index   *region.Index
	columns []string
	column  string
	cmaps   []string

	// Rendering
	opts      plot.Options
	fig       *plot.Figure
	renderErr error
	outPath   string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverCode   string

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New returns a preview of states colored by column. outPath is where the
// write key saves the figure.
func New(states *region.Collection, column string, opts plot.Options, outPath string) Model {
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		status:      "geostates ready",
		states:      states,
		column:      column,
		opts:        opts,
		outPath:     outPath,
		cmaps:       colormap.Names(),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste CODE,value lines (e.g. TX,42). Press Enter to join as column \"pasted\"; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	m.setStates(states)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// setStates replaces the dataset, rebuilding the hover index and the
// list of value columns.
func (m *Model) setStates(c *region.Collection) {
	m.states = c
	m.index = nil
	m.columns = nil
	if c != nil {
		m.index = region.NewIndex(c)
		m.columns = valueColumns(c)
	}
	m.rerender()
}

func valueColumns(c *region.Collection) []string {
	seen := map[string]bool{}
	var cols []string
	for _, r := range c.Regions() {
		for k := range r.Values {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// rerender rebuilds the figure after any change of data or options. A
// failed render keeps the error for the map pane.
func (m *Model) rerender() {
	m.fig, m.renderErr = nil, nil
	if m.states == nil {
		return
	}
	ax, err := plot.PlotStates(m.states, m.column, m.opts)
	if err != nil {
		m.renderErr = err
		m.status = "render error: " + err.Error()
		slog.Debug("tui_render_failed", "column", m.column, "err", err)
		return
	}
	m.fig = ax.Figure()
}
