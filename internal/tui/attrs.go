package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrs rebuilds the table from the current regions: code, name and
// one column per value.
func (m *Model) refreshAttrs() {
	cols, rows := m.buildAttributes()
	// an empty table would break table rendering
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols))
	maxColW := 24
	for i, c := range cols {
		w := len(c) + 2
		for _, r := range rows {
			w = max(w, len(r[i])+1)
		}
		tcols = append(tcols, table.Column{Title: c, Width: min(w, maxColW)})
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}
	// clear rows before swapping columns so widths never mismatch
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

func (m *Model) buildAttributes() ([]string, [][]string) {
	if m.states == nil {
		return nil, nil
	}
	cols := append([]string{"code", "name"}, m.columns...)
	rows := make([][]string, 0, m.states.Len())
	for _, r := range m.states.Regions() {
		row := []string{r.Code, r.Name()}
		for _, c := range m.columns {
			v, err := r.Value(c)
			if err != nil {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		rows = append(rows, row)
	}
	return cols, rows
}
