// Package tui previews a states choropleth in the terminal with braille
// graphics and lets the rendering options be changed interactively.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Run starts the interactive preview and blocks until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
