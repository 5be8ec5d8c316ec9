package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tool is a launcher slot on the home screen.
type tool struct {
	name  string
	blurb string
}

// tools lists the launcher slots in grid order. Empty names are free slots.
var tools = [gridSlots]tool{
	{name: "EtymoDictionary", blurb: "Word origins, meanings and memory hooks"},
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, handled := m.handleGlobalKey(msg); handled {
		return next, cmd
	}

	row, col := m.homeCursor/gridColumns, m.homeCursor%gridColumns
	switch {
	case key.Matches(msg, m.keys.Up):
		row = (row + gridRows - 1) % gridRows
	case key.Matches(msg, m.keys.Down):
		row = (row + 1) % gridRows
	case key.Matches(msg, m.keys.Left):
		col = (col + gridColumns - 1) % gridColumns
	case key.Matches(msg, m.keys.Right):
		col = (col + 1) % gridColumns
	case key.Matches(msg, m.keys.Logout):
		return m.logout(), nil
	case key.Matches(msg, m.keys.Open):
		return m.openTool(m.homeCursor)
	default:
		return m, nil
	}
	m.homeCursor = row*gridColumns + col
	return m, nil
}

// openTool launches the tool in slot idx. Free slots do nothing.
func (m Model) openTool(idx int) (tea.Model, tea.Cmd) {
	if idx != 0 {
		return m, nil
	}
	m.screen = screenDictionary
	m.refreshViews()
	var cmd tea.Cmd
	if !m.snap.SavedLoaded {
		cmd = m.loadSavedCmd()
	}
	return m, tea.Batch(cmd, m.focusDictionary())
}

func (m Model) renderHome() string {
	styles := m.theme.Styles()

	cellWidth := 24
	if m.width < LayoutCompactWidth {
		cellWidth = 16
	}

	rows := make([]string, 0, gridRows)
	for r := 0; r < gridRows; r++ {
		cells := make([]string, 0, gridColumns)
		for c := 0; c < gridColumns; c++ {
			idx := r*gridColumns + c
			cells = append(cells, m.renderCell(styles, idx, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)

	var header strings.Builder
	header.WriteString(styles.Logo.Render("Berk Tools"))
	if m.username != "" {
		header.WriteString("  ")
		header.WriteString(styles.MutedText.Render("Logged in as "))
		header.WriteString(styles.AccentText.Render(m.username))
	}

	footer := styles.FaintText.Render("arrows move · enter open · L log out · T theme · ? help · q quit")

	body := lipgloss.JoinVertical(lipgloss.Center, header.String(), "", grid, "", footer)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderCell(styles Styles, idx, width int) string {
	t := tools[idx]
	style := styles.EmptyCard
	if t.name != "" {
		style = styles.Card
	}
	if idx == m.homeCursor {
		style = styles.FocusCard
	}
	style = style.Width(width).Height(3)

	if t.name == "" {
		return style.Render(styles.FaintText.Render("·"))
	}
	return style.Render(
		styles.Text.Bold(true).Render(t.name) + "\n" +
			styles.MutedText.Render(truncate(t.blurb, width*2-4)),
	)
}
