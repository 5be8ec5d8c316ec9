package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	// Help content
	sections := []helpSection{
		{
			title: "Home",
			items: []helpItem{
				{"arrows/hjkl", "Move between tools"},
				{"enter", "Open tool"},
				{"L", "Log out"},
			},
		},
		{
			title: "Sign in",
			items: []helpItem{
				{"tab", "Next field"},
				{"enter", "Submit"},
				{"esc", "Quit"},
			},
		},
		{
			title: "Look Up",
			items: []helpItem{
				{"enter", "Search word"},
				{"ctrl+s", "Save result"},
				{"pgup/pgdn", "Scroll result"},
				{"tab", "Saved words"},
			},
		},
		{
			title: "Saved",
			items: []helpItem{
				{"j/k", "Move up/down"},
				{"enter/space", "Expand/collapse"},
				{"d", "Delete word"},
				{"/", "Filter"},
				{"r", "Reload"},
				{"x", "Dismiss notice"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"esc", "Back"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	// Build help content
	var b strings.Builder

	// Title
	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		// Section title
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			// Key
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(14)
			b.WriteString(keyStyle.Render(item.key))
			// Description
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	names := ThemeNames()
	pos := 1
	for i, name := range names {
		if name == m.theme.Name {
			pos = i + 1
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("Theme: %s (%d/%d)", m.theme.Name, pos, len(names))))

	// Build the modal
	content := b.String()

	// Calculate modal dimensions
	modalWidth := 44

	// Modal style
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(modalWidth)

	// Center the modal
	modalContent := modal.Render(content)

	// Create overlay
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
