package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/berktools/berk/internal/prefs"
	"github.com/berktools/berk/internal/word"
	"github.com/berktools/berk/internal/workflow"
)

// focusDictionary focuses the input that owns the keyboard on the active tab.
func (m *Model) focusDictionary() tea.Cmd {
	if m.tab == tabLookup {
		m.filterInput.Blur()
		return m.searchInput.Focus()
	}
	m.searchInput.Blur()
	if m.filtering {
		return m.filterInput.Focus()
	}
	m.filterInput.Blur()
	return nil
}

func (m Model) lastTab() string {
	if m.tab == tabSaved {
		return prefs.TabSaved
	}
	return prefs.TabLookup
}

func (m Model) switchTab() (tea.Model, tea.Cmd) {
	if m.tab == tabLookup {
		m.tab = tabSaved
	} else {
		m.tab = tabLookup
	}
	m.filtering = false
	m.prefs.LastTab = m.lastTab()
	m.savePrefs()
	m.refreshViews()
	return m, m.focusDictionary()
}

func (m Model) handleDictionaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.SwitchTab) {
		return m.switchTab()
	}
	if m.tab == tabLookup {
		return m.handleLookupKey(msg)
	}
	return m.handleSavedKey(msg)
}

// handleLookupKey handles the Look Up tab. The search input always has focus,
// so only non-printable keys act as commands.
func (m Model) handleLookupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenHome
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" || m.snap.Search == workflow.SearchSearching {
			return m, nil
		}
		m.snap.Search = workflow.SearchSearching
		m.snap.Query = query
		m.snap.Result = nil
		m.refreshViews()
		return m, m.searchCmd(query)
	case key.Matches(msg, m.keys.SaveWord):
		if !m.snap.CanSave() {
			return m, nil
		}
		m.snap.Saving = true
		m.refreshViews()
		return m, m.saveCmd()
	case key.Matches(msg, m.keys.PageUp):
		m.resultView.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.resultView.HalfPageDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Submit):
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.savedCursor = 0
		m.refreshViews()
		return m, cmd
	}

	if next, cmd, handled := m.handleGlobalKey(msg); handled {
		return next, cmd
	}

	visible := m.visibleSaved()
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.savedCursor = 0
			m.refreshViews()
			return m, nil
		}
		m.screen = screenHome
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filterInput.Focus()
	case key.Matches(msg, m.keys.Up):
		if m.savedCursor > 0 {
			m.savedCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.savedCursor < len(visible)-1 {
			m.savedCursor++
		}
	case key.Matches(msg, m.keys.PageUp):
		m.savedView.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.savedView.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keys.ToggleDetail):
		if lemma, ok := m.selectedLemma(visible); ok {
			if !m.snap.Expanded[lemma] {
				m.snap.Expanded = withKey(m.snap.Expanded, lemma)
				if _, cached := m.snap.Details[lemma]; !cached {
					m.snap.Loading = withKey(m.snap.Loading, lemma)
				}
			} else {
				delete(m.snap.Expanded, lemma)
			}
			m.refreshViews()
			return m, m.toggleCmd(lemma)
		}
		return m, nil
	case key.Matches(msg, m.keys.DeleteWord):
		if lemma, ok := m.selectedLemma(visible); ok && !m.snap.Deleting[lemma] {
			m.snap.Deleting = withKey(m.snap.Deleting, lemma)
			m.refreshViews()
			return m, m.deleteCmd(lemma)
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadSavedCmd()
	case key.Matches(msg, m.keys.Dismiss):
		if m.flow != nil {
			m.flow.DismissNotice()
			m.snap = m.flow.Snapshot()
		}
		return m, nil
	case key.Matches(msg, m.keys.Logout):
		return m.logout(), nil
	default:
		return m, nil
	}
	m.refreshViews()
	return m, nil
}

// withKey returns set with k added, allocating when set is nil. The model
// owns its snapshot copy, so mutating it in place is fine.
func withKey(set map[string]bool, k string) map[string]bool {
	if set == nil {
		set = make(map[string]bool)
	}
	set[k] = true
	return set
}

func (m Model) visibleSaved() []word.SavedLemma {
	return word.FilterSaved(m.snap.Saved, m.filterInput.Value())
}

func (m Model) selectedLemma(visible []word.SavedLemma) (string, bool) {
	if m.savedCursor < 0 || m.savedCursor >= len(visible) {
		return "", false
	}
	return visible[m.savedCursor].Lemma, true
}

func (m *Model) clampSavedCursor() {
	n := len(m.visibleSaved())
	if m.savedCursor >= n {
		m.savedCursor = n - 1
	}
	if m.savedCursor < 0 {
		m.savedCursor = 0
	}
}

// refreshViews re-renders viewport contents from the snapshot.
func (m *Model) refreshViews() {
	if !m.ready {
		return
	}
	m.resultView.SetContent(m.lookupContent())
	content, cursorLine := m.savedContent()
	m.savedView.SetContent(content)
	if cursorLine < m.savedView.YOffset {
		m.savedView.SetYOffset(cursorLine)
	} else if cursorLine >= m.savedView.YOffset+m.savedView.Height {
		m.savedView.SetYOffset(cursorLine - m.savedView.Height + 1)
	}
}

func (m Model) lookupContent() string {
	styles := m.theme.Styles()
	snap := m.snap

	switch snap.Search {
	case workflow.SearchSearching:
		return styles.InfoText.Render(fmt.Sprintf("Searching for %q...", snap.Query))
	case workflow.SearchFailed:
		return styles.DangerText.Render(snap.SearchError)
	case workflow.SearchResult:
		if snap.Result == nil {
			return ""
		}
		var status string
		switch {
		case snap.ResultSaved():
			status = styles.SuccessText.Render("Saved ✓")
		case snap.Saving:
			status = styles.WarningText.Render("Saving...")
		default:
			status = styles.AccentText.Render("ctrl+s") + styles.MutedText.Render(" save to your words")
		}
		return status + "\n" + m.md.Render(*snap.Result, m.theme.Markdown, m.contentWidth()-2)
	default:
		return styles.FaintText.Render("Type a word and press enter to look it up.")
	}
}

// savedContent renders the saved list and returns the line of the cursor row.
func (m Model) savedContent() (string, int) {
	styles := m.theme.Styles()
	visible := m.visibleSaved()

	if len(m.snap.Saved) == 0 {
		if !m.snap.SavedLoaded && !m.snap.Offline {
			return styles.InfoText.Render("Loading saved words..."), 0
		}
		return styles.FaintText.Render("No saved words yet. Search for words and save them to see them here."), 0
	}
	if len(visible) == 0 {
		return styles.FaintText.Render(fmt.Sprintf("No saved words match %q.", m.filterInput.Value())), 0
	}

	now := m.now()
	width := m.contentWidth()
	var b strings.Builder
	line, cursorLine := 0, 0
	for i, item := range visible {
		marker := "  "
		name := styles.Text.Bold(true).Render(item.Lemma)
		if i == m.savedCursor {
			marker = styles.AccentText.Render("› ")
			name = styles.Selected.Bold(true).Render(item.Lemma)
			cursorLine = line
		}
		row := marker + name
		if age := savedAge(item, now); age != "" {
			row += "  " + styles.FaintText.Render(age)
		}
		if m.snap.Deleting[item.Lemma] {
			row += "  " + styles.WarningText.Render("deleting...")
		}
		b.WriteString(row)
		b.WriteString("\n")
		line++

		if !m.snap.Expanded[item.Lemma] {
			continue
		}
		var detail string
		if d, ok := m.snap.Details[item.Lemma]; ok {
			detail = m.md.Render(d, m.theme.Markdown, width-4)
		} else if m.snap.Loading[item.Lemma] {
			detail = styles.InfoText.Render("Loading...")
		} else {
			continue
		}
		detail = lipgloss.NewStyle().PaddingLeft(4).Render(detail)
		b.WriteString(detail)
		b.WriteString("\n")
		line += lipgloss.Height(detail)
	}
	return strings.TrimRight(b.String(), "\n"), cursorLine
}

func (m Model) renderDictionary() string {
	styles := m.theme.Styles()
	width := m.contentWidth()

	// Header: title, user, offline flag
	header := styles.Logo.Render("EtymoDictionary")
	if m.username != "" {
		header += "  " + styles.MutedText.Render("Logged in as ") + styles.AccentText.Render(m.username)
	}
	if m.snap.Offline {
		header += "  " + styles.WarningText.Render("offline")
	}

	// Tabs
	lookup, saved := styles.Tab, styles.Tab
	if m.tab == tabLookup {
		lookup = styles.ActiveTab
	} else {
		saved = styles.ActiveTab
	}
	tabs := lookup.Render("Look Up") + saved.Render(fmt.Sprintf("Saved (%d)", len(m.snap.Saved)))

	var body, footer string
	if m.tab == tabLookup {
		body = m.searchInput.View() + "\n\n" + m.resultView.View()
		footer = "enter search · ctrl+s save · pgup/pgdown scroll · tab saved · esc home"
	} else {
		input := ""
		if m.filtering || m.filterInput.Value() != "" {
			input = m.filterInput.View() + "\n\n"
		}
		body = input + m.savedView.View()
		if m.filtering {
			footer = "type to filter · enter/esc done"
		} else {
			footer = "j/k move · enter expand · d delete · / filter · r reload · tab look up · esc home"
		}
	}

	notice := ""
	if n := m.snap.Notice; n != nil {
		style := styles.SuccessText
		if n.Kind == workflow.NoticeError {
			style = styles.DangerText
		}
		notice = style.Render(n.Text)
	}

	page := lipgloss.JoinVertical(lipgloss.Left,
		header,
		tabs,
		"",
		body,
		"",
		notice,
		styles.FaintText.Render(truncate(footer, width)),
	)
	return lipgloss.NewStyle().Padding(0, 1).Render(page)
}
