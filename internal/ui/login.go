package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/berktools/berk/internal/api"
	"github.com/berktools/berk/internal/auth"
)

// focusLogin focuses sign-in field idx and blurs the other.
func (m *Model) focusLogin(idx int) {
	m.loginFocus = idx
	for i := range m.loginInputs {
		if i == idx {
			m.loginInputs[i].Focus()
		} else {
			m.loginInputs[i].Blur()
		}
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loggingIn {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextField):
		m.focusLogin((m.loginFocus + 1) % len(m.loginInputs))
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.loginFocus == 0 && m.loginInputs[1].Value() == "" {
			m.focusLogin(1)
			return m, nil
		}
		username := m.loginInputs[0].Value()
		password := m.loginInputs[1].Value()
		if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
			m.loginErr = loginErrorText(auth.ErrMissingCredentials)
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, m.loginCmd(username, password)
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m Model) handleLogin(res auth.LoginResult) (tea.Model, tea.Cmd) {
	m.loggingIn = false
	if !res.OK {
		m.loginErr = loginErrorText(res.Err)
		m.loginInputs[1].SetValue("")
		m.focusLogin(1)
		return m, nil
	}

	m.loginErr = ""
	m.loginInputs[1].SetValue("")
	if m.flow != nil {
		m.flow.ResumeSession()
		m.snap = m.flow.Snapshot()
	}
	m.username = res.Username
	m.screen = screenHome
	m.prefs.LastUsername = res.Username
	m.savePrefs()
	return m, tea.Batch(m.fetchUserCmd(), m.loadSavedCmd())
}

// loginErrorText maps sign-in failures to the message shown under the form.
func loginErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, auth.ErrMissingCredentials):
		return "Please enter both username and password"
	case errors.Is(err, api.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, api.ErrRequestFailed):
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) && reqErr.Message != "" {
			return "Sign in failed: " + reqErr.Message
		}
		return "Sign in failed. Please try again."
	default:
		return "Sign in failed: " + err.Error()
	}
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Logo.Render("Berk Tools"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Sign in to continue"))
	b.WriteString("\n\n")

	labels := [2]string{"Username", "Password"}
	for i, in := range m.loginInputs {
		label := styles.MutedText
		if i == m.loginFocus {
			label = styles.AccentText
		}
		b.WriteString(label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(styles.Input.Width(36).Render(in.View()))
		b.WriteString("\n\n")
	}

	switch {
	case m.loggingIn:
		b.WriteString(styles.WarningText.Render("Signing in..."))
	case m.loginErr != "":
		b.WriteString(styles.DangerText.Render(m.loginErr))
	default:
		b.WriteString(styles.FaintText.Render("enter submit · tab next field · esc quit"))
	}

	form := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 3).
		Width(44).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}
