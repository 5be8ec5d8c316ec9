package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/berktools/berk/internal/api"
	"github.com/berktools/berk/internal/auth"
	"github.com/berktools/berk/internal/workflow"
)

// Messages

type loginMsg auth.LoginResult

type userMsg struct {
	user api.User
	err  error
}

// flowMsg carries the workflow state after an operation finished.
type flowMsg struct {
	op   string
	snap workflow.Snapshot
	err  error
}

type clearNoticeMsg struct{ seq int }

// Commands

func (m Model) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, m.requestTimeout)
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		return loginMsg(auth.Login(ctx, m.signer, m.store, username, password))
	}
}

func (m Model) fetchUserCmd() tea.Cmd {
	if m.users == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		user, err := m.users.Me(ctx)
		return userMsg{user: user, err: err}
	}
}

// flowCmd runs op against the workflow and reports the resulting snapshot.
func (m Model) flowCmd(name string, op func(ctx context.Context) error) tea.Cmd {
	flow := m.flow
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		err := op(ctx)
		return flowMsg{op: name, snap: flow.Snapshot(), err: err}
	}
}

func (m Model) loadSavedCmd() tea.Cmd {
	return m.flowCmd("load", m.flow.LoadSaved)
}

func (m Model) searchCmd(query string) tea.Cmd {
	return m.flowCmd("search", func(ctx context.Context) error {
		return m.flow.Search(ctx, query)
	})
}

func (m Model) saveCmd() tea.Cmd {
	return m.flowCmd("save", m.flow.Save)
}

func (m Model) deleteCmd(lemma string) tea.Cmd {
	return m.flowCmd("delete", func(ctx context.Context) error {
		return m.flow.Delete(ctx, lemma)
	})
}

func (m Model) toggleCmd(lemma string) tea.Cmd {
	return m.flowCmd("toggle", func(ctx context.Context) error {
		return m.flow.Toggle(ctx, lemma)
	})
}

func clearNoticeCmd(seq int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}
