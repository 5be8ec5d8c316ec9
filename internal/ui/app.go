package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/berktools/berk/internal/api"
	"github.com/berktools/berk/internal/auth"
	"github.com/berktools/berk/internal/logging"
	"github.com/berktools/berk/internal/prefs"
	"github.com/berktools/berk/internal/workflow"
)

// screen is the top-level page being shown.
type screen int

const (
	screenLogin screen = iota
	screenHome
	screenDictionary
)

// dictTab is the active EtymoDictionary tab.
type dictTab int

const (
	tabLookup dictTab = iota
	tabSaved
)

// UserFetcher resolves the signed-in account.
type UserFetcher interface {
	Me(ctx context.Context) (api.User, error)
}

// Options configures the UI.
type Options struct {
	Context  context.Context
	Workflow *workflow.Workflow
	Store    auth.Store
	Signer   auth.Signer
	// Users is optional; without it the username comes from the store or
	// the sign-in form.
	Users     UserFetcher
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger

	// NoticeTTL controls auto-dismissal of notices. Negative disables it.
	NoticeTTL      time.Duration
	RequestTimeout time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx            context.Context
	flow           *workflow.Workflow
	store          auth.Store
	signer         auth.Signer
	users          UserFetcher
	log            *zap.Logger
	prefs          prefs.Prefs
	prefsPath      string
	noticeTTL      time.Duration
	requestTimeout time.Duration
	keys           keyMap
	now            func() time.Time

	// UI state
	theme    Theme
	screen   screen
	width    int
	height   int
	ready    bool
	showHelp bool
	username string

	// Sign-in state
	loginInputs [2]textinput.Model // username, password
	loginFocus  int
	loginErr    string
	loggingIn   bool

	// Home state
	homeCursor int

	// EtymoDictionary state
	tab         dictTab
	searchInput textinput.Model
	filterInput textinput.Model
	filtering   bool
	savedCursor int
	snap        workflow.Snapshot
	noticeSeq   int
	resultView  viewport.Model
	savedView   viewport.Model
	md          *renderer
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	noticeTTL := opts.NoticeTTL
	if noticeTTL == 0 {
		noticeTTL = DefaultNoticeTTL
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Defaults()
	}

	m := Model{
		ctx:            ctx,
		flow:           opts.Workflow,
		store:          opts.Store,
		signer:         opts.Signer,
		users:          opts.Users,
		log:            logging.OrNop(opts.Logger).Named("ui"),
		prefs:          p,
		prefsPath:      opts.PrefsPath,
		noticeTTL:      noticeTTL,
		requestTimeout: timeout,
		keys:           DefaultKeyMap(),
		now:            time.Now,
		theme:          GetTheme(p.Theme),
		screen:         screenLogin,
		md:             &renderer{},
	}
	if p.LastTab == prefs.TabSaved {
		m.tab = tabSaved
	}

	m.loginInputs[0] = newInput("Username", 64)
	m.loginInputs[0].SetValue(p.LastUsername)
	m.loginInputs[1] = newInput("Password", 128)
	m.loginInputs[1].EchoMode = textinput.EchoPassword
	m.loginInputs[1].EchoCharacter = '•'
	m.searchInput = newInput("Enter a word to look up...", 80)
	m.filterInput = newInput("Search saved words...", 80)

	if m.store != nil && m.store.IsAuthenticated() {
		m.screen = screenHome
		if named, ok := m.store.(interface{ Username() string }); ok {
			m.username = named.Username()
		}
	}
	m.focusLogin(0)
	if m.flow != nil {
		m.snap = m.flow.Snapshot()
	}
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.screen != screenHome {
		return nil
	}
	return tea.Batch(m.fetchUserCmd(), m.loadSavedCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case loginMsg:
		return m.handleLogin(auth.LoginResult(msg))

	case userMsg:
		return m.handleUser(msg)

	case flowMsg:
		return m.handleFlow(msg)

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq && m.flow != nil {
			m.flow.DismissNotice()
			m.snap = m.flow.Snapshot()
			m.refreshViews()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	switch m.screen {
	case screenHome:
		return m.renderHome()
	case screenDictionary:
		return m.renderDictionary()
	default:
		return m.renderLogin()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.screen {
	case screenLogin:
		return m.handleLoginKey(msg)
	case screenHome:
		return m.handleHomeKey(msg)
	default:
		return m.handleDictionaryKey(msg)
	}
}

// handleGlobalKey handles keys shared by screens without a focused input.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil, true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.refreshViews()
		return m, nil, true
	}
	return m, nil, false
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn("save prefs", zap.Error(err))
	}
}

// handleFlow applies a finished workflow operation.
func (m Model) handleFlow(msg flowMsg) (tea.Model, tea.Cmd) {
	m.snap = msg.snap

	if msg.err != nil && !errors.Is(msg.err, workflow.ErrBusy) {
		m.log.Debug("workflow operation failed", zap.String("op", msg.op), zap.Error(msg.err))
	}
	if errors.Is(msg.err, api.ErrSessionExpired) || errors.Is(msg.err, api.ErrAuthenticationRequired) {
		text := workflow.SessionExpiredNotice
		if m.snap.Notice != nil {
			text = m.snap.Notice.Text
		}
		return m.toLogin(text), nil
	}

	m.clampSavedCursor()
	m.refreshViews()

	var cmd tea.Cmd
	if m.snap.Notice != nil && m.noticeTTL > 0 {
		m.noticeSeq++
		cmd = clearNoticeCmd(m.noticeSeq, m.noticeTTL)
	}
	return m, cmd
}

// handleUser applies the /auth/me answer.
func (m Model) handleUser(msg userMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err == nil:
		m.username = msg.user.Username
	case errors.Is(msg.err, api.ErrSessionExpired), errors.Is(msg.err, api.ErrAuthenticationRequired):
		return m.toLogin(workflow.SessionExpiredNotice), nil
	default:
		m.log.Warn("fetch user", zap.Error(msg.err))
	}
	return m, nil
}

// toLogin returns to the sign-in screen showing reason.
func (m Model) toLogin(reason string) Model {
	m.screen = screenLogin
	m.loginErr = reason
	m.loggingIn = false
	m.loginInputs[1].SetValue("")
	if m.loginInputs[0].Value() == "" {
		m.focusLogin(0)
	} else {
		m.focusLogin(1)
	}
	return m
}

// logout forgets the credential and all workflow state.
func (m Model) logout() Model {
	auth.Logout(m.store)
	if m.flow != nil {
		m.flow.Reset()
		m.snap = m.flow.Snapshot()
	}
	m.username = ""
	m.searchInput.SetValue("")
	m.filterInput.SetValue("")
	m.filtering = false
	m.savedCursor = 0
	return m.toLogin("")
}

func (m *Model) resize() {
	w := m.contentWidth()
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	if m.resultView.Width == 0 {
		m.resultView = viewport.New(w, h)
		m.savedView = viewport.New(w, h)
	}
	m.resultView.Width, m.resultView.Height = w, h
	m.savedView.Width, m.savedView.Height = w, h
	m.searchInput.Width = w - 4
	m.filterInput.Width = w - 4
	m.refreshViews()
}

func (m Model) contentWidth() int {
	w := m.width - 2
	if w > MaxContentWidth {
		w = MaxContentWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
