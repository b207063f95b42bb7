package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/counter"
	"github.com/five82/tally/internal/logging"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewCounter View = iota
	ViewSettings
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Counter   *counter.Controller
	Prefs     prefs.Prefs
	PrefsPath string // empty keeps preference changes in memory only
	LogPath   string
	Logger    logrus.FieldLogger

	// DarkBackground reports the terminal background for the system theme.
	// Nil uses lipgloss terminal detection.
	DarkBackground func() bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	counter   *counter.Controller
	prefsPath string
	logPath   string
	log       logrus.FieldLogger
	dark      bool
	keys      keyMap

	// UI state
	prefs       prefs.Prefs
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	notice      string

	// Data state
	snapshot state.Snapshot

	settings settingsState
	logs     logState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	darkFn := opts.DarkBackground
	if darkFn == nil {
		darkFn = lipgloss.HasDarkBackground
	}
	dark := darkFn()

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	m := Model{
		ctx:         ctx,
		counter:     opts.Counter,
		prefsPath:   opts.PrefsPath,
		logPath:     opts.LogPath,
		log:         log,
		dark:        dark,
		keys:        DefaultKeyMap(),
		prefs:       opts.Prefs,
		theme:       ResolveTheme(opts.Prefs.AppTheme, dark),
		currentView: ViewCounter,
	}
	m.initSettings()
	m.initLogState()
	if m.counter != nil {
		m.snapshot = m.counter.State()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("tally")
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
		m.updateLogViewport()
		return m, nil

	case logTickMsg:
		return m.handleLogTick(msg)

	case logLinesMsg:
		m.handleLogLines(msg)
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

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// The name editor owns the keyboard while it is open.
	if m.currentView == ViewSettings && m.settings.editing {
		return m.handleNameInput(msg)
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewCounter
		return m, nil
	case key.Matches(msg, m.keys.Settings):
		m.currentView = ViewSettings
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		m.currentView = ViewLogs
		m.logs.follow = true
		return m, m.startLogRefresh()
	}

	switch m.currentView {
	case ViewSettings:
		return m.handleSettingsKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleCounterKey(msg)
	}
}

// handleCounterKey applies counter intents through the controller.
func (m Model) handleCounterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.counter == nil {
		return m, nil
	}

	before := m.snapshot
	switch {
	case key.Matches(msg, m.keys.Increment):
		m.counter.Increment(m.ctx, 1)
	case key.Matches(msg, m.keys.Decrement):
		m.counter.Decrement(m.ctx, 1)
	case key.Matches(msg, m.keys.Reset):
		m.counter.Reset(m.ctx)
	case key.Matches(msg, m.keys.Delete):
		m.counter.Delete(m.ctx)
	case key.Matches(msg, m.keys.New):
		m.counter.Create(m.ctx)
	case key.Matches(msg, m.keys.Reload):
		m.counter.Load(m.ctx)
	case key.Matches(msg, m.keys.CounterTheme):
		m.applyPrefs(func(p *prefs.Prefs) { p.CounterTheme = p.CounterTheme.Next() })
		return m, nil
	default:
		return m, nil
	}

	m.snapshot = m.counter.State()
	if m.prefs.Notifications && !m.snapshot.HasError() && m.snapshot.Version != before.Version {
		m.notice = ternary(m.snapshot.HasCounter(), "Saved", "Deleted")
	}
	return m, nil
}

// applyPrefs mutates a copy of the preferences and saves it. The change is
// kept in memory even when the save fails so the UI stays responsive.
func (m *Model) applyPrefs(mutate func(*prefs.Prefs)) {
	next := m.prefs
	mutate(&next)
	m.prefs = next
	m.theme = ResolveTheme(next.AppTheme, m.dark)
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, next); err != nil {
		m.settings.err = err.Error()
		m.log.WithError(err).Warn("save preferences failed")
		return
	}
	m.settings.err = ""
}

// renderMain renders the header, command bar and active view.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSettings:
		return m.renderSettings()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderCounter()
	}
}

// Snapshot returns the state the model last rendered.
func (m Model) Snapshot() state.Snapshot {
	return m.snapshot
}

// Prefs returns the model's current preferences.
func (m Model) Prefs() prefs.Prefs {
	return m.prefs
}

// CurrentView returns the active view.
func (m Model) CurrentView() View {
	return m.currentView
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
