package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/logtail"
)

// logState holds the log view buffer and scroll state.
type logState struct {
	lines       []string
	follow      bool
	err         string
	lastRefresh time.Time
	viewport    viewport.Model
	tick        int // generation of the active refresh loop
}

type logTickMsg struct {
	id int
	at time.Time
}

type logLinesMsg struct {
	lines []string
	err   error
	at    time.Time
}

func (m *Model) initLogState() {
	m.logs = logState{
		follow:   true,
		viewport: viewport.New(0, 0),
	}
}

func logTickCmd(id int) tea.Cmd {
	return tea.Tick(LogRefreshInterval, func(t time.Time) tea.Msg {
		return logTickMsg{id: id, at: t}
	})
}

// startLogRefresh opens a new refresh loop; ticks from older loops are dropped.
func (m *Model) startLogRefresh() tea.Cmd {
	m.logs.tick++
	return tea.Batch(m.refreshLogs(), logTickCmd(m.logs.tick))
}

// refreshLogs reads the tail of the log file off the update loop.
func (m Model) refreshLogs() tea.Cmd {
	path := m.logPath
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{at: time.Now()}
		}
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err, at: time.Now()}
	}
}

// handleLogTick re-reads the log while the view is open and following.
func (m Model) handleLogTick(msg logTickMsg) (tea.Model, tea.Cmd) {
	if m.currentView != ViewLogs || msg.id != m.logs.tick {
		return m, nil
	}
	if !m.logs.follow {
		return m, logTickCmd(msg.id)
	}
	return m, tea.Batch(m.refreshLogs(), logTickCmd(msg.id))
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logs.lastRefresh = msg.at
	if msg.err != nil {
		m.logs.err = msg.err.Error()
		return
	}
	m.logs.err = ""
	m.logs.lines = msg.lines
	m.updateLogViewport()
}

// handleLogsKey scrolls the viewport and toggles follow mode.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Follow):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			m.logs.viewport.GotoBottom()
			return m, m.refreshLogs()
		}
		return m, nil
	case key.Matches(msg, m.keys.Reread):
		return m, m.refreshLogs()
	case key.Matches(msg, m.keys.Top):
		m.logs.follow = false
		m.logs.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logs.viewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		m.logs.follow = false
	}

	var cmd tea.Cmd
	m.logs.viewport, cmd = m.logs.viewport.Update(msg)
	return m, cmd
}

// updateLogViewport resizes the viewport and re-renders its content.
func (m *Model) updateLogViewport() {
	m.logs.viewport.Width = max(m.width-4, 1)
	m.logs.viewport.Height = max(m.contentHeight()-3, 1)
	m.logs.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logs.viewport.SetContent(m.renderLogContent())
	if m.logs.follow {
		m.logs.viewport.GotoBottom()
	}
}

// renderLogContent colors each line by level.
func (m Model) renderLogContent() string {
	if len(m.logs.lines) == 0 {
		styles := m.theme.Styles()
		return styles.FaintText.Render("No log output yet")
	}

	width := m.logs.viewport.Width
	out := make([]string, 0, len(m.logs.lines))
	for _, entry := range logtail.ParseLines(m.logs.lines) {
		out = append(out, m.formatLogEntry(entry, width))
	}
	return strings.Join(out, "\n")
}

// formatLogEntry renders "15:04:05 INFO message key=value".
func (m Model) formatLogEntry(e logtail.Entry, width int) string {
	styles := m.theme.Styles()
	if !e.Parsed() {
		return styles.Text.Render(truncate(e.Raw, width))
	}

	var fields []string
	for _, f := range e.Fields {
		fields = append(fields, f.Key+"="+f.Value)
	}

	stamp := shortTime(e.Time)
	level := padRight(e.Level, 5)
	msg := e.Message
	if len(fields) > 0 {
		msg += " " + strings.Join(fields, " ")
	}
	msg = truncate(msg, width-len(stamp)-len(level)-2)

	return styles.FaintText.Render(stamp) + " " +
		m.levelStyle(e.Level).Render(level) + " " +
		styles.Text.Render(msg)
}

func (m Model) levelStyle(level string) lipgloss.Style {
	styles := m.theme.Styles()
	switch level {
	case "ERROR", "FATAL", "PANIC":
		return styles.DangerText
	case "WARN", "WARNING":
		return styles.WarningText.Bold(true)
	case "DEBUG", "TRACE":
		return styles.InfoText
	default:
		return styles.SuccessText
	}
}

// shortTime keeps the clock part of an RFC 3339 timestamp.
func shortTime(ts string) string {
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t.Local().Format("15:04:05")
	}
	return ts
}

// renderLogs renders the log view with a status line below the viewport.
func (m Model) renderLogs() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	var status string
	switch {
	case m.logs.err != "":
		status = styles.DangerText.Render(truncate(m.logs.err, m.width-6))
	case m.logPath == "":
		status = styles.FaintText.Render("Logging to file is disabled")
	default:
		status = styles.FaintText.Render(fmt.Sprintf("%d lines  follow %s  %s",
			len(m.logs.lines), ternary(m.logs.follow, "on", "off"), truncate(m.logPath, m.width/2)))
	}

	content := m.logs.viewport.View() + "\n" + status
	return m.renderTitledBox("Application Log", content, m.width, m.contentHeight(), true)
}
