package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/counter"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	ctx := context.Background()
	ctrl, err := store.Open(ctx, store.Options{InMemory: true})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = ctrl.Close() })

	c := counter.New(ctrl.Context())
	c.Load(ctx)

	m := New(Options{
		Context:        ctx,
		Counter:        c,
		Prefs:          prefs.Defaults(),
		PrefsPath:      filepath.Join(t.TempDir(), "prefs.toml"),
		DarkBackground: func() bool { return true },
	})
	return sized(m)
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCounterKeys(t *testing.T) {
	m := newTestModel(t)
	if !m.Snapshot().HasCounter() || m.Snapshot().Value() != 0 {
		t.Fatalf("initial snapshot = %+v, want a counter at 0", m.Snapshot())
	}

	m = press(t, m, runes("+"), runes("+"), tea.KeyMsg{Type: tea.KeyUp}, runes("k"))
	if got := m.Snapshot().Value(); got != 4 {
		t.Fatalf("after 4 increments value = %d, want 4", got)
	}

	m = press(t, m, runes("-"), tea.KeyMsg{Type: tea.KeyDown})
	if got := m.Snapshot().Value(); got != 2 {
		t.Fatalf("after 2 decrements value = %d, want 2", got)
	}

	m = press(t, m, runes("r"))
	if got := m.Snapshot().Value(); got != 0 {
		t.Fatalf("after reset value = %d, want 0", got)
	}
}

func TestCounterKeys_DeleteThenNew(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("x"))
	if m.Snapshot().HasCounter() {
		t.Fatalf("counter still active after delete")
	}

	m = press(t, m, runes("+"))
	if m.Snapshot().HasCounter() {
		t.Fatalf("increment without a counter created one")
	}

	m = press(t, m, runes("n"), runes("+"))
	if !m.Snapshot().HasCounter() || m.Snapshot().Value() != 1 {
		t.Fatalf("after new and increment snapshot = %+v", m.Snapshot())
	}
	if m.Snapshot().Counter.Title != counter.DefaultTitle {
		t.Fatalf("title = %q, want %q", m.Snapshot().Counter.Title, counter.DefaultTitle)
	}
}

func TestCounterKeys_NoticeFollowsNotificationsPref(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("+"))
	if m.notice != "Saved" {
		t.Fatalf("notice = %q, want Saved", m.notice)
	}

	m.prefs.Notifications = false
	m = press(t, m, runes("+"))
	if m.notice != "" {
		t.Fatalf("notice = %q, want none with notifications off", m.notice)
	}
}

func TestCounterThemeCycleSaves(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("c"))
	if m.Prefs().CounterTheme != prefs.CounterDark {
		t.Fatalf("CounterTheme = %q, want %q", m.Prefs().CounterTheme, prefs.CounterDark)
	}
	if saved := prefs.Load(m.prefsPath); saved.CounterTheme != prefs.CounterDark {
		t.Fatalf("saved CounterTheme = %q, want %q", saved.CounterTheme, prefs.CounterDark)
	}
}

func TestViewSwitching(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("s"))
	if m.CurrentView() != ViewSettings {
		t.Fatalf("view = %v, want settings", m.CurrentView())
	}

	// j moves the settings cursor instead of decrementing.
	before := m.Snapshot().Value()
	m = press(t, m, runes("j"))
	if m.Snapshot().Value() != before {
		t.Fatalf("counter changed from the settings view")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.CurrentView() != ViewCounter {
		t.Fatalf("view = %v, want counter", m.CurrentView())
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("?"))
	if !m.showHelp {
		t.Fatalf("help not shown")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help view missing title")
	}

	m = press(t, m, runes("+"))
	if m.showHelp {
		t.Fatalf("help still shown after a key")
	}
	if m.Snapshot().Value() != 0 {
		t.Fatalf("closing help also incremented")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runes("e"))
	if cmd == nil {
		t.Fatalf("quit returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit cmd did not produce tea.QuitMsg")
	}
}

func TestView_RendersCounterAndError(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("+"))

	out := m.View()
	for _, want := range []string{"tally", "Hello, Guest", counter.DefaultTitle, "1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View() missing %q", want)
		}
	}

	m.snapshot.ErrorMessage = "Failed to save: disk full"
	if !strings.Contains(m.View(), "Failed to save: disk full") {
		t.Fatalf("View() missing error line")
	}
}

func TestView_BeforeSize(t *testing.T) {
	m := New(Options{DarkBackground: func() bool { return false }})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
	// Keys are ignored without a controller.
	m = press(t, m, runes("+"))
	if m.Snapshot().HasCounter() {
		t.Fatalf("snapshot has counter without a controller")
	}
}

func TestLogsView_ReadsTail(t *testing.T) {
	m := newTestModel(t)
	logPath := filepath.Join(t.TempDir(), "tally.log")
	content := `time="2025-11-27T09:30:00Z" level=info msg="counter created" id=abc
time="2025-11-27T09:30:01Z" level=error msg="commit failed"
`
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m.logPath = logPath

	next, cmd := m.Update(runes("L"))
	m = next.(Model)
	if m.CurrentView() != ViewLogs {
		t.Fatalf("view = %v, want logs", m.CurrentView())
	}
	if cmd == nil {
		t.Fatalf("entering logs returned nil cmd")
	}

	msg := m.refreshLogs()()
	next, _ = m.Update(msg)
	m = next.(Model)
	if len(m.logs.lines) != 2 {
		t.Fatalf("log lines = %d, want 2", len(m.logs.lines))
	}

	out := m.View()
	if !strings.Contains(out, "counter created") || !strings.Contains(out, "commit failed") {
		t.Fatalf("log view missing lines")
	}

	m = press(t, m, runes(" "))
	if m.logs.follow {
		t.Fatalf("follow still on after space")
	}
}

func TestLogsView_DropsStaleTicks(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("L"), tea.KeyMsg{Type: tea.KeyEsc}, runes("L"))
	if m.logs.tick != 2 {
		t.Fatalf("tick generation = %d, want 2", m.logs.tick)
	}

	if _, cmd := m.Update(logTickMsg{id: 1}); cmd != nil {
		t.Fatalf("stale tick scheduled more work")
	}
	if _, cmd := m.Update(logTickMsg{id: 2}); cmd == nil {
		t.Fatalf("current tick did not reschedule")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, cmd := m.Update(logTickMsg{id: 2}); cmd != nil {
		t.Fatalf("tick rescheduled after leaving the logs view")
	}
}
