package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/prefs"
)

func openSettings(t *testing.T) Model {
	t.Helper()
	return press(t, newTestModel(t), runes("s"))
}

func selectRow(t *testing.T, m Model, k string) Model {
	t.Helper()
	for i, row := range settingsRows {
		if row.key == k {
			m.settings.selected = i
			return m
		}
	}
	t.Fatalf("no settings row for %q", k)
	return m
}

func TestSettings_AgeClampsAndSaves(t *testing.T) {
	m := selectRow(t, openSettings(t), prefs.KeyUserAge)

	m = press(t, m, runes("-"))
	if m.Prefs().UserAge != 0 {
		t.Fatalf("age = %d, want clamp at 0", m.Prefs().UserAge)
	}

	m = press(t, m, runes("+"), tea.KeyMsg{Type: tea.KeyRight})
	if m.Prefs().UserAge != 2 {
		t.Fatalf("age = %d, want 2", m.Prefs().UserAge)
	}

	m.prefs.UserAge = prefs.MaxAge
	m = press(t, m, runes("+"))
	if m.Prefs().UserAge != prefs.MaxAge {
		t.Fatalf("age = %d, want clamp at %d", m.Prefs().UserAge, prefs.MaxAge)
	}

	if saved := prefs.Load(m.prefsPath); saved.UserAge != prefs.MaxAge {
		t.Fatalf("saved age = %d, want %d", saved.UserAge, prefs.MaxAge)
	}
}

func TestSettings_RatingSteps(t *testing.T) {
	m := selectRow(t, openSettings(t), prefs.KeyUserRating)

	for i := 0; i < 3; i++ {
		m = press(t, m, runes("+"))
	}
	if got, _ := m.Prefs().Get(prefs.KeyUserRating); got != "0.3" {
		t.Fatalf("rating = %s, want 0.3", got)
	}

	m.prefs.UserRating = 4.95
	m = press(t, m, runes("+"), runes("+"))
	if m.Prefs().UserRating != prefs.MaxRating {
		t.Fatalf("rating = %v, want clamp at %v", m.Prefs().UserRating, prefs.MaxRating)
	}
	if m.settings.err != "" {
		t.Fatalf("unexpected save error: %s", m.settings.err)
	}
}

func TestSettings_ToggleNotifications(t *testing.T) {
	m := selectRow(t, openSettings(t), prefs.KeyNotifications)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Prefs().Notifications {
		t.Fatalf("notifications still on after toggle")
	}
}

func TestSettings_AppThemeSwitchesPalette(t *testing.T) {
	m := selectRow(t, openSettings(t), prefs.KeyAppTheme)
	if m.theme.Name != "Dark" {
		t.Fatalf("system theme on dark terminal = %q, want Dark", m.theme.Name)
	}

	m = press(t, m, runes("+"))
	if m.Prefs().AppTheme != prefs.ThemeLight || m.theme.Name != "Light" {
		t.Fatalf("after step theme = (%q, %q), want light", m.Prefs().AppTheme, m.theme.Name)
	}

	m = press(t, m, runes("-"), runes("-"))
	if m.Prefs().AppTheme != prefs.ThemeDark {
		t.Fatalf("after stepping back theme = %q, want dark", m.Prefs().AppTheme)
	}
}

func TestSettings_EditName(t *testing.T) {
	m := selectRow(t, openSettings(t), prefs.KeyUserName)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.settings.editing {
		t.Fatalf("enter did not open the name editor")
	}

	// Clear "Guest" and type a new name; e and s are text while editing.
	for range "Guest" {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = press(t, m, runes("Jesse"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.settings.editing {
		t.Fatalf("editor still open after enter")
	}
	if m.Prefs().UserName != "Jesse" {
		t.Fatalf("UserName = %q, want Jesse", m.Prefs().UserName)
	}
	if saved := prefs.Load(m.prefsPath); saved.UserName != "Jesse" {
		t.Fatalf("saved UserName = %q, want Jesse", saved.UserName)
	}
}

func TestSettings_EditNameEscCancels(t *testing.T) {
	m := selectRow(t, openSettings(t), prefs.KeyUserName)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("zzz"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.settings.editing {
		t.Fatalf("editor still open after esc")
	}
	if m.Prefs().UserName != "Guest" {
		t.Fatalf("UserName = %q, want Guest", m.Prefs().UserName)
	}
	if m.CurrentView() != ViewSettings {
		t.Fatalf("esc in the editor left the settings view")
	}
}

func TestStepIndexWraps(t *testing.T) {
	if got := stepIndex(0, -1, 3); got != 2 {
		t.Fatalf("stepIndex(0,-1,3) = %d, want 2", got)
	}
	if got := stepIndex(2, 1, 3); got != 0 {
		t.Fatalf("stepIndex(2,1,3) = %d, want 0", got)
	}
}

func TestRatingBar(t *testing.T) {
	if got := ratingBar(3.6); got != "★★★★☆" {
		t.Fatalf("ratingBar(3.6) = %q", got)
	}
	if got := ratingBar(0); got != "☆☆☆☆☆" {
		t.Fatalf("ratingBar(0) = %q", got)
	}
}

func TestSettings_NoPrefsPathKeepsChangesInMemory(t *testing.T) {
	m := selectRow(t, openSettings(t), prefs.KeyNotifications)
	m.prefsPath = ""

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Prefs().Notifications {
		t.Fatalf("notifications still on after toggle")
	}
	if m.settings.err != "" {
		t.Fatalf("settings error = %q, want none", m.settings.err)
	}
	if !strings.Contains(m.View(), "changes are not saved") {
		t.Fatalf("settings view does not say changes are unsaved")
	}
}
