package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/prefs"
)

// settingsState holds the settings view cursor and name editor.
type settingsState struct {
	selected  int
	editing   bool
	nameInput textinput.Model
	err       string
}

// settingsRow describes one editable preference.
type settingsRow struct {
	key   string
	label string
}

var settingsRows = []settingsRow{
	{prefs.KeyUserName, "Name"},
	{prefs.KeyUserAge, "Age"},
	{prefs.KeyNotifications, "Notifications"},
	{prefs.KeyUserRating, "Rating"},
	{prefs.KeyAppTheme, "App theme"},
	{prefs.KeyCounterTheme, "Counter theme"},
}

func (m *Model) initSettings() {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = 64
	m.settings = settingsState{nameInput: ti}
}

// handleSettingsKey moves the cursor and adjusts the selected preference.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row := settingsRows[m.settings.selected].key

	switch {
	case key.Matches(msg, m.keys.Up):
		m.settings.selected = clampInt(m.settings.selected-1, 0, len(settingsRows)-1)
	case key.Matches(msg, m.keys.Down):
		m.settings.selected = clampInt(m.settings.selected+1, 0, len(settingsRows)-1)
	case key.Matches(msg, m.keys.Left):
		m.adjustSetting(row, -1)
	case key.Matches(msg, m.keys.Right):
		m.adjustSetting(row, +1)
	case key.Matches(msg, m.keys.Toggle):
		if row == prefs.KeyUserName {
			m.settings.editing = true
			m.settings.nameInput.SetValue(m.prefs.UserName)
			m.settings.nameInput.CursorEnd()
			return m, m.settings.nameInput.Focus()
		}
		m.adjustSetting(row, +1)
	}
	return m, nil
}

// adjustSetting steps the preference under key by dir (+1 or -1).
func (m *Model) adjustSetting(k string, dir int) {
	switch k {
	case prefs.KeyUserAge:
		m.applyPrefs(func(p *prefs.Prefs) {
			p.UserAge = clampInt(p.UserAge+dir, prefs.MinAge, prefs.MaxAge)
		})
	case prefs.KeyNotifications:
		m.applyPrefs(func(p *prefs.Prefs) { p.Notifications = !p.Notifications })
	case prefs.KeyUserRating:
		m.applyPrefs(func(p *prefs.Prefs) {
			r := prefs.RoundRating(p.UserRating + float64(dir)/10)
			if r < prefs.MinRating {
				r = prefs.MinRating
			}
			if r > prefs.MaxRating {
				r = prefs.MaxRating
			}
			p.UserRating = r
		})
	case prefs.KeyAppTheme:
		m.applyPrefs(func(p *prefs.Prefs) { p.AppTheme = stepTheme(p.AppTheme, dir) })
	case prefs.KeyCounterTheme:
		m.applyPrefs(func(p *prefs.Prefs) { p.CounterTheme = stepCounterTheme(p.CounterTheme, dir) })
	}
}

// handleNameInput feeds keys to the name editor until enter or esc.
func (m Model) handleNameInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		name := strings.TrimSpace(m.settings.nameInput.Value())
		m.settings.editing = false
		m.settings.nameInput.Blur()
		m.applyPrefs(func(p *prefs.Prefs) { p.UserName = name })
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.settings.editing = false
		m.settings.nameInput.Blur()
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.settings.nameInput, cmd = m.settings.nameInput.Update(msg)
	return m, cmd
}

// renderSettings renders one row per preference with the cursor row highlighted.
func (m Model) renderSettings() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	var b strings.Builder

	for i, row := range settingsRows {
		selected := i == m.settings.selected
		cursor := ternary(selected, "› ", "  ")
		label := padRight(row.label, SettingsLabelWidth)

		var value string
		if row.key == prefs.KeyUserName && m.settings.editing {
			value = m.settings.nameInput.View()
		} else {
			value = m.settingValue(row.key)
		}

		if selected {
			b.WriteString(styles.AccentText.Render(cursor + label))
			b.WriteString(styles.Text.Bold(true).Render(value))
		} else {
			b.WriteString(styles.MutedText.Render(cursor + label))
			b.WriteString(styles.Text.Render(value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.settings.err != "":
		b.WriteString(styles.DangerText.Render(truncate(m.settings.err, m.width-6)))
	case m.prefsPath == "":
		b.WriteString(styles.FaintText.Render("Preview: changes are not saved"))
	default:
		b.WriteString(styles.FaintText.Render("Saved to " + truncate(m.prefsPath, m.width-16)))
	}

	return m.renderTitledBox("Settings", b.String(), m.width, m.contentHeight(), true)
}

// settingValue formats a preference for display.
func (m Model) settingValue(k string) string {
	p := m.prefs
	switch k {
	case prefs.KeyUserName:
		return p.UserName
	case prefs.KeyUserAge:
		return fmt.Sprintf("%d", p.UserAge)
	case prefs.KeyNotifications:
		return ternary(p.Notifications, "[x] on", "[ ] off")
	case prefs.KeyUserRating:
		return fmt.Sprintf("%.1f %s", p.UserRating, ratingBar(p.UserRating))
	case prefs.KeyAppTheme:
		return "‹ " + p.AppTheme.DisplayName() + " ›"
	case prefs.KeyCounterTheme:
		return "‹ " + p.CounterTheme.DisplayName() + " ›"
	}
	return ""
}

// ratingBar draws five cells, filled to the nearest whole star.
func ratingBar(r float64) string {
	filled := clampInt(int(r+0.5), 0, 5)
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

func stepTheme(t prefs.AppTheme, dir int) prefs.AppTheme {
	all := prefs.Themes()
	return all[stepIndex(indexOf(all, t), dir, len(all))]
}

func stepCounterTheme(t prefs.CounterTheme, dir int) prefs.CounterTheme {
	all := prefs.CounterThemes()
	return all[stepIndex(indexOf(all, t), dir, len(all))]
}

func indexOf[T comparable](all []T, v T) int {
	for i, x := range all {
		if x == v {
			return i
		}
	}
	return 0
}

func stepIndex(i, dir, n int) int {
	return ((i+dir)%n + n) % n
}
