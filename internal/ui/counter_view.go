package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderCounter renders the counter view: title, value, error line, hints.
func (m Model) renderCounter() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	innerWidth := m.width - 4
	if innerWidth < CounterMinWidth {
		innerWidth = CounterMinWidth
	}

	var body []string
	snap := m.snapshot

	switch {
	case snap.IsLoading:
		body = append(body, styles.InfoText.Render("Loading..."))
	case snap.HasCounter():
		body = append(body,
			styles.Text.Bold(true).Render(truncate(snap.Counter.Title, innerWidth)),
			"",
			CounterStyle(m.prefs.CounterTheme, m.theme).
				Width(counterBoxWidth(snap.Value())).
				Align(lipgloss.Center).
				Render(formatValue(snap.Value())),
			"",
			styles.FaintText.Render("Updated "+snap.Counter.UpdatedAt.Local().Format("2006-01-02 15:04:05")),
		)
	default:
		body = append(body,
			styles.WarningText.Render("No counter"),
			"",
			styles.MutedText.Render("Press n to create one or R to reload"),
		)
	}

	if snap.HasError() {
		body = append(body, "", styles.DangerText.Render(truncate(snap.ErrorMessage, innerWidth)))
	}

	body = append(body, "", m.renderCounterHints())

	content := lipgloss.PlaceHorizontal(innerWidth, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, body...),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.FocusBg)))

	// Vertically center inside the box.
	boxHeight := m.contentHeight()
	lines := strings.Split(content, "\n")
	if pad := (boxHeight - 2 - len(lines)) / 2; pad > 0 {
		lines = append(make([]string, pad), lines...)
	}
	return m.renderTitledBox("Counter", strings.Join(lines, "\n"), m.width, boxHeight, true)
}

// renderCounterHints renders the "- r +" affordances below the value.
func (m Model) renderCounterHints() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	hint := func(k, label string) string {
		return styles.AccentText.Bold(true).Render("["+k+"]") + styles.MutedText.Render(" "+label)
	}
	gap := styles.Text.Render("   ")
	return hint("-", "minus") + gap + hint("r", "reset") + gap + hint("+", "plus")
}

func counterBoxWidth(v int) int {
	w := len(formatValue(v)) + 8
	if w < CounterMinWidth {
		return CounterMinWidth
	}
	return w
}
