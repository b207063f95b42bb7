package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status line: app name, greeting, counter state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("tally", styles.Logo),
		bg.Render("Hello, "+truncate(m.prefs.UserName, 24), styles.MutedText),
	}

	switch {
	case m.snapshot.IsLoading:
		parts = append(parts, bg.Render("Loading...", styles.InfoText))
	case m.snapshot.HasCounter():
		parts = append(parts, bg.Render(truncate(m.snapshot.Counter.Title, 32), styles.Text))
	default:
		parts = append(parts, bg.Render("No counter", styles.WarningText))
	}

	if m.snapshot.HasError() {
		parts = append(parts, bg.Render("ERROR", styles.DangerText))
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.SuccessText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

// renderCommandBar renders the key hints for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewSettings:
		commands = []cmd{
			{"j/k", "Select"},
			{"-/+", "Adjust"},
			{"enter", "Edit"},
			{"esc", "Counter"},
			{"?", "More"},
		}
	case ViewLogs:
		commands = []cmd{
			{"Space", ternary(m.logs.follow, "Pause", "Follow")},
			{"j/k", "Scroll"},
			{"R", "Re-read"},
			{"esc", "Counter"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"-", "Decrement"},
			{"r", "Reset"},
			{"+", "Increment"},
			{"n", "New"},
			{"x", "Delete"},
			{"s", "Settings"},
			{"L", "Log"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.currentView == ViewCounter {
		segments = append(segments,
			bg.Render("c", styles.AccentText)+colon+bg.Render(m.prefs.CounterTheme.DisplayName(), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderTitledBox draws content inside a frame with the title set in the top
// border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}
	title = truncate(title, innerWidth-4)
	titleLen := lipgloss.Width(title)
	leftPad := (innerWidth - titleLen - 2) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	rightPad := innerWidth - titleLen - 2 - leftPad
	if rightPad < 0 {
		rightPad = 0
	}

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				bg.FillLine(line, innerWidth)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// contentHeight is the height left for the active view.
func (m Model) contentHeight() int {
	h := m.height - chromeHeight
	if h < 3 {
		return 3
	}
	return h
}

func formatValue(v int) string {
	return fmt.Sprintf("%d", v)
}
