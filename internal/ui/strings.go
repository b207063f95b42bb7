package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// truncate trims value and cuts it to limit terminal cells. Cut text ends in
// an ellipsis unless there is only room for one cell.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || ansi.StringWidth(value) <= limit {
		return value
	}
	if limit == 1 {
		return ansi.Truncate(value, limit, "")
	}
	return ansi.Truncate(value, limit, ellipsis)
}

// padRight pads s with spaces to width cells. Styled text is measured
// without its escape codes.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
