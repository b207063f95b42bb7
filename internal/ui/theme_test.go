package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/prefs"
)

func TestResolveTheme(t *testing.T) {
	cases := []struct {
		pref prefs.AppTheme
		dark bool
		want string
	}{
		{prefs.ThemeSystem, true, "Dark"},
		{prefs.ThemeSystem, false, "Light"},
		{prefs.ThemeLight, true, "Light"},
		{prefs.ThemeDark, false, "Dark"},
		{"", true, "Dark"},
	}
	for _, tc := range cases {
		if got := ResolveTheme(tc.pref, tc.dark).Name; got != tc.want {
			t.Fatalf("ResolveTheme(%q, %v) = %q, want %q", tc.pref, tc.dark, got, tc.want)
		}
	}
}

func TestCounterStyleDiffersByTheme(t *testing.T) {
	th := darkTheme()
	def := CounterStyle(prefs.CounterDefault, th).Render("7")
	dark := CounterStyle(prefs.CounterDark, th).Render("7")
	light := CounterStyle(prefs.CounterLight, th).Render("7")
	if def == "" || dark == "" || light == "" {
		t.Fatalf("CounterStyle rendered empty output")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  ", 10, ""},
		{"  padded  ", 0, "padded"},
		{"abcd", 1, "a"},
		{"abcd", 4, "abcd"},
		{"abcdefghij", 7, "abcdef…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}

	wide := truncate("日本語テキスト", 5)
	if w := lipgloss.Width(wide); w > 5 {
		t.Fatalf("truncate wide width = %d, want <= 5", w)
	}
	if !strings.HasSuffix(wide, "…") {
		t.Fatalf("truncate wide = %q, want ellipsis", wide)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("日本", 6); got != "日本  " {
		t.Fatalf("padRight wide = %q, want two cells of padding", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight long = %q", got)
	}
}
