package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/prefs"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Unfocused panels
	FocusBg    string // Focused panel

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
}

// WithBackground returns a copy of Styles with every style on bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	return Styles{
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),
		Header:      s.Header.Background(bg),
		Logo:        s.Logo.Background(bg),
		Selected:    s.Selected,
	}
}

// ResolveTheme picks the palette for the app theme preference. The system
// theme follows the terminal background.
func ResolveTheme(pref prefs.AppTheme, darkBackground bool) Theme {
	switch pref {
	case prefs.ThemeLight:
		return lightTheme()
	case prefs.ThemeDark:
		return darkTheme()
	default:
		if darkBackground {
			return darkTheme()
		}
		return lightTheme()
	}
}

// CounterStyle returns the style for the big counter value.
func CounterStyle(pref prefs.CounterTheme, t Theme) lipgloss.Style {
	base := lipgloss.NewStyle().
		Bold(true).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder())

	switch pref {
	case prefs.CounterDark:
		// Slate: https://tailwindcss.com/docs/colors
		return base.
			Background(lipgloss.Color("#0f172a")). // slate-900
			Foreground(lipgloss.Color("#f8fafc")). // slate-50
			BorderForeground(lipgloss.Color("#334155"))
	case prefs.CounterLight:
		return base.
			Background(lipgloss.Color("#f8fafc")). // slate-50
			Foreground(lipgloss.Color("#0f172a")). // slate-900
			BorderForeground(lipgloss.Color("#cbd5e1"))
	default:
		return base.
			Foreground(lipgloss.Color(t.Accent)).
			BorderForeground(lipgloss.Color(t.Border))
	}
}

func darkTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Dark",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan
	}
}

func lightTheme() Theme {
	// Dayfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Light",

		Background: "#f6f2ee", // bg0
		Surface:    "#e4dcd4", // bg1
		SurfaceAlt: "#eee6dc", // bg2
		FocusBg:    "#dbd1dd", // bg3

		SelectionBg:   "#e7d2be", // sel0
		SelectionText: "#3d2b5a", // fg1

		Border:      "#aab0ad", // bg4
		BorderFocus: "#2848a9", // blue

		Text:    "#3d2b5a", // fg1
		Muted:   "#837a72", // comment
		Faint:   "#824d5b", // fg3
		Accent:  "#2848a9", // blue
		Success: "#396847", // green
		Warning: "#ac5402", // yellow
		Danger:  "#a5222f", // red
		Info:    "#287980", // cyan
	}
}
