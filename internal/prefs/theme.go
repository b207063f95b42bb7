package prefs

import "strings"

// AppTheme selects the application palette.
type AppTheme string

const (
	ThemeSystem AppTheme = "system"
	ThemeLight  AppTheme = "light"
	ThemeDark   AppTheme = "dark"
)

// Themes lists every AppTheme in picker order.
func Themes() []AppTheme {
	return []AppTheme{ThemeSystem, ThemeLight, ThemeDark}
}

// DisplayName returns the label shown in the settings view.
func (t AppTheme) DisplayName() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	default:
		return "System"
	}
}

func (t AppTheme) valid() bool {
	for _, v := range Themes() {
		if v == t {
			return true
		}
	}
	return false
}

// CounterTheme selects the colors of the counter display.
type CounterTheme string

const (
	CounterDefault CounterTheme = "default"
	CounterDark    CounterTheme = "dark"
	CounterLight   CounterTheme = "light"
)

// CounterThemes lists every CounterTheme in picker order.
func CounterThemes() []CounterTheme {
	return []CounterTheme{CounterDefault, CounterDark, CounterLight}
}

// DisplayName returns the capitalized theme name.
func (t CounterTheme) DisplayName() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (t CounterTheme) valid() bool {
	for _, v := range CounterThemes() {
		if v == t {
			return true
		}
	}
	return false
}

// Next returns the theme after t, wrapping around.
func (t AppTheme) Next() AppTheme {
	all := Themes()
	for i, v := range all {
		if v == t {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Next returns the counter theme after t, wrapping around.
func (t CounterTheme) Next() CounterTheme {
	all := CounterThemes()
	for i, v := range all {
		if v == t {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
