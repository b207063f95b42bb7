package ui

import "time"

// Log view limits.
const (
	// LogTailLines is how many lines of the application log the log view keeps.
	LogTailLines = 500

	// LogRefreshInterval is how often the log view re-reads the file while following.
	LogRefreshInterval = 2 * time.Second
)

// Counter view sizing.
const (
	// CounterMinWidth is the narrowest box drawn around the value.
	CounterMinWidth = 16

	// SettingsLabelWidth aligns the settings value column.
	SettingsLabelWidth = 16
)

// chromeHeight is the header plus command bar.
const chromeHeight = 2
