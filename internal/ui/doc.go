// Package ui provides the Bubble Tea terminal interface for tally.
//
// # Views
//
//   - Counter: the active counter's title, value and last update, the last
//     error message, and hints for decrement, reset and increment
//   - Settings (s): one row per preference; every change is saved at once,
//     or kept in memory when Options.PrefsPath is empty
//   - Application log (L): the tail of the log file, colored by level
//
// # Data Flow
//
// Key presses on the counter view call the counter.Controller directly from
// the update loop. The controller commits to SQLite and publishes a
// state.Snapshot, which the model copies back before rendering. Log reads run
// as tea.Cmds so file I/O never blocks the update loop.
//
// # Theming
//
// The app_theme preference picks the palette. "system" asks the terminal for
// its background once at startup. The counter_theme preference only styles
// the value box and is cycled with c.
package ui
