// Package app is the composition root for tally.
//
// # Dependencies
//
// NewDeps builds everything the process shares, once, from the config file
// and command-line overrides:
//
//   - Config: internal/config, with -base-url and -memory applied
//   - Logger: logrus writing to a rotating file at <data_dir>/tally.log
//   - Persistence: the SQLite store at <data_dir>/tally.db, or :memory:
//   - API: the JSON client pointed at base_url
//   - Prefs: loaded from prefs.toml, defaults when missing
//   - Clock: the wall clock
//
// Deps is passed explicitly; no package reads globals. Deps.With returns a
// copy with a swapped API client, persistence controller, clock or logger,
// which is how tests and previews substitute fakes. PreviewDeps gives an
// in-memory store holding one sample counter.
//
// A persistence store that cannot be opened is the one fatal condition:
// store.MustOpen logs it and exits.
//
// # Run
//
// Run builds Deps, creates the counter controller, loads the active counter,
// and blocks in the TUI until the user quits or the context is cancelled.
// RunPreview does the same over PreviewDeps for tally -preview.
//
// # Commands
//
// GetCommand, PostCommand and PrefsCommand back the tally get, post and prefs
// subcommands. They take a *Deps, print to the given writer and never start
// the TUI. CommandDeps builds their Deps without opening the database; the
// requests go through Deps.API, so WithAPI redirects them. GetCommand takes
// an optional gjson path to print a single field, and JSON replies are
// indented with tidwall/pretty.
package app
