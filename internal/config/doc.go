// Package config loads the tally configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tally/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/tally/config.toml
//   - API base URL: https://api.example.com
//   - Data directory: ~/.local/share/tally
//   - Database: <data_dir>/tally.db
//   - Log file: <data_dir>/tally.log
//   - Log level: info
//
// # TOML Format
//
//	base_url = "https://api.example.com"
//	data_dir = "~/.local/share/tally"
//	in_memory = false
//	log_level = "info"
//
// Every field is optional. Tilde expansion is performed on data_dir.
// in_memory keeps the counter database in memory for the process lifetime.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, and log levels logrus does not know.
// A missing config file is not an error.
//
// Command-line flags in cmd/tally override individual fields after Load.
package config
