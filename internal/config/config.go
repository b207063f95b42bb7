package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Config holds the application settings that are not user preferences.
type Config struct {
	BaseURL  string
	DataDir  string
	InMemory bool
	LogLevel string
}

const (
	defaultConfigPath = "~/.config/tally/config.toml"
	defaultDataDir    = "~/.local/share/tally"
	defaultBaseURL    = "https://api.example.com"
	defaultLogLevel   = "info"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:  defaultBaseURL,
		DataDir:  mustExpand(defaultDataDir),
		LogLevel: defaultLogLevel,
	}
}

// Load locates and parses the tally config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL  string `toml:"base_url"`
		DataDir  string `toml:"data_dir"`
		InMemory bool   `toml:"in_memory"`
		LogLevel string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	cfg.InMemory = raw.InMemory

	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		if _, err := logrus.ParseLevel(v); err != nil {
			return Config{}, fmt.Errorf("parse config: log_level: %w", err)
		}
		cfg.LogLevel = v
	}

	return cfg, nil
}

// DatabasePath returns the path of the SQLite database file.
func (c Config) DatabasePath() string {
	return filepath.Join(c.dataDir(), "tally.db")
}

// LogPath returns the path of the application log file.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "tally.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
