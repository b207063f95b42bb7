// Package prefs handles tally user preferences persistence.
// Preferences are stored in ~/.config/tally/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tally/internal/apperr"
)

// Prefs holds user preferences for tally.
type Prefs struct {
	UserName      string       `toml:"user_name"`
	UserAge       int          `toml:"user_age" validate:"gte=0,lte=120"`
	Notifications bool         `toml:"notifications"`
	UserRating    float64      `toml:"user_rating" validate:"gte=0,lte=5,rating_step"`
	AppTheme      AppTheme     `toml:"app_theme" validate:"oneof=system light dark"`
	CounterTheme  CounterTheme `toml:"counter_theme" validate:"oneof=default dark light"`
}

const (
	defaultPrefsPath = "~/.config/tally/prefs.toml"

	MinAge    = 0
	MaxAge    = 120
	MinRating = 0.0
	MaxRating = 5.0
)

// Defaults returns the preferences used when nothing has been saved.
func Defaults() Prefs {
	return Prefs{
		UserName:      "Guest",
		UserAge:       0,
		Notifications: true,
		UserRating:    0,
		AppTheme:      ThemeSystem,
		CounterTheme:  CounterDefault,
	}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("rating_step", func(fl validator.FieldLevel) bool {
		r := fl.Field().Float()
		return math.Abs(r-RoundRating(r)) < 1e-9
	})
	return v
}

// Validate reports whether p can be saved.
func (p Prefs) Validate() error {
	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apperr.Wrapf(apperr.Validation, err, "%s fails %s", keyForField(fe.StructField()), fe.Tag())
		}
		return apperr.Wrapf(apperr.Validation, err, "invalid preferences")
	}
	return nil
}

// Load reads preferences from the given path, falling back to defaults if missing.
// Keys absent from the file and values out of range keep their defaults.
func Load(path string) Prefs {
	prefs := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		return prefs // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Defaults() // Graceful degradation
	}

	return prefs.normalized()
}

// Save validates and writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	if err := p.Validate(); err != nil {
		return err
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return apperr.Wrapf(apperr.Persistence, err, "resolve path")
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.Wrapf(apperr.Persistence, err, "create prefs dir")
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return apperr.Wrapf(apperr.Encoding, err, "marshal prefs")
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return apperr.Wrapf(apperr.Persistence, err, "write prefs")
	}

	return nil
}

// RoundRating snaps a rating to the nearest tenth.
func RoundRating(r float64) float64 {
	return math.Round(r*10) / 10
}

func (p Prefs) normalized() Prefs {
	def := Defaults()
	if p.UserAge < MinAge || p.UserAge > MaxAge {
		p.UserAge = def.UserAge
	}
	if math.IsNaN(p.UserRating) || p.UserRating < MinRating || p.UserRating > MaxRating {
		p.UserRating = def.UserRating
	}
	p.UserRating = RoundRating(p.UserRating)
	if !p.AppTheme.valid() {
		p.AppTheme = def.AppTheme
	}
	if !p.CounterTheme.valid() {
		p.CounterTheme = def.CounterTheme
	}
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
