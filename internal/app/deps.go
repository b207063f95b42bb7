package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/api"
	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/counter"
	"github.com/five82/tally/internal/logging"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/store"
)

// Options configure the tally application. Zero values use the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tally/prefs.toml
	BaseURL    string
	InMemory   bool
}

// Deps carries every process-wide dependency. It is built once by NewDeps and
// handed down explicitly; nothing reads globals.
type Deps struct {
	Config      config.Config
	Logger      logrus.FieldLogger
	Persistence *store.Controller
	API         *api.Client
	Prefs       prefs.Prefs
	PrefsPath   string
	LogPath     string // empty when logs are discarded
	Clock       clock.Clock

	closers []io.Closer
}

// Override replaces one dependency in a copy of Deps.
type Override func(*Deps)

// WithAPI swaps the HTTP client.
func WithAPI(c *api.Client) Override {
	return func(d *Deps) { d.API = c }
}

// WithPersistence swaps the persistence controller.
func WithPersistence(p *store.Controller) Override {
	return func(d *Deps) { d.Persistence = p }
}

// WithClock swaps the clock.
func WithClock(c clock.Clock) Override {
	return func(d *Deps) { d.Clock = c }
}

// WithLogger swaps the logger.
func WithLogger(l logrus.FieldLogger) Override {
	return func(d *Deps) { d.Logger = l }
}

// LoadConfig reads the config file and applies command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if opts.InMemory {
		cfg.InMemory = true
	}
	return cfg, nil
}

// NewDeps builds the default dependencies. A persistence store that cannot
// be opened is fatal.
func NewDeps(ctx context.Context, opts Options) (*Deps, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(logging.Options{Path: cfg.LogPath(), Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := api.New(cfg.BaseURL, api.WithLogger(logger.WithField("component", "api")))
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	persistence := store.MustOpen(ctx, store.Options{
		Path:     cfg.DatabasePath(),
		InMemory: cfg.InMemory,
	}, logger.WithField("component", "store"))

	prefsPath := resolvePrefsPath(opts)

	fields := logrus.Fields{
		"database":  cfg.DatabasePath(),
		"in_memory": cfg.InMemory,
		"base_url":  client.BaseURL(),
	}
	if version, err := persistence.SchemaVersion(); err == nil {
		fields["schema_version"] = version
	} else {
		logger.WithError(err).Warn("could not read schema version")
	}
	logger.WithFields(fields).Info("dependencies ready")

	return &Deps{
		Config:      cfg,
		Logger:      logger,
		Persistence: persistence,
		API:         client,
		Prefs:       prefs.Load(prefsPath),
		PrefsPath:   prefsPath,
		LogPath:     cfg.LogPath(),
		Clock:       clock.WallClock,
		closers:     []io.Closer{persistence, logCloser},
	}, nil
}

// CommandDeps builds what the one-shot subcommands need: config, logger, API
// client and preferences. No database is opened, so NewCounter must not be
// called on the result. Logs go to the application log when it can be opened
// and are discarded otherwise, so a read-only data dir never blocks a command.
func CommandDeps(opts Options) (*Deps, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	var logger logrus.FieldLogger = logging.Discard()
	var closers []io.Closer
	logPath := ""
	if l, closer, err := logging.New(logging.Options{Path: cfg.LogPath(), Level: cfg.LogLevel}); err == nil {
		logger = l.WithField("component", "cli")
		closers = append(closers, closer)
		logPath = cfg.LogPath()
	}

	client, err := api.New(cfg.BaseURL, api.WithLogger(logger))
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, fmt.Errorf("init api client: %w", err)
	}

	prefsPath := resolvePrefsPath(opts)
	return &Deps{
		Config:    cfg,
		Logger:    logger,
		API:       client,
		Prefs:     prefs.Load(prefsPath),
		PrefsPath: prefsPath,
		LogPath:   logPath,
		Clock:     clock.WallClock,
		closers:   closers,
	}, nil
}

func resolvePrefsPath(opts Options) string {
	if path := strings.TrimSpace(opts.PrefsPath); path != "" {
		return path
	}
	return prefs.DefaultPath()
}

// PreviewDeps returns dependencies backed by an in-memory store seeded with a
// sample counter. Nothing touches the filesystem: PrefsPath and LogPath stay
// empty, so preference edits are not saved.
func PreviewDeps(ctx context.Context) (*Deps, error) {
	persistence, err := store.Preview(ctx)
	if err != nil {
		return nil, err
	}
	client, err := api.New("")
	if err != nil {
		_ = persistence.Close()
		return nil, err
	}
	return &Deps{
		Config:      config.Default(),
		Logger:      logging.Discard(),
		Persistence: persistence,
		API:         client,
		Prefs:       prefs.Defaults(),
		Clock:       clock.WallClock,
		closers:     []io.Closer{persistence},
	}, nil
}

// With returns a copy of d with the overrides applied. The copy shares the
// original's resources; only the original should be closed.
func (d *Deps) With(overrides ...Override) *Deps {
	cp := *d
	cp.closers = nil
	for _, o := range overrides {
		o(&cp)
	}
	return &cp
}

// NewCounter builds a counter controller over the persistence context.
// The caller decides when to Load.
func (d *Deps) NewCounter() *counter.Controller {
	return counter.New(d.Persistence.Context(),
		counter.WithClock(d.Clock),
		counter.WithLogger(d.Logger.WithField("component", "counter")),
	)
}

// Close releases what NewDeps opened, in reverse order.
func (d *Deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
