package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/apperr"
	"github.com/five82/tally/internal/model"
)

const driverName = "sqlite3"

// Options configure the backing database.
type Options struct {
	Path     string // database file; ignored when InMemory is set
	InMemory bool
}

// Controller owns the database handle and the shared Context.
type Controller struct {
	db  *sqlx.DB
	ctx *Context
}

// Open creates or opens the counter database and applies the schema.
func Open(ctx context.Context, opts Options) (*Controller, error) {
	dsn, err := dataSourceName(opts)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, apperr.Wrapf(apperr.Persistence, err, "open database")
	}
	// A :memory: database exists per connection, and sqlite serialises
	// writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, apperr.Wrapf(apperr.Persistence, err, "connect database")
	}
	if err := applySchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewController(db), nil
}

// MustOpen is Open for the composition root: a store that cannot be opened
// leaves nothing to run, so the failure is logged and the process exits.
func MustOpen(ctx context.Context, opts Options, log logrus.FieldLogger) *Controller {
	c, err := Open(ctx, opts)
	if err != nil {
		log.WithError(err).WithField("path", opts.Path).Fatal("could not create counter store")
	}
	return c
}

// NewController wraps an already-migrated database handle.
func NewController(db *sqlx.DB) *Controller {
	return &Controller{db: db, ctx: newContext(db)}
}

// Preview returns an in-memory controller holding one sample counter.
func Preview(ctx context.Context) (*Controller, error) {
	c, err := Open(ctx, Options{InMemory: true})
	if err != nil {
		return nil, err
	}
	c.ctx.Insert(model.New(model.WithValue(42), model.WithTitle("Sample Counter")))
	if err := c.ctx.Commit(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// Context returns the shared query/mutation context.
func (c *Controller) Context() *Context {
	return c.ctx
}

// SchemaVersion reports the latest applied migration.
func (c *Controller) SchemaVersion() (uint, error) {
	return schemaVersion(c.db)
}

// Close releases the database handle.
func (c *Controller) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func dataSourceName(opts Options) (string, error) {
	if opts.InMemory {
		return ":memory:", nil
	}
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return "", apperr.PersistenceError("database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", apperr.Wrapf(apperr.Persistence, err, "create data dir")
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000", path), nil
}
