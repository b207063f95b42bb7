package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/five82/tally/internal/apperr"
	"github.com/five82/tally/internal/model"
)

// Repository is the persistence surface the counter controller depends on.
type Repository interface {
	// FindLatest returns the most recently created counter, or nil when none exist.
	FindLatest(ctx context.Context) (*model.Counter, error)
	// FetchAll returns every counter ordered by creation time, newest first.
	FetchAll(ctx context.Context) ([]*model.Counter, error)
	Insert(c *model.Counter)
	Delete(c *model.Counter)
	// Commit flushes pending inserts, mutations and deletions.
	Commit(ctx context.Context) error
}

var _ Repository = (*Context)(nil)

// Context is a unit of work over the counters table. Records it returns or
// receives are tracked by ID; callers mutate them in place and call Commit.
type Context struct {
	db *sqlx.DB

	mu        sync.Mutex
	tracked   map[uuid.UUID]*model.Counter
	persisted map[uuid.UUID]model.Counter // last committed state of each row
	deleted   map[uuid.UUID]struct{}
}

type counterRow struct {
	ID        string `db:"id"`
	Value     int    `db:"value"`
	Title     string `db:"title"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func newContext(db *sqlx.DB) *Context {
	return &Context{
		db:        db,
		tracked:   make(map[uuid.UUID]*model.Counter),
		persisted: make(map[uuid.UUID]model.Counter),
		deleted:   make(map[uuid.UUID]struct{}),
	}
}

// FetchAll loads all counters. Rows already tracked resolve to the tracked
// record, so uncommitted mutations and inserts are visible; pending deletions
// are not.
func (c *Context) FetchAll(ctx context.Context) ([]*model.Counter, error) {
	var rows []counterRow
	err := c.db.SelectContext(ctx, &rows,
		`SELECT id, value, title, created_at, updated_at FROM counters ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Wrapf(apperr.Persistence, err, "fetch counters")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, row := range rows {
		rec, err := row.toModel()
		if err != nil {
			return nil, apperr.Wrapf(apperr.Persistence, err, "decode counter %q", row.ID)
		}
		if _, gone := c.deleted[rec.ID]; gone {
			continue
		}
		if _, ok := c.tracked[rec.ID]; ok {
			continue
		}
		c.tracked[rec.ID] = rec
		c.persisted[rec.ID] = *rec
	}

	out := make([]*model.Counter, 0, len(c.tracked))
	for _, rec := range c.tracked {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// FindLatest returns the newest counter or nil.
func (c *Context) FindLatest(ctx context.Context) (*model.Counter, error) {
	all, err := c.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

// Insert stages a new record.
func (c *Context) Insert(rec *model.Counter) {
	if rec == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.deleted, rec.ID)
	c.tracked[rec.ID] = rec
}

// Delete stages removal of a record.
func (c *Context) Delete(rec *model.Counter) {
	if rec == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tracked, rec.ID)
	c.deleted[rec.ID] = struct{}{}
}

// HasChanges reports whether a Commit would write anything.
func (c *Context) HasChanges() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.deleted) > 0 || len(c.dirtyLocked()) > 0
}

// Commit writes staged changes in one transaction. On failure nothing is
// cleared, so the same changes are written again by the next Commit.
func (c *Context) Commit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dirty := c.dirtyLocked()
	if len(dirty) == 0 && len(c.deleted) == 0 {
		return nil
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Wrapf(apperr.Persistence, err, "begin commit")
	}
	if err := c.writeLocked(ctx, tx, dirty); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperr.Wrapf(apperr.Persistence, err, "commit")
	}

	for id := range c.deleted {
		delete(c.persisted, id)
	}
	c.deleted = make(map[uuid.UUID]struct{})
	for _, rec := range dirty {
		c.persisted[rec.ID] = *rec
	}
	return nil
}

func (c *Context) writeLocked(ctx context.Context, tx *sqlx.Tx, dirty []*model.Counter) error {
	for _, id := range sortedIDs(c.deleted) {
		if _, err := tx.ExecContext(ctx, `DELETE FROM counters WHERE id = ?`, id.String()); err != nil {
			return apperr.Wrapf(apperr.Persistence, err, "delete counter %s", id)
		}
	}
	for _, rec := range dirty {
		row := fromModel(rec)
		_, err := tx.ExecContext(ctx, `INSERT INTO counters (id, value, title, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				value = excluded.value,
				title = excluded.title,
				updated_at = excluded.updated_at`,
			row.ID, row.Value, row.Title, row.CreatedAt, row.UpdatedAt)
		if err != nil {
			return apperr.Wrapf(apperr.Persistence, err, "save counter %s", rec.ID)
		}
	}
	return nil
}

// dirtyLocked lists tracked records that differ from their committed state,
// ordered by ID for deterministic writes.
func (c *Context) dirtyLocked() []*model.Counter {
	var dirty []*model.Counter
	for id, rec := range c.tracked {
		saved, ok := c.persisted[id]
		if ok && sameRecord(saved, *rec) {
			continue
		}
		dirty = append(dirty, rec)
	}
	sort.Slice(dirty, func(i, j int) bool { return dirty[i].ID.String() < dirty[j].ID.String() })
	return dirty
}

func sameRecord(a, b model.Counter) bool {
	return a.ID == b.ID &&
		a.Value == b.Value &&
		a.Title == b.Title &&
		a.CreatedAt.Equal(b.CreatedAt) &&
		a.UpdatedAt.Equal(b.UpdatedAt)
}

func sortedIDs(set map[uuid.UUID]struct{}) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

func fromModel(rec *model.Counter) counterRow {
	return counterRow{
		ID:        rec.ID.String(),
		Value:     rec.Value,
		Title:     rec.Title,
		CreatedAt: rec.CreatedAt.UnixNano(),
		UpdatedAt: rec.UpdatedAt.UnixNano(),
	}
}

func (r counterRow) toModel() (*model.Counter, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	return &model.Counter{
		ID:        id,
		Value:     r.Value,
		Title:     r.Title,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
		UpdatedAt: time.Unix(0, r.UpdatedAt).UTC(),
	}, nil
}
