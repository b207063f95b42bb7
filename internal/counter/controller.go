// Package counter implements the state controller for the active counter: it
// loads or creates the record, applies user intents, commits them through the
// persistence context, and publishes the result.
package counter

import (
	"context"
	"fmt"
	"time"

	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/logging"
	"github.com/five82/tally/internal/model"
	"github.com/five82/tally/internal/state"
	"github.com/five82/tally/internal/store"
)

// DefaultTitle is the title given to counters the controller creates.
const DefaultTitle = "My Counter"

// Controller mediates between published UI state and the repository. Its
// methods are not safe for concurrent use; the UI calls them from its single
// update loop.
type Controller struct {
	repo   store.Repository
	clock  clock.Clock
	log    logrus.FieldLogger
	states *state.Store
	title  string

	counter      *model.Counter
	isLoading    bool
	errorMessage string
}

// Option customises a Controller.
type Option func(*Controller)

// WithClock sets the clock used to stamp mutations.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(ctrl *Controller) { ctrl.log = l }
}

// WithStore publishes state into s instead of a private store.
func WithStore(s *state.Store) Option {
	return func(ctrl *Controller) { ctrl.states = s }
}

// WithDefaultTitle overrides the title of newly created counters.
func WithDefaultTitle(title string) Option {
	return func(ctrl *Controller) { ctrl.title = title }
}

// New builds a controller over repo. It does not touch the repository; call
// Load to adopt or create the active counter.
func New(repo store.Repository, opts ...Option) *Controller {
	ctrl := &Controller{
		repo:  repo,
		clock: clock.WallClock,
		title: DefaultTitle,
	}
	for _, opt := range opts {
		opt(ctrl)
	}
	if ctrl.log == nil {
		ctrl.log = logging.Discard()
	}
	if ctrl.states == nil {
		ctrl.states = &state.Store{}
	}
	return ctrl
}

// Load adopts the most recently created counter. When the store is empty or
// the query fails a new counter is created; a failed query also leaves an
// error message.
func (c *Controller) Load(ctx context.Context) {
	c.isLoading = true
	c.errorMessage = ""
	c.publish()

	counters, err := c.repo.FetchAll(ctx)
	switch {
	case err != nil:
		c.errorMessage = fmt.Sprintf("Failed to load counter: %v", err)
		c.log.WithError(err).Warn("load counter failed, creating a new one")
		c.Create(ctx)
	case len(counters) > 0:
		c.counter = counters[0]
		c.log.WithFields(logrus.Fields{
			"id":    c.counter.ID,
			"value": c.counter.Value,
			"rows":  len(counters),
		}).Debug("counter loaded")
	default:
		c.log.Debug("no counter stored, creating one")
		c.Create(ctx)
	}

	c.isLoading = false
	c.publish()
}

// Create inserts a fresh counter with value 0, makes it active and commits.
func (c *Controller) Create(ctx context.Context) {
	rec := model.New(model.WithTitle(c.title), model.WithClock(c.clock))
	c.repo.Insert(rec)
	c.counter = rec
	if c.commit(ctx) {
		c.log.WithField("id", rec.ID).Info("counter created")
	}
	c.publish()
}

// Update assigns value to the active counter.
func (c *Controller) Update(ctx context.Context, value int) {
	if c.counter == nil {
		return
	}
	c.counter.SetValue(value, c.now())
	c.commit(ctx)
	c.publish()
}

// Increment adds by to the active counter.
func (c *Controller) Increment(ctx context.Context, by int) {
	if c.counter == nil {
		return
	}
	c.counter.Increment(by, c.now())
	c.commit(ctx)
	c.publish()
}

// Decrement subtracts by from the active counter.
func (c *Controller) Decrement(ctx context.Context, by int) {
	if c.counter == nil {
		return
	}
	c.counter.Decrement(by, c.now())
	c.commit(ctx)
	c.publish()
}

// Reset zeroes the active counter.
func (c *Controller) Reset(ctx context.Context) {
	if c.counter == nil {
		return
	}
	c.counter.Reset(c.now())
	c.commit(ctx)
	c.publish()
}

// Delete removes the active counter from the store and clears it. No counter
// is recreated until Load or Create is called.
func (c *Controller) Delete(ctx context.Context) {
	if c.counter == nil {
		return
	}
	c.repo.Delete(c.counter)
	if c.commit(ctx) {
		c.log.WithField("id", c.counter.ID).Info("counter deleted")
	}
	c.counter = nil
	c.publish()
}

// State returns the current published state.
func (c *Controller) State() state.Snapshot {
	return c.states.Snapshot()
}

// Store returns the store the controller publishes into.
func (c *Controller) Store() *state.Store {
	return c.states
}

// commit flushes pending changes and reports whether they were written. A
// failure is reported through the error message only; the in-memory mutation
// stays applied.
func (c *Controller) commit(ctx context.Context) bool {
	if err := c.repo.Commit(ctx); err != nil {
		c.errorMessage = fmt.Sprintf("Failed to save: %v", err)
		c.log.WithError(err).Error("commit failed")
		return false
	}
	return true
}

// now returns the clock time, nudged forward when needed so the active
// counter's UpdatedAt strictly increases.
func (c *Controller) now() time.Time {
	t := c.clock.Now()
	if c.counter != nil && !t.After(c.counter.UpdatedAt) {
		t = c.counter.UpdatedAt.Add(time.Nanosecond)
	}
	return t
}

func (c *Controller) publish() {
	c.states.Publish(state.Snapshot{
		Counter:      c.counter,
		IsLoading:    c.isLoading,
		ErrorMessage: c.errorMessage,
	})
}
