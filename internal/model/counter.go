// Package model holds the counter record persisted by tally.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
)

// DefaultTitle is the title of a counter constructed without one.
const DefaultTitle = "Counter"

// Counter is the single persisted entity.
type Counter struct {
	ID        uuid.UUID `json:"id"`
	Value     int       `json:"value"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type options struct {
	id        uuid.UUID
	value     int
	title     string
	createdAt time.Time
	updatedAt time.Time
	clock     clock.Clock
}

// Option customises New.
type Option func(*options)

// WithID sets the identifier instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(o *options) { o.id = id }
}

// WithValue sets the initial value.
func WithValue(v int) Option {
	return func(o *options) { o.value = v }
}

// WithTitle sets the title.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithTimes sets both timestamps explicitly.
func WithTimes(created, updated time.Time) Option {
	return func(o *options) {
		o.createdAt = created
		o.updatedAt = updated
	}
}

// WithClock sets the clock used to stamp a new record.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// New builds a counter. Unset timestamps come from the clock (wall clock by
// default) and are equal.
func New(opts ...Option) *Counter {
	o := options{title: DefaultTitle, clock: clock.WallClock}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == uuid.Nil {
		o.id = uuid.New()
	}
	now := o.clock.Now()
	if o.createdAt.IsZero() {
		o.createdAt = now
	}
	if o.updatedAt.IsZero() {
		o.updatedAt = o.createdAt
	}
	return &Counter{
		ID:        o.id,
		Value:     o.value,
		Title:     o.title,
		CreatedAt: o.createdAt,
		UpdatedAt: o.updatedAt,
	}
}

// Increment adds amount to the value.
func (c *Counter) Increment(amount int, now time.Time) {
	c.Value += amount
	c.UpdatedAt = now
}

// Decrement subtracts amount from the value.
func (c *Counter) Decrement(amount int, now time.Time) {
	c.Value -= amount
	c.UpdatedAt = now
}

// Reset zeroes the value.
func (c *Counter) Reset(now time.Time) {
	c.Value = 0
	c.UpdatedAt = now
}

// SetValue assigns the value directly.
func (c *Counter) SetValue(v int, now time.Time) {
	c.Value = v
	c.UpdatedAt = now
}

// Clone returns an independent copy, or nil for a nil receiver.
func (c *Counter) Clone() *Counter {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}
