package state

import (
	"sort"
	"sync"
	"time"

	"github.com/five82/tally/internal/model"
)

// Snapshot is the state the counter controller exposes to observers.
type Snapshot struct {
	Counter      *model.Counter
	IsLoading    bool
	ErrorMessage string
	LastUpdated  time.Time
	Version      uint64 // incremented on every Publish
}

// HasCounter reports whether an active counter exists.
func (s Snapshot) HasCounter() bool {
	return s.Counter != nil
}

// HasError reports whether an error message should be shown.
func (s Snapshot) HasError() bool {
	return s.ErrorMessage != ""
}

// Value returns the active counter's value, or 0 without one.
func (s Snapshot) Value() int {
	if s.Counter == nil {
		return 0
	}
	return s.Counter.Value
}

// Listener receives every published snapshot.
type Listener func(Snapshot)

// Store coordinates publication of snapshots to readers and listeners.
type Store struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	listeners map[int]Listener
	nextID    int
}

// Publish replaces the stored snapshot and notifies listeners in subscription
// order. Listeners run on the publishing goroutine after the lock is released.
func (s *Store) Publish(snap Snapshot) {
	s.mu.Lock()
	snap.Counter = snap.Counter.Clone()
	snap.LastUpdated = time.Now()
	snap.Version = s.snapshot.Version + 1
	s.snapshot = snap
	listeners := s.listenersLocked()
	s.mu.Unlock()

	for _, l := range listeners {
		l(cloneSnapshot(snap))
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.snapshot)
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[int]Listener)
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

func (s *Store) listenersLocked() []Listener {
	if len(s.listeners) == 0 {
		return nil
	}
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}

func cloneSnapshot(snap Snapshot) Snapshot {
	dup := snap
	dup.Counter = snap.Counter.Clone()
	return dup
}
