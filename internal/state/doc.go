// Package state publishes the counter controller's state to the UI and any
// other observers.
//
// # Overview
//
// The counter controller is the only writer. After every operation it calls
// Publish with the full state: the active counter (or nil), the loading flag,
// and the current error message. Readers either pull a copy with Snapshot or
// Subscribe to be called on each publication.
//
//	Writer (counter.Controller):      Readers:
//	┌──────────────────┐             ┌──────────────────────┐
//	│ Increment()      │             │ ui.Model.View()      │
//	│   commit()       │             │   store.Snapshot()   │
//	│   Publish(snap)  │────────────→│ listeners (logging)  │
//	└──────────────────┘  (mutex)    └──────────────────────┘
//
// # Defensive Copying
//
// The counter record is mutable and owned by the persistence context, so
// Publish stores a clone and Snapshot hands out clones. A reader can never
// observe a half-applied mutation or change the controller's record.
//
// # Listener Semantics
//
//   - Listeners run synchronously on the publishing goroutine, in
//     subscription order, after the store lock is released.
//   - A listener may call Snapshot; it must not block.
//   - Unsubscribe is idempotent.
//
// # Testing Considerations
//
// The zero Store is ready to use. Snapshot on a fresh store returns the
// zero Snapshot (no counter, not loading, no error).
package state
