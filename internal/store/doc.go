// Package store persists tally's counter records in an embedded SQLite
// database.
//
// # Overview
//
// A Controller owns one database handle per process (or per test) and exposes
// a Context, the query/mutation surface the rest of the application uses.
// The counter controller depends only on the Repository interface, which
// *Context implements.
//
// # Unit of Work
//
// Context tracks every record it has returned or been given, keyed by ID:
//
//	rec, _ := repo.FindLatest(ctx)  // tracked
//	rec.Increment(1, now)           // in-memory only
//	repo.Commit(ctx)                // one transaction: deletes, then upserts
//
// Commit only writes records that differ from their last committed state.
// When a commit fails the transaction is rolled back and the staged changes
// are kept, so a later successful Commit writes them.
//
// # Modes
//
//   - File: Options{Path: "~/.local/share/tally/tally.db"}
//   - In-memory: Options{InMemory: true}, for tests and previews
//
// Timestamps are stored as Unix nanoseconds so ordering by created_at is
// numeric.
//
// # Schema
//
// The schema lives in migrations/*.sql, embedded into the binary and applied
// by golang-migrate on Open. Versions are tracked in tally_schema_migrations;
// SchemaVersion reports the current one.
//
// # Errors
//
// Every failure is an *apperr.Error of kind Persistence. MustOpen turns an
// open failure into a fatal log entry and process exit.
package store
