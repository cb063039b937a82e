// Package storage persists board snapshots.
//
// A snapshot is a JSON envelope:
//
//	{"storageVersion":1,"updatedAt":"2024-01-02T03:04:05.000Z","data":{...board...}}
//
// The Adapter encodes and validates envelopes and talks to a Backend that
// stores one opaque payload. Backends exist for memory, a local file,
// SQLite and Redis.
//
// The store is a convenience cache, not the source of truth for a running
// session: the Adapter logs and swallows every failure, and a missing or
// unreadable snapshot is replaced by a freshly seeded board.
package storage
