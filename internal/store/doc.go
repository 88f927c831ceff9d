// Package store implements key-value persistence for board snapshots.
//
// Every backend satisfies [Store]: a flat namespace of keys mapping to opaque byte values.
// The board writes its full column list as JSON under a single key after each accepted mutation
// and reads it once at startup.
//
// Implementations:
//   - [FileStore] : one JSON file per key in a directory (default)
//   - [SQLiteStore] : snapshots table in SQLite with overwrite history
//   - [S3Store] : one object per key in an S3 or S3-compatible bucket
//   - [MemoryStore] : map-backed, for tests and ephemeral sessions
//
// [Open] selects a backend from [shared.StorageConfig].
package store
