// Package history persists finished batches to SQLite so past runs can be
// listed with "audioconv history".
//
// Recording is opt-in through the [history] config section. The database
// lives in the state directory and is migrated on open from the embedded
// migrations/*.sql files.
package history
