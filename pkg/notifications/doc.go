// Package notifications defines the notification domain model and the
// bounded, per-user notification log.
//
// Each user's log retains at most MaxRetained records, newest first; appends
// beyond the bound silently evict the oldest. The Read flag is the only
// mutable field of a persisted record.
//
// Two Storage implementations are provided: RedisStorage, which keeps each
// log in a Redis list of JSON-encoded records, and MemoryStorage for tests
// and development. Both share identical windowing and eviction semantics, so
// any component written against Storage behaves the same with either.
package notifications
