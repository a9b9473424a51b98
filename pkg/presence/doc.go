// Package presence tracks which users currently hold a live connection.
//
// The registry is a flat user id -> connection id mapping with
// last-connect-wins semantics: one active connection per user, no
// multi-device fan-out. RedisRegistry keeps the mapping in a shared hash so
// multiple service instances agree on who is online; MemoryRegistry mirrors
// the contract for tests.
package presence
