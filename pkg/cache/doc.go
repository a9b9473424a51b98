// Package cache provides a generic, thread-safe LRU cache.
//
// It exists to put an upper bound on in-process resources keyed by an
// unbounded identifier space, such as per-user event hubs. The eviction
// callback gives the owner a hook to release whatever the evicted value
// holds:
//
//	hubs := cache.NewLRU[string, *transport.Hub](10_000)
//	hubs.OnEvict(func(userID string, h *transport.Hub) {
//		h.Close()
//	})
//
// All operations are O(1) and safe for concurrent use.
package cache
