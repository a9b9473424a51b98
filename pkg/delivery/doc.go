// Package delivery implements the per-user delivery decision: persist
// always, push live only when the presence registry says the user is
// connected.
//
// Durability comes from the store, not the push. There is no retry and no
// acknowledgment channel; a live push lost by the transport is recovered on
// the user's next reconnect, when FlushPending replays the most recent
// records as one catch-up event. The guarantee is "eventually visible on
// reconnect", not "delivered exactly once in real time".
package delivery
