// Package transport defines the addressing capability the delivery layer
// pushes through, and an in-process Hub implementation of it.
//
// The capability is deliberately small: group connections under a per-user
// Address, emit a named payload to an Address. Anything that can do those two
// things (WebSocket rooms, SSE streams, a message broker) can stand in for
// the Hub.
//
//	hub := transport.NewHub()
//	sub := hub.Subscribe(ctx, transport.UserAddress("u1"))
//	defer sub.Close()
//
//	_ = hub.Emit(ctx, transport.UserAddress("u1"), "new_notification", notif)
//
// Emits never block: subscribers with full buffers miss the event. Missed
// live events are recovered from the notification store on reconnect; the
// hub itself is lossy.
package transport
