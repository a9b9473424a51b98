package transport

import "context"

// Address identifies a live delivery target. Addresses group connections per
// user so a push can target exactly that user's connection.
type Address string

// UserAddress returns the delivery address for a user's live connection.
func UserAddress(userID string) Address {
	return Address("user_" + userID)
}

// Event is a named, JSON-serializable payload emitted to an address.
type Event struct {
	Name    string
	Payload any
}

// Emitter is the capability the delivery layer requires from a transport:
// emitting a named event to a specific address. Any transport offering
// per-connection grouping and event emission satisfies it.
//
// Emitting to an address with no listener is not an error; the event is
// silently dropped. Durability is the notification store's job, not the
// transport's.
type Emitter interface {
	Emit(ctx context.Context, addr Address, event string, payload any) error
}
