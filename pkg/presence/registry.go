package presence

import (
	"context"
	"errors"
)

var (
	// ErrEmptyUserID is returned when an operation is attempted without a user id.
	ErrEmptyUserID = errors.New("presence: user id is required")

	// ErrEmptyConnectionID is returned when SetOnline is called without a connection id.
	ErrEmptyConnectionID = errors.New("presence: connection id is required")
)

// Registry tracks which user currently holds a live connection and through
// which connection id. One connection per user: a new connection for the same
// user overwrites the previous mapping (last-connect-wins).
//
// Operations are individually atomic against the backing store, but the
// registry performs no cross-operation transactions. A Lookup followed by a
// push can race a concurrent SetOffline; callers treat the resulting no-op
// push as acceptable best-effort behavior.
type Registry interface {
	// SetOnline upserts the user's connection mapping.
	SetOnline(ctx context.Context, userID, connectionID string) error

	// SetOffline removes the user's mapping. Removing an absent user is not
	// an error.
	SetOffline(ctx context.Context, userID string) error

	// Lookup returns the user's connection id, or ok=false when offline.
	Lookup(ctx context.Context, userID string) (connectionID string, ok bool, err error)

	// ListAll returns a snapshot of every online user and their connection id.
	ListAll(ctx context.Context) (map[string]string, error)
}
