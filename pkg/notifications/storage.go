package notifications

import (
	"context"
	"errors"
)

// MaxRetained bounds each user's notification log. Appends beyond the bound
// evict the oldest records; reads and unread counts only ever see this window.
const MaxRetained = 100

var (
	// ErrEmptyUserID is returned when an operation is attempted without a user id.
	ErrEmptyUserID = errors.New("notifications: user id is required")
)

// Storage is the durable, bounded, per-user notification log.
//
// Append assigns the record's identity (id, owner, timestamp, read=false) and
// inserts it at the head of the user's log, truncating to MaxRetained. List
// returns a most-recent-first window; a user with no log yields an empty
// slice, never an error. MarkRead reports whether the id was found in the
// currently retained window; an evicted or unknown id is (false, nil), not an
// error. CountUnread counts unread records within the retained window only.
type Storage interface {
	Append(ctx context.Context, userID string, notif Notification) (Notification, error)
	List(ctx context.Context, userID string, offset, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) (bool, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}
