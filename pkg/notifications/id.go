package notifications

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewID returns a lexicographically sortable unique id for a notification.
// The millisecond timestamp component plus random suffix keeps ids unique
// across concurrent appends to the same log without coordination.
func NewID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
