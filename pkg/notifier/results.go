package notifier

import (
	"time"

	"github.com/dmitrymomot/notifyhub/pkg/notifications"
)

// Mode names the addressing mode a send resolved to.
type Mode string

const (
	ModeSingle    Mode = "single"
	ModeMultiple  Mode = "multiple"
	ModeBroadcast Mode = "broadcast"
)

// Error codes carried by failure results. Collaborator failures carry the
// underlying message instead of a code.
const (
	ErrCodeInvalidParameters = "INVALID_PARAMETERS"
	ErrCodeNotFound          = "NOT_FOUND"
)

// SendStats accounts for a multi-target send. Failed counts targets whose
// persistence failed; a target that was offline but stored is a success.
type SendStats struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Total      int `json:"total"`
}

// SendResult is the uniform outcome of a send in any addressing mode.
type SendResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Mode    Mode       `json:"type,omitempty"`
	UserID  string     `json:"userId,omitempty"`
	Stats   *SendStats `json:"stats,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Pagination echoes the requested window back to the caller.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// ListResult is the outcome of a notification list query.
type ListResult struct {
	Success       bool                         `json:"success"`
	Notifications []notifications.Notification `json:"notifications"`
	UnreadCount   int                          `json:"unreadCount"`
	Pagination    Pagination                   `json:"pagination"`
	Message       string                       `json:"message,omitempty"`
	Error         string                       `json:"error,omitempty"`
}

// MarkReadResult is the outcome of a mark-as-read operation.
type MarkReadResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	UnreadCount int    `json:"unreadCount"`
	Error       string `json:"error,omitempty"`
}

// CountResult is the outcome of an unread-count query.
type CountResult struct {
	Success     bool   `json:"success"`
	UserID      string `json:"userId"`
	UnreadCount int    `json:"unreadCount"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ConnectedUsersResult lists the users currently online.
type ConnectedUsersResult struct {
	Success   bool      `json:"success"`
	Users     []string  `json:"connectedUsers"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// StatsResult reports service-level statistics.
type StatsResult struct {
	Success        bool      `json:"success"`
	ConnectedUsers int       `json:"connectedUsers"`
	Timestamp      time.Time `json:"timestamp"`
	Service        string    `json:"service"`
	Status         string    `json:"status"`
	Message        string    `json:"message,omitempty"`
	Error          string    `json:"error,omitempty"`
}
