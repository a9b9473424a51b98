package delivery

import (
	"time"

	"github.com/dmitrymomot/notifyhub/pkg/notifications"
)

// Event names pushed over the live channel. These are part of the client
// contract.
const (
	// EventNewNotification carries the full stored notification record.
	EventNewNotification = "new_notification"

	// EventUnreadCount carries the user's updated unread counter.
	EventUnreadCount = "unread_count"

	// EventNotificationRead tells open clients a record was marked read.
	EventNotificationRead = "notification_read"

	// EventPendingNotifications is the one-shot catch-up sent on reconnect.
	EventPendingNotifications = "pending_notifications"

	// EventConnected acknowledges a freshly established connection.
	EventConnected = "connected"
)

// PendingWindow caps how many recent records the reconnect catch-up carries.
const PendingWindow = 10

// UnreadCountPayload is the body of an EventUnreadCount push.
type UnreadCountPayload struct {
	Count int `json:"count"`
}

// NotificationReadPayload is the body of an EventNotificationRead push.
type NotificationReadPayload struct {
	NotificationID string `json:"notificationId"`
	UnreadCount    int    `json:"unreadCount"`
}

// PendingPayload is the body of an EventPendingNotifications push.
type PendingPayload struct {
	Notifications []notifications.Notification `json:"notifications"`
	UnreadCount   int                          `json:"unreadCount"`
}

// ConnectedPayload is the body of an EventConnected push.
type ConnectedPayload struct {
	Message   string    `json:"message"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}
