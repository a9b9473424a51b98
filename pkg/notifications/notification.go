package notifications

import (
	"time"
)

// Type represents the notification category.
type Type string

const (
	TypeInfo          Type = "info"
	TypeSuccess       Type = "success"
	TypeWarning       Type = "warning"
	TypeError         Type = "error"
	TypeUserAction    Type = "user_action"
	TypeSystem        Type = "system"
	TypeProductUpdate Type = "product_update"
	TypeOrderStatus   Type = "order_status"
)

// Types lists every valid notification type.
var Types = []Type{
	TypeInfo,
	TypeSuccess,
	TypeWarning,
	TypeError,
	TypeUserAction,
	TypeSystem,
	TypeProductUpdate,
	TypeOrderStatus,
}

// Valid reports whether t is a known notification type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Notification is the core domain model. Records are immutable once
// persisted except for the Read flag, which only ever transitions
// false -> true.
type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Type      Type           `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	Read      bool           `json:"read"`
	Timestamp time.Time      `json:"timestamp"`
}
