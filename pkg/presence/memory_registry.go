package presence

import (
	"context"
	"maps"
	"sync"
)

// MemoryRegistry is an in-memory implementation of the Registry interface.
// Suitable for development and testing.
type MemoryRegistry struct {
	connections map[string]string
	mu          sync.RWMutex
}

// NewMemoryRegistry creates a new in-memory presence registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		connections: make(map[string]string),
	}
}

func (r *MemoryRegistry) SetOnline(ctx context.Context, userID, connectionID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	if connectionID == "" {
		return ErrEmptyConnectionID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections[userID] = connectionID
	return nil
}

func (r *MemoryRegistry) SetOffline(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.connections, userID)
	return nil
}

func (r *MemoryRegistry) Lookup(ctx context.Context, userID string) (string, bool, error) {
	if userID == "" {
		return "", false, ErrEmptyUserID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	connectionID, ok := r.connections[userID]
	return connectionID, ok, nil
}

func (r *MemoryRegistry) ListAll(ctx context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.connections), nil
}
