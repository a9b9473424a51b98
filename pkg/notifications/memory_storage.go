package notifications

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface with
// the same bound and ordering semantics as RedisStorage. Suitable for
// development and testing.
type MemoryStorage struct {
	logs map[string][]Notification // userID -> newest-first log
	mu   sync.RWMutex
}

// NewMemoryStorage creates a new in-memory notification store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		logs: make(map[string][]Notification),
	}
}

func (s *MemoryStorage) Append(ctx context.Context, userID string, notif Notification) (Notification, error) {
	if userID == "" {
		return Notification{}, ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notif.ID = NewID()
	notif.UserID = userID
	notif.Read = false
	notif.Timestamp = time.Now().UTC()

	log := append([]Notification{notif}, s.logs[userID]...)
	if len(log) > MaxRetained {
		log = log[:MaxRetained]
	}
	s.logs[userID] = log

	return notif, nil
}

func (s *MemoryStorage) List(ctx context.Context, userID string, offset, limit int) ([]Notification, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []Notification{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.logs[userID]
	if offset >= len(log) {
		return []Notification{}, nil
	}

	end := offset + limit
	if end > len(log) {
		end = len(log)
	}

	window := make([]Notification, end-offset)
	copy(window, log[offset:end])
	return window, nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, userID, notificationID string) (bool, error) {
	if userID == "" {
		return false, ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logs[userID]
	for i := range log {
		if log[i].ID == notificationID {
			log[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.logs[userID] {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
