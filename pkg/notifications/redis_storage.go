package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps each user's log in a Redis list under
// "notifications:<userID>", newest record first, trimmed to MaxRetained on
// every append. Records are JSON-encoded list elements.
//
// MarkRead is a read-then-write over the whole list (LRANGE followed by LSET
// at the matched index). It is not atomic against concurrent appends or marks
// for the same user: the last writer of a given index wins.
type RedisStorage struct {
	client redis.UniversalClient
}

// NewRedisStorage creates a Redis-backed notification store.
func NewRedisStorage(client redis.UniversalClient) *RedisStorage {
	return &RedisStorage{client: client}
}

func notificationsKey(userID string) string {
	return "notifications:" + userID
}

func (s *RedisStorage) Append(ctx context.Context, userID string, notif Notification) (Notification, error) {
	if userID == "" {
		return Notification{}, ErrEmptyUserID
	}

	// Identity is assigned here; any caller-supplied values are overridden.
	notif.ID = NewID()
	notif.UserID = userID
	notif.Read = false
	notif.Timestamp = time.Now().UTC()

	payload, err := json.Marshal(notif)
	if err != nil {
		return Notification{}, fmt.Errorf("marshal notification: %w", err)
	}

	key := notificationsKey(userID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, MaxRetained-1)
		return nil
	})
	if err != nil {
		return Notification{}, fmt.Errorf("append notification for user %s: %w", userID, err)
	}

	return notif, nil
}

func (s *RedisStorage) List(ctx context.Context, userID string, offset, limit int) ([]Notification, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []Notification{}, nil
	}

	raw, err := s.client.LRange(ctx, notificationsKey(userID), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications for user %s: %w", userID, err)
	}

	notifs := make([]Notification, 0, len(raw))
	for _, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("decode notification record: %w", err)
		}
		notifs = append(notifs, n)
	}
	return notifs, nil
}

func (s *RedisStorage) MarkRead(ctx context.Context, userID, notificationID string) (bool, error) {
	if userID == "" {
		return false, ErrEmptyUserID
	}

	key := notificationsKey(userID)
	raw, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return false, fmt.Errorf("scan notifications for user %s: %w", userID, err)
	}

	for i, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return false, fmt.Errorf("decode notification record: %w", err)
		}
		if n.ID != notificationID {
			continue
		}

		n.Read = true
		payload, err := json.Marshal(n)
		if err != nil {
			return false, fmt.Errorf("marshal notification: %w", err)
		}
		if err := s.client.LSet(ctx, key, int64(i), payload).Err(); err != nil {
			return false, fmt.Errorf("mark notification %s read: %w", notificationID, err)
		}
		return true, nil
	}

	return false, nil
}

func (s *RedisStorage) CountUnread(ctx context.Context, userID string) (int, error) {
	notifs, err := s.List(ctx, userID, 0, MaxRetained)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range notifs {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
