package presence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// connectedUsersKey is the global presence hash: field = user id,
// value = connection id. Shared by every service instance.
const connectedUsersKey = "connected_users"

// RedisRegistry stores presence in a single Redis hash so any number of
// stateless service instances can share one view of who is online. Entries
// have no TTL: an unobserved disconnect leaves a stale mapping until the
// user's next connection overwrites it.
type RedisRegistry struct {
	client redis.UniversalClient
}

// NewRedisRegistry creates a Redis-backed presence registry.
func NewRedisRegistry(client redis.UniversalClient) *RedisRegistry {
	return &RedisRegistry{client: client}
}

func (r *RedisRegistry) SetOnline(ctx context.Context, userID, connectionID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	if connectionID == "" {
		return ErrEmptyConnectionID
	}
	if err := r.client.HSet(ctx, connectedUsersKey, userID, connectionID).Err(); err != nil {
		return fmt.Errorf("set user %s online: %w", userID, err)
	}
	return nil
}

func (r *RedisRegistry) SetOffline(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	if err := r.client.HDel(ctx, connectedUsersKey, userID).Err(); err != nil {
		return fmt.Errorf("set user %s offline: %w", userID, err)
	}
	return nil
}

func (r *RedisRegistry) Lookup(ctx context.Context, userID string) (string, bool, error) {
	if userID == "" {
		return "", false, ErrEmptyUserID
	}
	connectionID, err := r.client.HGet(ctx, connectedUsersKey, userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup user %s: %w", userID, err)
	}
	return connectionID, true, nil
}

func (r *RedisRegistry) ListAll(ctx context.Context) (map[string]string, error) {
	users, err := r.client.HGetAll(ctx, connectedUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list connected users: %w", err)
	}
	return users, nil
}
