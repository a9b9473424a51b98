package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrInvalidConnectionURL is returned when the connection URL cannot be parsed.
	ErrInvalidConnectionURL = errors.New("redis: invalid connection URL")

	// ErrNotReady is returned when the server did not become reachable within
	// the configured attempts.
	ErrNotReady = errors.New("redis: server did not become ready")

	// ErrHealthcheckFailed is returned by the healthcheck closure when PING fails.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)

// Connect establishes a connection to the Redis server described by cfg,
// retrying up to cfg.RetryAttempts with cfg.RetryInterval between attempts.
// The whole operation is bounded by cfg.ConnectTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidConnectionURL, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for i := 0; i < attempts; i++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrNotReady
}

// Healthcheck returns a probe function suitable for liveness and readiness
// endpoints. It reports an error when the server does not answer PING.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
