package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifyhub/pkg/delivery"
	"github.com/dmitrymomot/notifyhub/pkg/logger"
	"github.com/dmitrymomot/notifyhub/pkg/transport"
)

// ErrMissingUserID rejects a connection attempt that does not identify its
// user. This is a caller-contract violation, not a queued error.
var ErrMissingUserID = errors.New("notifier: connection requires a user id")

// Connect registers the user's live connection and runs the one-shot
// catch-up: the registry is updated first, then pending notifications are
// flushed to the fresh connection, then the connection is acknowledged.
//
// A failed catch-up does not tear the connection down; the records stay in
// the store and remain reachable by polling.
func (s *Service) Connect(ctx context.Context, userID, connectionID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	if err := s.presence.SetOnline(ctx, userID, connectionID); err != nil {
		return fmt.Errorf("register connection: %w", err)
	}

	if err := s.engine.FlushPending(ctx, userID); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "pending flush failed on connect",
			logger.UserID(userID),
			logger.ConnectionID(connectionID),
			logger.Error(err),
		)
	}

	ack := delivery.ConnectedPayload{
		Message:   "connected to notification service",
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.emitter.Emit(ctx, transport.UserAddress(userID), delivery.EventConnected, ack); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "connection ack push failed",
			logger.UserID(userID),
			logger.Error(err),
		)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "user connected",
		logger.UserID(userID),
		logger.ConnectionID(connectionID),
	)
	return nil
}

// Disconnect removes the user's presence mapping. A disconnect without a
// user id is ignored; removing an already-offline user is a no-op.
func (s *Service) Disconnect(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	if err := s.presence.SetOffline(ctx, userID); err != nil {
		return fmt.Errorf("remove connection: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "user disconnected",
		logger.UserID(userID),
	)
	return nil
}
