package delivery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/notifyhub/pkg/logger"
	"github.com/dmitrymomot/notifyhub/pkg/notifications"
	"github.com/dmitrymomot/notifyhub/pkg/presence"
	"github.com/dmitrymomot/notifyhub/pkg/transport"
)

// Result reports one delivery attempt. Live distinguishes the delivered-live
// path from store-only delivery; both are successes.
type Result struct {
	Notification notifications.Notification
	Live         bool
}

// Engine decides, per target user, whether a notification is pushed live or
// stored only. Every attempt persists first; the live push is best effort on
// top, with no retry and no acknowledgment. A push that the transport drops
// surfaces on the user's next reconnect via FlushPending.
type Engine struct {
	storage  notifications.Storage
	presence presence.Registry
	emitter  transport.Emitter
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates a delivery engine.
func NewEngine(storage notifications.Storage, registry presence.Registry, emitter transport.Emitter, opts ...EngineOption) *Engine {
	e := &Engine{
		storage:  storage,
		presence: registry,
		emitter:  emitter,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Send persists the notification into userID's log and, when the user is
// online, pushes the stored record plus the updated unread count to their
// address. Only the persistence step can fail the attempt; presence and
// transport problems are logged and leave the notification stored for later
// retrieval.
//
// The presence lookup and the push are not transactional: a disconnect in
// between means the push lands on an address with no listener and is
// silently dropped.
func (e *Engine) Send(ctx context.Context, userID string, notif notifications.Notification) (Result, error) {
	stored, err := e.storage.Append(ctx, userID, notif)
	if err != nil {
		return Result{}, fmt.Errorf("persist notification: %w", err)
	}

	_, online, err := e.presence.Lookup(ctx, userID)
	if err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "presence lookup failed, delivering store-only",
			logger.UserID(userID),
			logger.NotificationID(stored.ID),
			logger.Error(err),
		)
		return Result{Notification: stored}, nil
	}
	if !online {
		e.logger.LogAttrs(ctx, slog.LevelDebug, "user offline, notification stored for later",
			logger.UserID(userID),
			logger.NotificationID(stored.ID),
		)
		return Result{Notification: stored}, nil
	}

	addr := transport.UserAddress(userID)
	if err := e.emitter.Emit(ctx, addr, EventNewNotification, stored); err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "live push failed, notification remains stored",
			logger.UserID(userID),
			logger.NotificationID(stored.ID),
			logger.Error(err),
		)
		return Result{Notification: stored, Live: true}, nil
	}

	if count, err := e.storage.CountUnread(ctx, userID); err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "unread count unavailable after push",
			logger.UserID(userID),
			logger.Error(err),
		)
	} else if err := e.emitter.Emit(ctx, addr, EventUnreadCount, UnreadCountPayload{Count: count}); err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "unread count push failed",
			logger.UserID(userID),
			logger.Error(err),
		)
	}

	return Result{Notification: stored, Live: true}, nil
}

// FlushPending pushes the user's most recent records (at most PendingWindow)
// plus the unread count as a single catch-up event. Called once per
// connection establishment; an empty log pushes nothing.
func (e *Engine) FlushPending(ctx context.Context, userID string) error {
	pending, err := e.storage.List(ctx, userID, 0, PendingWindow)
	if err != nil {
		return fmt.Errorf("load pending notifications: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	count, err := e.storage.CountUnread(ctx, userID)
	if err != nil {
		return fmt.Errorf("count unread notifications: %w", err)
	}

	payload := PendingPayload{Notifications: pending, UnreadCount: count}
	if err := e.emitter.Emit(ctx, transport.UserAddress(userID), EventPendingNotifications, payload); err != nil {
		return fmt.Errorf("push pending notifications: %w", err)
	}

	e.logger.LogAttrs(ctx, slog.LevelDebug, "pending notifications flushed",
		logger.UserID(userID),
		slog.Int("count", len(pending)),
	)
	return nil
}
