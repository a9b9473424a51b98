package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifyhub/pkg/delivery"
	"github.com/dmitrymomot/notifyhub/pkg/logger"
	"github.com/dmitrymomot/notifyhub/pkg/transport"
)

// GetNotifications returns a window of the user's retained log plus the
// unread count and the pagination echo. A limit of zero or less falls back
// to DefaultListLimit.
func (s *Service) GetNotifications(ctx context.Context, userID string, offset, limit int) ListResult {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	notifs, err := s.storage.List(ctx, userID, offset, limit)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to list notifications",
			logger.UserID(userID),
			logger.Error(err),
		)
		return ListResult{Success: false, Message: "failed to get notifications", Error: err.Error()}
	}

	count, err := s.storage.CountUnread(ctx, userID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to count unread notifications",
			logger.UserID(userID),
			logger.Error(err),
		)
		return ListResult{Success: false, Message: "failed to get notifications", Error: err.Error()}
	}

	return ListResult{
		Success:       true,
		Notifications: notifs,
		UnreadCount:   count,
		Pagination:    Pagination{Offset: offset, Limit: limit, Total: len(notifs)},
	}
}

// MarkAsRead flips one record's read flag. On success the updated unread
// count is additionally pushed to the user's live channel, keeping any open
// client's badge in sync without polling.
func (s *Service) MarkAsRead(ctx context.Context, userID, notificationID string) MarkReadResult {
	found, err := s.storage.MarkRead(ctx, userID, notificationID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to mark notification read",
			logger.UserID(userID),
			logger.NotificationID(notificationID),
			logger.Error(err),
		)
		return MarkReadResult{Success: false, Message: "failed to mark notification as read", Error: err.Error()}
	}
	if !found {
		return MarkReadResult{Success: false, Message: "notification not found", Error: ErrCodeNotFound}
	}

	count, err := s.storage.CountUnread(ctx, userID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to count unread notifications",
			logger.UserID(userID),
			logger.Error(err),
		)
		return MarkReadResult{Success: false, Message: "failed to mark notification as read", Error: err.Error()}
	}

	if _, online, err := s.presence.Lookup(ctx, userID); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "presence lookup failed, skipping read-state push",
			logger.UserID(userID),
			logger.Error(err),
		)
	} else if online {
		payload := delivery.NotificationReadPayload{NotificationID: notificationID, UnreadCount: count}
		if err := s.emitter.Emit(ctx, transport.UserAddress(userID), delivery.EventNotificationRead, payload); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "read-state push failed",
				logger.UserID(userID),
				logger.Error(err),
			)
		}
	}

	return MarkReadResult{
		Success:     true,
		Message:     "notification marked as read",
		UnreadCount: count,
	}
}

// GetUnreadCount returns the user's unread count within the retained window.
func (s *Service) GetUnreadCount(ctx context.Context, userID string) CountResult {
	count, err := s.storage.CountUnread(ctx, userID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to count unread notifications",
			logger.UserID(userID),
			logger.Error(err),
		)
		return CountResult{Success: false, Message: "failed to get unread count", Error: err.Error()}
	}

	return CountResult{Success: true, UserID: userID, UnreadCount: count}
}

// GetConnectedUsers lists the ids of currently connected users.
func (s *Service) GetConnectedUsers(ctx context.Context) ConnectedUsersResult {
	connected, err := s.presence.ListAll(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to list connected users",
			logger.Error(err),
		)
		return ConnectedUsersResult{Success: false, Message: "failed to get connected users", Error: err.Error()}
	}

	users := make([]string, 0, len(connected))
	for userID := range connected {
		users = append(users, userID)
	}

	return ConnectedUsersResult{
		Success:   true,
		Users:     users,
		Count:     len(users),
		Timestamp: time.Now().UTC(),
	}
}

// GetStats reports service statistics: the connected-user count and liveness
// metadata.
func (s *Service) GetStats(ctx context.Context) StatsResult {
	connected, err := s.presence.ListAll(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to collect stats",
			logger.Error(err),
		)
		return StatsResult{Success: false, Message: "failed to get stats", Error: err.Error()}
	}

	return StatsResult{
		Success:        true,
		ConnectedUsers: len(connected),
		Timestamp:      time.Now().UTC(),
		Service:        ServiceName,
		Status:         "active",
	}
}
