package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/notifyhub/pkg/delivery"
	"github.com/dmitrymomot/notifyhub/pkg/logger"
	"github.com/dmitrymomot/notifyhub/pkg/notifications"
	"github.com/dmitrymomot/notifyhub/pkg/presence"
	"github.com/dmitrymomot/notifyhub/pkg/transport"
)

// ServiceName identifies this service in stats responses.
const ServiceName = "notification-service"

// DefaultListLimit applies when a list query does not specify a limit.
const DefaultListLimit = 20

// SendRequest describes a send in one of three addressing modes. Exactly one
// of Broadcast, UserIDs, or UserID must be set; when several are set the
// first of that order wins.
type SendRequest struct {
	UserID    string             `json:"userId,omitempty"`
	UserIDs   []string           `json:"userIds,omitempty"`
	Broadcast bool               `json:"broadcast,omitempty"`
	Title     string             `json:"title" validate:"required"`
	Message   string             `json:"message" validate:"required"`
	Type      notifications.Type `json:"type" validate:"required,notificationtype"`
	Data      map[string]any     `json:"data,omitempty"`
}

// Service is the orchestrator external callers invoke. Every operation
// returns a result variant rather than a Go error: caller-contract
// violations, not-found conditions and collaborator failures all surface as
// success=false results carrying a message, never as unhandled faults.
type Service struct {
	engine   *delivery.Engine
	storage  notifications.Storage
	presence presence.Registry
	emitter  transport.Emitter
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates the notification service.
func New(engine *delivery.Engine, storage notifications.Storage, registry presence.Registry, emitter transport.Emitter, opts ...Option) *Service {
	s := &Service{
		engine:   engine,
		storage:  storage,
		presence: registry,
		emitter:  emitter,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send resolves the addressing mode and runs one delivery attempt per target.
// Multi-target modes isolate per-target failures and report counts; they
// never collapse into a single pass/fail.
func (s *Service) Send(ctx context.Context, req SendRequest) SendResult {
	template := notifications.Notification{
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    req.Data,
	}

	switch {
	case req.Broadcast:
		return s.sendBroadcast(ctx, template)
	case len(req.UserIDs) > 0:
		return s.sendToUsers(ctx, req.UserIDs, template)
	case req.UserID != "":
		return s.sendToUser(ctx, req.UserID, template)
	default:
		return SendResult{
			Success: false,
			Message: "must specify userId, userIds or broadcast=true",
			Error:   ErrCodeInvalidParameters,
		}
	}
}

func (s *Service) sendToUser(ctx context.Context, userID string, template notifications.Notification) SendResult {
	result, err := s.engine.Send(ctx, userID, template)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to send notification",
			logger.UserID(userID),
			logger.Error(err),
		)
		return SendResult{
			Success: false,
			Message: "failed to send notification",
			Error:   err.Error(),
		}
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "notification sent",
		logger.UserID(userID),
		logger.NotificationID(result.Notification.ID),
		slog.Bool("live", result.Live),
	)
	return SendResult{
		Success: true,
		Message: "notification sent successfully",
		Mode:    ModeSingle,
		UserID:  userID,
	}
}

func (s *Service) sendToUsers(ctx context.Context, userIDs []string, template notifications.Notification) SendResult {
	stats := SendStats{Total: len(userIDs)}
	for _, userID := range userIDs {
		if _, err := s.engine.Send(ctx, userID, template); err != nil {
			stats.Failed++
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to send notification",
				logger.UserID(userID),
				logger.Error(err),
			)
			continue
		}
		stats.Successful++
	}

	return SendResult{
		Success: true,
		Message: fmt.Sprintf("notifications sent: %d successful, %d failed", stats.Successful, stats.Failed),
		Mode:    ModeMultiple,
		Stats:   &stats,
	}
}

// sendBroadcast targets the snapshot of connected users at call time. Users
// connecting mid-broadcast are not included.
func (s *Service) sendBroadcast(ctx context.Context, template notifications.Notification) SendResult {
	connected, err := s.presence.ListAll(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to snapshot connected users",
			logger.Error(err),
		)
		return SendResult{
			Success: false,
			Message: "failed to send broadcast",
			Error:   err.Error(),
		}
	}

	stats := SendStats{Total: len(connected)}
	for userID := range connected {
		if _, err := s.engine.Send(ctx, userID, template); err != nil {
			stats.Failed++
			s.logger.LogAttrs(ctx, slog.LevelError, "broadcast delivery failed for user",
				logger.UserID(userID),
				logger.Error(err),
			)
			continue
		}
		stats.Successful++
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "broadcast sent",
		slog.Int("recipients", stats.Total),
		slog.Int("failed", stats.Failed),
	)
	return SendResult{
		Success: true,
		Message: fmt.Sprintf("broadcast sent to %d connected users", stats.Total),
		Mode:    ModeBroadcast,
		Stats:   &stats,
	}
}
