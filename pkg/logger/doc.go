// Package logger builds configured log/slog loggers and provides typed
// attribute helpers for the identifiers that recur across the codebase
// (user ids, notification ids, connection ids).
//
// # Usage
//
//	log := logger.New(
//		logger.WithService("notifyhub"),
//		logger.WithConfig(cfg),
//	)
//	logger.SetAsDefault(log)
//
//	log.LogAttrs(ctx, slog.LevelInfo, "notification delivered",
//		logger.UserID(userID),
//		logger.NotificationID(notif.ID),
//	)
//
// Defaults are production-safe: JSON format at INFO level to stdout.
package logger
