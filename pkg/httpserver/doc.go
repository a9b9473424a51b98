// Package httpserver wraps net/http with graceful shutdown and
// environment-driven configuration.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal
// arrives, then drains in-flight requests within the shutdown timeout.
// The write timeout defaults to zero so the long-lived notification
// stream endpoint is never cut off mid-connection.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
