package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/notifyhub/pkg/notifier"
	"github.com/dmitrymomot/notifyhub/pkg/transport"
)

// Config describes the router settings.
type Config struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Deps holds the collaborators the router wires handlers to.
type Deps struct {
	Service *notifier.Service
	Hub     *transport.Hub
	Health  func(context.Context) error
	Logger  *slog.Logger
}

// NewRouter builds the application router.
func NewRouter(cfg Config, deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := newHandler(deps.Service, deps.Logger)
	stream := newStreamHandler(deps.Service, deps.Hub, deps.Logger)

	r.Get("/health", healthHandler(deps.Health))

	r.Route("/notifications", func(r chi.Router) {
		r.Post("/send", h.send)
		r.Get("/stats", h.stats)
		r.Get("/connected-users", h.connectedUsers)
		r.Get("/stream", stream.serve)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", h.list)
			r.Get("/unread-count", h.unreadCount)
			r.Post("/{notificationID}/read", h.markRead)
		})
	})

	return r
}
