package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifyhub/pkg/logger"
	"github.com/dmitrymomot/notifyhub/pkg/notifier"
	"github.com/dmitrymomot/notifyhub/pkg/transport"
)

// streamHandler exposes the live channel as a server-sent event stream. The
// stream is the connection: opening it registers the user's presence and
// triggers the pending catch-up, closing it (client gone, context done)
// deregisters the user.
type streamHandler struct {
	service *notifier.Service
	hub     *transport.Hub
	logger  *slog.Logger
}

func newStreamHandler(service *notifier.Service, hub *transport.Hub, log *slog.Logger) *streamHandler {
	return &streamHandler{service: service, hub: hub, logger: log}
}

func (h *streamHandler) serve(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	connectionID := uuid.NewString()

	// Subscribe before registering presence so the pending catch-up emitted
	// by Connect lands in this stream.
	sub := h.hub.Subscribe(ctx, transport.UserAddress(userID))
	defer sub.Close()

	if err := h.service.Connect(ctx, userID, connectionID); err != nil {
		if errors.Is(err, notifier.ErrMissingUserID) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.LogAttrs(ctx, slog.LevelError, "connection registration failed",
			logger.UserID(userID),
			logger.ConnectionID(connectionID),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to establish connection")
		return
	}
	defer func() {
		// The request context is already cancelled once the client is gone;
		// presence cleanup needs its own.
		cleanupCtx := context.Background()
		if err := h.service.Disconnect(cleanupCtx, userID); err != nil {
			h.logger.LogAttrs(cleanupCtx, slog.LevelWarn, "presence cleanup failed on disconnect",
				logger.UserID(userID),
				logger.Error(err),
			)
		}
	}()

	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-sub.Receive():
			if !open {
				return
			}
			if err := writeSSE(w, ev); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev transport.Event) error {
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data)
	return err
}
