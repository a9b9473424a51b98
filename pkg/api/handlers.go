package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/notifyhub/pkg/notifier"
)

// errorEnvelope is the body of requests rejected before reaching the service.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, Message: message})
}

// statusFor maps a result's error code to an HTTP status.
func statusFor(success bool, errCode string) int {
	switch {
	case success:
		return http.StatusOK
	case errCode == notifier.ErrCodeInvalidParameters:
		return http.StatusBadRequest
	case errCode == notifier.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type handler struct {
	service *notifier.Service
	logger  *slog.Logger
}

func newHandler(service *notifier.Service, log *slog.Logger) *handler {
	return &handler{service: service, logger: log}
}

func (h *handler) send(w http.ResponseWriter, r *http.Request) {
	var req notifier.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateStruct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{
			Success: false,
			Message: err.Error(),
			Error:   notifier.ErrCodeInvalidParameters,
		})
		return
	}

	result := h.service.Send(r.Context(), req)
	writeJSON(w, statusFor(result.Success, result.Error), result)
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", notifier.DefaultListLimit)

	result := h.service.GetNotifications(r.Context(), userID, offset, limit)
	writeJSON(w, statusFor(result.Success, result.Error), result)
}

func (h *handler) markRead(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	notificationID := chi.URLParam(r, "notificationID")

	result := h.service.MarkAsRead(r.Context(), userID, notificationID)
	writeJSON(w, statusFor(result.Success, result.Error), result)
}

func (h *handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	result := h.service.GetUnreadCount(r.Context(), userID)
	writeJSON(w, statusFor(result.Success, result.Error), result)
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	result := h.service.GetStats(r.Context())
	writeJSON(w, statusFor(result.Success, result.Error), result)
}

func (h *handler) connectedUsers(w http.ResponseWriter, r *http.Request) {
	result := h.service.GetConnectedUsers(r.Context())
	writeJSON(w, statusFor(result.Success, result.Error), result)
}

func healthHandler(probe func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if probe != nil {
			if err := probe(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, errorEnvelope{
					Success: false,
					Message: "store unreachable",
					Error:   err.Error(),
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
