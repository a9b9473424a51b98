package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyhub/pkg/api"
	"github.com/dmitrymomot/notifyhub/pkg/delivery"
	"github.com/dmitrymomot/notifyhub/pkg/notifications"
	"github.com/dmitrymomot/notifyhub/pkg/notifier"
	"github.com/dmitrymomot/notifyhub/pkg/presence"
	"github.com/dmitrymomot/notifyhub/pkg/transport"
)

type testEnv struct {
	router   http.Handler
	service  *notifier.Service
	storage  notifications.Storage
	registry presence.Registry
	health   func(context.Context) error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	storage := notifications.NewMemoryStorage()
	registry := presence.NewMemoryRegistry()
	hub := transport.NewHub()
	t.Cleanup(func() { _ = hub.Close() })

	engine := delivery.NewEngine(storage, registry, hub)
	service := notifier.New(engine, storage, registry, hub)

	env := &testEnv{
		service:  service,
		storage:  storage,
		registry: registry,
	}
	env.router = api.NewRouter(api.Config{AllowedOrigins: []string{"*"}}, api.Deps{
		Service: service,
		Hub:     hub,
		Health: func(ctx context.Context) error {
			if env.health != nil {
				return env.health(ctx)
			}
			return nil
		},
	})
	return env
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	return rec, decoded
}

func TestSendEndpoint(t *testing.T) {
	t.Run("single user", func(t *testing.T) {
		env := newTestEnv(t)

		rec, body := doJSON(t, env.router, http.MethodPost, "/notifications/send",
			`{"userId":"u1","title":"Hi","message":"test","type":"info"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "single", body["type"])
		assert.Equal(t, "u1", body["userId"])

		list, err := env.storage.List(context.Background(), "u1", 0, 10)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("multiple users reports stats", func(t *testing.T) {
		env := newTestEnv(t)

		rec, body := doJSON(t, env.router, http.MethodPost, "/notifications/send",
			`{"userIds":["a","b"],"title":"t","message":"m","type":"warning"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		stats, ok := body["stats"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 2, stats["successful"])
		assert.EqualValues(t, 0, stats["failed"])
		assert.EqualValues(t, 2, stats["total"])
	})

	t.Run("missing addressing mode", func(t *testing.T) {
		env := newTestEnv(t)

		rec, body := doJSON(t, env.router, http.MethodPost, "/notifications/send",
			`{"title":"t","message":"m","type":"info"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "INVALID_PARAMETERS", body["error"])
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{name: "missing title", body: `{"userId":"u1","message":"m","type":"info"}`},
			{name: "missing message", body: `{"userId":"u1","title":"t","type":"info"}`},
			{name: "unknown type", body: `{"userId":"u1","title":"t","message":"m","type":"shiny"}`},
			{name: "malformed json", body: `{"userId":`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newTestEnv(t)
				rec, body := doJSON(t, env.router, http.MethodPost, "/notifications/send", tt.body)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, false, body["success"])
			})
		}
	})
}

func TestListEndpoint(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 3; i++ {
		_, err := env.storage.Append(context.Background(), "u1", notifications.Notification{
			Title: "t", Message: "m", Type: notifications.TypeInfo,
		})
		require.NoError(t, err)
	}

	rec, body := doJSON(t, env.router, http.MethodGet, "/notifications/u1?offset=0&limit=2", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["notifications"], 2)
	assert.EqualValues(t, 3, body["unreadCount"])

	pagination, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, pagination["limit"])
}

func TestMarkReadEndpoint(t *testing.T) {
	env := newTestEnv(t)
	stored, err := env.storage.Append(context.Background(), "u1", notifications.Notification{
		Title: "t", Message: "m", Type: notifications.TypeInfo,
	})
	require.NoError(t, err)

	t.Run("marks and reports count", func(t *testing.T) {
		rec, body := doJSON(t, env.router, http.MethodPost, "/notifications/u1/"+stored.ID+"/read", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.EqualValues(t, 0, body["unreadCount"])
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		rec, body := doJSON(t, env.router, http.MethodPost, "/notifications/u1/nope/read", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", body["error"])
	})
}

func TestUnreadCountEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.storage.Append(context.Background(), "u1", notifications.Notification{
		Title: "t", Message: "m", Type: notifications.TypeInfo,
	})
	require.NoError(t, err)

	rec, body := doJSON(t, env.router, http.MethodGet, "/notifications/u1/unread-count", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", body["userId"])
	assert.EqualValues(t, 1, body["unreadCount"])
}

func TestStatsEndpoints(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.registry.SetOnline(context.Background(), "u1", "conn-1"))

	rec, body := doJSON(t, env.router, http.MethodGet, "/notifications/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["connectedUsers"])
	assert.Equal(t, "notification-service", body["service"])

	rec, body = doJSON(t, env.router, http.MethodGet, "/notifications/connected-users", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, []any{"u1"}, body["connectedUsers"])
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		env := newTestEnv(t)
		rec, body := doJSON(t, env.router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("store unreachable", func(t *testing.T) {
		env := newTestEnv(t)
		env.health = func(context.Context) error { return context.DeadlineExceeded }

		rec, body := doJSON(t, env.router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, false, body["success"])
	})
}
