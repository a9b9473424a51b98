package delivery_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyhub/pkg/delivery"
	"github.com/dmitrymomot/notifyhub/pkg/notifications"
	"github.com/dmitrymomot/notifyhub/pkg/presence"
	"github.com/dmitrymomot/notifyhub/pkg/transport"
)

// recordingEmitter captures every emit for assertions.
type recordingEmitter struct {
	events []emittedEvent
	err    error
	mu     sync.Mutex
}

type emittedEvent struct {
	addr    transport.Address
	name    string
	payload any
}

func (r *recordingEmitter) Emit(_ context.Context, addr transport.Address, event string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, emittedEvent{addr: addr, name: event, payload: payload})
	return nil
}

func (r *recordingEmitter) recorded() []emittedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]emittedEvent(nil), r.events...)
}

// failingStorage rejects appends to simulate a store outage.
type failingStorage struct {
	notifications.Storage
}

func (f *failingStorage) Append(context.Context, string, notifications.Notification) (notifications.Notification, error) {
	return notifications.Notification{}, errors.New("store unavailable")
}

// brokenRegistry fails lookups to simulate a presence outage.
type brokenRegistry struct {
	presence.Registry
}

func (b *brokenRegistry) Lookup(context.Context, string) (string, bool, error) {
	return "", false, errors.New("registry unavailable")
}

func newEngine(t *testing.T) (*delivery.Engine, notifications.Storage, presence.Registry, *recordingEmitter) {
	t.Helper()
	storage := notifications.NewMemoryStorage()
	registry := presence.NewMemoryRegistry()
	emitter := &recordingEmitter{}
	return delivery.NewEngine(storage, registry, emitter), storage, registry, emitter
}

func TestEngine_Send_OnlineUser(t *testing.T) {
	engine, storage, registry, emitter := newEngine(t)
	require.NoError(t, registry.SetOnline(context.Background(), "u1", "conn-1"))

	result, err := engine.Send(context.Background(), "u1", notifications.Notification{
		Title:   "Hi",
		Message: "test",
		Type:    notifications.TypeInfo,
	})
	require.NoError(t, err)
	assert.True(t, result.Live)
	assert.NotEmpty(t, result.Notification.ID)
	assert.False(t, result.Notification.Read)

	events := emitter.recorded()
	require.Len(t, events, 2)

	assert.Equal(t, transport.UserAddress("u1"), events[0].addr)
	assert.Equal(t, delivery.EventNewNotification, events[0].name)
	pushed, ok := events[0].payload.(notifications.Notification)
	require.True(t, ok)
	assert.Equal(t, result.Notification.ID, pushed.ID)

	assert.Equal(t, delivery.EventUnreadCount, events[1].name)
	assert.Equal(t, delivery.UnreadCountPayload{Count: 1}, events[1].payload)

	// Persistence happened regardless of the push.
	list, err := storage.List(context.Background(), "u1", 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hi", list[0].Title)
}

func TestEngine_Send_OfflineUserIsStoredOnly(t *testing.T) {
	engine, storage, _, emitter := newEngine(t)

	result, err := engine.Send(context.Background(), "u1", notifications.Notification{
		Title:   "Later",
		Message: "read me on reconnect",
		Type:    notifications.TypeSystem,
	})
	require.NoError(t, err)
	assert.False(t, result.Live)
	assert.Empty(t, emitter.recorded())

	list, err := storage.List(context.Background(), "u1", 0, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEngine_Send_AppendFailureFailsAttempt(t *testing.T) {
	registry := presence.NewMemoryRegistry()
	emitter := &recordingEmitter{}
	engine := delivery.NewEngine(&failingStorage{}, registry, emitter)

	_, err := engine.Send(context.Background(), "u1", notifications.Notification{Title: "x", Message: "y"})
	require.Error(t, err)
	assert.Empty(t, emitter.recorded(), "nothing may be pushed when persistence failed")
}

func TestEngine_Send_PresenceFailureDegradesToStoreOnly(t *testing.T) {
	storage := notifications.NewMemoryStorage()
	emitter := &recordingEmitter{}
	engine := delivery.NewEngine(storage, &brokenRegistry{}, emitter)

	result, err := engine.Send(context.Background(), "u1", notifications.Notification{Title: "x", Message: "y"})
	require.NoError(t, err)
	assert.False(t, result.Live)
	assert.Empty(t, emitter.recorded())

	list, err := storage.List(context.Background(), "u1", 0, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEngine_Send_PushFailureDoesNotFailAttempt(t *testing.T) {
	storage := notifications.NewMemoryStorage()
	registry := presence.NewMemoryRegistry()
	require.NoError(t, registry.SetOnline(context.Background(), "u1", "conn-1"))
	emitter := &recordingEmitter{err: errors.New("transport down")}
	engine := delivery.NewEngine(storage, registry, emitter)

	result, err := engine.Send(context.Background(), "u1", notifications.Notification{Title: "x", Message: "y"})
	require.NoError(t, err)
	assert.True(t, result.Live)

	list, err := storage.List(context.Background(), "u1", 0, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEngine_FlushPending(t *testing.T) {
	t.Run("caps the catch-up at the pending window", func(t *testing.T) {
		engine, storage, _, emitter := newEngine(t)
		for i := 0; i < delivery.PendingWindow+2; i++ {
			_, err := storage.Append(context.Background(), "u1", notifications.Notification{
				Title:   fmt.Sprintf("t%d", i),
				Message: "m",
			})
			require.NoError(t, err)
		}

		require.NoError(t, engine.FlushPending(context.Background(), "u1"))

		events := emitter.recorded()
		require.Len(t, events, 1)
		assert.Equal(t, delivery.EventPendingNotifications, events[0].name)

		payload, ok := events[0].payload.(delivery.PendingPayload)
		require.True(t, ok)
		assert.Len(t, payload.Notifications, delivery.PendingWindow)
		assert.Equal(t, delivery.PendingWindow+2, payload.UnreadCount)
		// Newest record leads the catch-up.
		assert.Equal(t, fmt.Sprintf("t%d", delivery.PendingWindow+1), payload.Notifications[0].Title)
	})

	t.Run("empty log pushes nothing", func(t *testing.T) {
		engine, _, _, emitter := newEngine(t)

		require.NoError(t, engine.FlushPending(context.Background(), "u1"))
		assert.Empty(t, emitter.recorded())
	})
}
