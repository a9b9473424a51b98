package transport

import (
	"context"
	"sync"

	"github.com/dmitrymomot/notifyhub/pkg/cache"
)

const (
	defaultBufferSize   = 16
	defaultMaxAddresses = 10_000
)

// Subscriber receives events emitted to one address.
type Subscriber interface {
	// Receive returns the channel events arrive on. The channel is closed
	// when the subscriber or its hub is closed.
	Receive() <-chan Event

	// Close detaches the subscriber and closes its channel.
	// Close is idempotent.
	Close() error
}

// Hub is an in-process Emitter. Each address owns a set of subscriber
// channels; emits are non-blocking and events are dropped for subscribers
// whose buffers are full. The set of live addresses is bounded by an LRU so
// an unbounded user id space cannot grow the hub without limit.
type Hub struct {
	addresses  *cache.LRU[Address, *mailbox]
	bufferSize int
	closed     bool
	mu         sync.Mutex
}

// HubOption configures a Hub.
type HubOption func(*hubConfig)

type hubConfig struct {
	bufferSize   int
	maxAddresses int
}

// WithBufferSize sets the per-subscriber channel buffer.
func WithBufferSize(n int) HubOption {
	return func(c *hubConfig) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// WithMaxAddresses bounds the number of live addresses; beyond it the least
// recently used address is evicted and its subscribers closed.
func WithMaxAddresses(n int) HubOption {
	return func(c *hubConfig) {
		if n > 0 {
			c.maxAddresses = n
		}
	}
}

// NewHub creates an in-process event hub.
func NewHub(opts ...HubOption) *Hub {
	cfg := &hubConfig{
		bufferSize:   defaultBufferSize,
		maxAddresses: defaultMaxAddresses,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	h := &Hub{
		addresses:  cache.NewLRU[Address, *mailbox](cfg.maxAddresses),
		bufferSize: cfg.bufferSize,
	}
	h.addresses.OnEvict(func(_ Address, mb *mailbox) {
		mb.close()
	})
	return h
}

// Emit delivers the event to every subscriber of addr. An address with no
// subscribers drops the event; that is the offline path, not a failure.
func (h *Hub) Emit(ctx context.Context, addr Address, event string, payload any) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	mb, ok := h.addresses.Get(addr)
	h.mu.Unlock()

	if !ok {
		return nil
	}
	mb.emit(Event{Name: event, Payload: payload})
	return nil
}

// Subscribe attaches a new subscriber to addr. The subscription is cleaned
// up when ctx is cancelled or the subscriber is closed.
func (h *Hub) Subscribe(ctx context.Context, addr Address) Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub := newSubscriber(h.bufferSize)
		_ = sub.Close()
		return sub
	}

	mb, ok := h.addresses.Get(addr)
	if !ok {
		mb = newMailbox()
		h.addresses.Put(addr, mb)
	}

	sub := newSubscriber(h.bufferSize)
	mb.add(sub)

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			mb.remove(sub)
		}()
	}

	return sub
}

// Close shuts down the hub and closes every subscriber.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	h.addresses.Clear()
	return nil
}

// mailbox fans events out to the subscribers of one address.
type mailbox struct {
	subscribers map[*subscriber]struct{}
	mu          sync.Mutex
}

func newMailbox() *mailbox {
	return &mailbox{subscribers: make(map[*subscriber]struct{})}
}

func (m *mailbox) add(sub *subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[sub] = struct{}{}
}

func (m *mailbox) remove(sub *subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscribers, sub)
	_ = sub.Close()
}

func (m *mailbox) emit(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sub := range m.subscribers {
		sub.send(ev)
	}
}

func (m *mailbox) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sub := range m.subscribers {
		_ = sub.Close()
	}
	clear(m.subscribers)
}

type subscriber struct {
	ch     chan Event
	closed bool
	mu     sync.Mutex
}

func newSubscriber(bufferSize int) *subscriber {
	return &subscriber{ch: make(chan Event, bufferSize)}
}

func (s *subscriber) Receive() <-chan Event {
	return s.ch
}

func (s *subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send delivers ev without blocking; events are dropped when the
// subscriber's buffer is full or the subscriber is closed.
func (s *subscriber) send(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- ev:
	default:
	}
}
