package bus

import (
	"sync"

	"github.com/navreach/playbook/runtime"
)

// MemBusConfig configures an in-memory event bus.
type MemBusConfig struct {
	// SubscriberBufferSize is the channel buffer size per subscriber (default: 256).
	SubscriberBufferSize int
}

// MemBus is an in-memory event bus. The desktop shell runs one playbook
// at a time, so events are not partitioned by run; a new run simply
// starts publishing on the same bus.
type MemBus struct {
	mu      sync.RWMutex
	subs    []*memSub
	bufSize int
	closed  bool
}

// NewMemBus creates a new in-memory event bus with the given configuration.
func NewMemBus(config MemBusConfig) *MemBus {
	bufSize := config.SubscriberBufferSize
	if bufSize <= 0 {
		bufSize = 256
	}
	return &MemBus{bufSize: bufSize}
}

// Publish sends an event to all subscribers. If the bus is closed, the
// event is silently dropped.
func (b *MemBus) Publish(event runtime.StatusEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, sub := range b.subs {
		sub.send(event)
	}
}

// Subscribe registers a subscriber. Returns a Subscription that must be
// closed when done.
func (b *MemBus) Subscribe() Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newMemSub(b.bufSize)
	b.subs = append(b.subs, sub)
	return sub
}

// Close shuts down the bus and all active subscriptions.
func (b *MemBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for _, sub := range b.subs {
		sub.close()
	}
	return nil
}

// memSub is an in-memory subscription.
type memSub struct {
	ch     chan runtime.StatusEvent
	mu     sync.Mutex
	closed bool
}

func newMemSub(bufSize int) *memSub {
	return &memSub{
		ch: make(chan runtime.StatusEvent, bufSize),
	}
}

// Events returns a channel of events for this subscription.
func (s *memSub) Events() <-chan runtime.StatusEvent {
	return s.ch
}

// Close unsubscribes and releases resources.
func (s *memSub) Close() error {
	s.close()
	return nil
}

// close performs the actual channel close, guarded against double-close.
func (s *memSub) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// send delivers an event to the subscription's channel.
// If the channel is full or the subscription is closed, the event is dropped.
func (s *memSub) send(event runtime.StatusEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case s.ch <- event:
	default:
		// Drop if channel full.
	}
}

// Compile-time interface checks.
var _ EventBus = (*MemBus)(nil)
var _ Subscription = (*memSub)(nil)
