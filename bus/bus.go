// Package bus distributes automation-runtime status events to
// subscribers: the canvas tracker, the SSE streaming handler, and tests.
package bus

import "github.com/navreach/playbook/runtime"

// EventBus distributes status events to subscribers.
type EventBus interface {
	// Publish sends an event to all subscribers. Must not block.
	Publish(event runtime.StatusEvent)

	// Subscribe registers a subscriber. The returned Subscription must be
	// closed when done.
	Subscribe() Subscription

	// Close shuts down the bus and all active subscriptions.
	Close() error
}

// Subscription is a handle to a stream of status events.
type Subscription interface {
	// Events returns the channel of events for this subscription. The
	// channel is closed when the subscription or the bus is closed.
	Events() <-chan runtime.StatusEvent

	// Close unsubscribes and releases resources.
	Close() error
}
