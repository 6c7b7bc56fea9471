package app

import (
	"context"
	"sync"

	"github.com/bft-labs/gelfship/internal/domain"
)

// DefaultChannelCapacity is the event channel bound used when none is configured.
const DefaultChannelCapacity = 1000

// EventChannel is a bounded multi-producer single-consumer queue of events.
// Sends block while the channel is full. After Close, sends fail with
// domain.ErrChannelClosed and the consumer drains what is already queued.
// A send that returned nil is always seen by the consumer.
type EventChannel struct {
	events    chan domain.Event
	done      chan struct{}
	closeOnce sync.Once

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// NewEventChannel creates a channel holding up to capacity events.
// A capacity of zero makes every send wait for the consumer.
func NewEventChannel(capacity int) *EventChannel {
	if capacity < 0 {
		capacity = DefaultChannelCapacity
	}
	return &EventChannel{
		events: make(chan domain.Event, capacity),
		done:   make(chan struct{}),
	}
}

// Send enqueues ev, blocking while the channel is full.
func (c *EventChannel) Send(ev domain.Event) error {
	return c.SendContext(context.Background(), ev)
}

// SendContext enqueues ev, blocking while the channel is full or until ctx is done.
func (c *EventChannel) SendContext(ctx context.Context, ev domain.Event) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrChannelClosed
	}
	c.inflight.Add(1)
	c.mu.Unlock()
	defer c.inflight.Done()

	select {
	case c.events <- ev:
		return nil
	case <-c.done:
		return domain.ErrChannelClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue pushes a record event.
func (c *EventChannel) Enqueue(r domain.Record) error {
	return c.Send(domain.DataEvent(r))
}

// ForceFlush pushes a flush event.
func (c *EventChannel) ForceFlush() error {
	return c.Send(domain.FlushEvent())
}

// Receive blocks until an event is available. It returns false once the
// channel is closed and no queued events remain.
func (c *EventChannel) Receive() (domain.Event, bool) {
	select {
	case ev := <-c.events:
		return ev, true
	case <-c.done:
	}

	// sends already past the closed check either land or give up on done
	c.inflight.Wait()

	select {
	case ev := <-c.events:
		return ev, true
	default:
		return domain.Event{}, false
	}
}

// Close disconnects all producers. It is safe to call more than once.
func (c *EventChannel) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
	})
}

// Closed reports whether Close has been called.
func (c *EventChannel) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Len returns the number of queued events.
func (c *EventChannel) Len() int {
	return len(c.events)
}

// Cap returns the channel bound.
func (c *EventChannel) Cap() int {
	return cap(c.events)
}
