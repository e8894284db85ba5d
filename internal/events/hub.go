package events

import (
	gosync "sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// defaultBuffer is the per-subscriber queue length used when NewHub is
// given a non-positive size.
const defaultBuffer = 16

// Subscription receives every value published on its hub after it was
// created, in publish order.
type Subscription[T any] struct {
	ID  string
	ch  chan T
	hub *Hub[T]
}

// C returns the channel values are delivered on. It is closed when the
// subscription or the hub is closed.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Close detaches the subscription from its hub and closes its channel.
// Closing twice is harmless.
func (s *Subscription[T]) Close() {
	s.hub.unsubscribe(s.ID)
}

// Hub fans published values out to all current subscribers. Publish never
// blocks: when a subscriber's queue is full its oldest pending value is
// dropped to make room for the new one.
type Hub[T any] struct {
	mu     gosync.Mutex
	subs   map[string]*Subscription[T]
	buffer int
	closed bool
}

// NewHub creates a hub whose subscribers queue up to buffer values.
func NewHub[T any](buffer int) *Hub[T] {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub[T]{
		subs:   make(map[string]*Subscription[T]),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. Subscribing to a closed hub
// returns a subscription whose channel is already closed.
func (h *Hub[T]) Subscribe() *Subscription[T] {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscription[T]{
		ID:  uuid.New().String(),
		ch:  make(chan T, h.buffer),
		hub: h,
	}
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub.ID] = sub
	return sub
}

// Publish delivers v to every subscriber without blocking.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for _, sub := range h.subs {
		select {
		case sub.ch <- v:
			continue
		default:
		}
		// Queue full; drop the oldest value and retry once.
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- v:
		default:
		}
	}
}

// Len returns the number of active subscriptions.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close closes every subscription. Later publishes are ignored.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		close(sub.ch)
		delete(h.subs, id)
	}
}

func (h *Hub[T]) unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(sub.ch)
}

// WaitFor returns a tea.Cmd that blocks until the next value arrives on
// sub and hands it to the Bubble Tea runtime as a message. Call it again
// after handling each value to keep listening. A closed subscription
// yields a nil message.
func WaitFor[T any](sub *Subscription[T]) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-sub.ch
		if !ok {
			return nil
		}
		return v
	}
}
