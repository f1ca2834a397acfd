// Package realtime pushes full collection snapshots to live subscribers.
package realtime

import (
	"context"
	"sync"
)

// Hub fans the latest snapshot out to subscribers. Each subscriber holds at most
// one pending snapshot; a slow reader skips intermediate ones.
type Hub[T any] struct {
	mu      sync.Mutex
	subs    map[chan T]struct{}
	last    T
	hasLast bool

	// OnSubscribers, if set, is called with the subscriber count after it changes.
	OnSubscribers func(n int)
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[chan T]struct{})}
}

func (h *Hub[T]) Publish(snapshot T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = snapshot
	h.hasLast = true
	for ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
			// Only Publish sends, under h.mu, so after the drain there is room.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

// Last returns the most recent snapshot, if any has been published.
func (h *Hub[T]) Last() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.hasLast
}

// Subscribe returns a channel that first yields the current snapshot and then
// every later one. It is closed once ctx is done.
func (h *Hub[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	h.mu.Lock()
	if h.hasLast {
		ch <- h.last
	}
	h.subs[ch] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()
	h.notify(n)

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		n := len(h.subs)
		h.mu.Unlock()
		h.notify(n)
	}()
	return ch
}

func (h *Hub[T]) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub[T]) notify(n int) {
	if h.OnSubscribers != nil {
		h.OnSubscribers(n)
	}
}
