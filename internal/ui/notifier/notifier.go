// Package notifier broadcasts dataset reload events to open SSE streams.
package notifier

import "sync"

// Event announces that a new dataset is available.
type Event struct {
	// Version increases by one with every reload.
	Version int
	// Rows is the row count of the new dataset.
	Rows int
}

// Notifier fans reload events out to every subscriber. Each subscriber
// holds at most one pending event; a newer event replaces an unread one.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Event]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel of reload events and a function that removes
// the subscription. The function is safe to call more than once.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, ch)
			close(ch)
			n.mu.Unlock()
		})
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Broadcast delivers ev to all listeners without blocking.
func (n *Notifier) Broadcast(ev Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- ev:
		default:
			// Drop the stale pending event so the listener sees the latest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
