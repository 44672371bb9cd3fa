// Package host provides the mount lifecycle shared by widget hosts: waiting
// for the resource a widget attaches to, and unregistering everything the
// widget subscribed to when it is torn down.
package host

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is how often WaitFor retries its lookup.
const DefaultPollInterval = 100 * time.Millisecond

// WaitFor calls lookup immediately and then every interval until it reports
// found. It returns the context error if ctx ends first.
func WaitFor[T any](ctx context.Context, interval time.Duration, lookup func() (T, bool)) (T, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if v, ok := lookup(); ok {
		return v, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-ticker.C:
			if v, ok := lookup(); ok {
				return v, nil
			}
		}
	}
}

// Subscriptions collects the cancel functions of a mounted widget's event
// handlers. It is safe for concurrent use.
type Subscriptions struct {
	mu      sync.Mutex
	next    int
	entries []subscription
	closed  bool
}

type subscription struct {
	id     int
	cancel func()
}

// Add registers a cancel function and returns a func that unregisters it
// without running it. After Teardown, cancel runs immediately and the
// returned func does nothing.
func (s *Subscriptions) Add(cancel func()) (unregister func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return func() {}
	}
	s.next++
	id := s.next
	s.entries = append(s.entries, subscription{id: id, cancel: cancel})
	s.mu.Unlock()

	return func() { s.remove(id) }
}

func (s *Subscriptions) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Teardown runs every registered cancel function once, newest first.
// Later calls do nothing.
func (s *Subscriptions) Teardown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	entries := s.entries
	s.entries = nil
	s.mu.Unlock()

	for i := len(entries) - 1; i >= 0; i-- {
		entries[i].cancel()
	}
}

// Len returns the number of live subscriptions.
func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Closed reports whether Teardown has run.
func (s *Subscriptions) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
