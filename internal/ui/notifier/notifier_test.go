package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Subscribe_Unsubscribe(t *testing.T) {
	n := New()

	ch, unsubscribe := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Len())

	unsubscribe()
	assert.Equal(t, 0, n.Len())

	_, open := <-ch
	assert.False(t, open, "channel is closed on unsubscribe")

	// A second call is a no-op.
	assert.NotPanics(t, unsubscribe)
}

func TestNotifier_Broadcast(t *testing.T) {
	n := New()

	ch1, unsub1 := n.Subscribe()
	ch2, unsub2 := n.Subscribe()
	defer unsub1()
	defer unsub2()

	n.Broadcast(Event{Version: 1, Rows: 3})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, Event{Version: 1, Rows: 3}, ev)
		case <-time.After(100 * time.Millisecond):
			t.Errorf("listener %d did not receive broadcast", i)
		}
	}
}

func TestNotifier_Broadcast_KeepsLatest(t *testing.T) {
	n := New()

	ch, unsubscribe := n.Subscribe()
	defer unsubscribe()

	// Broadcast must not block on a listener that is not reading.
	done := make(chan struct{})
	go func() {
		n.Broadcast(Event{Version: 1})
		n.Broadcast(Event{Version: 2})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Broadcast blocked on full channel")
	}

	assert.Equal(t, 2, (<-ch).Version, "a newer event replaces an unread one")
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	const numGoroutines = 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, unsubscribe := n.Subscribe()
			n.Broadcast(Event{Version: i})
			unsubscribe()
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, n.Len())
}
