package ws

import (
	"sync"
	"testing"
	"time"

	"cafepos/internal/domain"
	"cafepos/internal/store"
)

type fakeConn struct {
	mu     sync.Mutex
	wrote  []Message
	closed bool
}

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wrote = append(f.wrote, v.(Message))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) messages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.wrote))
	copy(out, f.wrote)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached")
}

func TestBroadcastReachesAllClientsIncludingSender(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	a, b := &fakeConn{}, &fakeConn{}
	h.register <- a
	h.register <- b

	order := &domain.Order{OrderID: "DH-1", CustomerName: "Tú"}
	h.Broadcast(Message{ID: "DH-1", Type: TypeNewOrderNotify, Order: order})

	waitFor(t, func() bool { return len(a.messages()) == 1 && len(b.messages()) == 1 })
	got := a.messages()[0]
	if got.Type != TypeNewOrderNotify || got.Order.OrderID != "DH-1" {
		t.Fatalf("bad message: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("broadcast must stamp the message")
	}
}

func TestUnregisterClosesConn(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c := &fakeConn{}
	h.register <- c
	h.unregister <- c

	waitFor(t, func() bool { c.mu.Lock(); defer c.mu.Unlock(); return c.closed })

	// Late broadcast must not reach the departed client.
	h.Broadcast(Message{ID: "x", Type: TypeNewOrderNotify})
	time.Sleep(20 * time.Millisecond)
	if len(c.messages()) != 0 {
		t.Fatalf("departed client received %d messages", len(c.messages()))
	}
}

func TestRecentSkipsCleared(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	h.Broadcast(Message{ID: "DH-1", Type: TypeNewOrderNotify})
	h.Broadcast(Message{ID: "DH-2", Type: TypeNewOrderNotify})

	waitFor(t, func() bool { return len(h.Recent(nil)) == 2 })

	filtered := h.Recent(map[string]bool{"DH-1": true})
	if len(filtered) != 1 || filtered[0].ID != "DH-2" {
		t.Fatalf("cleared id must be skipped: %+v", filtered)
	}
}

func TestStopEndsRunLoop(t *testing.T) {
	h := NewHub()
	stopped := make(chan struct{})
	go func() {
		h.Run()
		close(stopped)
	}()

	h.Stop()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("hub loop did not exit after Stop")
	}
	h.Stop() // idempotent
}

func TestRelayStoreForwardsEvents(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()
	st := store.New()
	go h.RelayStore(st)

	c := &fakeConn{}
	h.register <- c

	// Subscription races the publish; give the relay a beat to attach.
	waitFor(t, func() bool {
		st.Publish(store.Event{Type: store.EventOutOfStock, Item: &domain.MenuItem{ID: "M1", Name: "Trà sữa"}})
		msgs := c.messages()
		return len(msgs) > 0
	})

	msg := c.messages()[0]
	if msg.Type != store.EventOutOfStock || msg.ID != "oos-M1" {
		t.Fatalf("bad relayed message: %+v", msg)
	}
}
