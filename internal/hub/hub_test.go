package hub

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

// gateCounter blocks every UnreadCount call until released.
type gateCounter struct {
	release chan struct{}
	count   int
}

func (g *gateCounter) UnreadCount(context.Context, string) (int, error) {
	<-g.release
	return g.count, nil
}

func TestCountPushAfterDisconnect(t *testing.T) {
	counter := &gateCounter{release: make(chan struct{}), count: 4}
	h := New(counter)
	go h.Run()

	// The client disconnects while its unread count query is still
	// running; the late result must be dropped, not sent.
	gone := &client{hub: h, send: make(chan []byte, 1), userID: "user_gone0000001"}
	h.register <- gone
	h.unregister <- gone
	close(counter.release)

	select {
	case _, ok := <-gone.send:
		if ok {
			t.Fatal("unregistered client must not receive a count push")
		}
	case <-time.After(time.Second):
		t.Fatal("unregister must close the client's send channel")
	}

	// The hub is still healthy: a fresh client gets its count.
	stays := &client{hub: h, send: make(chan []byte, 4), userID: "user_stays000001"}
	h.register <- stays

	select {
	case data := <-stays.send:
		var msg countMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal count push: %v", err)
		}
		if msg.Type != "notification_count" || msg.Count != 4 {
			t.Fatalf("unexpected count push %s", data)
		}
	case <-time.After(time.Second):
		t.Fatal("connected client must receive its count push")
	}
}

func TestRefreshSkipsDisconnectedClients(t *testing.T) {
	counter := &gateCounter{release: make(chan struct{}), count: 2}
	h := New(counter)
	go h.Run()

	gone := &client{hub: h, send: make(chan []byte, 1), userID: "user_gone0000002"}
	stays := &client{hub: h, send: make(chan []byte, 4), userID: "user_stays000002"}
	h.register <- gone
	h.register <- stays

	// Queries for both registrations are in flight; drop one client,
	// then release the queries.
	h.RefreshCounts()
	h.unregister <- gone
	close(counter.release)

	select {
	case data := <-stays.send:
		var msg countMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal count push: %v", err)
		}
		if msg.Count != 2 {
			t.Fatalf("expected count 2, got %d", msg.Count)
		}
	case <-time.After(time.Second):
		t.Fatal("remaining client must still receive count pushes")
	}
}
