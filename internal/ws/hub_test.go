package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func TestHub_BroadcastReachesSubscribers(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(r.Context(), conn)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber was never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if n := hub.Broadcast(ctx, []byte(`{"type":"ping"}`)); n != 1 {
		t.Fatalf("expected 1 delivery, got %d", n)
	}

	typ, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if typ != websocket.MessageText || string(data) != `{"type":"ping"}` {
		t.Errorf("unexpected message %v %s", typ, data)
	}
}

func TestHub_BroadcastWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	if n := hub.Broadcast(context.Background(), []byte("x")); n != 0 {
		t.Errorf("expected 0 deliveries, got %d", n)
	}
	if hub.Len() != 0 {
		t.Errorf("expected empty hub, got %d", hub.Len())
	}
}

func TestHub_StalledSubscriberDoesNotBlockHub(t *testing.T) {
	hub := NewHub()
	accepted := make(chan *websocket.Conn, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		accepted <- conn
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The client never reads, so a large enough message fills the socket
	// buffers and the server write blocks until writeTimeout.
	client, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.CloseNow()

	stalled := <-accepted
	hub.Add(stalled)

	done := make(chan int, 1)
	go func() {
		done <- hub.Broadcast(ctx, make([]byte, 64<<20))
	}()

	time.Sleep(200 * time.Millisecond)
	start := time.Now()
	if n := hub.Len(); n != 1 {
		t.Fatalf("expected 1 subscriber during broadcast, got %d", n)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Len blocked for %v during broadcast", elapsed)
	}

	select {
	case n := <-done:
		if n != 0 {
			t.Errorf("expected no deliveries to a stalled subscriber, got %d", n)
		}
	case <-ctx.Done():
		t.Fatal("broadcast never gave up on the stalled subscriber")
	}
	if hub.Len() != 0 {
		t.Errorf("expected the stalled subscriber to be dropped, got %d", hub.Len())
	}
}
