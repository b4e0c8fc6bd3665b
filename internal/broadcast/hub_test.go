package broadcast

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestHubServer(t *testing.T, hub *Hub, publicID string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Register(publicID, conn)
	}))
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestHubBroadcastReachesWatchers(t *testing.T) {
	hub := NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	server := newTestHubServer(t, hub, "pub-1")
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.WatcherCount("pub-1") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("watcher never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Broadcast("pub-1", []byte(`{"type":"status","status":"live"}`))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(payload), `"status":"live"`) {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestHubBroadcastIgnoresOtherShipments(t *testing.T) {
	hub := NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	server := newTestHubServer(t, hub, "pub-1")
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.WatcherCount("pub-1") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("watcher never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Broadcast("pub-2", []byte("other"))

	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected no delivery for a different shipment")
	}
}

func TestPublicIDFromChannel(t *testing.T) {
	if got := publicIDFromChannel("shipment_events:pub-42"); got != "pub-42" {
		t.Fatalf("unexpected public id %q", got)
	}
}
