package broadcast

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client is one websocket subscriber watching a single shipment.
type Client struct {
	shipment string
	conn     *websocket.Conn
	send     chan []byte
}

// Hub fans shipment events out to the websocket clients watching each
// shipment. A slow client is dropped rather than allowed to block the rest.
type Hub struct {
	mu      sync.RWMutex
	watches map[string]map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub constructs an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		watches: make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

// Register attaches a connection watching one shipment public id and starts
// its read/write pumps.
func (h *Hub) Register(publicID string, conn *websocket.Conn) *Client {
	client := &Client{
		shipment: publicID,
		conn:     conn,
		send:     make(chan []byte, 16),
	}

	h.mu.Lock()
	clients, ok := h.watches[publicID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.watches[publicID] = clients
	}
	clients[client] = struct{}{}
	h.mu.Unlock()

	go client.writePump()
	go client.readPump(h)
	return client
}

// Unregister detaches a client and closes its connection.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	clients, ok := h.watches[client.shipment]
	if ok {
		if _, present := clients[client]; present {
			delete(clients, client)
			close(client.send)
		}
		if len(clients) == 0 {
			delete(h.watches, client.shipment)
		}
	}
	h.mu.Unlock()

	client.conn.Close()
}

// Broadcast delivers one payload to every client watching the shipment.
func (h *Hub) Broadcast(publicID string, payload []byte) {
	h.mu.RLock()
	var stalled []*Client
	for client := range h.watches[publicID] {
		select {
		case client.send <- payload:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.logger.Warn("dropping stalled websocket client",
			slog.String("shipment", publicID))
		h.Unregister(client)
	}
}

// WatcherCount reports how many clients watch one shipment.
func (h *Hub) WatcherCount(publicID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watches[publicID])
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pings and close handshakes work; the
// dashboard never sends application data.
func (c *Client) readPump(h *Hub) {
	defer h.Unregister(c)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
