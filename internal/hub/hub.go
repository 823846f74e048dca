// Package hub fans server-side notifications out to connected websocket
// clients and keeps each client's unread badge count fresh.
package hub

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"exercise-tracker/internal/middleware"
	"exercise-tracker/internal/model"
)

// UnreadCounter reports the number of unread notifications for one
// session. The hub pushes it on register and after every broadcast.
type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID string) (int, error)
}

type countMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Hub owns the set of connected clients. All client-set mutation and
// every send to a client's channel happen on the Run goroutine; count
// queries run on their own goroutines and hand results back via counted.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	refresh    chan struct{}
	counted    chan countResult
	counts     UnreadCounter
}

type countResult struct {
	client *client
	data   []byte
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

var upgrader = websocket.Upgrader{
	// The session id is a correlation key, not a credential, so
	// cross-origin dashboards may connect.
	CheckOrigin: func(*http.Request) bool { return true },
}

func New(counts UnreadCounter) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
		refresh:    make(chan struct{}, 1),
		counted:    make(chan countResult, 16),
		counts:     counts,
	}
}

// Run is the hub's main loop; call it on its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			log.Printf("websocket client connected, total %d", len(h.clients))
			go h.queryCount(c)

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				log.Printf("websocket client disconnected, total %d", len(h.clients))
			}

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}

		case <-h.refresh:
			for c := range h.clients {
				go h.queryCount(c)
			}

		case res := <-h.counted:
			// The client may have unregistered while its query ran;
			// its channel is closed then, so never send to it.
			if !h.clients[res.client] {
				continue
			}
			select {
			case res.client.send <- res.data:
			default:
				close(res.client.send)
				delete(h.clients, res.client)
			}
		}
	}
}

// Broadcast pushes one notification to every connected client, then
// queues refreshed per-session unread counts.
func (h *Hub) Broadcast(n model.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("marshal notification: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("broadcast queue full, dropping notification %d", n.ID)
	}
	h.RefreshCounts()
}

// RefreshCounts queues a per-client unread count push. Counts are
// per-session, so each client gets its own query.
func (h *Hub) RefreshCounts() {
	select {
	case h.refresh <- struct{}{}:
	default:
	}
}

// queryCount runs the unread count query off the Run goroutine and
// queues the result for delivery; Run does the actual send.
func (h *Hub) queryCount(c *client) {
	count, err := h.counts.UnreadCount(context.Background(), c.userID)
	if err != nil {
		log.Printf("unread count for %s: %v", c.userID, err)
		return
	}
	data, err := json.Marshal(countMessage{Type: "notification_count", Count: count})
	if err != nil {
		return
	}
	h.counted <- countResult{client: c, data: data}
}

// HandleWebSocket upgrades the request and starts the client pumps.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: middleware.ResolveSessionID(r),
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// readPump drains the connection so pings are answered and close frames
// are seen; clients never send application messages.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket read: %v", err)
			}
			return
		}
	}
}

// writePump serializes all writes to the connection. Queued messages
// are coalesced into one frame, newline-separated.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			for i := len(c.send); i > 0; i-- {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}
			if err := w.Close(); err != nil {
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
