// Package channel is the client side of the live notification feed: a
// reconnecting websocket consumer that maintains the authoritative
// unread count, a paginated view of the stored notification list, and
// the persisted session identifier that correlates both.
package channel

import (
	"bytes"
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"exercise-tracker/internal/model"
)

// Status is the connection state of the channel.
type Status int

const (
	StatusClosed Status = iota
	StatusConnecting
	StatusOpen
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	default:
		return "closed"
	}
}

const (
	maxReconnectAttempts = 5
	reconnectDelay       = 3 * time.Second

	criticalAlertDuration = 8 * time.Second
	defaultAlertDuration  = 5 * time.Second
)

// Severity classifies a transient alert derived from a push message.
type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
)

// Alert is a one-shot toast derived from a non-count push message. It
// is shown once and never enters the paginated notification list.
type Alert struct {
	Message  string
	Severity Severity
	Duration time.Duration
}

type pushMessage struct {
	Type     string `json:"type"`
	Count    int    `json:"count"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// Channel owns the single live websocket connection to the server and
// reduces its pushes into the unread count and one-shot alerts. The
// count is authoritative from the server only; nothing on the client
// ever increments or decrements it.
type Channel struct {
	url       string
	sessionID string
	dialer    *websocket.Dialer

	onCount func(int)
	onAlert func(Alert)

	mu          sync.Mutex
	conn        *websocket.Conn
	status      Status
	connecting  bool
	attempts    int
	count       int
	reconnect   *time.Timer
	closed      bool
	delay       time.Duration
	maxAttempts int
}

type Option func(*Channel)

// WithAlertFunc registers the sink for one-shot alerts.
func WithAlertFunc(fn func(Alert)) Option {
	return func(c *Channel) { c.onAlert = fn }
}

// WithCountFunc registers an observer for count pushes, called after
// the channel's own count is replaced.
func WithCountFunc(fn func(int)) Option {
	return func(c *Channel) { c.onCount = fn }
}

// WithReconnectDelay overrides the pause before a reconnect attempt.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *Channel) { c.delay = d }
}

func New(wsURL, sessionID string, opts ...Option) *Channel {
	c := &Channel{
		url:         wsURL,
		sessionID:   sessionID,
		dialer:      websocket.DefaultDialer,
		delay:       reconnectDelay,
		maxAttempts: maxReconnectAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect starts a connection attempt. It is idempotent: if an attempt
// is already in flight, a connection is open, or the channel was shut
// down, the call is a no-op. At most one live connection exists per
// channel at any time.
func (c *Channel) Connect() {
	c.mu.Lock()
	if c.closed || c.connecting || c.conn != nil {
		c.mu.Unlock()
		return
	}
	c.connecting = true
	c.status = StatusConnecting
	c.mu.Unlock()

	go c.dial()
}

func (c *Channel) dial() {
	target := c.url
	if c.sessionID != "" {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + "sessionId=" + url.QueryEscape(c.sessionID)
	}

	conn, resp, err := c.dialer.Dial(target, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		log.Printf("websocket dial %s: %v", c.url, err)
		c.mu.Lock()
		c.connecting = false
		c.status = StatusClosed
		c.mu.Unlock()
		c.scheduleReconnect()
		return
	}

	c.mu.Lock()
	if c.closed {
		// Disconnect raced the dial; drop the fresh connection.
		c.connecting = false
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.connecting = false
	c.attempts = 0
	c.status = StatusOpen
	c.mu.Unlock()

	go c.readLoop(conn)
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			clean := websocket.IsCloseError(err, websocket.CloseNormalClosure)

			c.mu.Lock()
			c.conn = nil
			c.status = StatusClosed
			shutdown := c.closed
			c.mu.Unlock()
			conn.Close()

			if clean || shutdown {
				return
			}
			log.Printf("websocket closed: %v", err)
			c.scheduleReconnect()
			return
		}
		c.handleFrame(data)
	}
}

// handleFrame splits a frame into messages (the server batches queued
// pushes newline-separated) and reduces each one.
func (c *Channel) handleFrame(frame []byte) {
	for _, line := range bytes.Split(frame, []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var msg pushMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			log.Printf("decode push message: %v", err)
			continue
		}
		c.reduce(msg)
	}
}

func (c *Channel) reduce(msg pushMessage) {
	if msg.Type == "notification_count" {
		c.mu.Lock()
		c.count = msg.Count
		c.mu.Unlock()
		if c.onCount != nil {
			c.onCount(msg.Count)
		}
		return
	}

	alert := Alert{Message: msg.Message, Severity: SeverityInfo, Duration: defaultAlertDuration}
	switch msg.Priority {
	case model.NotificationPriorityCritical:
		alert.Severity = SeverityError
		alert.Duration = criticalAlertDuration
	case model.NotificationPriorityNormal:
		alert.Severity = SeveritySuccess
	}
	if c.onAlert != nil {
		c.onAlert(alert)
	}
}

func (c *Channel) scheduleReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.attempts >= c.maxAttempts {
		return
	}
	c.attempts++
	attempt := c.attempts
	c.reconnect = time.AfterFunc(c.delay, func() {
		log.Printf("websocket reconnect attempt %d/%d", attempt, c.maxAttempts)
		c.Connect()
	})
}

// Disconnect closes the channel for good: the connection is closed with
// a normal-closure code, any pending reconnect is cancelled, and no new
// connection will be attempted.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	c.closed = true
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	conn := c.conn
	c.conn = nil
	c.status = StatusClosed
	c.mu.Unlock()

	if conn != nil {
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutting down"),
			deadline,
		)
		_ = conn.Close()
	}
}

// Count is the last server-pushed unread count.
func (c *Channel) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func (c *Channel) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Channel) ReconnectAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}
