package realtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Transport timing parameters, conventional gorilla/websocket values.
const (
	// writeWait is the deadline for one outbound frame.
	writeWait = 10 * time.Second

	// pongWait is how long a connection may stay silent before the read
	// loop gives up on it.
	pongWait = 60 * time.Second

	// pingPeriod is the keepalive interval; it must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds inbound control messages. Clients only ever send
	// subscribe lists and pings, so anything large is garbage.
	maxMessageSize = 4096
)

// Identity is the authenticated principal behind a connection. It is used
// only for routing and logging; permission checks happen in the business
// layer before events are published.
type Identity struct {
	ID          string
	DisplayName string
}

// Conn is one physical socket belonging to one identity. The wire is
// written only by the write pump, which drains the send queue; everything
// else enqueues through trySend.
type Conn struct {
	identity Identity
	ws       *websocket.Conn
	subs     *subscriptionSet
	send     chan []byte
	done     chan struct{}
	once     sync.Once
	log      *slog.Logger
}

func newConn(identity Identity, ws *websocket.Conn, sendBuffer, maxChannels int, log *slog.Logger) *Conn {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &Conn{
		identity: identity,
		ws:       ws,
		subs:     newSubscriptionSet(maxChannels),
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
		log: log.With(
			slog.String("user_id", identity.ID),
			slog.String("display_name", identity.DisplayName),
		),
	}
}

// Identity returns the principal this connection authenticated as.
func (c *Conn) Identity() Identity { return c.identity }

// Subscriptions returns the connection's current channel set.
func (c *Conn) Subscriptions() []string { return c.subs.names() }

// Wants reports whether this connection should receive an event routed to
// any of the candidate channels.
func (c *Conn) Wants(candidates ...string) bool { return c.subs.wants(candidates...) }

// trySend enqueues data for delivery without ever blocking. It returns
// false when the connection is closing or its queue is full; the caller
// drops the event for this connection (best-effort delivery).
func (c *Conn) trySend(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// close makes the connection unwritable and closes the underlying socket.
// Idempotent; safe to call from both the read loop and shutdown paths.
func (c *Conn) close() {
	c.once.Do(func() {
		close(c.done)
		if c.ws != nil {
			if err := c.ws.Close(); err != nil {
				c.log.Debug("error closing websocket", "error", err)
			}
		}
	})
}

// writePump drains the send queue onto the wire and emits keepalive pings.
// It exits when the connection is closed or a write fails; a failed write
// also closes the connection so the read loop unwinds.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case data := <-c.send:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debug("write failed, dropping connection", "error", err)
				return
			}
		case <-ticker.C:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
