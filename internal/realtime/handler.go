package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/taskboard-api/internal/config"
)

// Handler upgrades HTTP requests to WebSocket connections, runs them
// through the auth gate, and manages each connection's lifecycle: register,
// serve control messages, unregister on close.
type Handler struct {
	gate     *AuthGate
	registry *Registry
	upgrader websocket.Upgrader
	cfg      config.RealtimeConfig
	log      *slog.Logger
}

// NewHandler creates the WebSocket endpoint handler.
func NewHandler(gate *AuthGate, registry *Registry, cfg config.RealtimeConfig, log *slog.Logger) *Handler {
	return &Handler{
		gate:     gate,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the SPA origin; token auth is
			// what gates the connection.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		cfg: cfg,
		log: log.With(slog.String("component", "realtime_handler")),
	}
}

// ServeHTTP implements http.Handler for the /ws route.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, authErr := h.gate.Authenticate(r)

	// The close reason has to travel in a WebSocket close frame, so the
	// upgrade happens before a failed authentication is reported.
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", "error", err, "remote_addr", r.RemoteAddr)
		return
	}

	if authErr != nil {
		h.reject(ws, authErr)
		return
	}

	conn := newConn(identity, ws, h.cfg.SendBufferSize, h.cfg.MaxChannels, h.log)
	h.registry.Register(conn)
	go conn.writePump()

	conn.trySend(encodeAck(TypeConnected, nil, map[string]any{
		"userUID":     identity.ID,
		"displayName": identity.DisplayName,
	}))

	h.readLoop(conn)

	h.registry.Unregister(conn)
	conn.close()
}

// reject closes a just-upgraded socket with the policy-violation code and
// the reason matching the auth failure.
func (h *Handler) reject(ws *websocket.Conn, authErr error) {
	reason := CloseReasonInvalidToken
	if errors.Is(authErr, ErrMissingCredential) {
		reason = CloseReasonMissingToken
	}

	h.log.Info("rejected websocket connection", "reason", reason)

	deadline := time.Now().Add(writeWait)
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	if err := ws.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		h.log.Debug("failed to write close frame", "error", err)
	}
	if err := ws.Close(); err != nil {
		h.log.Debug("error closing rejected socket", "error", err)
	}
}

// readLoop consumes control messages until the transport drops. Malformed
// or unknown messages are logged and ignored; they never close the
// connection, so future protocol additions degrade to no-ops on old
// servers.
func (h *Handler) readLoop(c *Conn) {
	c.ws.SetReadLimit(maxMessageSize)
	if err := c.ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("websocket read error", "error", err)
			}
			return
		}

		var msg controlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Warn("dropping malformed message", "error", err)
			continue
		}

		switch msg.Type {
		case TypeSubscribe:
			channels := c.subs.add(msg.Channels)
			c.trySend(encodeAck(TypeSubscribed, channels, nil))
			c.log.Debug("subscriptions updated", "channels", channels)
		case TypeUnsubscribe:
			channels := c.subs.remove(msg.Channels)
			c.trySend(encodeAck(TypeSubscribed, channels, nil))
		case TypePing:
			c.trySend(encodeAck(TypePong, nil, nil))
		default:
			c.log.Debug("ignoring unknown message type", "type", msg.Type)
		}
	}
}
