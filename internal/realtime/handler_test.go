package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsFixture is a live handler behind an httptest server.
type wsFixture struct {
	server     *httptest.Server
	registry   *Registry
	jwtService auth.JWTService
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-secret-that-is-long-enough-for-testing",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	registry := NewRegistry(slog.Default())
	handler := NewHandler(NewAuthGate(jwtService), registry, config.RealtimeConfig{
		SendBufferSize: 16,
		MaxChannels:    16,
	}, slog.Default())

	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		registry.CloseAll()
		server.Close()
	})

	return &wsFixture{server: server, registry: registry, jwtService: jwtService}
}

func (f *wsFixture) wsURL(query string) string {
	url := "ws" + strings.TrimPrefix(f.server.URL, "http")
	if query != "" {
		url += "?" + query
	}
	return url
}

func (f *wsFixture) token(t *testing.T, userID uuid.UUID, name string) string {
	t.Helper()
	token, err := f.jwtService.GenerateToken(context.Background(), userID, name)
	require.NoError(t, err)
	return token
}

// readJSON reads the next text frame and decodes it.
func readJSON(t *testing.T, ws *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded
}

// expectClose reads until the server closes the socket and returns the
// close code and reason.
func expectClose(t *testing.T, ws *websocket.Conn) (int, string) {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := ws.ReadMessage()
	require.Error(t, err)

	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok, "expected a close error, got %v", err)
	return closeErr.Code, closeErr.Text
}

func TestHandlerRejectsMissingToken(t *testing.T) {
	t.Parallel()
	fixture := newWSFixture(t)

	ws, _, err := websocket.DefaultDialer.Dial(fixture.wsURL(""), nil)
	require.NoError(t, err)
	defer func() { _ = ws.Close() }()

	code, reason := expectClose(t, ws)
	assert.Equal(t, websocket.ClosePolicyViolation, code)
	assert.Equal(t, CloseReasonMissingToken, reason)
	assert.Equal(t, 0, fixture.registry.ConnectionCount())
}

func TestHandlerRejectsInvalidToken(t *testing.T) {
	t.Parallel()
	fixture := newWSFixture(t)

	ws, _, err := websocket.DefaultDialer.Dial(fixture.wsURL("token=garbage"), nil)
	require.NoError(t, err)
	defer func() { _ = ws.Close() }()

	code, reason := expectClose(t, ws)
	assert.Equal(t, websocket.ClosePolicyViolation, code)
	assert.Equal(t, CloseReasonInvalidToken, reason)

	// The two failure modes must stay distinguishable by reason string.
	assert.NotEqual(t, CloseReasonMissingToken, reason)
}

func TestHandlerConnectSubscribePing(t *testing.T) {
	t.Parallel()
	fixture := newWSFixture(t)

	userID := uuid.New()
	ws, _, err := websocket.DefaultDialer.Dial(
		fixture.wsURL("token="+fixture.token(t, userID, "Ada")), nil)
	require.NoError(t, err)
	defer func() { _ = ws.Close() }()

	greeting := readJSON(t, ws)
	assert.JSONEq(t, `"connected"`, string(greeting["type"]))
	assert.JSONEq(t, `"`+userID.String()+`"`, string(greeting["userUID"]))

	require.NoError(t, ws.WriteJSON(map[string]any{
		"type":     "subscribe",
		"channels": []string{"tasks", "months"},
	}))

	ack := readJSON(t, ws)
	assert.JSONEq(t, `"subscribed"`, string(ack["type"]))
	var channels []string
	require.NoError(t, json.Unmarshal(ack["channels"], &channels))
	assert.ElementsMatch(t, []string{"tasks", "months"}, channels)

	require.NoError(t, ws.WriteJSON(map[string]any{"type": "ping"}))
	pong := readJSON(t, ws)
	assert.JSONEq(t, `"pong"`, string(pong["type"]))
}

func TestHandlerIgnoresMalformedAndUnknownMessages(t *testing.T) {
	t.Parallel()
	fixture := newWSFixture(t)

	ws, _, err := websocket.DefaultDialer.Dial(
		fixture.wsURL("token="+fixture.token(t, uuid.New(), "Ada")), nil)
	require.NoError(t, err)
	defer func() { _ = ws.Close() }()

	readJSON(t, ws) // connected greeting

	// Neither of these may close the connection.
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, ws.WriteJSON(map[string]any{"type": "from_the_future"}))

	// The connection still answers pings afterwards.
	require.NoError(t, ws.WriteJSON(map[string]any{"type": "ping"}))
	pong := readJSON(t, ws)
	assert.JSONEq(t, `"pong"`, string(pong["type"]))
}

func TestHandlerEndToEndBroadcast(t *testing.T) {
	t.Parallel()
	fixture := newWSFixture(t)
	broadcaster := NewBroadcaster(fixture.registry, slog.Default())

	ws, _, err := websocket.DefaultDialer.Dial(
		fixture.wsURL("token="+fixture.token(t, uuid.New(), "Ada")), nil)
	require.NoError(t, err)
	defer func() { _ = ws.Close() }()

	readJSON(t, ws) // connected greeting

	require.NoError(t, ws.WriteJSON(map[string]any{
		"type":     "subscribe",
		"channels": []string{"tasks"},
	}))
	readJSON(t, ws) // subscribed ack

	task, err := domain.NewTask(uuid.New(), "Ship the report")
	require.NoError(t, err)
	broadcaster.PublishTaskChange(EventCreated, task, "2025-03")

	event := readJSON(t, ws)
	assert.JSONEq(t, `"task_change"`, string(event["type"]))
	assert.JSONEq(t, `"created"`, string(event["event"]))
	assert.Contains(t, event, "task")
}

func TestHandlerUnregistersOnDisconnect(t *testing.T) {
	t.Parallel()
	fixture := newWSFixture(t)

	ws, _, err := websocket.DefaultDialer.Dial(
		fixture.wsURL("token="+fixture.token(t, uuid.New(), "Ada")), nil)
	require.NoError(t, err)

	readJSON(t, ws) // connected greeting
	require.Equal(t, 1, fixture.registry.ConnectionCount())

	require.NoError(t, ws.Close())

	// The server's read loop notices the drop and removes the entry.
	require.Eventually(t, func() bool {
		return fixture.registry.ConnectionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
