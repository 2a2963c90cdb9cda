package client

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// State is the connection lifecycle state. The client holds exactly one
// authoritative state at a time, guarded by its mutex.
type State int

const (
	// StateIdle means no connection exists and none is pending.
	StateIdle State = iota
	// StateConnecting means a dial is in flight.
	StateConnecting
	// StateOpen means the transport is established.
	StateOpen
	// StateBackoff means a reconnect timer is pending.
	StateBackoff
	// StateGivenUp means the retry budget is spent. Connect resumes.
	StateGivenUp
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateBackoff:
		return "backoff"
	case StateGivenUp:
		return "given_up"
	default:
		return "unknown"
	}
}

const (
	defaultBaseDelay   = time.Second
	defaultMaxAttempts = 5
	defaultSettleDelay = 100 * time.Millisecond
)

// Transport is the minimal socket surface the client needs. Satisfied by
// *websocket.Conn.
type Transport interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Dialer establishes a Transport to the given URL.
type Dialer interface {
	Dial(url string) (Transport, error)
}

type gorillaDialer struct {
	dialer *websocket.Dialer
}

func (d gorillaDialer) Dial(rawURL string) (Transport, error) {
	conn, _, err := d.dialer.Dial(rawURL, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Timer is a cancelable pending callback. Satisfied by *time.Timer.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Injectable so tests drive time manually.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Option configures a Client.
type Option func(*Client)

// WithDialer replaces the websocket dialer.
func WithDialer(d Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// WithClock replaces the reconnect/settle scheduler.
func WithClock(clock Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithBackoff overrides the retry schedule. Delay for attempt n is
// base << n; after maxAttempts failed attempts the client gives up.
func WithBackoff(base time.Duration, maxAttempts int) Option {
	return func(c *Client) {
		c.baseDelay = base
		c.maxAttempts = maxAttempts
	}
}

// WithSettleDelay overrides the pause between opening a transport and
// resending the subscription set.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Client) { c.settleDelay = d }
}

// Client owns the single logical realtime connection. All state
// transitions happen under mu; the generation counter invalidates
// goroutines and timers that belong to a torn-down connection.
type Client struct {
	mu    sync.Mutex
	state State
	gen   int

	rawURL string
	token  string

	conn    Transport
	timer   Timer
	attempt int
	subs    map[string]struct{}

	dialer      Dialer
	clock       Clock
	baseDelay   time.Duration
	maxAttempts int
	settleDelay time.Duration

	dispatcher *Dispatcher
	log        *slog.Logger
}

// New creates a disconnected client for the given websocket URL.
func New(rawURL, token string, log *slog.Logger, opts ...Option) *Client {
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		state:       StateIdle,
		rawURL:      rawURL,
		token:       token,
		subs:        make(map[string]struct{}),
		dialer:      gorillaDialer{dialer: websocket.DefaultDialer},
		clock:       realClock{},
		baseDelay:   defaultBaseDelay,
		maxAttempts: defaultMaxAttempts,
		settleDelay: defaultSettleDelay,
		dispatcher:  NewDispatcher(log),
		log:         log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// On registers a listener for decoded envelopes of the given type.
func (c *Client) On(eventType string, fn Listener) int {
	return c.dispatcher.On(eventType, fn)
}

// Off removes a listener registered with On.
func (c *Client) Off(eventType string, id int) {
	c.dispatcher.Off(eventType, id)
}

// Connect starts dialing. A call while a connection is open or a dial is
// already in flight is a no-op. Calling Connect from StateGivenUp or
// StateBackoff restarts with a fresh attempt budget. Without a credential
// the client stays Idle; it does not dial and does not error.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.state == StateConnecting || c.state == StateOpen {
		c.mu.Unlock()
		return
	}
	if c.token == "" {
		c.stopTimerLocked()
		c.state = StateIdle
		c.mu.Unlock()
		return
	}
	c.stopTimerLocked()
	c.attempt = 0
	c.gen++
	gen := c.gen
	c.state = StateConnecting
	c.mu.Unlock()

	c.dial(gen)
}

// SetCredential replaces the auth token. A live connection is torn down
// and redialed so the new token is presented to the server; there is no
// silent credential swap on an open socket.
func (c *Client) SetCredential(token string) {
	c.mu.Lock()
	c.token = token
	if c.state != StateOpen {
		c.mu.Unlock()
		return
	}
	conn := c.conn
	c.conn = nil
	c.gen++
	gen := c.gen
	c.attempt = 0
	c.state = StateConnecting
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	c.dial(gen)
}

// Disconnect is a hard reset: it closes the transport, cancels any
// pending reconnect timer, and clears listeners and subscriptions.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.gen++
	c.stopTimerLocked()
	conn := c.conn
	c.conn = nil
	c.subs = make(map[string]struct{})
	c.attempt = 0
	c.state = StateIdle
	c.mu.Unlock()

	c.dispatcher.reset()
	if conn != nil {
		_ = conn.Close()
	}
}

// Subscribe adds channels to the subscription set and, when the
// transport is open, announces them to the server.
func (c *Client) Subscribe(channels ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	added := make([]string, 0, len(channels))
	for _, name := range channels {
		if name == "" {
			continue
		}
		if _, ok := c.subs[name]; !ok {
			c.subs[name] = struct{}{}
			added = append(added, name)
		}
	}
	if len(added) > 0 {
		c.sendControlLocked("subscribe", added)
	}
}

// Unsubscribe removes channels from the subscription set.
func (c *Client) Unsubscribe(channels ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := make([]string, 0, len(channels))
	for _, name := range channels {
		if _, ok := c.subs[name]; ok {
			delete(c.subs, name)
			removed = append(removed, name)
		}
	}
	if len(removed) > 0 {
		c.sendControlLocked("unsubscribe", removed)
	}
}

// Subscriptions returns the current channel set, sorted.
func (c *Client) Subscriptions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channelNamesLocked()
}

func (c *Client) channelNamesLocked() []string {
	names := make([]string, 0, len(c.subs))
	for name := range c.subs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Client) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Client) sendControlLocked(typ string, channels []string) {
	if c.state != StateOpen || c.conn == nil {
		return
	}
	frame, err := json.Marshal(struct {
		Type     string   `json:"type"`
		Channels []string `json:"channels"`
	}{Type: typ, Channels: channels})
	if err != nil {
		return
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.log.Warn("control write failed", "type", typ, "error", err)
	}
}

func (c *Client) endpoint() string {
	c.mu.Lock()
	rawURL, token := c.rawURL, c.token
	c.mu.Unlock()

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	query.Set("token", token)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func (c *Client) dial(gen int) {
	conn, err := c.dialer.Dial(c.endpoint())
	if err != nil {
		c.log.Warn("dial failed", "error", err)
		c.scheduleRetry(gen)
		return
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		_ = conn.Close()
		return
	}
	c.conn = conn
	c.state = StateOpen
	c.attempt = 0
	c.mu.Unlock()

	// Let the transport settle before replaying the subscription set.
	c.clock.AfterFunc(c.settleDelay, func() { c.resubscribe(gen) })
	go c.readLoop(gen, conn)
}

// resubscribe replays the FULL current subscription set. The server has
// no memory of a previous socket's channels, so a partial replay would
// silently narrow what this client receives.
func (c *Client) resubscribe(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.state != StateOpen {
		return
	}
	names := c.channelNamesLocked()
	if len(names) == 0 {
		return
	}
	c.sendControlLocked("subscribe", names)
}

func (c *Client) readLoop(gen int, conn Transport) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == websocket.ClosePolicyViolation {
				c.authRejected(gen, closeErr.Text)
				return
			}
			c.transportClosed(gen)
			return
		}
		event, err := decodeEvent(data)
		if err != nil {
			c.log.Warn("dropping undecodable frame", "error", err)
			continue
		}
		c.dispatcher.emit(event)
	}
}

// authRejected handles a policy-violation close from the server. The
// rejection is not transient, so no reconnect timer is scheduled; the
// client waits for SetCredential and an explicit Connect.
func (c *Client) authRejected(gen int, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.conn = nil
	c.state = StateGivenUp
	c.log.Warn("server rejected credential", "reason", reason)
}

func (c *Client) transportClosed(gen int) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.mu.Unlock()

	c.scheduleRetry(gen)
}

func (c *Client) scheduleRetry(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.state == StateIdle || c.state == StateGivenUp {
		return
	}
	if c.attempt >= c.maxAttempts {
		c.state = StateGivenUp
		c.log.Warn("reconnect budget exhausted", "attempts", c.attempt)
		return
	}
	delay := c.baseDelay << c.attempt
	c.attempt++
	c.state = StateBackoff
	c.log.Info("scheduling reconnect", "attempt", c.attempt, "delay", delay)
	c.timer = c.clock.AfterFunc(delay, func() { c.retry(gen) })
}

func (c *Client) retry(gen int) {
	c.mu.Lock()
	if gen != c.gen || c.state != StateBackoff {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	if c.token == "" {
		c.state = StateIdle
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	c.mu.Unlock()

	c.dial(gen)
}
