package client

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// fakeClock drives timers manually. Advance fires due callbacks in
// schedule order, releasing the lock around each so callbacks may
// schedule further timers.
type fakeClock struct {
	mu        sync.Mutex
	now       time.Duration
	timers    []*fakeTimer
	scheduled []time.Duration
}

type fakeTimer struct {
	clock   *fakeClock
	when    time.Duration
	fn      func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{}
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	c.scheduled = append(c.scheduled, d)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		var next *fakeTimer
		for _, t := range c.timers {
			if !t.stopped && t.when <= target && (next == nil || t.when < next.when) {
				next = t
			}
		}
		if next == nil {
			break
		}
		next.stopped = true
		c.now = next.when
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func (c *fakeClock) scheduledDelays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.scheduled))
	copy(out, c.scheduled)
	return out
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// fakeTransport is an in-memory socket. The test side feeds frames via
// deliver and simulates a server-side drop via drop.
type fakeTransport struct {
	mu        sync.Mutex
	writes    [][]byte
	readErr   error
	inbound   chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		inbound: make(chan []byte, 16),
		closed:  make(chan struct{}),
	}
}

func (t *fakeTransport) ReadMessage() (int, []byte, error) {
	select {
	case data := <-t.inbound:
		return websocket.TextMessage, data, nil
	case <-t.closed:
		t.mu.Lock()
		err := t.readErr
		t.mu.Unlock()
		if err == nil {
			err = errors.New("transport closed")
		}
		return 0, nil, err
	}
}

func (t *fakeTransport) WriteMessage(_ int, data []byte) error {
	select {
	case <-t.closed:
		return errors.New("transport closed")
	default:
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writes = append(t.writes, data)
	return nil
}

func (t *fakeTransport) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return nil
}

func (t *fakeTransport) drop() {
	_ = t.Close()
}

// dropWithError closes the transport so ReadMessage surfaces err.
func (t *fakeTransport) dropWithError(err error) {
	t.mu.Lock()
	t.readErr = err
	t.mu.Unlock()
	_ = t.Close()
}

func (t *fakeTransport) deliver(frame []byte) {
	t.inbound <- frame
}

// controlFrames decodes every write as a subscribe/unsubscribe message.
func (t *fakeTransport) controlFrames() []struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels"`
} {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]struct {
		Type     string   `json:"type"`
		Channels []string `json:"channels"`
	}, 0, len(t.writes))
	for _, data := range t.writes {
		var msg struct {
			Type     string   `json:"type"`
			Channels []string `json:"channels"`
		}
		if err := json.Unmarshal(data, &msg); err == nil {
			out = append(out, msg)
		}
	}
	return out
}

// fakeDialer hands out fakeTransports, optionally refusing dials.
type fakeDialer struct {
	mu      sync.Mutex
	refuse  bool
	dialed  []string
	conns   []*fakeTransport
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{}
}

func (d *fakeDialer) Dial(url string) (Transport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dialed = append(d.dialed, url)
	if d.refuse {
		return nil, errors.New("dial refused")
	}
	conn := newFakeTransport()
	d.conns = append(d.conns, conn)
	return conn, nil
}

func (d *fakeDialer) setRefuse(refuse bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refuse = refuse
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dialed)
}

func (d *fakeDialer) dialedURLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.dialed))
	copy(out, d.dialed)
	return out
}

func (d *fakeDialer) conn(i int) *fakeTransport {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conns[i]
}
