package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/framelog/slp/pkg/streaming"
	ws "github.com/gorilla/websocket"
)

const (
	sendQueueSize = 4096
	ackQueueSize  = 16
	maxRedials    = 10
	maxBackoff    = 30 * time.Second
	writeWait     = 10 * time.Second
)

// connection owns one WebSocket and the two goroutines serving it: a
// writer draining the outbound queue in order and a reader routing acks.
type connection struct {
	mu      sync.Mutex
	conn    *ws.Conn
	stop    chan struct{} // closed when conn is replaced
	closed  bool
	outbox  chan []byte
	acks    chan streaming.AckMessage
	done    chan struct{}
	target  string
	backoff time.Duration

	// start_game message of the open game, replayed after a redial.
	replay []byte

	logger *slog.Logger
}

func newConnection(logger *slog.Logger) *connection {
	return &connection{
		outbox:  make(chan []byte, sendQueueSize),
		acks:    make(chan streaming.AckMessage, ackQueueSize),
		done:    make(chan struct{}),
		backoff: time.Second,
		logger:  logger,
	}
}

// open dials rawURL with the secret as a query parameter and starts the
// reader and writer.
func (c *connection) open(rawURL, secret string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid websocket URL: %w", err)
	}
	q := u.Query()
	q.Set("secret", secret)
	u.RawQuery = q.Encode()
	c.target = u.String()

	conn, err := c.dial()
	if err != nil {
		return err
	}
	c.attach(conn)
	return nil
}

func (c *connection) dial() (*ws.Conn, error) {
	conn, _, err := ws.DefaultDialer.Dial(c.target, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return conn, nil
}

func (c *connection) attach(conn *ws.Conn) {
	stop := make(chan struct{})
	c.mu.Lock()
	c.conn = conn
	c.stop = stop
	c.mu.Unlock()
	go c.writeLoop(conn, stop)
	go c.readLoop(conn)
}

func (c *connection) write(conn *ws.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(ws.TextMessage, data)
}

// writeLoop sends queued messages on conn until it fails or the
// connection shuts down. A failed message is lost; the redial replays
// only start_game.
func (c *connection) writeLoop(conn *ws.Conn, stop <-chan struct{}) {
	for {
		select {
		case <-c.done:
			return
		case <-stop:
			return
		case data := <-c.outbox:
			if err := c.write(conn, data); err != nil {
				c.logger.Warn("WebSocket write error", "error", err)
				go c.redial(conn)
				return
			}
		}
	}
}

// readLoop forwards acks from conn to the waiting sender.
func (c *connection) readLoop(conn *ws.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Warn("WebSocket read error", "error", err)
				go c.redial(conn)
			}
			return
		}

		var ack streaming.AckMessage
		if err := json.Unmarshal(message, &ack); err != nil || ack.Type != streaming.TypeAck {
			c.logger.Debug("Ignoring non-ack message", "raw", string(message))
			continue
		}
		select {
		case c.acks <- ack:
		default:
			c.logger.Debug("Ack queue full, dropping", "for", ack.For)
		}
	}
}

// redial replaces the failed conn with exponential backoff. Only the first
// caller for a given conn redials; the reader and writer both report the
// same failure.
func (c *connection) redial(failed *ws.Conn) {
	c.mu.Lock()
	if c.closed || c.conn != failed {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	close(c.stop)
	c.mu.Unlock()
	_ = failed.Close()

	backoff := c.backoff
	for attempt := 1; attempt <= maxRedials; attempt++ {
		select {
		case <-c.done:
			return
		case <-time.After(backoff):
		}

		c.logger.Info("Reconnecting to WebSocket", "attempt", attempt)
		conn, err := c.dial()
		if err != nil {
			c.logger.Warn("Reconnect dial failed", "attempt", attempt, "error", err)
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		c.mu.Lock()
		replay := c.replay
		c.mu.Unlock()
		if replay != nil {
			if err := c.write(conn, replay); err != nil {
				c.logger.Warn("Failed to replay start_game after reconnect", "error", err)
				_ = conn.Close()
				continue
			}
		}

		c.logger.Info("WebSocket reconnected", "attempt", attempt)
		c.attach(conn)
		return
	}

	c.logger.Error("WebSocket reconnect failed after max attempts", "maxAttempts", maxRedials)
}

// send queues data for the writer. Non-blocking; drops if the queue is full.
func (c *connection) send(data []byte) {
	select {
	case c.outbox <- data:
	default:
		c.logger.Warn("WebSocket send queue full, dropping message")
	}
}

// sendAndWait queues data and blocks until the server acknowledges it or
// the timeout expires.
func (c *connection) sendAndWait(data []byte, ackFor string, timeout time.Duration) (streaming.AckMessage, error) {
	c.send(data)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ack := <-c.acks:
			if ack.For == ackFor {
				return ack, nil
			}
		case <-timer.C:
			return streaming.AckMessage{}, fmt.Errorf("timeout waiting for ack of %q", ackFor)
		case <-c.done:
			return streaming.AckMessage{}, fmt.Errorf("connection closed while waiting for ack of %q", ackFor)
		}
	}
}

// setReplay stores the message to replay after a redial; nil clears it.
func (c *connection) setReplay(data []byte) {
	c.mu.Lock()
	c.replay = data
	c.mu.Unlock()
}

// close sends a close frame and stops both goroutines.
func (c *connection) close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	_ = conn.WriteControl(ws.CloseMessage,
		ws.FormatCloseMessage(ws.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	return conn.Close()
}
