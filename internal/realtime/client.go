package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/models"
)

const (
	// reconnectBase is the first reconnect delay; attempt n waits
	// base × 2^n.
	reconnectBase = time.Second

	// maxReconnectAttempts bounds the backoff curve; exceeding it yields a
	// terminal connection-lost notification.
	maxReconnectAttempts = 10
)

// ChannelHandlers are the client-side callbacks of the realtime channel.
// All of them are invoked from the channel's own goroutine.
type ChannelHandlers struct {
	// OnEvent receives every typed notification except keepalive frames.
	OnEvent func(msg models.RealtimeMessage)

	// OnSessionExpired fires when the device announces the pairing session
	// ended. The channel stops; no reconnect is attempted.
	OnSessionExpired func()

	// OnConnectionLost fires after the reconnect budget is exhausted.
	OnConnectionLost func()
}

// Channel is the secondary client's end of the realtime socket. It dials
// the device, authenticates with the pairing token, answers keepalive
// pings, and reconnects with exponential backoff on abnormal closure.
type Channel struct {
	url      string
	token    string
	handlers ChannelHandlers
	logger   *logger.Logger

	mu             sync.Mutex
	conn           *websocket.Conn
	reconnectTimer *time.Timer
	attempts       int
	closed         bool

	base        time.Duration
	maxAttempts int
}

// NewChannel prepares a channel against the device's realtime endpoint.
// deviceURL is the ws:// address including the token query parameter, as
// assembled by the connection state machine.
func NewChannel(deviceURL, token string, handlers ChannelHandlers, logger *logger.Logger) *Channel {
	return &Channel{
		url:         deviceURL,
		token:       token,
		handlers:    handlers,
		logger:      logger,
		base:        reconnectBase,
		maxAttempts: maxReconnectAttempts,
	}
}

// Connect dials the device and starts the receive loop. It returns once
// the socket is open and authenticated; delivery happens on a background
// goroutine.
func (c *Channel) Connect(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
		return errors.New("channel closed")
	}
	c.conn = conn
	c.mu.Unlock()

	go c.receiveLoop(ctx, conn)
	return nil
}

func (c *Channel) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial realtime channel: %w", err)
	}

	auth, err := json.Marshal(models.RealtimeMessage{Type: models.EventAuth, Token: c.token})
	if err != nil {
		conn.Close(websocket.StatusInternalError, "")
		return nil, err
	}
	if err = conn.Write(ctx, websocket.MessageText, auth); err != nil {
		conn.Close(websocket.StatusProtocolError, "")
		return nil, fmt.Errorf("send auth frame: %w", err)
	}

	return conn, nil
}

// Disconnect closes the channel intentionally. Any pending reconnect timer
// is cancelled so a zombie reconnect cannot fire after teardown.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	c.closed = true
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		conn.Close(websocket.StatusNormalClosure, "client disconnect")
	}
}

func (c *Channel) receiveLoop(ctx context.Context, conn *websocket.Conn) {
	settled := false

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			c.handleClosure(ctx)
			return
		}

		// The attempt counter resets only once the connection proves
		// itself by delivering a frame. Resetting on dial alone would let
		// a device that accepts and immediately drops spin forever.
		if !settled {
			settled = true
			c.mu.Lock()
			c.attempts = 0
			c.mu.Unlock()
		}

		var msg models.RealtimeMessage
		if err = json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn().Msg("undecodable realtime frame dropped")
			continue
		}

		switch msg.Type {
		case models.EventPing:
			pong, _ := json.Marshal(models.RealtimeMessage{Type: models.EventPong})
			if err = conn.Write(ctx, websocket.MessageText, pong); err != nil {
				c.handleClosure(ctx)
				return
			}

		case models.EventSessionExpired:
			c.mu.Lock()
			c.closed = true
			c.conn = nil
			c.mu.Unlock()
			conn.Close(websocket.StatusNormalClosure, "session expired")
			if c.handlers.OnSessionExpired != nil {
				c.handlers.OnSessionExpired()
			}
			return

		case models.EventPong, models.EventAuth:
			// not expected client-ward, ignore

		default:
			if c.handlers.OnEvent != nil {
				c.handlers.OnEvent(msg)
			}
		}
	}
}

// handleClosure reacts to an abnormal close: while the channel is still
// meant to be connected it schedules a reconnect on the backoff curve.
func (c *Channel) handleClosure(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.conn = nil

	if c.attempts >= c.maxAttempts {
		c.closed = true
		c.mu.Unlock()
		c.logger.Warn().Int("attempts", c.maxAttempts).Msg("realtime reconnect budget exhausted")
		if c.handlers.OnConnectionLost != nil {
			c.handlers.OnConnectionLost()
		}
		return
	}

	delay := c.base << c.attempts
	c.attempts++
	c.reconnectTimer = time.AfterFunc(delay, func() { c.reconnect(ctx) })
	c.mu.Unlock()

	c.logger.Info().Dur("delay", delay).Int("attempt", c.attempts).Msg("realtime reconnect scheduled")
}

func (c *Channel) reconnect(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.reconnectTimer = nil
	c.mu.Unlock()

	conn, err := c.dial(ctx)
	if err != nil {
		c.handleClosure(ctx)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
		return
	}
	c.conn = conn
	c.mu.Unlock()

	go c.receiveLoop(ctx, conn)
}
