// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime implements the live-update channel between the primary
// device and its paired secondary clients: a device-side hub that fans
// typed events out to authenticated websocket clients, and a client-side
// channel with keepalive handling and bounded reconnection.
package realtime

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/noteleaf/noteleaf/internal/localauth"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/models"
)

const (
	// authTimeout bounds how long a freshly opened socket may stay silent
	// before sending its auth frame.
	authTimeout = 10 * time.Second

	// pingInterval is how often the hub pings each client; a client that
	// misses two consecutive pongs is considered dead.
	pingInterval = 30 * time.Second

	sendBuffer = 16
)

type hubClient struct {
	conn *websocket.Conn
	send chan models.RealtimeMessage

	mu       sync.Mutex
	lastPong time.Time
}

func (c *hubClient) touchPong(at time.Time) {
	c.mu.Lock()
	c.lastPong = at
	c.mu.Unlock()
}

func (c *hubClient) pongSeenSince(cutoff time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPong.After(cutoff)
}

// Hub tracks the websocket clients attached to one running device. The
// transport-level connection is not authenticated: the first frame of every
// client must be an auth message whose token the guard accepts.
type Hub struct {
	guard  *localauth.Guard
	logger *logger.Logger

	mu      sync.Mutex
	clients map[*hubClient]struct{}

	pingEvery time.Duration
}

// NewHub returns a hub validating clients against guard.
func NewHub(guard *localauth.Guard, logger *logger.Logger) *Hub {
	return &Hub{
		guard:     guard,
		logger:    logger,
		clients:   make(map[*hubClient]struct{}),
		pingEvery: pingInterval,
	}
}

// ClientCount returns the number of authenticated clients currently
// attached.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a websocket and runs the client until
// it disconnects or fails keepalive.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Err(err).Msg("realtime websocket upgrade failed")
		return
	}

	ctx := r.Context()

	if !h.authenticate(ctx, conn, clientHost(r.RemoteAddr)) {
		return
	}

	client := &hubClient{
		conn:     conn,
		send:     make(chan models.RealtimeMessage, sendBuffer),
		lastPong: time.Now(),
	}
	h.register(client)
	defer h.unregister(client)

	go h.writeLoop(ctx, client)
	h.readLoop(ctx, client, r.RemoteAddr)
}

// authenticate enforces the auth-first-frame contract: within authTimeout
// the client must send {"type":"auth","token":...} carrying the active
// pairing token.
func (h *Hub) authenticate(ctx context.Context, conn *websocket.Conn, remoteAddr string) bool {
	authCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	_, data, err := conn.Read(authCtx)
	if err != nil {
		h.logger.Warn().Str("remote_addr", remoteAddr).Msg("realtime client sent no auth frame in time")
		conn.Close(websocket.StatusPolicyViolation, "auth frame required")
		return false
	}

	var msg models.RealtimeMessage
	if err = json.Unmarshal(data, &msg); err != nil || msg.Type != models.EventAuth {
		conn.Close(websocket.StatusPolicyViolation, "first frame must be auth")
		return false
	}

	decision := h.guard.ValidateToken(msg.Token, remoteAddr)
	if !decision.Authorized {
		h.logger.Warn().
			Str("remote_addr", remoteAddr).
			Str("error_kind", string(decision.ErrorKind)).
			Msg("realtime client auth rejected")
		conn.Close(websocket.StatusPolicyViolation, string(decision.ErrorKind))
		return false
	}

	return true
}

// clientHost strips the ephemeral source port so the lockout ledger tracks
// hosts, not individual connections.
func clientHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func (h *Hub) register(c *hubClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *hubClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		c.conn.Close(websocket.StatusNormalClosure, "")
	}
}

// readLoop consumes inbound frames. Only pong is meaningful device-ward;
// everything else is ignored.
func (h *Hub) readLoop(ctx context.Context, c *hubClient, remoteAddr string) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return
		}

		var msg models.RealtimeMessage
		if err = json.Unmarshal(data, &msg); err != nil {
			h.logger.Warn().Str("remote_addr", remoteAddr).Msg("undecodable realtime frame dropped")
			continue
		}
		if msg.Type == models.EventPong {
			c.touchPong(time.Now())
		}
	}
}

// writeLoop drains the client's send queue and drives keepalive. A client
// whose last pong predates two ping intervals is dropped.
func (h *Hub) writeLoop(ctx context.Context, c *hubClient) {
	ticker := time.NewTicker(h.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := h.writeMessage(ctx, c, msg); err != nil {
				h.unregister(c)
				return
			}

		case <-ticker.C:
			if !c.pongSeenSince(time.Now().Add(-2 * h.pingEvery)) {
				h.logger.Warn().Msg("realtime client missed keepalive, dropping")
				c.conn.Close(websocket.StatusGoingAway, "keepalive missed")
				h.unregister(c)
				return
			}
			if err := h.writeMessage(ctx, c, models.RealtimeMessage{Type: models.EventPing}); err != nil {
				h.unregister(c)
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) writeMessage(ctx context.Context, c *hubClient, msg models.RealtimeMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.conn.Write(ctx, websocket.MessageText, data)
}

// Broadcast queues a typed event for every attached client. Slow clients
// whose send buffer is full have the frame dropped instead of blocking the
// mutation path; the next sync pass reconciles whatever they missed.
func (h *Hub) Broadcast(event models.EventType, payload any) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			h.logger.Err(err).Str("event", string(event)).Msg("broadcast payload marshal failed")
			return
		}
		raw = data
	}

	msg := models.RealtimeMessage{Type: event, Payload: raw}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// ExpireSession notifies every client that the pairing session ended and
// closes them. Called by the pairing flow when the token is cleared.
func (h *Hub) ExpireSession() {
	h.mu.Lock()
	clients := make([]*hubClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*hubClient]struct{})
	h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	for _, c := range clients {
		_ = h.writeMessage(ctx, c, models.RealtimeMessage{Type: models.EventSessionExpired})
		c.conn.Close(websocket.StatusNormalClosure, "session expired")
	}
}
