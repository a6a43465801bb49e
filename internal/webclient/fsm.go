// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package webclient implements the secondary client's connection state
// machine: QR-driven pairing, relay rendezvous, direct handshake, realtime
// attachment, session restoration, and typed-reason disconnects.
package webclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/realtime"
	"github.com/noteleaf/noteleaf/models"
)

// State is one node of the connection state machine.
type State string

const (
	StateIdle         State = "idle"
	StateQRLoading    State = "qr-loading"
	StateQRDisplayed  State = "qr-displayed"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateRestoring    State = "restoring"
	StateDisconnected State = "disconnected"
)

// DisconnectReason qualifies the disconnected state. Retry behavior
// dispatches on it.
type DisconnectReason string

const (
	ReasonNone           DisconnectReason = ""
	ReasonManual         DisconnectReason = "manual"
	ReasonSessionExpired DisconnectReason = "session_expired"
	ReasonPhoneOffline   DisconnectReason = "phone_offline"
	ReasonConnectionLost DisconnectReason = "connection_lost"
	ReasonAnotherTab     DisconnectReason = "another_tab"
)

// ErrFreshSessionRequired is returned by Retry when the old token is
// permanently invalid and only a new QR scan can help.
var ErrFreshSessionRequired = errors.New("fresh QR session required")

// ErrNothingToRetry is returned by Retry outside a disconnected state.
var ErrNothingToRetry = errors.New("nothing to retry")

// RealtimeChannel is the slice of the realtime client the machine drives.
type RealtimeChannel interface {
	Connect(ctx context.Context) error
	Disconnect()
}

// ChannelFactory builds a realtime channel toward deviceURL.
type ChannelFactory func(deviceURL, token string, handlers realtime.ChannelHandlers) RealtimeChannel

// Machine is the connection state machine. All transitions run on one
// internal goroutine fed by an event queue, so handlers never race; public
// methods only enqueue.
type Machine struct {
	relay      RelayListener
	handshaker Handshaker
	sessions   SessionStore
	bus        PresenceBus
	channels   ChannelFactory
	logger     *logger.Logger

	instanceID string

	events chan func()

	mu      sync.Mutex
	state   State
	reason  DisconnectReason
	record  models.WebSessionRecord
	channel RealtimeChannel

	// onState, when set, observes every transition.
	onState func(state State, reason DisconnectReason)
}

// NewMachine assembles a state machine. channels may be nil, in which case
// the real websocket channel implementation is used.
func NewMachine(relay RelayListener, handshaker Handshaker, sessions SessionStore, bus PresenceBus, channels ChannelFactory, logger *logger.Logger) *Machine {
	m := &Machine{
		relay:      relay,
		handshaker: handshaker,
		sessions:   sessions,
		bus:        bus,
		channels:   channels,
		logger:     logger,
		instanceID: uuid.NewString(),
		events:     make(chan func(), 32),
		state:      StateIdle,
	}

	if m.channels == nil {
		m.channels = func(deviceURL, token string, handlers realtime.ChannelHandlers) RealtimeChannel {
			return realtime.NewChannel(deviceURL, token, handlers, logger)
		}
	}

	return m
}

// OnStateChange registers a transition observer. Must be called before Run.
func (m *Machine) OnStateChange(fn func(state State, reason DisconnectReason)) {
	m.onState = fn
}

// State returns the current state and, when disconnected, its reason.
func (m *Machine) State() (State, DisconnectReason) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.reason
}

// Run processes the event queue until ctx is cancelled. It immediately
// attempts session restoration: a persisted record alone is sufficient to
// try.
func (m *Machine) Run(ctx context.Context) {
	go func() {
		_ = m.bus.Listen(ctx, m.instanceID, func(string) {
			m.enqueue(func() { m.onAnotherInstance(ctx) })
		})
	}()

	m.enqueue(func() { m.restore(ctx) })

	for {
		select {
		case event := <-m.events:
			event()
		case <-ctx.Done():
			m.enqueueTeardown()
			return
		}
	}
}

func (m *Machine) enqueue(event func()) {
	select {
	case m.events <- event:
	default:
		m.logger.Warn().Msg("state machine event queue full, event dropped")
	}
}

func (m *Machine) enqueueTeardown() {
	m.mu.Lock()
	channel := m.channel
	m.channel = nil
	m.mu.Unlock()

	if channel != nil {
		channel.Disconnect()
	}
}

func (m *Machine) setState(state State, reason DisconnectReason) {
	m.mu.Lock()
	m.state = state
	m.reason = reason
	m.mu.Unlock()

	m.logger.Info().Str("state", string(state)).Str("reason", string(reason)).Msg("connection state")

	if m.onState != nil {
		m.onState(state, reason)
	}
}

// Pair starts the QR pairing flow with a scanned payload. The QR code is
// displayed on the primary device; from this client's perspective
// qr-displayed is the wait at the relay for the device's announcement.
func (m *Machine) Pair(ctx context.Context, payload models.QRPayload) {
	m.enqueue(func() { m.pair(ctx, payload) })
}

func (m *Machine) pair(ctx context.Context, payload models.QRPayload) {
	m.setState(StateQRLoading, ReasonNone)

	if payload.Type != models.QRPayloadType || payload.Version != models.QRPayloadVersion {
		m.logger.Warn().Str("type", payload.Type).Int("version", payload.Version).Msg("unsupported QR payload")
		m.setState(StateDisconnected, ReasonSessionExpired)
		return
	}

	m.setState(StateQRDisplayed, ReasonNone)

	ready, err := m.relay.AwaitPhoneReady(ctx, payload.RelayAddress, payload.SessionID)
	if err != nil {
		m.logger.Err(err).Msg("relay rendezvous failed")
		m.setState(StateDisconnected, ReasonPhoneOffline)
		return
	}

	m.setState(StateConnecting, ReasonNone)

	phoneURL := fmt.Sprintf("http://%s", net.JoinHostPort(ready.IP, strconv.Itoa(ready.Port)))
	m.connect(ctx, models.WebSessionRecord{
		PhoneURL:  phoneURL,
		Token:     payload.Token,
		CreatedAt: time.Now().UTC(),
	}, true)
}

// restore attempts to resume a persisted session without a new QR scan.
func (m *Machine) restore(ctx context.Context) {
	record, err := m.sessions.Load()
	if err != nil {
		if !errors.Is(err, ErrNoStoredSession) {
			m.logger.Err(err).Msg("session record unreadable")
		}
		return
	}

	m.setState(StateRestoring, ReasonNone)
	m.connect(ctx, record, false)
}

// connect runs the direct handshake and, on success, persists the record,
// attaches the realtime channel and announces this instance.
func (m *Machine) connect(ctx context.Context, record models.WebSessionRecord, fresh bool) {
	err := m.handshaker.Probe(ctx, record.PhoneURL, record.Token)
	switch {
	case err == nil:

	case errors.Is(err, ErrHandshakeRejected):
		// The device is up but the token is dead: only a new QR helps.
		m.logger.Warn().Msg("handshake rejected, session expired")
		_ = m.sessions.Wipe()
		m.setState(StateDisconnected, ReasonSessionExpired)
		return

	default:
		// Asleep, unreachable, or a protocol/security mismatch. The
		// session is retained: the device may merely be napping.
		m.logger.Warn().Err(err).Msg("phone unreachable")
		m.setState(StateDisconnected, ReasonPhoneOffline)
		return
	}

	if err = m.sessions.Save(record); err != nil {
		m.logger.Err(err).Msg("persisting session record failed")
	}

	channel, err := m.attachRealtime(ctx, record)
	if err != nil {
		m.logger.Err(err).Msg("realtime attach failed")
		m.setState(StateDisconnected, ReasonPhoneOffline)
		return
	}

	m.mu.Lock()
	m.record = record
	m.channel = channel
	m.mu.Unlock()

	if err = m.bus.Announce(m.instanceID); err != nil {
		m.logger.Warn().Err(err).Msg("presence announce failed")
	}

	m.setState(StateConnected, ReasonNone)
}

func (m *Machine) attachRealtime(ctx context.Context, record models.WebSessionRecord) (RealtimeChannel, error) {
	deviceURL, err := realtimeURL(record.PhoneURL, record.Token)
	if err != nil {
		return nil, err
	}

	channel := m.channels(deviceURL, record.Token, realtime.ChannelHandlers{
		OnSessionExpired: func() {
			m.enqueue(func() { m.onSessionExpired() })
		},
		OnConnectionLost: func() {
			m.enqueue(func() { m.onConnectionLost() })
		},
	})

	if err = channel.Connect(ctx); err != nil {
		return nil, err
	}
	return channel, nil
}

// realtimeURL derives the websocket endpoint from the device's HTTP url:
// same host, port one above, token in the query.
func realtimeURL(phoneURL, token string) (string, error) {
	u, err := url.Parse(phoneURL)
	if err != nil {
		return "", err
	}

	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		return "", fmt.Errorf("device url has no port: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("ws://%s/?token=%s", net.JoinHostPort(host, strconv.Itoa(port+1)), url.QueryEscape(token)), nil
}

// Retry re-attempts a connection from a disconnected state. The behavior
// dispatches on the disconnect reason: a permanently invalid session
// yields [ErrFreshSessionRequired] (the record is wiped), everything else
// re-handshakes the last known address.
func (m *Machine) Retry(ctx context.Context) error {
	state, reason := m.State()
	if state != StateDisconnected {
		return ErrNothingToRetry
	}

	switch reason {
	case ReasonSessionExpired:
		_ = m.sessions.Wipe()
		return ErrFreshSessionRequired

	default:
		m.enqueue(func() { m.restore(ctx) })
		return nil
	}
}

// Disconnect tears the session down intentionally: the channel closes, the
// persisted record is wiped, and no reconnect fires afterwards.
func (m *Machine) Disconnect() {
	m.enqueue(func() {
		m.mu.Lock()
		channel := m.channel
		m.channel = nil
		m.mu.Unlock()

		if channel != nil {
			channel.Disconnect()
		}
		_ = m.sessions.Wipe()
		m.setState(StateDisconnected, ReasonManual)
	})
}

func (m *Machine) onSessionExpired() {
	m.mu.Lock()
	channel := m.channel
	m.channel = nil
	m.mu.Unlock()

	if channel != nil {
		channel.Disconnect()
	}
	_ = m.sessions.Wipe()
	m.setState(StateDisconnected, ReasonSessionExpired)
}

func (m *Machine) onConnectionLost() {
	m.mu.Lock()
	m.channel = nil
	m.mu.Unlock()

	// запись сессии сохраняется — повторный handshake возможен
	m.setState(StateDisconnected, ReasonConnectionLost)
}

// onAnotherInstance reacts to the advisory single-active broadcast: if this
// instance is connected while another one announces, this one yields. The
// session record is retained.
func (m *Machine) onAnotherInstance(ctx context.Context) {
	_ = ctx

	m.mu.Lock()
	if m.state != StateConnected {
		m.mu.Unlock()
		return
	}
	channel := m.channel
	m.channel = nil
	m.mu.Unlock()

	if channel != nil {
		channel.Disconnect()
	}
	m.setState(StateDisconnected, ReasonAnotherTab)
}
