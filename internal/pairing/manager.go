// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pairing runs the primary device's side of the pairing flow:
// minting a web session on the remote store, activating its token on the
// local auth guard, rendering the QR payload, and announcing the device's
// local address over the rendezvous relay.
package pairing

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/coder/websocket"

	"github.com/noteleaf/noteleaf/internal/adapter"
	"github.com/noteleaf/noteleaf/internal/localauth"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/realtime"
	"github.com/noteleaf/noteleaf/models"
)

// Manager owns the device-side pairing lifecycle. One session is active at
// a time; starting a new one rotates the guard token, which invalidates
// whatever the previous session's clients held.
type Manager struct {
	remote adapter.StoreAdapter
	guard  *localauth.Guard
	hub    *realtime.Hub
	logger *logger.Logger

	// announceIP and announcePort are the device's LAN address published
	// in the phone-ready frame; the secondary client handshakes there
	// directly, bypassing the relay.
	announceIP   string
	announcePort int
}

// NewManager builds a pairing manager announcing localAddr (host:port of
// the device's local HTTP server).
func NewManager(remote adapter.StoreAdapter, guard *localauth.Guard, hub *realtime.Hub, localAddr string, logger *logger.Logger) (*Manager, error) {
	host, portStr, err := net.SplitHostPort(localAddr)
	if err != nil {
		return nil, fmt.Errorf("parse local address: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("parse local port: %w", err)
	}

	return &Manager{
		remote:       remote,
		guard:        guard,
		hub:          hub,
		logger:       logger,
		announceIP:   host,
		announcePort: port,
	}, nil
}

// StartSession mints a pairing session, activates its token locally and
// announces the device over the relay. The returned payload is what gets
// rendered as a QR code.
func (m *Manager) StartSession(ctx context.Context) (models.QRPayload, error) {
	session, err := m.remote.CreateWebSession(ctx)
	if err != nil {
		return models.QRPayload{}, fmt.Errorf("create web session: %w", err)
	}

	// Activating the token drops all prior failure state; old tokens are
	// dead from this point on.
	m.guard.SetToken(session.Token)

	if err = m.announce(ctx, session); err != nil {
		m.guard.Clear()
		return models.QRPayload{}, fmt.Errorf("announce over relay: %w", err)
	}

	m.logger.Info().
		Str("session_id", session.SessionID).
		Time("expires_at", session.ExpiresAt).
		Msg("pairing session started")

	return models.QRPayload{
		Type:         models.QRPayloadType,
		Version:      models.QRPayloadVersion,
		SessionID:    session.SessionID,
		Token:        session.Token,
		RelayAddress: session.RelayAddress,
	}, nil
}

// EndSession tears the active session down: attached clients get a
// session-expired notice and the guard refuses everything until the next
// StartSession.
func (m *Manager) EndSession() {
	m.guard.Clear()
	if m.hub != nil {
		m.hub.ExpireSession()
	}
	m.logger.Info().Msg("pairing session ended")
}

// EncodeQR serialises the payload into the JSON document embedded in the
// QR image.
func EncodeQR(payload models.QRPayload) ([]byte, error) {
	return json.Marshal(payload)
}

// announce dials the relay in the phone role and publishes the one
// phone-ready frame carrying the device's LAN address. The relay connection
// is closed immediately after; it never carries anything else.
func (m *Manager) announce(ctx context.Context, session models.PairingSession) error {
	relayURL, err := phoneRelayURL(session)
	if err != nil {
		return err
	}

	conn, _, err := websocket.Dial(ctx, relayURL, nil)
	if err != nil {
		return fmt.Errorf("dial relay: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "announced")

	frame, err := json.Marshal(models.RelayMessage{
		Type: models.RelayPhoneReady,
		IP:   m.announceIP,
		Port: m.announcePort,
	})
	if err != nil {
		return err
	}

	if err = conn.Write(ctx, websocket.MessageText, frame); err != nil {
		return fmt.Errorf("publish phone-ready: %w", err)
	}

	return nil
}

func phoneRelayURL(session models.PairingSession) (string, error) {
	u, err := url.Parse(session.RelayAddress)
	if err != nil {
		return "", fmt.Errorf("parse relay address: %w", err)
	}

	q := u.Query()
	q.Set("session", session.SessionID)
	q.Set("role", "phone")
	u.RawQuery = q.Encode()

	return u.String(), nil
}
