// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package webclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"

	"github.com/noteleaf/noteleaf/internal/utils"
	"github.com/noteleaf/noteleaf/models"
)

// ErrHandshakeRejected means the device answered the probe but refused the
// token: the session is dead, not asleep.
var ErrHandshakeRejected = errors.New("handshake rejected")

// ErrPhoneUnreachable means the probe never completed: timeout, refused
// connection, or a protocol/security mismatch between this client's origin
// and the device's address. The device may simply be asleep.
var ErrPhoneUnreachable = errors.New("phone unreachable")

// ErrRateLimited means the device's lockout refused this address. The
// token itself may still be valid; retry later.
var ErrRateLimited = errors.New("rate limited")

// Handshaker probes a primary device directly, bypassing the relay.
type Handshaker interface {
	Probe(ctx context.Context, phoneURL, token string) error
}

// RelayListener waits at the rendezvous relay for the device's one
// phone-ready announcement.
type RelayListener interface {
	AwaitPhoneReady(ctx context.Context, relayAddress, sessionID string) (models.RelayMessage, error)
}

// HTTPHandshaker probes GET /handshake?token= over plain HTTP.
type HTTPHandshaker struct {
	client *utils.HTTPClient
}

// NewHTTPHandshaker builds a prober with the given per-probe timeout.
func NewHTTPHandshaker(timeout time.Duration) *HTTPHandshaker {
	client := utils.NewHTTPClient()
	client.SetTimeout(timeout)
	return &HTTPHandshaker{client: client}
}

func (h *HTTPHandshaker) Probe(ctx context.Context, phoneURL, token string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("token", token).
		Get(phoneURL + "/handshake")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPhoneUnreachable, err)
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return fmt.Errorf("%w: retry later", ErrRateLimited)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrHandshakeRejected, resp.StatusCode())
	}
	return nil
}

// WebsocketRelayListener subscribes to the relay in the browser role.
type WebsocketRelayListener struct{}

func (WebsocketRelayListener) AwaitPhoneReady(ctx context.Context, relayAddress, sessionID string) (models.RelayMessage, error) {
	u, err := url.Parse(relayAddress)
	if err != nil {
		return models.RelayMessage{}, fmt.Errorf("parse relay address: %w", err)
	}
	q := u.Query()
	q.Set("session", sessionID)
	q.Set("role", "browser")
	u.RawQuery = q.Encode()

	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return models.RelayMessage{}, fmt.Errorf("dial relay: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "rendezvous complete")

	_, data, err := conn.Read(ctx)
	if err != nil {
		return models.RelayMessage{}, fmt.Errorf("await phone-ready: %w", err)
	}

	var msg models.RelayMessage
	if err = json.Unmarshal(data, &msg); err != nil {
		return models.RelayMessage{}, fmt.Errorf("decode relay frame: %w", err)
	}
	if msg.Type != models.RelayPhoneReady {
		return models.RelayMessage{}, fmt.Errorf("unexpected relay frame %q", msg.Type)
	}

	return msg, nil
}
