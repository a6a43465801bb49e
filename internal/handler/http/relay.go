// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/models"
)

// relayWaitTimeout bounds how long a browser waits for the phone-ready
// frame before the rendezvous is abandoned.
const relayWaitTimeout = 2 * time.Minute

// relayHub holds one mailbox per live pairing session. The relay is
// rendezvous-only: exactly one phone-ready frame travels browser-ward per
// session and no application data ever passes through.
type relayHub struct {
	mu        sync.Mutex
	mailboxes map[string]chan models.RelayMessage
}

func newRelayHub() *relayHub {
	return &relayHub{mailboxes: make(map[string]chan models.RelayMessage)}
}

// mailbox returns the session's channel, creating it on first use so the
// browser and the phone can arrive in either order.
func (rh *relayHub) mailbox(sessionID string) chan models.RelayMessage {
	rh.mu.Lock()
	defer rh.mu.Unlock()

	box, ok := rh.mailboxes[sessionID]
	if !ok {
		box = make(chan models.RelayMessage, 1)
		rh.mailboxes[sessionID] = box
	}
	return box
}

func (rh *relayHub) drop(sessionID string) {
	rh.mu.Lock()
	delete(rh.mailboxes, sessionID)
	rh.mu.Unlock()
}

func (h *Handler) relay(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	sessionID := r.URL.Query().Get("session")
	role := r.URL.Query().Get("role")

	if sessionID == "" || (role != "browser" && role != "phone") {
		log.Warn().Str("role", role).Msg("malformed relay rendezvous request")
		http.Error(w, "want session=<id>&role=browser|phone", http.StatusBadRequest)
		return
	}

	if !h.services.WebSessionService.SessionAlive(sessionID) {
		log.Warn().Str("session_id", sessionID).Msg("relay rendezvous on dead session")
		http.Error(w, "unknown or expired session", http.StatusGone)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Err(err).Msg("websocket upgrade failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), relayWaitTimeout)
	defer cancel()

	switch role {
	case "phone":
		h.relayPhone(ctx, conn, sessionID)
	case "browser":
		h.relayBrowser(ctx, conn, sessionID)
	}
}

// relayPhone reads the single phone-ready frame and posts it to the
// session's mailbox.
func (h *Handler) relayPhone(ctx context.Context, conn *websocket.Conn, sessionID string) {
	log := h.logger

	_, data, err := conn.Read(ctx)
	if err != nil {
		log.Err(err).Str("session_id", sessionID).Msg("relay phone read failed")
		conn.Close(websocket.StatusProtocolError, "expected one signaling frame")
		return
	}

	var msg models.RelayMessage
	if err = json.Unmarshal(data, &msg); err != nil || msg.Type != models.RelayPhoneReady {
		log.Warn().Str("session_id", sessionID).Msg("unexpected relay frame from phone")
		conn.Close(websocket.StatusProtocolError, "expected phone-ready")
		return
	}

	select {
	case h.relayHub.mailbox(sessionID) <- msg:
	default:
		// A second phone-ready on the same session is dropped; the first
		// one wins.
	}

	conn.Close(websocket.StatusNormalClosure, "delivered")
}

// relayBrowser blocks until the phone announces itself, forwards the frame
// and closes.
func (h *Handler) relayBrowser(ctx context.Context, conn *websocket.Conn, sessionID string) {
	log := h.logger

	select {
	case msg := <-h.relayHub.mailbox(sessionID):
		data, err := json.Marshal(msg)
		if err != nil {
			conn.Close(websocket.StatusInternalError, "marshal failed")
			return
		}
		if err = conn.Write(ctx, websocket.MessageText, data); err != nil {
			log.Err(err).Str("session_id", sessionID).Msg("relay browser write failed")
			return
		}
		h.relayHub.drop(sessionID)
		conn.Close(websocket.StatusNormalClosure, "rendezvous complete")

	case <-ctx.Done():
		h.relayHub.drop(sessionID)
		conn.Close(websocket.StatusGoingAway, "rendezvous timed out")
	}
}
