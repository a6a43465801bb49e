package webclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteleaf/noteleaf/models"
)

// ── HTTP probe ──────────────────────────────────────────────────────────────

func TestHTTPHandshaker_Probe(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "accepted", status: http.StatusOK, wantErr: nil},
		{name: "wrong token", status: http.StatusUnauthorized, wantErr: ErrHandshakeRejected},
		{name: "no session", status: http.StatusServiceUnavailable, wantErr: ErrHandshakeRejected},
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: ErrRateLimited},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/handshake", r.URL.Path)
				assert.Equal(t, "pairing-token", r.URL.Query().Get("token"))
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := NewHTTPHandshaker(2 * time.Second).Probe(context.Background(), srv.URL, "pairing-token")

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestHTTPHandshaker_UnreachableDevice(t *testing.T) {
	err := NewHTTPHandshaker(200 * time.Millisecond).
		Probe(context.Background(), "http://127.0.0.1:1", "pairing-token")

	assert.ErrorIs(t, err, ErrPhoneUnreachable)
}

// ── Relay listener ──────────────────────────────────────────────────────────

func TestWebsocketRelayListener_ReceivesPhoneReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s-1", r.URL.Query().Get("session"))
		assert.Equal(t, "browser", r.URL.Query().Get("role"))

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
		require.NoError(t, err)
		defer conn.Close(websocket.StatusNormalClosure, "")

		frame, _ := json.Marshal(models.RelayMessage{Type: models.RelayPhoneReady, IP: "192.168.1.23", Port: 8090})
		_ = conn.Write(r.Context(), websocket.MessageText, frame)
	}))
	defer srv.Close()

	relayURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/relay"

	msg, err := WebsocketRelayListener{}.AwaitPhoneReady(context.Background(), relayURL, "s-1")

	require.NoError(t, err)
	assert.Equal(t, models.RelayPhoneReady, msg.Type)
	assert.Equal(t, "192.168.1.23", msg.IP)
	assert.Equal(t, 8090, msg.Port)
}

func TestWebsocketRelayListener_RejectsUnexpectedFrame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
		require.NoError(t, err)
		defer conn.Close(websocket.StatusNormalClosure, "")

		frame, _ := json.Marshal(models.RelayMessage{Type: "something-else"})
		_ = conn.Write(r.Context(), websocket.MessageText, frame)
	}))
	defer srv.Close()

	relayURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/relay"

	_, err := WebsocketRelayListener{}.AwaitPhoneReady(context.Background(), relayURL, "s-1")
	assert.Error(t, err)
}
