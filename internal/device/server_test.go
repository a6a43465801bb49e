package device

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteleaf/noteleaf/internal/localauth"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/realtime"
)

func newTestLocalServer(t *testing.T) (*LocalServer, *localauth.Guard) {
	t.Helper()

	guard := localauth.NewGuard()
	hub := realtime.NewHub(guard, logger.Nop())

	srv, err := NewLocalServer("127.0.0.1:8090", guard, hub, logger.Nop())
	require.NoError(t, err)
	return srv, guard
}

// ── Address derivation ──────────────────────────────────────────────────────

func TestNewLocalServer_RealtimePortOffset(t *testing.T) {
	srv, _ := newTestLocalServer(t)

	assert.Equal(t, "127.0.0.1:8090", srv.HTTPAddress())
	assert.Equal(t, "127.0.0.1:8091", srv.RealtimeAddress())
}

func TestNewLocalServer_RejectsUnparsableAddress(t *testing.T) {
	guard := localauth.NewGuard()
	hub := realtime.NewHub(guard, logger.Nop())

	_, err := NewLocalServer("no-port-here", guard, hub, logger.Nop())
	assert.Error(t, err)
}

// ── Handshake ───────────────────────────────────────────────────────────────

func TestHandshake(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(guard *localauth.Guard)
		token      string
		wantStatus int
	}{
		{
			name:       "matching token succeeds",
			setup:      func(g *localauth.Guard) { g.SetToken("pairing-token") },
			token:      "pairing-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no active session",
			setup:      func(g *localauth.Guard) {},
			token:      "pairing-token",
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "wrong token",
			setup:      func(g *localauth.Guard) { g.SetToken("pairing-token") },
			token:      "guess",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token",
			setup:      func(g *localauth.Guard) { g.SetToken("pairing-token") },
			token:      "",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv, guard := newTestLocalServer(t)
			tt.setup(guard)

			req := httptest.NewRequest(http.MethodGet, "/handshake?token="+tt.token, nil)
			req.RemoteAddr = "10.0.0.5:51000"
			rec := httptest.NewRecorder()

			srv.routes().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandshake_LockoutAfterRepeatedGuesses(t *testing.T) {
	srv, guard := newTestLocalServer(t)
	guard.SetToken("pairing-token")
	router := srv.routes()

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/handshake?token=guess", nil)
		req.RemoteAddr = "10.0.0.5:51000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	// правильный токен с заблокированного адреса получает 429
	req := httptest.NewRequest(http.MethodGet, "/handshake?token=pairing-token", nil)
	req.RemoteAddr = "10.0.0.5:51000"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// другой хост не затронут
	req = httptest.NewRequest(http.MethodGet, "/handshake?token=pairing-token", nil)
	req.RemoteAddr = "10.0.0.9:51000"
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
