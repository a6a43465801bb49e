package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/mock"
	"github.com/noteleaf/noteleaf/internal/service"
	"github.com/noteleaf/noteleaf/models"
)

func newWebSessionHandler(t *testing.T) (*Handler, *mock.MockWebSessionService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	sessions := mock.NewMockWebSessionService(ctrl)

	h := &Handler{
		logger:   logger.Nop(),
		relayHub: newRelayHub(),
		services: &service.Services{WebSessionService: sessions},
	}

	return h, sessions
}

func TestCreateWebSession_Success(t *testing.T) {
	h, sessions := newWebSessionHandler(t)

	want := models.PairingSession{
		SessionID:    "session-1",
		Token:        "opaque-token",
		RelayAddress: "wss://store.noteleaf.test/relay",
		ExpiresAt:    time.Date(2026, 3, 14, 10, 10, 0, 0, time.UTC),
	}
	sessions.EXPECT().CreateSession(gomock.Any(), int64(42)).Return(want, nil)

	rr := httptest.NewRecorder()
	h.createWebSession(rr, authedRequest(http.MethodPost, "/web-session/create", "", 42))

	require.Equal(t, http.StatusOK, rr.Code)

	var got models.PairingSession
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, want.SessionID, got.SessionID)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.RelayAddress, got.RelayAddress)
}

func TestCreateWebSession_NoAccountID(t *testing.T) {
	h, _ := newWebSessionHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/web-session/create", nil)
	req = injectNopLogger(req)
	rr := httptest.NewRecorder()
	h.createWebSession(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateWebSession_ServiceError(t *testing.T) {
	h, sessions := newWebSessionHandler(t)

	sessions.EXPECT().CreateSession(gomock.Any(), int64(42)).Return(models.PairingSession{}, errors.New("csprng unavailable"))

	rr := httptest.NewRecorder()
	h.createWebSession(rr, authedRequest(http.MethodPost, "/web-session/create", "", 42))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
