package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noteleaf/noteleaf/internal/config"
	"github.com/noteleaf/noteleaf/internal/crypto"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/models"
)

// webSessionService is the concrete implementation of [WebSessionService].
// Sessions are ephemeral by design: they live in memory, bounded by their
// TTL, and a restart simply invalidates all outstanding QR codes.
type webSessionService struct {
	passwords    crypto.PasswordService
	relayAddress string
	sessionTTL   time.Duration
	logger       *logger.Logger

	mu       sync.Mutex
	sessions map[string]time.Time
}

// NewWebSessionService constructs a [WebSessionService] from the server
// configuration.
func NewWebSessionService(passwords crypto.PasswordService, cfg config.Server, logger *logger.Logger) WebSessionService {
	return &webSessionService{
		passwords:    passwords,
		relayAddress: cfg.RelayAddress,
		sessionTTL:   cfg.SessionTTL,
		logger:       logger,
		sessions:     make(map[string]time.Time),
	}
}

// CreateSession implements [WebSessionService]. The session id is public
// (it keys the relay rendezvous); only the token is a secret, and the store
// never validates it — that is the paired device's job.
func (w *webSessionService) CreateSession(ctx context.Context, accountID int64) (models.PairingSession, error) {
	log := logger.FromContext(ctx)

	token, err := w.passwords.GeneratePairingToken()
	if err != nil {
		log.Err(err).Msg("pairing token generation failed")
		return models.PairingSession{}, err
	}

	session := models.PairingSession{
		SessionID:    uuid.NewString(),
		Token:        token,
		RelayAddress: w.relayAddress,
		ExpiresAt:    time.Now().Add(w.sessionTTL),
	}

	w.mu.Lock()
	w.sessions[session.SessionID] = session.ExpiresAt
	w.pruneLocked()
	w.mu.Unlock()

	log.Info().Str("session_id", session.SessionID).Int64("account_id", accountID).Msg("pairing session created")

	return session, nil
}

// SessionAlive implements [WebSessionService].
func (w *webSessionService) SessionAlive(sessionID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	expires, ok := w.sessions[sessionID]
	if !ok {
		return false
	}
	if time.Now().After(expires) {
		delete(w.sessions, sessionID)
		return false
	}

	return true
}

// pruneLocked drops expired sessions. Caller holds w.mu.
func (w *webSessionService) pruneLocked() {
	now := time.Now()
	for id, expires := range w.sessions {
		if now.After(expires) {
			delete(w.sessions, id)
		}
	}
}
