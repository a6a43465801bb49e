package service

import (
	"context"
	"time"

	"github.com/noteleaf/noteleaf/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns the account lifecycle on the remote store: registration,
// credential verification and the JWT session tokens.
type AuthService interface {
	Register(ctx context.Context, account models.Account) (models.Account, error)
	Login(ctx context.Context, account models.Account) (models.Account, error)
	CreateToken(ctx context.Context, account models.Account) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncService implements the store half of the sync protocol.
type SyncService interface {
	// Push applies a batch of dirty records in dependency order (threads
	// before notes) and returns the identifier mappings. It never touches
	// the caller's local state.
	Push(ctx context.Context, accountID int64, req models.PushRequest) (models.PushResponse, error)

	// Changes returns everything the account changed strictly after since,
	// stamped with the store clock.
	Changes(ctx context.Context, accountID int64, since *time.Time) (models.ChangesResponse, error)

	// PurgeRemoteData hard-deletes the account's remote records.
	PurgeRemoteData(ctx context.Context, accountID int64) (models.PurgeStats, error)

	// PurgeExpiredTombstones sweeps tombstones older than the retention
	// window. Called by the background worker, not by any handler.
	PurgeExpiredTombstones(ctx context.Context, retention time.Duration) (int64, error)
}

// WebSessionService allocates pairing sessions: an opaque token plus the
// relay address a browser needs to rendezvous with the phone.
type WebSessionService interface {
	// CreateSession mints a session for the calling account.
	CreateSession(ctx context.Context, accountID int64) (models.PairingSession, error)

	// SessionAlive reports whether the session exists and has not expired.
	// The relay uses it to refuse rendezvous on dead sessions.
	SessionAlive(sessionID string) bool
}
