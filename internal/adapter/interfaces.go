// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the noteleaf remote store.
//
// The primary abstraction is [StoreAdapter], which decouples the device's
// sync engine from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPStoreAdapter]) built on resty with transparent
// retry of transient failures.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"time"

	"github.com/noteleaf/noteleaf/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_adapter_mock.go -package=mock

// StoreAdapter defines transport-agnostic communication with the noteleaf
// remote store. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type StoreAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or
	// an empty string if no token has been set yet.
	Token() string

	// Register creates an account on the remote store. On success it
	// stores the returned bearer token via SetToken.
	Register(ctx context.Context, account models.Account) (models.Account, error)

	// Login authenticates against the remote store. On success it stores
	// the returned bearer token via SetToken.
	Login(ctx context.Context, account models.Account) (models.Account, error)

	// Push uploads a batch of dirty records and returns the identifier
	// mappings the store acknowledged. Transient transport failures are
	// retried; the push protocol is idempotent so a replay is safe.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// PullChanges fetches every record changed strictly after since. A nil
	// since requests a full pull.
	PullChanges(ctx context.Context, since *time.Time) (models.ChangesResponse, error)

	// CreateWebSession asks the store to mint a pairing session for the
	// authenticated account.
	CreateWebSession(ctx context.Context) (models.PairingSession, error)

	// PurgeRemoteData hard-deletes the account's remote records.
	PurgeRemoteData(ctx context.Context) (models.PurgeStats, error)
}
