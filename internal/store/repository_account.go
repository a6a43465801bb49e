// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/models"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. It handles account creation, lookup and
// identity-field updates against the "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	db *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection.
func NewAccountRepository(db *DB) AccountRepository {
	return &accountRepository{db: db}
}

// CreateAccount persists a new account record and returns the fully
// populated [models.Account] with server-assigned fields (AccountID,
// CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → classified per constraint into
//     [ErrUsernameTaken], [ErrEmailTaken] or [ErrPhoneTaken].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAccount, account.Username, account.Email, account.Phone, account.PasswordHash)

	var saved models.Account
	if err := row.Scan(&saved.AccountID, &saved.Username, &saved.Email, &saved.Phone, &saved.PasswordHash, &saved.UpdatedAt, &saved.CreatedAt); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: scanning error")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Account{}, identityConflict(err)
		default:
			return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

// FindAccountByUsername retrieves the account whose username matches the
// one provided. An empty result set maps to [ErrAccountNotFound].
func (r *accountRepository) FindAccountByUsername(ctx context.Context, username string) (models.Account, error) {
	log := logger.FromContext(ctx)

	var found models.Account
	row := r.db.QueryRowContext(ctx, findAccountByUsername, username)

	if err := row.Scan(&found.AccountID, &found.Username, &found.Email, &found.Phone, &found.PasswordHash, &found.UpdatedAt, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.FindAccountByUsername").Msg("error: scanning error")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// GetAccountByID retrieves the account row by its primary key. An empty
// result set maps to [ErrAccountNotFound].
func (r *accountRepository) GetAccountByID(ctx context.Context, accountID int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	var found models.Account
	row := r.db.QueryRowContext(ctx, getAccountByID, accountID)

	if err := row.Scan(&found.AccountID, &found.Username, &found.Email, &found.Phone, &found.PasswordHash, &found.UpdatedAt, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.GetAccountByID").Msg("error: scanning error")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// UpdateAccountProfile overwrites the identity fields of the account
// identified by account.AccountID.
//
// The uniqueness guard of the sync protocol lives here: a collision on any
// identity column fails only this operation with a per-field sentinel, so
// the caller can report which field conflicted without touching the rest
// of the push batch.
func (r *accountRepository) UpdateAccountProfile(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateAccountProfile, account.AccountID, account.Username, account.Email, account.Phone)

	var saved models.Account
	if err := row.Scan(&saved.AccountID, &saved.Username, &saved.Email, &saved.Phone, &saved.PasswordHash, &saved.UpdatedAt, &saved.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.UpdateAccountProfile").Msg("error: scanning error")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Account{}, identityConflict(err)
		default:
			return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

// identityConflict maps a unique_violation to the sentinel of the identity
// field whose index fired.
func identityConflict(err error) error {
	switch postgresConstraint(err) {
	case "accounts_username_key":
		return ErrUsernameTaken
	case "accounts_email_key":
		return ErrEmailTaken
	case "accounts_phone_key":
		return ErrPhoneTaken
	default:
		return fmt.Errorf("unexpected unique violation: %w", err)
	}
}
