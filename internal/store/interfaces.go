// Package store contains the persistence layer: PostgreSQL repositories
// used by the remote store service and the SQLite-backed local store used
// by the device daemon.
package store

import (
	"context"
	"time"

	"github.com/noteleaf/noteleaf/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository persists account rows on the remote store.
type AccountRepository interface {
	// CreateAccount inserts a new account and returns it with the
	// server-assigned AccountID and CreatedAt. Identity-field collisions
	// surface as ErrUsernameTaken, ErrEmailTaken or ErrPhoneTaken.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	// FindAccountByUsername returns the account with the given username or
	// ErrAccountNotFound.
	FindAccountByUsername(ctx context.Context, username string) (models.Account, error)

	// GetAccountByID returns the account row or ErrAccountNotFound.
	GetAccountByID(ctx context.Context, accountID int64) (models.Account, error)

	// UpdateAccountProfile overwrites the identity fields of an existing
	// account. Collisions are classified per field, same as CreateAccount.
	UpdateAccountProfile(ctx context.Context, account models.Account) (models.Account, error)
}

// ThreadRepository persists thread rows on the remote store.
type ThreadRepository interface {
	CreateThread(ctx context.Context, accountID int64, data models.ThreadData) (int64, error)
	UpdateThread(ctx context.Context, accountID, threadID int64, data models.ThreadData) error

	// SoftDeleteThread tombstones the thread and cascades the tombstone to
	// every live note it owns.
	SoftDeleteThread(ctx context.Context, accountID, threadID int64, at time.Time) error

	// FindLiveThreadID resolves an account's live (non-tombstoned) thread
	// by its trimmed name, or returns ErrThreadNotFound.
	FindLiveThreadID(ctx context.Context, accountID int64, name string) (int64, error)

	// ThreadOwned reports whether the given thread id exists, belongs to
	// the account and is not a tombstone.
	ThreadOwned(ctx context.Context, accountID, threadID int64) (bool, error)

	// UpdateLastNotePreview refreshes the denormalized preview column.
	UpdateLastNotePreview(ctx context.Context, accountID, threadID int64, preview string) error
}

// NoteRepository persists note rows on the remote store.
type NoteRepository interface {
	CreateNote(ctx context.Context, accountID, threadID int64, data models.NoteData) (int64, error)
	UpdateNote(ctx context.Context, accountID, noteID int64, data models.NoteData) error
	SoftDeleteNote(ctx context.Context, accountID, noteID int64, at time.Time) error

	// NoteOwned reports whether the given note id exists and belongs to
	// the account.
	NoteOwned(ctx context.Context, accountID, noteID int64) (bool, error)
}

// ChangeLogRepository serves the pull side of the sync protocol and the
// destructive maintenance operations.
type ChangeLogRepository interface {
	// ListChanges returns every record of the account changed strictly
	// after since (all records when since is nil), split into disjoint
	// active and tombstone sets, stamped with the database clock.
	ListChanges(ctx context.Context, accountID int64, since *time.Time) (models.ChangesResponse, error)

	// PurgeAccountData hard-deletes every thread and note of the account.
	PurgeAccountData(ctx context.Context, accountID int64) (models.PurgeStats, error)

	// PurgeExpiredTombstones physically removes tombstones older than the
	// given cutoff and returns the number of rows removed.
	PurgeExpiredTombstones(ctx context.Context, olderThan time.Time) (int64, error)
}

// Repositories bundles the remote-store repositories for injection into the
// service layer.
type Repositories struct {
	Accounts AccountRepository
	Threads  ThreadRepository
	Notes    NoteRepository
	Changes  ChangeLogRepository
}

// NewRepositories constructs every PostgreSQL repository over the shared
// connection.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Accounts: NewAccountRepository(db),
		Threads:  NewThreadRepository(db),
		Notes:    NewNoteRepository(db),
		Changes:  NewChangeLogRepository(db),
	}
}
