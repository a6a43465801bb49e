package store

import (
	"context"
	"time"

	"github.com/noteleaf/noteleaf/models"
)

//go:generate mockgen -source=local_interfaces.go -destination=../mock/local_store_mock.go -package=mock

// LocalStore is the device's offline-first persistence layer. Every user
// mutation lands here first, marked pending; the sync engine drains pending
// records toward the remote store and applies the store's answers back.
type LocalStore interface {
	// SaveThread creates or overwrites a thread by its LocalID, generating
	// a LocalID when absent. The record is stamped pending with a fresh
	// UpdatedAt. Saving against a tombstoned LocalID is refused with
	// ErrThreadNotFound.
	SaveThread(ctx context.Context, thread models.Thread) (models.Thread, error)

	// SaveNote creates or overwrites a note by its LocalID, same pending
	// semantics as SaveThread.
	SaveNote(ctx context.Context, note models.Note) (models.Note, error)

	// DeleteThread tombstones the thread and cascades the tombstone to its
	// notes. Already-tombstoned records are left untouched.
	DeleteThread(ctx context.Context, localID string, at time.Time) error

	// DeleteNote tombstones a single note.
	DeleteNote(ctx context.Context, localID string, at time.Time) error

	// SaveAccount overwrites the singleton account shadow, marking it
	// pending.
	SaveAccount(ctx context.Context, account models.Account) error

	GetAccount(ctx context.Context) (models.Account, error)
	GetThread(ctx context.Context, localID string) (models.Thread, error)
	GetNote(ctx context.Context, localID string) (models.Note, error)

	// ListThreads returns all live threads.
	ListThreads(ctx context.Context) ([]models.Thread, error)

	// ListNotes returns all live notes of one thread.
	ListNotes(ctx context.Context, threadLocalID string) ([]models.Note, error)

	// DirtyRecords collects every pending record into a push batch.
	// Tombstones that never reached the remote store are omitted: there is
	// nothing remote to delete, the purge sweep removes them locally.
	DirtyRecords(ctx context.Context) (models.PushRequest, error)

	// ApplyMappings persists the remote identifiers acknowledged by a push
	// and flips the mapped records to synced. Pushing itself never mutates
	// local state; this is the separate acknowledgment step.
	ApplyMappings(ctx context.Context, resp models.PushResponse) error

	// UpsertRemoteThreads applies pulled active threads by RemoteID,
	// creating local shadows for unknown records and overwriting known
	// ones wholesale (last-writer-wins). It reports the remote ids that
	// produced a fresh shadow, so callers can tell creations from
	// overwrites.
	UpsertRemoteThreads(ctx context.Context, threads []models.Thread) ([]string, error)

	// UpsertRemoteNotes applies pulled active notes, resolving the owning
	// thread through its RemoteID. Created shadows are reported the same
	// way as in UpsertRemoteThreads.
	UpsertRemoteNotes(ctx context.Context, notes []models.Note) ([]string, error)

	// UpsertRemoteAccount applies the pulled account shadow.
	UpsertRemoteAccount(ctx context.Context, account models.Account) error

	// ApplyThreadTombstones tombstones threads by RemoteID, cascading to
	// their notes. Unknown and already-deleted ids are ignored, so a pull
	// interrupted mid-application can simply be repeated.
	ApplyThreadTombstones(ctx context.Context, remoteIDs []string) error

	// ApplyNoteTombstones tombstones notes by RemoteID, idempotent.
	ApplyNoteTombstones(ctx context.Context, remoteIDs []string) error

	// GetSyncMeta returns the singleton sync state.
	GetSyncMeta(ctx context.Context) (models.SyncMeta, error)

	// BeginSync atomically sets the in-flight flag. It returns false when
	// another pass already holds it.
	BeginSync(ctx context.Context) (bool, error)

	// EndSync clears the in-flight flag and, when serverTime is non-nil,
	// advances the pull cursor to it. The device clock is never written as
	// the cursor.
	EndSync(ctx context.Context, serverTime *time.Time) error

	// PurgeExpired physically removes tombstones older than the cutoff
	// that are either acknowledged by the store or were never pushed.
	PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error)

	Close() error
}
