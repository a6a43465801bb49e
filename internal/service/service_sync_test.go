// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/mock"
	"github.com/noteleaf/noteleaf/internal/store"
	"github.com/noteleaf/noteleaf/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

type syncMocks struct {
	accounts *mock.MockAccountRepository
	threads  *mock.MockThreadRepository
	notes    *mock.MockNoteRepository
	changes  *mock.MockChangeLogRepository
}

func newSyncService(t *testing.T) (SyncService, syncMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := syncMocks{
		accounts: mock.NewMockAccountRepository(ctrl),
		threads:  mock.NewMockThreadRepository(ctrl),
		notes:    mock.NewMockNoteRepository(ctrl),
		changes:  mock.NewMockChangeLogRepository(ctrl),
	}

	svc := NewSyncService(&store.Repositories{
		Accounts: m.accounts,
		Threads:  m.threads,
		Notes:    m.notes,
		Changes:  m.changes,
	}, logger.Nop())

	return svc, m
}

func threadPush(localID, serverID, name string, at time.Time) models.ThreadPush {
	return models.ThreadPush{
		LocalID:  localID,
		ServerID: serverID,
		Data:     models.ThreadData{Name: name, UpdatedAt: at},
	}
}

func notePush(localID, serverID, threadLocalID, text string, at time.Time) models.NotePush {
	return models.NotePush{
		LocalID:       localID,
		ServerID:      serverID,
		ThreadLocalID: threadLocalID,
		Data:          models.NoteData{Text: text, UpdatedAt: at},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Push — threads
// ─────────────────────────────────────────────────────────────────────────────

func TestSyncService_Push_CreatesThreadAndNote(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	m.threads.EXPECT().FindLiveThreadID(ctx, int64(1), "groceries").Return(int64(0), store.ErrThreadNotFound)
	m.threads.EXPECT().CreateThread(ctx, int64(1), models.ThreadData{Name: "groceries", UpdatedAt: now}).Return(int64(7), nil)
	m.notes.EXPECT().CreateNote(ctx, int64(1), int64(7), models.NoteData{Text: "milk", UpdatedAt: now}).Return(int64(9), nil)
	m.threads.EXPECT().UpdateLastNotePreview(ctx, int64(1), int64(7), "milk").Return(nil)

	resp, err := svc.Push(ctx, 1, models.PushRequest{
		Threads: []models.ThreadPush{threadPush("t-local", "", "groceries", now)},
		Notes:   []models.NotePush{notePush("n-local", "", "t-local", "milk", now)},
	})
	require.NoError(t, err)

	assert.Equal(t, []models.IDMapping{{LocalID: "t-local", ServerID: "7"}}, resp.Threads)
	assert.Equal(t, []models.IDMapping{{LocalID: "n-local", ServerID: "9"}}, resp.Notes)
	assert.Nil(t, resp.UserConflict)
}

func TestSyncService_Push_ReinstallMergesByTrimmedName(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	// A freshly reinstalled device pushes a create for a thread the store
	// already has: it must bind to the surviving row, not duplicate it.
	m.threads.EXPECT().FindLiveThreadID(ctx, int64(1), "groceries").Return(int64(4), nil)
	m.threads.EXPECT().UpdateThread(ctx, int64(1), int64(4), models.ThreadData{Name: "  groceries ", UpdatedAt: now}).Return(nil)

	resp, err := svc.Push(ctx, 1, models.PushRequest{
		Threads: []models.ThreadPush{threadPush("t-local", "", "  groceries ", now)},
	})
	require.NoError(t, err)

	assert.Equal(t, []models.IDMapping{{LocalID: "t-local", ServerID: "4"}}, resp.Threads)
}

func TestSyncService_Push_UpdatesOwnedThread(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	m.threads.EXPECT().ThreadOwned(ctx, int64(1), int64(5)).Return(true, nil)
	m.threads.EXPECT().UpdateThread(ctx, int64(1), int64(5), models.ThreadData{Name: "renamed", UpdatedAt: now}).Return(nil)

	resp, err := svc.Push(ctx, 1, models.PushRequest{
		Threads: []models.ThreadPush{threadPush("t-local", "5", "renamed", now)},
	})
	require.NoError(t, err)

	assert.Equal(t, "5", resp.Threads[0].ServerID)
}

func TestSyncService_Push_StaleServerIDFallsBackToCreate(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	m.threads.EXPECT().ThreadOwned(ctx, int64(1), int64(5)).Return(false, nil)
	m.threads.EXPECT().FindLiveThreadID(ctx, int64(1), "ideas").Return(int64(0), store.ErrThreadNotFound)
	m.threads.EXPECT().CreateThread(ctx, int64(1), models.ThreadData{Name: "ideas", UpdatedAt: now}).Return(int64(11), nil)

	resp, err := svc.Push(ctx, 1, models.PushRequest{
		Threads: []models.ThreadPush{threadPush("t-local", "5", "ideas", now)},
	})
	require.NoError(t, err)

	assert.Equal(t, "11", resp.Threads[0].ServerID)
}

func TestSyncService_Push_ThreadDeleteIsIdempotent(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	entry := threadPush("t-local", "3", "doomed", now)
	entry.Deleted = true

	// The tombstone is already applied on the store. Replaying the delete
	// must still acknowledge the entry so the device can settle.
	m.threads.EXPECT().SoftDeleteThread(ctx, int64(1), int64(3), now).Return(store.ErrThreadNotFound)

	resp, err := svc.Push(ctx, 1, models.PushRequest{Threads: []models.ThreadPush{entry}})
	require.NoError(t, err)

	assert.Equal(t, []models.IDMapping{{LocalID: "t-local", ServerID: "3"}}, resp.Threads)
}

func TestSyncService_Push_MalformedThreadServerID(t *testing.T) {
	svc, _ := newSyncService(t)

	entry := threadPush("t-local", "not-a-number", "x", time.Now())
	entry.Deleted = true

	_, err := svc.Push(context.Background(), 1, models.PushRequest{Threads: []models.ThreadPush{entry}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed thread server id")
}

// ─────────────────────────────────────────────────────────────────────────────
// Push — notes
// ─────────────────────────────────────────────────────────────────────────────

func TestSyncService_Push_OrphanNoteSkippedWithoutMapping(t *testing.T) {
	svc, _ := newSyncService(t)
	ctx := context.Background()

	// The owning thread is neither in the batch nor known by server id, so
	// the note cannot be placed. It must be skipped, not invented.
	resp, err := svc.Push(ctx, 1, models.PushRequest{
		Notes: []models.NotePush{notePush("n-local", "", "t-unknown", "orphan", time.Now())},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Notes)
}

func TestSyncService_Push_UpdatesOwnedNote(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	m.notes.EXPECT().NoteOwned(ctx, int64(1), int64(9)).Return(true, nil)
	m.notes.EXPECT().UpdateNote(ctx, int64(1), int64(9), models.NoteData{Text: "edited", UpdatedAt: now}).Return(nil)

	resp, err := svc.Push(ctx, 1, models.PushRequest{
		Notes: []models.NotePush{notePush("n-local", "9", "t-local", "edited", now)},
	})
	require.NoError(t, err)

	assert.Equal(t, []models.IDMapping{{LocalID: "n-local", ServerID: "9"}}, resp.Notes)
}

func TestSyncService_Push_RemotelyDeletedNoteDoesNotFailBatch(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	// заметка уже затомбстоунена другим устройством: живой поиск её не
	// видит, владелец вне батча, запись пропускается без маппинга
	m.notes.EXPECT().NoteOwned(ctx, int64(1), int64(9)).Return(false, nil)
	m.threads.EXPECT().ThreadOwned(ctx, int64(1), int64(3)).Return(true, nil)
	m.threads.EXPECT().UpdateThread(ctx, int64(1), int64(3), models.ThreadData{Name: "groceries", UpdatedAt: now}).Return(nil)

	resp, err := svc.Push(ctx, 1, models.PushRequest{
		Threads: []models.ThreadPush{threadPush("t-live", "3", "groceries", now)},
		Notes:   []models.NotePush{notePush("n-local", "9", "t-elsewhere", "edited", now)},
	})
	require.NoError(t, err)

	assert.Equal(t, []models.IDMapping{{LocalID: "t-live", ServerID: "3"}}, resp.Threads)
	assert.Empty(t, resp.Notes)
}

func TestSyncService_Push_NoteDeleteIsIdempotent(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	entry := notePush("n-local", "9", "t-local", "", now)
	entry.Deleted = true

	m.notes.EXPECT().SoftDeleteNote(ctx, int64(1), int64(9), now).Return(store.ErrNoteNotFound)

	resp, err := svc.Push(ctx, 1, models.PushRequest{Notes: []models.NotePush{entry}})
	require.NoError(t, err)

	assert.Equal(t, []models.IDMapping{{LocalID: "n-local", ServerID: "9"}}, resp.Notes)
}

func TestSyncService_Push_NotePreviewTruncated(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	long := strings.Repeat("я", 200)
	want := strings.Repeat("я", 120)

	m.threads.EXPECT().FindLiveThreadID(ctx, int64(1), "t").Return(int64(2), nil)
	m.threads.EXPECT().UpdateThread(ctx, int64(1), int64(2), gomock.Any()).Return(nil)
	m.notes.EXPECT().CreateNote(ctx, int64(1), int64(2), models.NoteData{Text: long, UpdatedAt: now}).Return(int64(3), nil)
	m.threads.EXPECT().UpdateLastNotePreview(ctx, int64(1), int64(2), want).Return(nil)

	_, err := svc.Push(ctx, 1, models.PushRequest{
		Threads: []models.ThreadPush{threadPush("t-local", "", "t", now)},
		Notes:   []models.NotePush{notePush("n-local", "", "t-local", long, now)},
	})
	require.NoError(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Push — user sub-operation
// ─────────────────────────────────────────────────────────────────────────────

func TestSyncService_Push_UserProfileAcknowledged(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.accounts.EXPECT().
		UpdateAccountProfile(ctx, models.Account{AccountID: 1, Username: "ada", Email: "ada@example.com"}).
		Return(models.Account{AccountID: 1}, nil)

	resp, err := svc.Push(ctx, 1, models.PushRequest{
		User: &models.AccountPush{Username: "ada", Email: "ada@example.com"},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.User)
	assert.Equal(t, "1", resp.User.ServerID)
	assert.Nil(t, resp.UserConflict)
}

func TestSyncService_Push_UserConflictFailsOnlyUserSubOp(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	m.accounts.EXPECT().UpdateAccountProfile(ctx, gomock.Any()).Return(models.Account{}, store.ErrEmailTaken)
	m.threads.EXPECT().FindLiveThreadID(ctx, int64(1), "still applied").Return(int64(0), store.ErrThreadNotFound)
	m.threads.EXPECT().CreateThread(ctx, int64(1), gomock.Any()).Return(int64(6), nil)

	resp, err := svc.Push(ctx, 1, models.PushRequest{
		User:    &models.AccountPush{Username: "ada", Email: "taken@example.com"},
		Threads: []models.ThreadPush{threadPush("t-local", "", "still applied", now)},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.UserConflict)
	assert.Equal(t, "email", resp.UserConflict.Field)
	assert.Nil(t, resp.User, "a conflicted user sub-op must not be acknowledged")
	assert.Equal(t, []models.IDMapping{{LocalID: "t-local", ServerID: "6"}}, resp.Threads,
		"the rest of the batch is applied normally")
}

func TestSyncService_Push_UserTransientErrorKeepsRecordPending(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.accounts.EXPECT().UpdateAccountProfile(ctx, gomock.Any()).Return(models.Account{}, errors.New("connection reset"))

	resp, err := svc.Push(ctx, 1, models.PushRequest{
		User: &models.AccountPush{Username: "ada"},
	})
	require.NoError(t, err)

	assert.Nil(t, resp.User)
	assert.Nil(t, resp.UserConflict)
}

// ─────────────────────────────────────────────────────────────────────────────
// Changes / purge delegation
// ─────────────────────────────────────────────────────────────────────────────

func TestSyncService_Changes(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	want := models.ChangesResponse{
		DeletedThreadIDs: []string{"3"},
		ServerTime:       time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	m.changes.EXPECT().ListChanges(ctx, int64(1), &since).Return(want, nil)

	got, err := svc.Changes(ctx, 1, &since)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSyncService_PurgeRemoteData(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.changes.EXPECT().PurgeAccountData(ctx, int64(1)).Return(models.PurgeStats{ThreadsDeleted: 2, NotesDeleted: 5}, nil)

	stats, err := svc.PurgeRemoteData(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PurgeStats{ThreadsDeleted: 2, NotesDeleted: 5}, stats)
}

func TestSyncService_PurgeExpiredTombstones(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.changes.EXPECT().
		PurgeExpiredTombstones(ctx, gomock.Cond(func(cutoff time.Time) bool {
			// retention of 24h: the cutoff must land close to now-24h.
			want := time.Now().Add(-24 * time.Hour)
			return cutoff.Sub(want).Abs() < time.Minute
		})).
		Return(int64(3), nil)

	n, err := svc.PurgeExpiredTombstones(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
