// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/store"
	"github.com/noteleaf/noteleaf/models"
)

// previewLimit caps the denormalized last-note preview kept on a thread.
const previewLimit = 120

// syncService is the store-side half of the sync protocol: it applies push
// batches in dependency order and serves the change feed.
type syncService struct {
	threads store.ThreadRepository
	notes   store.NoteRepository
	changes store.ChangeLogRepository
	account store.AccountRepository

	logger *logger.Logger
}

// NewSyncService constructs a [SyncService] over the store repositories.
func NewSyncService(repos *store.Repositories, logger *logger.Logger) SyncService {
	return &syncService{
		threads: repos.Threads,
		notes:   repos.Notes,
		changes: repos.Changes,
		account: repos.Accounts,
		logger:  logger,
	}
}

// Push implements [SyncService].
//
// Threads are applied before notes because a note create needs its owner's
// store id. The thread pass builds a localId → id map; the note pass
// resolves ownership through it (or through the note's own serverId for
// updates and deletes). A note whose owner cannot be resolved is skipped
// with a warning and gets no mapping, so it stays pending on the device and
// is retried on the next pass — the store never invents an orphan.
//
// The user sub-operation runs its own uniqueness guard: an identity-field
// collision fails only that sub-operation, reported per field through
// UserConflict, while the rest of the batch is applied normally.
func (s *syncService) Push(ctx context.Context, accountID int64, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	resp := models.PushResponse{
		Threads: []models.IDMapping{},
		Notes:   []models.IDMapping{},
	}

	if req.User != nil {
		s.pushAccount(ctx, accountID, *req.User, &resp)
	}

	threadIDs := make(map[string]int64, len(req.Threads))
	for _, entry := range req.Threads {
		id, err := s.pushThread(ctx, accountID, entry)
		if err != nil {
			return models.PushResponse{}, err
		}

		threadIDs[entry.LocalID] = id
		resp.Threads = append(resp.Threads, models.IDMapping{
			LocalID:  entry.LocalID,
			ServerID: strconv.FormatInt(id, 10),
		})
	}

	for _, entry := range req.Notes {
		id, ok, err := s.pushNote(ctx, accountID, entry, threadIDs)
		if err != nil {
			return models.PushResponse{}, err
		}
		if !ok {
			log.Warn().
				Str("note_local_id", entry.LocalID).
				Str("thread_local_id", entry.ThreadLocalID).
				Msg("skipping note with unresolvable thread")
			continue
		}

		resp.Notes = append(resp.Notes, models.IDMapping{
			LocalID:  entry.LocalID,
			ServerID: strconv.FormatInt(id, 10),
		})
	}

	return resp, nil
}

// pushAccount applies the user sub-operation. Conflicts land in
// resp.UserConflict instead of failing the batch; other errors are logged
// and also withheld from the mapping so the device keeps the record
// pending.
func (s *syncService) pushAccount(ctx context.Context, accountID int64, entry models.AccountPush, resp *models.PushResponse) {
	log := logger.FromContext(ctx)

	_, err := s.account.UpdateAccountProfile(ctx, models.Account{
		AccountID: accountID,
		Username:  entry.Username,
		Email:     entry.Email,
		Phone:     entry.Phone,
	})
	if err != nil {
		if field, conflict := conflictField(err); conflict {
			resp.UserConflict = &models.FieldConflict{
				Field:   field,
				Message: fmt.Sprintf("%s is already in use", field),
			}
			return
		}
		log.Err(err).Int64("account_id", accountID).Msg("account push failed")
		return
	}

	resp.User = &models.IDMapping{ServerID: strconv.FormatInt(accountID, 10)}
}

func conflictField(err error) (string, bool) {
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		return "username", true
	case errors.Is(err, store.ErrEmailTaken):
		return "email", true
	case errors.Is(err, store.ErrPhoneTaken):
		return "phone", true
	default:
		return "", false
	}
}

// pushThread applies one thread entry and returns the store id it resolved
// to.
func (s *syncService) pushThread(ctx context.Context, accountID int64, entry models.ThreadPush) (int64, error) {
	if entry.Deleted {
		id, err := strconv.ParseInt(entry.ServerID, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed thread server id %q: %w", entry.ServerID, err)
		}

		// Re-deleting an already-deleted thread is a no-op, not an error:
		// deletes are idempotent so a lost acknowledgment can be replayed.
		if err = s.threads.SoftDeleteThread(ctx, accountID, id, entry.Data.UpdatedAt); err != nil && !errors.Is(err, store.ErrThreadNotFound) {
			return 0, err
		}
		return id, nil
	}

	if entry.ServerID != "" {
		id, err := strconv.ParseInt(entry.ServerID, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed thread server id %q: %w", entry.ServerID, err)
		}

		owned, err := s.threads.ThreadOwned(ctx, accountID, id)
		if err != nil {
			return 0, err
		}
		if owned {
			if err = s.threads.UpdateThread(ctx, accountID, id, entry.Data); err != nil {
				return 0, err
			}
			return id, nil
		}
		// Stale or foreign id: fall through to the create path.
	}

	// Name-based merge: a recreated thread (reinstall without wipe) binds
	// to the surviving remote row instead of duplicating it.
	existing, err := s.threads.FindLiveThreadID(ctx, accountID, strings.TrimSpace(entry.Data.Name))
	if err == nil {
		if err = s.threads.UpdateThread(ctx, accountID, existing, entry.Data); err != nil {
			return 0, err
		}
		return existing, nil
	}
	if !errors.Is(err, store.ErrThreadNotFound) {
		return 0, err
	}

	return s.threads.CreateThread(ctx, accountID, entry.Data)
}

// pushNote applies one note entry. ok is false when the owning thread could
// not be resolved.
func (s *syncService) pushNote(ctx context.Context, accountID int64, entry models.NotePush, threadIDs map[string]int64) (int64, bool, error) {
	if entry.Deleted {
		id, err := strconv.ParseInt(entry.ServerID, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("malformed note server id %q: %w", entry.ServerID, err)
		}

		if err = s.notes.SoftDeleteNote(ctx, accountID, id, entry.Data.UpdatedAt); err != nil && !errors.Is(err, store.ErrNoteNotFound) {
			return 0, false, err
		}
		return id, true, nil
	}

	if entry.ServerID != "" {
		id, err := strconv.ParseInt(entry.ServerID, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("malformed note server id %q: %w", entry.ServerID, err)
		}

		owned, err := s.notes.NoteOwned(ctx, accountID, id)
		if err != nil {
			return 0, false, err
		}
		if owned {
			if err = s.notes.UpdateNote(ctx, accountID, id, entry.Data); err != nil {
				return 0, false, err
			}
			return id, true, nil
		}
	}

	threadID, ok := threadIDs[entry.ThreadLocalID]
	if !ok {
		return 0, false, nil
	}

	id, err := s.notes.CreateNote(ctx, accountID, threadID, entry.Data)
	if err != nil {
		return 0, false, err
	}

	// Note creation refreshes the owner's denormalized preview as a single
	// additional write.
	if err = s.threads.UpdateLastNotePreview(ctx, accountID, threadID, preview(entry.Data.Text)); err != nil {
		return 0, false, err
	}

	return id, true, nil
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLimit {
		return text
	}

	runes := []rune(text)
	return string(runes[:previewLimit])
}

// Changes implements [SyncService].
func (s *syncService) Changes(ctx context.Context, accountID int64, since *time.Time) (models.ChangesResponse, error) {
	return s.changes.ListChanges(ctx, accountID, since)
}

// PurgeRemoteData implements [SyncService].
func (s *syncService) PurgeRemoteData(ctx context.Context, accountID int64) (models.PurgeStats, error) {
	return s.changes.PurgeAccountData(ctx, accountID)
}

// PurgeExpiredTombstones implements [SyncService].
func (s *syncService) PurgeExpiredTombstones(ctx context.Context, retention time.Duration) (int64, error) {
	return s.changes.PurgeExpiredTombstones(ctx, time.Now().Add(-retention))
}
