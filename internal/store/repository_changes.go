// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/models"
)

// changeLogRepository is the PostgreSQL-backed implementation of
// [ChangeLogRepository]. It serves the pull half of the sync protocol:
// everything an account changed since a cursor, split into disjoint
// active-record and tombstone sets.
type changeLogRepository struct {
	db *DB
	sb sq.StatementBuilderType
}

// NewChangeLogRepository constructs a [ChangeLogRepository] backed by the
// provided database connection.
func NewChangeLogRepository(db *DB) ChangeLogRepository {
	return &changeLogRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListChanges implements [ChangeLogRepository].
//
// The since filter is strict (updated_at > since) so a record is delivered
// at most once per change; serverTime is read from the same connection and
// becomes the client's next cursor, which keeps the protocol immune to
// client clock drift. The four record queries are built with squirrel
// because the filter set varies with the cursor.
func (r *changeLogRepository) ListChanges(ctx context.Context, accountID int64, since *time.Time) (models.ChangesResponse, error) {
	log := logger.FromContext(ctx)

	resp := models.ChangesResponse{
		Threads:          []models.Thread{},
		Notes:            []models.Note{},
		DeletedThreadIDs: []string{},
		DeletedNoteIDs:   []string{},
	}

	// serverTime first: anything committed after this instant will be
	// re-delivered on the next pull rather than silently skipped.
	row := r.db.QueryRowContext(ctx, selectServerTime)
	if err := row.Scan(&resp.ServerTime); err != nil {
		log.Err(err).Str("func", "*changeLogRepository.ListChanges").Msg("error reading server time")
		return models.ChangesResponse{}, errors.Join(ErrExecutingQuery, err)
	}

	if err := r.listThreadChanges(ctx, accountID, since, &resp); err != nil {
		return models.ChangesResponse{}, err
	}
	if err := r.listNoteChanges(ctx, accountID, since, &resp); err != nil {
		return models.ChangesResponse{}, err
	}
	if err := r.listAccountChange(ctx, accountID, since, &resp); err != nil {
		return models.ChangesResponse{}, err
	}

	return resp, nil
}

func (r *changeLogRepository) listThreadChanges(ctx context.Context, accountID int64, since *time.Time, resp *models.ChangesResponse) error {
	log := logger.FromContext(ctx)

	active := r.sb.
		Select("id", "name", "last_note_preview", "updated_at", "created_at").
		From("threads").
		Where(sq.Eq{"account_id": accountID, "deleted_at": nil})
	if since != nil {
		active = active.Where(sq.Gt{"updated_at": *since})
	}

	query, args, err := active.ToSql()
	if err != nil {
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*changeLogRepository.listThreadChanges").Msg("error querying active threads")
		return errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		thread := models.Thread{SyncStatus: models.SyncStatusSynced}
		if err = rows.Scan(&id, &thread.Name, &thread.LastNotePreview, &thread.UpdatedAt, &thread.CreatedAt); err != nil {
			return errors.Join(ErrScanningRows, err)
		}
		thread.RemoteID = strconv.FormatInt(id, 10)
		resp.Threads = append(resp.Threads, thread)
	}
	if err = rows.Err(); err != nil {
		return errors.Join(ErrScanningRows, err)
	}

	deleted, err := r.listTombstoneIDs(ctx, "threads", accountID, since)
	if err != nil {
		return err
	}
	resp.DeletedThreadIDs = deleted

	return nil
}

func (r *changeLogRepository) listNoteChanges(ctx context.Context, accountID int64, since *time.Time, resp *models.ChangesResponse) error {
	log := logger.FromContext(ctx)

	active := r.sb.
		Select("id", "thread_id", "body", "updated_at", "created_at").
		From("notes").
		Where(sq.Eq{"account_id": accountID, "deleted_at": nil})
	if since != nil {
		active = active.Where(sq.Gt{"updated_at": *since})
	}

	query, args, err := active.ToSql()
	if err != nil {
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*changeLogRepository.listNoteChanges").Msg("error querying active notes")
		return errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, threadID int64
		note := models.Note{SyncStatus: models.SyncStatusSynced}
		if err = rows.Scan(&id, &threadID, &note.Text, &note.UpdatedAt, &note.CreatedAt); err != nil {
			return errors.Join(ErrScanningRows, err)
		}
		note.RemoteID = strconv.FormatInt(id, 10)
		note.ThreadRemoteID = strconv.FormatInt(threadID, 10)
		resp.Notes = append(resp.Notes, note)
	}
	if err = rows.Err(); err != nil {
		return errors.Join(ErrScanningRows, err)
	}

	deleted, err := r.listTombstoneIDs(ctx, "notes", accountID, since)
	if err != nil {
		return err
	}
	resp.DeletedNoteIDs = deleted

	return nil
}

// listTombstoneIDs returns deleted record ids as bare strings: tombstones
// carry no payload on the wire.
func (r *changeLogRepository) listTombstoneIDs(ctx context.Context, table string, accountID int64, since *time.Time) ([]string, error) {
	log := logger.FromContext(ctx)

	q := r.sb.
		Select("id").
		From(table).
		Where(sq.Eq{"account_id": accountID}).
		Where(sq.NotEq{"deleted_at": nil})
	if since != nil {
		q = q.Where(sq.Gt{"updated_at": *since})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*changeLogRepository.listTombstoneIDs").Str("table", table).Msg("error querying tombstones")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, errors.Join(ErrScanningRows, err)
		}
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return ids, nil
}

func (r *changeLogRepository) listAccountChange(ctx context.Context, accountID int64, since *time.Time, resp *models.ChangesResponse) error {
	account, err := NewAccountRepository(r.db).GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	if since == nil || account.UpdatedAt.After(*since) {
		account.PasswordHash = ""
		account.SyncStatus = models.SyncStatusSynced
		resp.User = &account
	}

	return nil
}

// PurgeAccountData implements [ChangeLogRepository]. Notes go first so the
// foreign key to threads never blocks the second delete.
func (r *changeLogRepository) PurgeAccountData(ctx context.Context, accountID int64) (models.PurgeStats, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*changeLogRepository.PurgeAccountData").Msg("error beginning transaction")
		return models.PurgeStats{}, errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var stats models.PurgeStats

	res, err := tx.ExecContext(ctx, purgeAccountNotes, accountID)
	if err != nil {
		return models.PurgeStats{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	notes, err := res.RowsAffected()
	if err != nil {
		return models.PurgeStats{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	stats.NotesDeleted = int(notes)

	res, err = tx.ExecContext(ctx, purgeAccountThreads, accountID)
	if err != nil {
		return models.PurgeStats{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	threads, err := res.RowsAffected()
	if err != nil {
		return models.PurgeStats{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	stats.ThreadsDeleted = int(threads)

	if err = tx.Commit(); err != nil {
		return models.PurgeStats{}, errors.Join(ErrCommitingTransaction, err)
	}

	log.Info().Int("threads", stats.ThreadsDeleted).Int("notes", stats.NotesDeleted).Int64("account_id", accountID).Msg("purged remote account data")

	return stats, nil
}

// PurgeExpiredTombstones implements [ChangeLogRepository].
func (r *changeLogRepository) PurgeExpiredTombstones(ctx context.Context, olderThan time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	for _, query := range []string{purgeExpiredNotes, purgeExpiredThreads} {
		res, err := r.db.ExecContext(ctx, query, olderThan)
		if err != nil {
			log.Err(err).Str("func", "*changeLogRepository.PurgeExpiredTombstones").Msg("error purging tombstones")
			return total, fmt.Errorf("unexpected DB error: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("unexpected DB error: %w", err)
		}
		total += affected
	}

	return total, nil
}
