package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/models"
)

// threadRepository is the PostgreSQL-backed implementation of
// [ThreadRepository].
type threadRepository struct {
	db *DB
}

// NewThreadRepository constructs a [ThreadRepository] backed by the
// provided database connection.
func NewThreadRepository(db *DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) CreateThread(ctx context.Context, accountID int64, data models.ThreadData) (int64, error) {
	log := logger.FromContext(ctx)

	var id int64
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, createThread, accountID, data.Name, data.LastNotePreview)
		return row.Scan(&id)
	})
	if err != nil {
		log.Err(err).Str("func", "*threadRepository.CreateThread").Msg("error creating thread")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return id, nil
}

func (r *threadRepository) UpdateThread(ctx context.Context, accountID, threadID int64, data models.ThreadData) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, updateThread, accountID, threadID, data.Name, data.LastNotePreview)
	if err != nil {
		log.Err(err).Str("func", "*threadRepository.UpdateThread").Msg("error updating thread")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrThreadNotFound
	}

	return nil
}

// SoftDeleteThread tombstones the thread and, inside the same transaction,
// every live note it owns. The cascade is what keeps a deleted thread's
// notes from surviving as orphans on other devices.
func (r *threadRepository) SoftDeleteThread(ctx context.Context, accountID, threadID int64, at time.Time) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*threadRepository.SoftDeleteThread").Msg("error beginning transaction")
		return errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, softDeleteThread, accountID, threadID, at)
	if err != nil {
		log.Err(err).Str("func", "*threadRepository.SoftDeleteThread").Msg("error tombstoning thread")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrThreadNotFound
	}

	if _, err = tx.ExecContext(ctx, softDeleteThreadNotes, accountID, threadID, at); err != nil {
		log.Err(err).Str("func", "*threadRepository.SoftDeleteThread").Msg("error cascading tombstone to notes")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return errors.Join(ErrCommitingTransaction, err)
	}

	return nil
}

func (r *threadRepository) FindLiveThreadID(ctx context.Context, accountID int64, name string) (int64, error) {
	log := logger.FromContext(ctx)

	var id int64
	row := r.db.QueryRowContext(ctx, findLiveThreadIDByName, accountID, name)

	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrThreadNotFound
		}
		log.Err(err).Str("func", "*threadRepository.FindLiveThreadID").Msg("error: scanning error")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return id, nil
}

func (r *threadRepository) ThreadOwned(ctx context.Context, accountID, threadID int64) (bool, error) {
	log := logger.FromContext(ctx)

	var owned bool
	row := r.db.QueryRowContext(ctx, threadOwned, accountID, threadID)

	if err := row.Scan(&owned); err != nil {
		log.Err(err).Str("func", "*threadRepository.ThreadOwned").Msg("error: scanning error")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	return owned, nil
}

func (r *threadRepository) UpdateLastNotePreview(ctx context.Context, accountID, threadID int64, preview string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, updateLastNotePreview, accountID, threadID, preview); err != nil {
		log.Err(err).Str("func", "*threadRepository.UpdateLastNotePreview").Msg("error updating preview")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}
