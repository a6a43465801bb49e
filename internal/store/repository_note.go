package store

import (
	"context"
	"fmt"
	"time"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/models"
)

// noteRepository is the PostgreSQL-backed implementation of
// [NoteRepository].
type noteRepository struct {
	db *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection.
func NewNoteRepository(db *DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) CreateNote(ctx context.Context, accountID, threadID int64, data models.NoteData) (int64, error) {
	log := logger.FromContext(ctx)

	var id int64
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, createNote, accountID, threadID, data.Text)
		return row.Scan(&id)
	})
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error creating note")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return id, nil
}

func (r *noteRepository) UpdateNote(ctx context.Context, accountID, noteID int64, data models.NoteData) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, updateNote, accountID, noteID, data.Text)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error updating note")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (r *noteRepository) SoftDeleteNote(ctx context.Context, accountID, noteID int64, at time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, softDeleteNote, accountID, noteID, at)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.SoftDeleteNote").Msg("error tombstoning note")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		// Already tombstoned or never existed: deletes are idempotent, so
		// a missing live row is not an error for the push executor.
		return ErrNoteNotFound
	}

	return nil
}

func (r *noteRepository) NoteOwned(ctx context.Context, accountID, noteID int64) (bool, error) {
	log := logger.FromContext(ctx)

	var owned bool
	row := r.db.QueryRowContext(ctx, noteOwned, accountID, noteID)

	if err := row.Scan(&owned); err != nil {
		log.Err(err).Str("func", "*noteRepository.NoteOwned").Msg("error: scanning error")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	return owned, nil
}
