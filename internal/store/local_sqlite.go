// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/noteleaf/noteleaf/internal/config"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/utils"
	"github.com/noteleaf/noteleaf/models"
)

const localSchema = `
CREATE TABLE IF NOT EXISTS threads (
    local_id          TEXT PRIMARY KEY,
    remote_id         TEXT NOT NULL DEFAULT '',
    name              TEXT NOT NULL,
    last_note_preview TEXT NOT NULL DEFAULT '',
    sync_status       TEXT NOT NULL DEFAULT 'pending',
    updated_at        TIMESTAMP NOT NULL,
    deleted_at        TIMESTAMP,
    created_at        TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
    local_id         TEXT PRIMARY KEY,
    remote_id        TEXT NOT NULL DEFAULT '',
    thread_local_id  TEXT NOT NULL,
    thread_remote_id TEXT NOT NULL DEFAULT '',
    body             TEXT NOT NULL DEFAULT '',
    sync_status      TEXT NOT NULL DEFAULT 'pending',
    updated_at       TIMESTAMP NOT NULL,
    deleted_at       TIMESTAMP,
    created_at       TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS account (
    id          INTEGER PRIMARY KEY CHECK (id = 1),
    username    TEXT NOT NULL DEFAULT '',
    email       TEXT NOT NULL DEFAULT '',
    phone       TEXT NOT NULL DEFAULT '',
    sync_status TEXT NOT NULL DEFAULT 'synced',
    updated_at  TIMESTAMP NOT NULL,
    created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS sync_meta (
    id                  INTEGER PRIMARY KEY CHECK (id = 1),
    last_sync_timestamp TIMESTAMP,
    is_syncing          INTEGER NOT NULL DEFAULT 0
);

INSERT OR IGNORE INTO sync_meta (id, is_syncing) VALUES (1, 0);

CREATE INDEX IF NOT EXISTS threads_status_idx ON threads (sync_status);
CREATE INDEX IF NOT EXISTS notes_status_idx ON notes (sync_status);
CREATE INDEX IF NOT EXISTS notes_thread_idx ON notes (thread_local_id);
`

// localStore is the SQLite-backed implementation of [LocalStore].
type localStore struct {
	db     *sql.DB
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewLocalStore opens (creating the file when missing) and bootstraps the
// device's SQLite database described by cfg.
func NewLocalStore(ctx context.Context, cfg config.DeviceStorage, log *logger.Logger) (LocalStore, error) {
	if err := createLocalDBFileIfNotExists(cfg.DBPath); err != nil {
		log.Err(err).Str("func", "NewLocalStore").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", cfg.DBPath+"?_loc=UTC&_busy_timeout=5000")
	if err != nil {
		log.Err(err).Str("func", "NewLocalStore").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewLocalStore").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, localSchema); err != nil {
		log.Err(err).Str("func", "NewLocalStore").Msg("error bootstrapping schema")
		return nil, fmt.Errorf("error bootstrapping local schema: %w", err)
	}
	log.Debug().Str("func", "NewLocalStore").Msg("connected to local database successfully")

	return &localStore{
		db:     conn,
		ids:    utils.NewUUIDGenerator(),
		logger: log,
	}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}

func (s *localStore) Close() error {
	return s.db.Close()
}

// SaveThread implements [LocalStore].
func (s *localStore) SaveThread(ctx context.Context, thread models.Thread) (models.Thread, error) {
	now := time.Now().UTC()
	if thread.LocalID == "" {
		thread.LocalID = s.ids.Generate()
		thread.CreatedAt = now
	}
	thread.SyncStatus = models.SyncStatusPending
	thread.UpdatedAt = now

	// Tombstones are immutable: the conflict clause refuses to touch a
	// soft-deleted row, which surfaces as zero affected rows.
	const query = `
		INSERT INTO threads (local_id, remote_id, name, last_note_preview, sync_status, updated_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (local_id) DO UPDATE SET
			name              = excluded.name,
			last_note_preview = excluded.last_note_preview,
			sync_status       = excluded.sync_status,
			updated_at        = excluded.updated_at
		WHERE threads.deleted_at IS NULL;`

	res, err := s.db.ExecContext(ctx, query,
		thread.LocalID, thread.RemoteID, thread.Name, thread.LastNotePreview,
		thread.SyncStatus, thread.UpdatedAt, thread.CreatedAt,
	)
	if err != nil {
		s.logger.Err(err).Str("func", "*localStore.SaveThread").Msg("error saving thread")
		return models.Thread{}, fmt.Errorf("error saving thread: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Thread{}, fmt.Errorf("error saving thread: %w", err)
	}
	if affected == 0 {
		return models.Thread{}, ErrThreadNotFound
	}

	return thread, nil
}

// SaveNote implements [LocalStore].
func (s *localStore) SaveNote(ctx context.Context, note models.Note) (models.Note, error) {
	now := time.Now().UTC()
	if note.LocalID == "" {
		note.LocalID = s.ids.Generate()
		note.CreatedAt = now
	}
	note.SyncStatus = models.SyncStatusPending
	note.UpdatedAt = now

	// Same immutability rule as SaveThread.
	const query = `
		INSERT INTO notes (local_id, remote_id, thread_local_id, thread_remote_id, body, sync_status, updated_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (local_id) DO UPDATE SET
			body        = excluded.body,
			sync_status = excluded.sync_status,
			updated_at  = excluded.updated_at
		WHERE notes.deleted_at IS NULL;`

	res, err := s.db.ExecContext(ctx, query,
		note.LocalID, note.RemoteID, note.ThreadLocalID, note.ThreadRemoteID,
		note.Text, note.SyncStatus, note.UpdatedAt, note.CreatedAt,
	)
	if err != nil {
		s.logger.Err(err).Str("func", "*localStore.SaveNote").Msg("error saving note")
		return models.Note{}, fmt.Errorf("error saving note: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Note{}, fmt.Errorf("error saving note: %w", err)
	}
	if affected == 0 {
		return models.Note{}, ErrNoteNotFound
	}

	return note, nil
}

// DeleteThread implements [LocalStore]. The cascade mirrors the remote
// store's behavior so both sides converge on the same tombstone set.
func (s *localStore) DeleteThread(ctx context.Context, localID string, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	const tombstoneThread = `
		UPDATE threads SET deleted_at = ?, sync_status = 'pending', updated_at = ?
		WHERE local_id = ? AND deleted_at IS NULL;`
	res, err := tx.ExecContext(ctx, tombstoneThread, at, at, localID)
	if err != nil {
		return fmt.Errorf("error tombstoning thread: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error tombstoning thread: %w", err)
	}
	if affected == 0 {
		return ErrThreadNotFound
	}

	const tombstoneNotes = `
		UPDATE notes SET deleted_at = ?, sync_status = 'pending', updated_at = ?
		WHERE thread_local_id = ? AND deleted_at IS NULL;`
	if _, err = tx.ExecContext(ctx, tombstoneNotes, at, at, localID); err != nil {
		return fmt.Errorf("error cascading tombstone to notes: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return errors.Join(ErrCommitingTransaction, err)
	}

	return nil
}

// DeleteNote implements [LocalStore].
func (s *localStore) DeleteNote(ctx context.Context, localID string, at time.Time) error {
	const query = `
		UPDATE notes SET deleted_at = ?, sync_status = 'pending', updated_at = ?
		WHERE local_id = ? AND deleted_at IS NULL;`

	res, err := s.db.ExecContext(ctx, query, at, at, localID)
	if err != nil {
		return fmt.Errorf("error tombstoning note: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error tombstoning note: %w", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// SaveAccount implements [LocalStore].
func (s *localStore) SaveAccount(ctx context.Context, account models.Account) error {
	now := time.Now().UTC()

	const query = `
		INSERT INTO account (id, username, email, phone, sync_status, updated_at, created_at)
		VALUES (1, ?, ?, ?, 'pending', ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username    = excluded.username,
			email       = excluded.email,
			phone       = excluded.phone,
			sync_status = 'pending',
			updated_at  = excluded.updated_at;`

	if _, err := s.db.ExecContext(ctx, query, account.Username, account.Email, account.Phone, now, now); err != nil {
		s.logger.Err(err).Str("func", "*localStore.SaveAccount").Msg("error saving account")
		return fmt.Errorf("error saving account: %w", err)
	}

	return nil
}

func (s *localStore) GetAccount(ctx context.Context) (models.Account, error) {
	const query = `SELECT username, email, phone, sync_status, updated_at, created_at FROM account WHERE id = 1;`

	var account models.Account
	row := s.db.QueryRowContext(ctx, query)
	if err := row.Scan(&account.Username, &account.Email, &account.Phone, &account.SyncStatus, &account.UpdatedAt, &account.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, errors.Join(ErrScanningRow, err)
	}

	return account, nil
}

const selectThreadColumns = `SELECT local_id, remote_id, name, last_note_preview, sync_status, updated_at, deleted_at, created_at FROM threads`

func (s *localStore) GetThread(ctx context.Context, localID string) (models.Thread, error) {
	row := s.db.QueryRowContext(ctx, selectThreadColumns+` WHERE local_id = ?;`, localID)

	thread, err := scanThread(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Thread{}, ErrThreadNotFound
		}
		return models.Thread{}, err
	}

	return thread, nil
}

func (s *localStore) ListThreads(ctx context.Context) ([]models.Thread, error) {
	rows, err := s.db.QueryContext(ctx, selectThreadColumns+` WHERE deleted_at IS NULL ORDER BY updated_at DESC;`)
	if err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var threads []models.Thread
	for rows.Next() {
		thread, err := scanThread(rows.Scan)
		if err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}

	return threads, rows.Err()
}

const selectNoteColumns = `SELECT local_id, remote_id, thread_local_id, thread_remote_id, body, sync_status, updated_at, deleted_at, created_at FROM notes`

func (s *localStore) GetNote(ctx context.Context, localID string) (models.Note, error) {
	row := s.db.QueryRowContext(ctx, selectNoteColumns+` WHERE local_id = ?;`, localID)

	note, err := scanNote(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	return note, nil
}

func (s *localStore) ListNotes(ctx context.Context, threadLocalID string) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx, selectNoteColumns+` WHERE thread_local_id = ? AND deleted_at IS NULL ORDER BY created_at;`, threadLocalID)
	if err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// DirtyRecords implements [LocalStore].
func (s *localStore) DirtyRecords(ctx context.Context) (models.PushRequest, error) {
	batch := models.PushRequest{Threads: []models.ThreadPush{}, Notes: []models.NotePush{}}

	rows, err := s.db.QueryContext(ctx, selectThreadColumns+` WHERE sync_status = 'pending';`)
	if err != nil {
		return models.PushRequest{}, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		thread, err := scanThread(rows.Scan)
		if err != nil {
			return models.PushRequest{}, err
		}
		if thread.Deleted() && thread.RemoteID == "" {
			// Never reached the store: nothing remote to delete.
			continue
		}
		batch.Threads = append(batch.Threads, models.ThreadPush{
			LocalID:  thread.LocalID,
			ServerID: thread.RemoteID,
			Deleted:  thread.Deleted(),
			Data: models.ThreadData{
				Name:            thread.Name,
				LastNotePreview: thread.LastNotePreview,
				UpdatedAt:       thread.UpdatedAt,
			},
		})
	}
	if err = rows.Err(); err != nil {
		return models.PushRequest{}, errors.Join(ErrScanningRows, err)
	}

	noteRows, err := s.db.QueryContext(ctx, selectNoteColumns+` WHERE sync_status = 'pending';`)
	if err != nil {
		return models.PushRequest{}, errors.Join(ErrExecutingQuery, err)
	}
	defer noteRows.Close()

	for noteRows.Next() {
		note, err := scanNote(noteRows.Scan)
		if err != nil {
			return models.PushRequest{}, err
		}
		if note.Deleted() && note.RemoteID == "" {
			continue
		}
		batch.Notes = append(batch.Notes, models.NotePush{
			LocalID:       note.LocalID,
			ServerID:      note.RemoteID,
			ThreadLocalID: note.ThreadLocalID,
			Deleted:       note.Deleted(),
			Data: models.NoteData{
				Text:      note.Text,
				UpdatedAt: note.UpdatedAt,
			},
		})
	}
	if err = noteRows.Err(); err != nil {
		return models.PushRequest{}, errors.Join(ErrScanningRows, err)
	}

	// The store resolves note ownership through the batch's thread entries.
	// A dirty note inside an already-synced thread would be unresolvable,
	// so its owner rides along as a clean update entry.
	inBatch := make(map[string]bool, len(batch.Threads))
	for _, t := range batch.Threads {
		inBatch[t.LocalID] = true
	}
	for _, n := range batch.Notes {
		if n.Deleted || n.ServerID != "" || inBatch[n.ThreadLocalID] {
			continue
		}

		owner, err := s.GetThread(ctx, n.ThreadLocalID)
		if err != nil {
			return models.PushRequest{}, err
		}
		if owner.RemoteID == "" || owner.Deleted() {
			continue
		}

		inBatch[owner.LocalID] = true
		batch.Threads = append(batch.Threads, models.ThreadPush{
			LocalID:  owner.LocalID,
			ServerID: owner.RemoteID,
			Data: models.ThreadData{
				Name:            owner.Name,
				LastNotePreview: owner.LastNotePreview,
				UpdatedAt:       owner.UpdatedAt,
			},
		})
	}

	account, err := s.GetAccount(ctx)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return models.PushRequest{}, err
	}
	if err == nil && account.SyncStatus == models.SyncStatusPending {
		batch.User = &models.AccountPush{
			Username:  account.Username,
			Email:     account.Email,
			Phone:     account.Phone,
			UpdatedAt: account.UpdatedAt,
		}
	}

	return batch, nil
}

// ApplyMappings implements [LocalStore].
func (s *localStore) ApplyMappings(ctx context.Context, resp models.PushResponse) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	const mapThread = `UPDATE threads SET remote_id = ?, sync_status = 'synced' WHERE local_id = ?;`
	for _, m := range resp.Threads {
		if _, err = tx.ExecContext(ctx, mapThread, m.ServerID, m.LocalID); err != nil {
			return fmt.Errorf("error applying thread mapping: %w", err)
		}
	}

	const mapNote = `UPDATE notes SET remote_id = ?, sync_status = 'synced' WHERE local_id = ?;`
	for _, m := range resp.Notes {
		if _, err = tx.ExecContext(ctx, mapNote, m.ServerID, m.LocalID); err != nil {
			return fmt.Errorf("error applying note mapping: %w", err)
		}
	}

	// Propagate freshly learned thread remote ids to their notes.
	const mapNoteThreads = `
		UPDATE notes SET thread_remote_id = (
			SELECT remote_id FROM threads WHERE threads.local_id = notes.thread_local_id
		)
		WHERE thread_remote_id = '' AND thread_local_id IN (SELECT local_id FROM threads WHERE remote_id != '');`
	if _, err = tx.ExecContext(ctx, mapNoteThreads); err != nil {
		return fmt.Errorf("error propagating thread mappings: %w", err)
	}

	if resp.User != nil {
		if _, err = tx.ExecContext(ctx, `UPDATE account SET sync_status = 'synced' WHERE id = 1;`); err != nil {
			return fmt.Errorf("error applying account mapping: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Join(ErrCommitingTransaction, err)
	}

	return nil
}

// UpsertRemoteThreads implements [LocalStore]. Application is a wholesale
// last-writer-wins overwrite of the local row.
func (s *localStore) UpsertRemoteThreads(ctx context.Context, threads []models.Thread) ([]string, error) {
	const update = `
		UPDATE threads SET name = ?, last_note_preview = ?, sync_status = 'synced', updated_at = ?
		WHERE remote_id = ?;`
	const insert = `
		INSERT INTO threads (local_id, remote_id, name, last_note_preview, sync_status, updated_at, created_at)
		VALUES (?, ?, ?, ?, 'synced', ?, ?);`

	created := []string{}
	for _, thread := range threads {
		res, err := s.db.ExecContext(ctx, update, thread.Name, thread.LastNotePreview, thread.UpdatedAt, thread.RemoteID)
		if err != nil {
			return nil, fmt.Errorf("error applying remote thread: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("error applying remote thread: %w", err)
		}
		if affected > 0 {
			continue
		}

		createdAt := thread.CreatedAt
		if createdAt.IsZero() {
			createdAt = thread.UpdatedAt
		}
		if _, err = s.db.ExecContext(ctx, insert, s.ids.Generate(), thread.RemoteID, thread.Name, thread.LastNotePreview, thread.UpdatedAt, createdAt); err != nil {
			return nil, fmt.Errorf("error creating thread shadow: %w", err)
		}
		created = append(created, thread.RemoteID)
	}

	return created, nil
}

// UpsertRemoteNotes implements [LocalStore]. Notes whose owning thread is
// unknown locally are skipped: the thread arrives in the same or a later
// pull, and the note is re-delivered while the cursor has not advanced past
// it.
func (s *localStore) UpsertRemoteNotes(ctx context.Context, notes []models.Note) ([]string, error) {
	const update = `
		UPDATE notes SET body = ?, sync_status = 'synced', updated_at = ?
		WHERE remote_id = ?;`
	const insert = `
		INSERT INTO notes (local_id, remote_id, thread_local_id, thread_remote_id, body, sync_status, updated_at, created_at)
		VALUES (?, ?, ?, ?, ?, 'synced', ?, ?);`

	created := []string{}
	for _, note := range notes {
		res, err := s.db.ExecContext(ctx, update, note.Text, note.UpdatedAt, note.RemoteID)
		if err != nil {
			return nil, fmt.Errorf("error applying remote note: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("error applying remote note: %w", err)
		}
		if affected > 0 {
			continue
		}

		var threadLocalID string
		row := s.db.QueryRowContext(ctx, `SELECT local_id FROM threads WHERE remote_id = ?;`, note.ThreadRemoteID)
		if err = row.Scan(&threadLocalID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				s.logger.Warn().Str("remote_id", note.RemoteID).Str("thread_remote_id", note.ThreadRemoteID).Msg("skipping pulled note with unknown thread")
				continue
			}
			return nil, errors.Join(ErrScanningRow, err)
		}

		createdAt := note.CreatedAt
		if createdAt.IsZero() {
			createdAt = note.UpdatedAt
		}
		if _, err = s.db.ExecContext(ctx, insert, s.ids.Generate(), note.RemoteID, threadLocalID, note.ThreadRemoteID, note.Text, note.UpdatedAt, createdAt); err != nil {
			return nil, fmt.Errorf("error creating note shadow: %w", err)
		}
		created = append(created, note.RemoteID)
	}

	return created, nil
}

// UpsertRemoteAccount implements [LocalStore].
func (s *localStore) UpsertRemoteAccount(ctx context.Context, account models.Account) error {
	const query = `
		INSERT INTO account (id, username, email, phone, sync_status, updated_at, created_at)
		VALUES (1, ?, ?, ?, 'synced', ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username    = excluded.username,
			email       = excluded.email,
			phone       = excluded.phone,
			sync_status = 'synced',
			updated_at  = excluded.updated_at;`

	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = account.UpdatedAt
	}
	if _, err := s.db.ExecContext(ctx, query, account.Username, account.Email, account.Phone, account.UpdatedAt, createdAt); err != nil {
		return fmt.Errorf("error applying remote account: %w", err)
	}

	return nil
}

// ApplyThreadTombstones implements [LocalStore].
func (s *localStore) ApplyThreadTombstones(ctx context.Context, remoteIDs []string) error {
	if len(remoteIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	in := inPlaceholders(len(remoteIDs))
	args := make([]any, 0, len(remoteIDs)+1)
	args = append(args, now)
	for _, id := range remoteIDs {
		args = append(args, id)
	}

	tombstone := `UPDATE threads SET deleted_at = ?, sync_status = 'synced' WHERE remote_id IN (` + in + `) AND deleted_at IS NULL;`
	if _, err = tx.ExecContext(ctx, tombstone, args...); err != nil {
		return fmt.Errorf("error applying thread tombstones: %w", err)
	}

	cascade := `
		UPDATE notes SET deleted_at = ?, sync_status = 'synced'
		WHERE deleted_at IS NULL AND thread_local_id IN (
			SELECT local_id FROM threads WHERE remote_id IN (` + in + `)
		);`
	if _, err = tx.ExecContext(ctx, cascade, args...); err != nil {
		return fmt.Errorf("error cascading thread tombstones: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return errors.Join(ErrCommitingTransaction, err)
	}

	return nil
}

// ApplyNoteTombstones implements [LocalStore].
func (s *localStore) ApplyNoteTombstones(ctx context.Context, remoteIDs []string) error {
	if len(remoteIDs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	args := make([]any, 0, len(remoteIDs)+1)
	args = append(args, now)
	for _, id := range remoteIDs {
		args = append(args, id)
	}

	query := `UPDATE notes SET deleted_at = ?, sync_status = 'synced' WHERE remote_id IN (` + inPlaceholders(len(remoteIDs)) + `) AND deleted_at IS NULL;`
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error applying note tombstones: %w", err)
	}

	return nil
}

// GetSyncMeta implements [LocalStore].
func (s *localStore) GetSyncMeta(ctx context.Context) (models.SyncMeta, error) {
	var meta models.SyncMeta
	var last sql.NullTime

	row := s.db.QueryRowContext(ctx, `SELECT last_sync_timestamp, is_syncing FROM sync_meta WHERE id = 1;`)
	if err := row.Scan(&last, &meta.IsSyncing); err != nil {
		return models.SyncMeta{}, errors.Join(ErrScanningRow, err)
	}
	if last.Valid {
		t := last.Time
		meta.LastSyncTimestamp = &t
	}

	return meta, nil
}

// BeginSync implements [LocalStore]. The guarded UPDATE is the atomic
// check-and-set: it matches only when no pass is in flight.
func (s *localStore) BeginSync(ctx context.Context) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE sync_meta SET is_syncing = 1 WHERE id = 1 AND is_syncing = 0;`)
	if err != nil {
		return false, fmt.Errorf("error acquiring sync flag: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error acquiring sync flag: %w", err)
	}

	return affected == 1, nil
}

// EndSync implements [LocalStore].
func (s *localStore) EndSync(ctx context.Context, serverTime *time.Time) error {
	var err error
	if serverTime != nil {
		_, err = s.db.ExecContext(ctx, `UPDATE sync_meta SET is_syncing = 0, last_sync_timestamp = ? WHERE id = 1;`, serverTime.UTC())
	} else {
		_, err = s.db.ExecContext(ctx, `UPDATE sync_meta SET is_syncing = 0 WHERE id = 1;`)
	}
	if err != nil {
		return fmt.Errorf("error releasing sync flag: %w", err)
	}

	return nil
}

// PurgeExpired implements [LocalStore].
func (s *localStore) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	const purge = ` WHERE deleted_at IS NOT NULL AND deleted_at < ? AND (sync_status = 'synced' OR remote_id = '');`

	var total int64
	for _, table := range []string{"notes", "threads"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+purge, olderThan)
		if err != nil {
			return total, fmt.Errorf("error purging %s tombstones: %w", table, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("error purging %s tombstones: %w", table, err)
		}
		total += affected
	}

	return total, nil
}

func scanThread(scan func(dest ...any) error) (models.Thread, error) {
	var thread models.Thread
	var deletedAt sql.NullTime

	if err := scan(&thread.LocalID, &thread.RemoteID, &thread.Name, &thread.LastNotePreview, &thread.SyncStatus, &thread.UpdatedAt, &deletedAt, &thread.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Thread{}, err
		}
		return models.Thread{}, errors.Join(ErrScanningRow, err)
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		thread.DeletedAt = &t
	}

	return thread, nil
}

func scanNote(scan func(dest ...any) error) (models.Note, error) {
	var note models.Note
	var deletedAt sql.NullTime

	if err := scan(&note.LocalID, &note.RemoteID, &note.ThreadLocalID, &note.ThreadRemoteID, &note.Text, &note.SyncStatus, &note.UpdatedAt, &deletedAt, &note.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, err
		}
		return models.Note{}, errors.Join(ErrScanningRow, err)
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		note.DeletedAt = &t
	}

	return note, nil
}

func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
