// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package device wires the primary-device runtime: the sync engine that
// reconciles the local store with the remote store, and the ephemeral
// local server that paired secondary clients talk to.
package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/noteleaf/noteleaf/internal/adapter"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/store"
	"github.com/noteleaf/noteleaf/models"
)

// ErrSyncInFlight is returned when a sync pass is requested while another
// one is still running. Overlapping triggers collapse into the running
// pass instead of racing it.
var ErrSyncInFlight = errors.New("sync pass already in flight")

// Engine drives push/pull reconciliation between the device's local store
// and the remote store. Passes are single-flight per local store: the
// in-flight flag is checked-and-set atomically in the store itself.
type Engine struct {
	local  store.LocalStore
	remote adapter.StoreAdapter
	logger *logger.Logger

	// onApplied, when set, fires after a pass that changed local state so
	// the realtime hub can notify attached clients.
	onApplied func(applied AppliedChanges)
}

// AppliedChanges describes one applied pull: the wire payload plus which
// active records were new to this device, so notifications can tell a
// creation from an overwrite.
type AppliedChanges struct {
	models.ChangesResponse

	CreatedThreadIDs []string
	CreatedNoteIDs   []string
}

// NewEngine assembles a sync engine over the given stores.
func NewEngine(local store.LocalStore, remote adapter.StoreAdapter, logger *logger.Logger) *Engine {
	return &Engine{local: local, remote: remote, logger: logger}
}

// OnApplied registers a callback invoked after every pass that pulled
// remote changes. Must be set before the first pass runs.
func (e *Engine) OnApplied(fn func(applied AppliedChanges)) {
	e.onApplied = fn
}

// SyncPass runs one full push+pull reconciliation.
//
// Push first: dirty records go up, acknowledged mappings come back and are
// applied as a separate step (the push itself never mutates local state).
// Then pull: everything changed after the stored cursor is upserted and
// tombstoned locally, and the store's serverTime becomes the next cursor.
// The device clock is never written as the cursor.
//
// On any failure the in-flight flag is cleared and the cursor is left
// untouched, so the next pass simply repeats the work idempotently.
func (e *Engine) SyncPass(ctx context.Context) error {
	ok, err := e.local.BeginSync(ctx)
	if err != nil {
		return fmt.Errorf("begin sync: %w", err)
	}
	if !ok {
		return ErrSyncInFlight
	}

	serverTime, err := e.runPass(ctx)
	if endErr := e.local.EndSync(ctx, serverTime); endErr != nil {
		e.logger.Err(endErr).Msg("failed to clear sync flag")
		if err == nil {
			err = fmt.Errorf("end sync: %w", endErr)
		}
	}

	return err
}

func (e *Engine) runPass(ctx context.Context) (*time.Time, error) {
	if err := e.push(ctx); err != nil {
		return nil, err
	}

	applied, err := e.pull(ctx)
	if err != nil {
		return nil, err
	}

	if e.onApplied != nil {
		e.onApplied(applied)
	}

	return &applied.ServerTime, nil
}

func (e *Engine) push(ctx context.Context) error {
	batch, err := e.local.DirtyRecords(ctx)
	if err != nil {
		return fmt.Errorf("collect dirty records: %w", err)
	}

	if batch.User == nil && len(batch.Threads) == 0 && len(batch.Notes) == 0 {
		return nil
	}

	resp, err := e.remote.Push(ctx, batch)
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}

	if resp.UserConflict != nil {
		// Only the user sub-operation failed; the account shadow stays
		// pending and is retried next pass.
		e.logger.Warn().
			Str("field", resp.UserConflict.Field).
			Msg("identity field conflict, account change not accepted")
	}

	if err = e.local.ApplyMappings(ctx, resp); err != nil {
		return fmt.Errorf("apply mappings: %w", err)
	}

	e.logger.Info().
		Int("threads", len(resp.Threads)).
		Int("notes", len(resp.Notes)).
		Msg("push acknowledged")

	return nil
}

func (e *Engine) pull(ctx context.Context) (AppliedChanges, error) {
	meta, err := e.local.GetSyncMeta(ctx)
	if err != nil {
		return AppliedChanges{}, fmt.Errorf("get sync meta: %w", err)
	}

	changes, err := e.remote.PullChanges(ctx, meta.LastSyncTimestamp)
	if err != nil {
		return AppliedChanges{}, fmt.Errorf("pull changes: %w", err)
	}

	applied := AppliedChanges{ChangesResponse: changes}

	if changes.User != nil {
		if err = e.local.UpsertRemoteAccount(ctx, *changes.User); err != nil {
			return AppliedChanges{}, fmt.Errorf("apply account: %w", err)
		}
	}
	if applied.CreatedThreadIDs, err = e.local.UpsertRemoteThreads(ctx, changes.Threads); err != nil {
		return AppliedChanges{}, fmt.Errorf("apply threads: %w", err)
	}
	if applied.CreatedNoteIDs, err = e.local.UpsertRemoteNotes(ctx, changes.Notes); err != nil {
		return AppliedChanges{}, fmt.Errorf("apply notes: %w", err)
	}

	// Tombstones are idempotent: a pass killed between here and the cursor
	// write reapplies them harmlessly on the next pull.
	if err = e.local.ApplyThreadTombstones(ctx, changes.DeletedThreadIDs); err != nil {
		return AppliedChanges{}, fmt.Errorf("apply thread tombstones: %w", err)
	}
	if err = e.local.ApplyNoteTombstones(ctx, changes.DeletedNoteIDs); err != nil {
		return AppliedChanges{}, fmt.Errorf("apply note tombstones: %w", err)
	}

	e.logger.Info().
		Int("threads", len(changes.Threads)).
		Int("notes", len(changes.Notes)).
		Int("deleted_threads", len(changes.DeletedThreadIDs)).
		Int("deleted_notes", len(changes.DeletedNoteIDs)).
		Time("server_time", changes.ServerTime).
		Msg("pull applied")

	return applied, nil
}
