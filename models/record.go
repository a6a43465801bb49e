// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models defines the domain entities shared between the noteleaf
// remote store service and the primary-device daemon: syncable records
// (threads, notes, the account shadow), synchronization metadata, pairing
// sessions, and the wire types of the sync and realtime protocols.
package models

import "time"

// SyncStatus describes where a local record stands relative to the remote
// store.
type SyncStatus string

const (
	// SyncStatusPending marks a record with local changes that have not yet
	// been acknowledged by the remote store.
	SyncStatusPending SyncStatus = "pending"

	// SyncStatusSynced marks a record whose last local change has been
	// acknowledged and which carries a remote identifier.
	SyncStatusSynced SyncStatus = "synced"

	// SyncStatusConflict is a transient state used only while a merge is
	// being resolved. It is never persisted as a terminal state.
	SyncStatusConflict SyncStatus = "conflict"
)

// Thread is a conversation-style container of notes.
//
// LocalID is generated on the device and stable for the record's lifetime.
// RemoteID is empty until the first successful push acknowledgment and,
// once set, is never cleared except by a full local wipe.
type Thread struct {
	// LocalID is the device-generated identifier, always present.
	LocalID string `json:"localId"`

	// RemoteID is the store-assigned identifier, empty until first push.
	RemoteID string `json:"serverId,omitempty"`

	// Name is the user-visible thread title. Trimmed name equality is the
	// key used by the reinstall merge during push.
	Name string `json:"name"`

	// LastNotePreview is a denormalized preview of the most recent note,
	// maintained by the push pass on note creation.
	LastNotePreview string `json:"lastNotePreview,omitempty"`

	SyncStatus SyncStatus `json:"-"`

	// UpdatedAt is a monotonic per-device timestamp for local records and
	// the server clock for remote ones.
	UpdatedAt time.Time `json:"updatedAt"`

	// DeletedAt marks the record as a tombstone when non-nil. Tombstones
	// are never mutated further except toward physical purge.
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Deleted reports whether the thread is a tombstone.
func (t Thread) Deleted() bool { return t.DeletedAt != nil }

// Note is a single message inside a thread. Notes always reference their
// owning thread by the thread's local identifier; the remote identifier of
// the owner is resolved during push.
type Note struct {
	LocalID  string `json:"localId"`
	RemoteID string `json:"serverId,omitempty"`

	// ThreadLocalID references the owning thread on the device. It is sent
	// with every push entry so ownership can be resolved before any
	// local-to-remote mapping exists.
	ThreadLocalID string `json:"threadLocalId"`

	// ThreadRemoteID is the owner's remote identifier once known.
	ThreadRemoteID string `json:"threadServerId,omitempty"`

	Text string `json:"text"`

	SyncStatus SyncStatus `json:"-"`

	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Deleted reports whether the note is a tombstone.
func (n Note) Deleted() bool { return n.DeletedAt != nil }

// Account is the user record. On the remote store it is the authoritative
// account row; on the device it is a synced shadow of the same identity
// fields.
//
// Username, Email and Phone are globally unique identity fields. Pushing a
// change to any of them re-checks uniqueness excluding the current owner
// and fails only the user sub-operation on violation.
type Account struct {
	// AccountID is the internal server-side identifier. Never exposed via
	// JSON; used only at the persistence layer.
	AccountID int64 `json:"-"`

	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`

	// Password carries the plaintext credential during register/login
	// requests only. It is never persisted; the store keeps an argon2id
	// hash.
	Password string `json:"password,omitempty"`

	// PasswordHash is the encoded argon2id digest, persistence-layer only.
	PasswordHash string `json:"-"`

	SyncStatus SyncStatus `json:"-"`

	UpdatedAt time.Time `json:"updatedAt,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// TableName returns the database table backing the Account model.
func (a Account) TableName() string {
	return "accounts"
}
