package models

import "time"

// ThreadPush is one dirty thread entry inside a push batch.
type ThreadPush struct {
	LocalID  string `json:"localId"`
	ServerID string `json:"serverId,omitempty"`

	// Data carries the full thread payload; the push protocol is a
	// last-writer-wins full-field overwrite with no version check.
	Data ThreadData `json:"data"`

	Deleted bool `json:"deleted,omitempty"`
}

// ThreadData is the payload half of a thread push entry.
type ThreadData struct {
	Name            string    `json:"name"`
	LastNotePreview string    `json:"lastNotePreview,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NotePush is one dirty note entry inside a push batch. ThreadLocalID lets
// the server resolve ownership before any local-to-remote mapping exists.
type NotePush struct {
	LocalID       string `json:"localId"`
	ServerID      string `json:"serverId,omitempty"`
	ThreadLocalID string `json:"threadLocalId"`

	Data NoteData `json:"data"`

	Deleted bool `json:"deleted,omitempty"`
}

// NoteData is the payload half of a note push entry.
type NoteData struct {
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccountPush carries dirty identity fields of the user record.
type AccountPush struct {
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PushRequest is the body of POST /sync/push.
type PushRequest struct {
	User    *AccountPush `json:"user,omitempty"`
	Threads []ThreadPush `json:"threads"`
	Notes   []NotePush   `json:"notes"`
}

// PushResponse mirrors the request with local-to-remote identifier mappings
// for every entry the store acknowledged. The caller uses it to persist
// remote ids and flip sync status to synced; the push itself never mutates
// local state.
type PushResponse struct {
	User    *IDMapping  `json:"user,omitempty"`
	Threads []IDMapping `json:"threads"`
	Notes   []IDMapping `json:"notes"`

	// UserConflict reports an identity-field uniqueness violation. It
	// fails only the user sub-operation: the thread and note mappings of
	// the same batch are still returned.
	UserConflict *FieldConflict `json:"userConflict,omitempty"`
}

// FieldConflict names the identity field whose uniqueness check failed.
type FieldConflict struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ChangesResponse is the body of GET /sync/changes. Active records and
// tombstones are disjoint sets; deletions travel as bare remote ids to
// minimize transfer. ServerTime becomes the client's next pull cursor.
type ChangesResponse struct {
	User             *Account  `json:"user"`
	Threads          []Thread  `json:"threads"`
	Notes            []Note    `json:"notes"`
	DeletedThreadIDs []string  `json:"deletedThreadIds"`
	DeletedNoteIDs   []string  `json:"deletedNoteIds"`
	ServerTime       time.Time `json:"serverTime"`
}

// PurgeStats reports what DELETE /sync/remote-data removed.
type PurgeStats struct {
	ThreadsDeleted int `json:"threadsDeleted"`
	NotesDeleted   int `json:"notesDeleted"`
}

// PurgeResponse is the body of DELETE /sync/remote-data.
type PurgeResponse struct {
	Stats PurgeStats `json:"stats"`
}
