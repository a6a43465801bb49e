package models

import "time"

// SyncMeta is the singleton synchronization state of one local store.
type SyncMeta struct {
	// LastSyncTimestamp is the high-water mark reported by the server on
	// the previous pull. Nil forces a full pull. The device's own clock is
	// never used as the cursor.
	LastSyncTimestamp *time.Time `json:"last_sync_timestamp,omitempty"`

	// IsSyncing is the single-flight flag. It must be checked-and-set
	// atomically before a sync pass begins and cleared on completion or
	// failure.
	IsSyncing bool `json:"is_syncing"`
}

// SyncOpKind tags a resolved push operation. Representing the branch as a
// closed variant keeps the executor an exhaustive switch instead of an ad
// hoc combination of nullable fields.
type SyncOpKind string

const (
	OpCreate SyncOpKind = "create"
	OpUpdate SyncOpKind = "update"
	OpDelete SyncOpKind = "delete"
)

// IDMapping pairs a device-local identifier with the remote identifier the
// store assigned (or confirmed) for it during a push pass.
type IDMapping struct {
	LocalID  string `json:"localId"`
	ServerID string `json:"serverId"`
}
