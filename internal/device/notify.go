package device

import (
	"github.com/noteleaf/noteleaf/models"
)

// Broadcaster is the slice of the realtime hub the notifier needs.
type Broadcaster interface {
	Broadcast(event models.EventType, payload any)
}

// BroadcastApplied fans a finished pull out to attached web clients. A
// record whose upsert created a fresh local shadow goes out as created,
// an overwrite as updated; tombstones go out as bare ids.
func BroadcastApplied(hub Broadcaster, applied AppliedChanges) {
	createdThreads := make(map[string]struct{}, len(applied.CreatedThreadIDs))
	for _, id := range applied.CreatedThreadIDs {
		createdThreads[id] = struct{}{}
	}
	createdNotes := make(map[string]struct{}, len(applied.CreatedNoteIDs))
	for _, id := range applied.CreatedNoteIDs {
		createdNotes[id] = struct{}{}
	}

	for _, thread := range applied.Threads {
		event := models.EventThreadUpdated
		if _, ok := createdThreads[thread.RemoteID]; ok {
			event = models.EventThreadCreated
		}
		hub.Broadcast(event, thread)
	}
	for _, note := range applied.Notes {
		event := models.EventNoteUpdated
		if _, ok := createdNotes[note.RemoteID]; ok {
			event = models.EventNoteCreated
		}
		hub.Broadcast(event, note)
	}
	for _, id := range applied.DeletedThreadIDs {
		hub.Broadcast(models.EventThreadDeleted, models.IDMapping{ServerID: id})
	}
	for _, id := range applied.DeletedNoteIDs {
		hub.Broadcast(models.EventNoteDeleted, models.IDMapping{ServerID: id})
	}
}
