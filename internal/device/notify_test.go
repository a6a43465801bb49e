package device

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noteleaf/noteleaf/models"
)

type recordedEvent struct {
	event   models.EventType
	payload any
}

type fakeBroadcaster struct {
	events []recordedEvent
}

func (f *fakeBroadcaster) Broadcast(event models.EventType, payload any) {
	f.events = append(f.events, recordedEvent{event: event, payload: payload})
}

func TestBroadcastApplied_DistinguishesCreatedFromUpdated(t *testing.T) {
	hub := &fakeBroadcaster{}

	BroadcastApplied(hub, AppliedChanges{
		ChangesResponse: models.ChangesResponse{
			Threads: []models.Thread{
				{RemoteID: "31", Name: "fresh"},
				{RemoteID: "32", Name: "known"},
			},
			Notes: []models.Note{
				{RemoteID: "77", Text: "fresh"},
				{RemoteID: "78", Text: "known"},
			},
			DeletedThreadIDs: []string{"12"},
			DeletedNoteIDs:   []string{"40"},
		},
		CreatedThreadIDs: []string{"31"},
		CreatedNoteIDs:   []string{"77"},
	})

	got := make([]models.EventType, 0, len(hub.events))
	for _, e := range hub.events {
		got = append(got, e.event)
	}
	assert.Equal(t, []models.EventType{
		models.EventThreadCreated,
		models.EventThreadUpdated,
		models.EventNoteCreated,
		models.EventNoteUpdated,
		models.EventThreadDeleted,
		models.EventNoteDeleted,
	}, got)
}

func TestBroadcastApplied_TombstonesGoOutAsBareIDs(t *testing.T) {
	hub := &fakeBroadcaster{}

	BroadcastApplied(hub, AppliedChanges{
		ChangesResponse: models.ChangesResponse{DeletedNoteIDs: []string{"40"}},
	})

	assert.Equal(t, []recordedEvent{
		{event: models.EventNoteDeleted, payload: models.IDMapping{ServerID: "40"}},
	}, hub.events)
}
