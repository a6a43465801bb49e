package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/utils"
	"github.com/noteleaf/noteleaf/models"
)

func (h *Handler) changes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.changes").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	// An absent `since` means a full pull.
	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			log.Err(err).Str("since", raw).Msg("malformed since parameter")
			http.Error(w, "malformed since parameter, want RFC 3339", http.StatusBadRequest)
			return
		}
		since = &parsed
	}

	response, err := h.services.SyncService.Changes(ctx, accountID, since)
	if err != nil {
		log.Err(err).Str("func", "*Handler.changes").Msg("error listing account changes")
		http.Error(w, "error listing account changes", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.push").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	var pushRequest models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&pushRequest); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.SyncService.Push(ctx, accountID, pushRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("error applying push batch")
		http.Error(w, "error applying push batch", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) purgeRemoteData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.purgeRemoteData").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	stats, err := h.services.SyncService.PurgeRemoteData(ctx, accountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.purgeRemoteData").Msg("error purging remote data")
		http.Error(w, "error purging remote data", statusFromError(err))
		return
	}

	log.Info().
		Int64("account_id", accountID).
		Int("threads_deleted", stats.ThreadsDeleted).
		Int("notes_deleted", stats.NotesDeleted).
		Msg("remote data purged")

	utils.WriteJSON(w, models.PurgeResponse{Stats: stats}, http.StatusOK)
}
