package http

import (
	"net/http"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/utils"
)

func (h *Handler) createWebSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createWebSession").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	session, err := h.services.WebSessionService.CreateSession(ctx, accountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createWebSession").Msg("error creating web session")
		http.Error(w, "error creating web session", statusFromError(err))
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}
