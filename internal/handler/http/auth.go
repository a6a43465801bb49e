package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/service"
	"github.com/noteleaf/noteleaf/internal/store"
	"github.com/noteleaf/noteleaf/internal/utils"
	"github.com/noteleaf/noteleaf/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registered, err := h.services.AuthService.Register(ctx, account)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUsernameTaken),
			errors.Is(err, store.ErrEmailTaken),
			errors.Is(err, store.ErrPhoneTaken):
			log.Err(err).Msg("identity field already taken")
			http.Error(w, err.Error(), http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during account registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, registered)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, registered, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	found, err := h.services.AuthService.Login(ctx, account)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrAccountNotFound) || errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("no account was found/wrong password")
			http.Error(w, "invalid username/password", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during account login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", found.AccountID).Str("username", found.Username).Msg("account successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, found)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, found, http.StatusOK)
}
