package http

import (
	"errors"
	"net/http"

	"github.com/noteleaf/noteleaf/internal/service"
	"github.com/noteleaf/noteleaf/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrSessionNotFound:         http.StatusGone,

	store.ErrUsernameTaken:   http.StatusConflict,
	store.ErrEmailTaken:      http.StatusConflict,
	store.ErrPhoneTaken:      http.StatusConflict,
	store.ErrAccountNotFound: http.StatusNotFound,
	store.ErrThreadNotFound:  http.StatusNotFound,
	store.ErrNoteNotFound:    http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
