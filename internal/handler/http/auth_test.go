package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteleaf/noteleaf/internal/service"
	"github.com/noteleaf/noteleaf/internal/store"
	"github.com/noteleaf/noteleaf/models"
)

// ---- Helpers ----

func executeJSON(h *Handler, method, path, body string, handlerFn http.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = injectNopLogger(req)
	rr := httptest.NewRecorder()
	handlerFn(rr, req)
	return rr
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	h := newHandlerWithAuthService(&mockAuthService{
		registerFn: func(_ context.Context, account models.Account) (models.Account, error) {
			account.AccountID = 42
			return account, nil
		},
		createTokenFn: func(_ context.Context, _ models.Account) (models.Token, error) {
			return models.Token{SignedString: "signed-jwt"}, nil
		},
	})

	rr := executeJSON(h, http.MethodPost, "/api/auth/register",
		`{"username":"ada","email":"ada@example.com","password":"s3cret"}`, h.register)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer signed-jwt", rr.Header().Get("Authorization"))
	assert.Contains(t, rr.Body.String(), `"username":"ada"`)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuthService(&mockAuthService{})

	rr := executeJSON(h, http.MethodPost, "/api/auth/register", `{not json`, h.register)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid data → 400", err: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "username taken → 409", err: store.ErrUsernameTaken, wantStatus: http.StatusConflict},
		{name: "email taken → 409", err: store.ErrEmailTaken, wantStatus: http.StatusConflict},
		{name: "phone taken → 409", err: store.ErrPhoneTaken, wantStatus: http.StatusConflict},
		{name: "unexpected → 500", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAuthService(&mockAuthService{
				registerFn: func(_ context.Context, _ models.Account) (models.Account, error) {
					return models.Account{}, tt.err
				},
			})

			rr := executeJSON(h, http.MethodPost, "/api/auth/register",
				`{"username":"ada","email":"a@b.c","password":"x"}`, h.register)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRegister_TokenCreationFails(t *testing.T) {
	h := newHandlerWithAuthService(&mockAuthService{
		createTokenFn: func(_ context.Context, _ models.Account) (models.Token, error) {
			return models.Token{}, service.ErrTokenCreationFailed
		},
	})

	rr := executeJSON(h, http.MethodPost, "/api/auth/register",
		`{"username":"ada","email":"a@b.c","password":"x"}`, h.register)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	h := newHandlerWithAuthService(&mockAuthService{
		loginFn: func(_ context.Context, account models.Account) (models.Account, error) {
			return models.Account{AccountID: 42, Username: account.Username}, nil
		},
		createTokenFn: func(_ context.Context, _ models.Account) (models.Token, error) {
			return models.Token{SignedString: "signed-jwt"}, nil
		},
	})

	rr := executeJSON(h, http.MethodPost, "/api/auth/login",
		`{"username":"ada","password":"s3cret"}`, h.login)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer signed-jwt", rr.Header().Get("Authorization"))
}

func TestLogin_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuthService(&mockAuthService{})

	rr := executeJSON(h, http.MethodPost, "/api/auth/login", `]`, h.login)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid data → 400", err: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "account not found → 401", err: store.ErrAccountNotFound, wantStatus: http.StatusUnauthorized},
		{name: "wrong password → 401", err: service.ErrWrongPassword, wantStatus: http.StatusUnauthorized},
		{name: "unexpected → 500", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAuthService(&mockAuthService{
				loginFn: func(_ context.Context, _ models.Account) (models.Account, error) {
					return models.Account{}, tt.err
				},
			})

			rr := executeJSON(h, http.MethodPost, "/api/auth/login",
				`{"username":"ada","password":"x"}`, h.login)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
