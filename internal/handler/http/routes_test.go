package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/service"
)

// newRoutesHandler builds a Handler with stub services sufficient for
// route-registration tests.
func newRoutesHandler() *Handler {
	return NewHandler(&service.Services{
		AuthService: &mockAuthService{},
	}, logger.Nop())
}

func TestInit_ReturnsRouter(t *testing.T) {
	router := newRoutesHandler().Init()

	require.NotNil(t, router)
}

// routeCase describes a single expected route.
type routeCase struct {
	method string
	path   string
}

// expectedRoutes lists every route that Init() must register.
var expectedRoutes = []routeCase{
	// auth
	{http.MethodPost, "/api/auth/register"},
	{http.MethodPost, "/api/auth/login"},
	// sync (auth middleware will return 401, not 404/405)
	{http.MethodGet, "/sync/changes"},
	{http.MethodPost, "/sync/push"},
	{http.MethodDelete, "/sync/remote-data"},
	// pairing
	{http.MethodPost, "/web-session/create"},
	{http.MethodGet, "/relay"},
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := newRoutesHandler().Init()

	for _, tc := range expectedRoutes {
		tc := tc
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			// A registered route returns anything except 404 (not found) or
			// 405 (method not allowed). Auth-protected routes return 401 —
			// that still proves the route exists.
			assert.NotEqual(t, http.StatusNotFound, rec.Code,
				"route not found: %s %s", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code,
				"method not allowed: %s %s", tc.method, tc.path)
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	router := newRoutesHandler().Init()

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	router := newRoutesHandler().Init()

	// POST /relay is not registered — only GET is.
	req := httptest.NewRequest(http.MethodPost, "/relay", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
