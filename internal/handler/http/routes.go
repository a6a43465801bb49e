package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)

	// The rendezvous socket hijacks the connection, so it must stay out
	// of the response-wrapping middleware below.
	router.Get("/relay", h.relay)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withLogging)
		r.Use(withGZip)

		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes guarded by JWT bearer auth
	router.Group(func(r chi.Router) {
		r.Use(h.withLogging)
		r.Use(withGZip)
		r.Use(h.auth)

		r.Get("/sync/changes", h.changes)
		r.Post("/sync/push", h.push)
		r.Delete("/sync/remote-data", h.purgeRemoteData)

		r.Post("/web-session/create", h.createWebSession)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
