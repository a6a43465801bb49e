package device

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/noteleaf/noteleaf/internal/localauth"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/realtime"
)

// LocalServer is the ephemeral HTTP surface a paired secondary client
// talks to: a handshake probe on the base port and the realtime websocket
// on the next port up. It exists only while a pairing session is active.
type LocalServer struct {
	guard  *localauth.Guard
	hub    *realtime.Hub
	logger *logger.Logger

	httpAddr     string
	realtimeAddr string

	httpServer     *http.Server
	realtimeServer *http.Server
}

// NewLocalServer builds the local server bound to addr; the realtime
// listener takes the port immediately above the HTTP one.
func NewLocalServer(addr string, guard *localauth.Guard, hub *realtime.Hub, logger *logger.Logger) (*LocalServer, error) {
	realtimeAddr, err := offsetPort(addr, 1)
	if err != nil {
		return nil, fmt.Errorf("derive realtime address: %w", err)
	}

	return &LocalServer{
		guard:        guard,
		hub:          hub,
		logger:       logger,
		httpAddr:     addr,
		realtimeAddr: realtimeAddr,
	}, nil
}

func offsetPort(addr string, by int) (string, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(host, strconv.Itoa(port+by)), nil
}

// HTTPAddress returns the handshake listener address.
func (s *LocalServer) HTTPAddress() string { return s.httpAddr }

// RealtimeAddress returns the websocket listener address.
func (s *LocalServer) RealtimeAddress() string { return s.realtimeAddr }

func (s *LocalServer) routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/handshake", s.handshake)

	return router
}

// handshake answers the secondary client's direct probe. 200 means the
// presented token matches the active pairing session; every refusal maps
// straight from the guard's decision.
func (s *LocalServer) handshake(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	decision := s.guard.ValidateToken(token, clientAddr(r))
	if !decision.Authorized {
		s.logger.Warn().
			Str("remote_addr", r.RemoteAddr).
			Str("error_kind", string(decision.ErrorKind)).
			Msg("handshake refused")
		http.Error(w, string(decision.ErrorKind), decision.StatusCode)
		return
	}

	s.logger.Info().Str("remote_addr", r.RemoteAddr).Msg("secondary client handshake accepted")
	w.WriteHeader(http.StatusOK)
}

// clientAddr strips the ephemeral source port so the lockout ledger tracks
// hosts, not individual connections.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Run starts both listeners and blocks until ctx is cancelled or either
// listener fails.
func (s *LocalServer) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.httpAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.realtimeServer = &http.Server{
		Addr:              s.realtimeAddr,
		Handler:           s.hub,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() { errCh <- s.httpServer.ListenAndServe() }()
	go func() { errCh <- s.realtimeServer.ListenAndServe() }()

	s.logger.Info().
		Str("http_addr", s.httpAddr).
		Str("realtime_addr", s.realtimeAddr).
		Msg("local server listening")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Shutdown()
			return fmt.Errorf("local server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.Shutdown()
		return nil
	}
}

// Shutdown stops both listeners gracefully.
func (s *LocalServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		_ = s.httpServer.Shutdown(ctx)
	}
	if s.realtimeServer != nil {
		_ = s.realtimeServer.Shutdown(ctx)
	}
}
