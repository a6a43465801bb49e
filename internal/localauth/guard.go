// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package localauth guards the device's ephemeral local server with
// bearer-token validation and per-address brute-force lockout.
//
// The guard is process-wide: the pairing flow is the only writer (it sets
// and clears the active token), while every request-handling goroutine
// reads it concurrently. A plain mutex is sufficient at local-server
// request volumes.
package localauth

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Lockout parameters: maxFailures consecutive bad bearer checks from one
// address block that address until now+blockDuration. The counter resets
// on block so a single burst cannot stack lockouts indefinitely.
const (
	maxFailures   = 5
	blockDuration = 5 * time.Minute
)

// ErrorKind classifies why a request was refused.
type ErrorKind string

const (
	// ErrorNone means the request is authorized.
	ErrorNone ErrorKind = ""

	// ErrorNoSession means no pairing session is active; the server
	// refuses all requests.
	ErrorNoSession ErrorKind = "no_session"

	// ErrorRateLimited means the client address is under lockout.
	ErrorRateLimited ErrorKind = "rate_limited"

	// ErrorUnauthorized means the bearer token did not match the active
	// session token.
	ErrorUnauthorized ErrorKind = "unauthorized"
)

// Decision is the outcome of a single Validate call.
type Decision struct {
	Authorized bool
	ErrorKind  ErrorKind
	StatusCode int
}

type failureRecord struct {
	count        int
	blockedUntil time.Time
}

// Guard holds the device-local auth state: the active pairing token plus a
// per-address failure ledger. The zero value is not usable; construct with
// [NewGuard].
type Guard struct {
	mu             sync.Mutex
	activeToken    *string
	failedAttempts map[string]*failureRecord

	// now is replaceable in tests.
	now func() time.Time
}

// NewGuard returns a guard with no active session.
func NewGuard() *Guard {
	return &Guard{
		failedAttempts: make(map[string]*failureRecord),
		now:            time.Now,
	}
}

// SetToken activates token as the session credential and clears all
// failure state. A rotated token invalidates prior guesses, so stale
// lockouts must not survive it.
func (g *Guard) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.activeToken = &token
	g.failedAttempts = make(map[string]*failureRecord)
}

// Clear deactivates the session. Subsequent requests fail with
// [ErrorNoSession] until a new token is set.
func (g *Guard) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.activeToken = nil
	g.failedAttempts = make(map[string]*failureRecord)
}

// Active reports whether a session token is currently set.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.activeToken != nil
}

// Validate checks an Authorization header from clientAddr against the
// active session.
//
// Order of checks matters: no active session refuses everything; a blocked
// address fails fast without the header even being inspected (so probing a
// locked address leaks nothing about the token); otherwise the bearer value
// must match exactly. A mismatch records a failure for clientAddr, a match
// clears that address's record.
func (g *Guard) Validate(authorizationHeader, clientAddr string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.activeToken == nil {
		return Decision{ErrorKind: ErrorNoSession, StatusCode: http.StatusServiceUnavailable}
	}

	if rec, ok := g.failedAttempts[clientAddr]; ok && g.now().Before(rec.blockedUntil) {
		return Decision{ErrorKind: ErrorRateLimited, StatusCode: http.StatusTooManyRequests}
	}

	token, ok := bearerToken(authorizationHeader)
	if !ok || token != *g.activeToken {
		g.recordFailure(clientAddr)
		return Decision{ErrorKind: ErrorUnauthorized, StatusCode: http.StatusUnauthorized}
	}

	delete(g.failedAttempts, clientAddr)
	return Decision{Authorized: true, StatusCode: http.StatusOK}
}

// ValidateToken checks a bare token value (no header framing) from
// clientAddr. Used by the handshake query parameter and the realtime auth
// message, which carry the token outside an Authorization header.
func (g *Guard) ValidateToken(token, clientAddr string) Decision {
	return g.Validate("Bearer "+token, clientAddr)
}

func (g *Guard) recordFailure(clientAddr string) {
	rec, ok := g.failedAttempts[clientAddr]
	if !ok {
		rec = &failureRecord{}
		g.failedAttempts[clientAddr] = rec
	}

	rec.count++
	if rec.count >= maxFailures {
		rec.blockedUntil = g.now().Add(blockDuration)
		rec.count = 0
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(header), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
