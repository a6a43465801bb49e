package http

import (
	"testing"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_ReturnsNonNil(t *testing.T) {
	h := NewHandler(&service.Services{}, logger.Nop())

	require.NotNil(t, h)
	require.NotNil(t, h.relayHub)
}

func TestNewHandler_StoresServices(t *testing.T) {
	svc := &service.Services{}
	h := NewHandler(svc, logger.Nop())

	assert.Equal(t, svc, h.services)
}

func TestNewHandler_StoresLogger(t *testing.T) {
	log := logger.Nop()
	h := NewHandler(&service.Services{}, log)

	assert.Equal(t, log, h.logger)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, logger.Nop())
	h2 := NewHandler(&service.Services{}, logger.Nop())

	assert.NotSame(t, h1, h2)
}
