package http

import (
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/service"
)

type Handler struct {
	services *service.Services
	relayHub *relayHub

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		relayHub: newRelayHub(),
		logger:   logger,
	}
}
