package service

import (
	"github.com/noteleaf/noteleaf/internal/config"
	"github.com/noteleaf/noteleaf/internal/crypto"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/store"
)

type Services struct {
	AuthService       AuthService
	SyncService       SyncService
	WebSessionService WebSessionService
}

func NewServices(repos *store.Repositories, passwords crypto.PasswordService, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(repos.Accounts, passwords, cfg.Auth, logger),
		SyncService:       NewSyncService(repos, logger),
		WebSessionService: NewWebSessionService(passwords, cfg.Server, logger),
	}
}
