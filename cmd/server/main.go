package main

import (
	"context"
	"fmt"
	"time"

	"github.com/noteleaf/noteleaf/internal/config"
	"github.com/noteleaf/noteleaf/internal/crypto"
	"github.com/noteleaf/noteleaf/internal/handler"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/server"
	"github.com/noteleaf/noteleaf/internal/service"
	"github.com/noteleaf/noteleaf/internal/store"
	"github.com/noteleaf/noteleaf/internal/workers"
)

// Tombstone retention on the remote store. Devices that stay offline
// longer than this fall back to a full pull on their next sync.
const tombstoneRetention = 30 * 24 * time.Hour

const tombstoneSweepInterval = time.Hour

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("noteleaf-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	repos := store.NewRepositories(db)
	passwords := crypto.NewPasswordService()
	services := service.NewServices(repos, passwords, cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	purge := workers.NewServerPurgeJob(services.SyncService, tombstoneRetention, tombstoneSweepInterval, log)

	jobsCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	go workers.NewWorkers(purge).Run(jobsCtx)

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
