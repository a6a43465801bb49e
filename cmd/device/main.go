package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/noteleaf/noteleaf/internal/adapter"
	"github.com/noteleaf/noteleaf/internal/config"
	"github.com/noteleaf/noteleaf/internal/device"
	"github.com/noteleaf/noteleaf/internal/localauth"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/pairing"
	"github.com/noteleaf/noteleaf/internal/realtime"
	"github.com/noteleaf/noteleaf/internal/store"
	"github.com/noteleaf/noteleaf/internal/workers"
	"github.com/noteleaf/noteleaf/models"
)

const purgeSweepInterval = time.Hour

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewDeviceLogger("noteleaf-device")
	cfg, err := config.GetDeviceConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	local, err := store.NewLocalStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening local store")
	}
	defer local.Close()

	remote, err := adapter.NewHTTPStoreAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating store adapter")
	}

	guard := localauth.NewGuard()
	hub := realtime.NewHub(guard, log)

	engine := device.NewEngine(local, remote, log)
	engine.OnApplied(func(applied device.AppliedChanges) {
		device.BroadcastApplied(hub, applied)
	})

	localSrv, err := device.NewLocalServer(cfg.Server.Address, guard, hub, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating local server")
	}

	pairings, err := pairing.NewManager(remote, guard, hub, localSrv.HTTPAddress(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating pairing manager")
	}

	syncJob := workers.NewSyncJob(engine, cfg.Workers.SyncInterval, log)
	purgeJob := workers.NewDevicePurgeJob(local, cfg.Workers.PurgeRetention, purgeSweepInterval, log)
	go workers.NewWorkers(syncJob, purgeJob).Run(ctx)

	go func() {
		if err := localSrv.Run(ctx); err != nil {
			log.Error().Err(err).Msg("local server stopped")
		}
	}()

	runPrompt(ctx, promptDeps{
		remote:   remote,
		local:    local,
		pairings: pairings,
		syncJob:  syncJob,
		log:      log,
	})

	stop()
	localSrv.Shutdown()
}

type promptDeps struct {
	remote   adapter.StoreAdapter
	local    store.LocalStore
	pairings *pairing.Manager
	syncJob  *workers.SyncJob
	log      *logger.Logger
}

// runPrompt reads commands from stdin until EOF, "quit" or signal
// cancellation.
func runPrompt(ctx context.Context, deps promptDeps) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Println(`commands: register | login | thread | note | threads | notes | rm-thread | rm-note | sync | pair | unpair | purge-remote | quit`)

	for {
		fmt.Print("> ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return
		case line, ok = <-lines:
			if !ok {
				return
			}
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		if args[0] == "quit" || args[0] == "exit" {
			return
		}

		if err := dispatch(ctx, deps, args); err != nil {
			fmt.Println("error:", err)
		}
	}
}

func dispatch(ctx context.Context, deps promptDeps, args []string) error {
	switch args[0] {
	case "register":
		if len(args) != 4 {
			return fmt.Errorf("usage: register <username> <email> <password>")
		}
		account, err := deps.remote.Register(ctx, models.Account{Username: args[1], Email: args[2], Password: args[3]})
		if err != nil {
			return err
		}
		if err = deps.local.SaveAccount(ctx, account); err != nil {
			return err
		}
		fmt.Println("registered as", account.Username)
		return nil

	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: login <username> <password>")
		}
		account, err := deps.remote.Login(ctx, models.Account{Username: args[1], Password: args[2]})
		if err != nil {
			return err
		}
		if err = deps.local.SaveAccount(ctx, account); err != nil {
			return err
		}
		fmt.Println("logged in as", account.Username)
		deps.syncJob.Trigger()
		return nil

	case "thread":
		if len(args) < 2 {
			return fmt.Errorf("usage: thread <name>")
		}
		thread, err := deps.local.SaveThread(ctx, models.Thread{Name: strings.Join(args[1:], " ")})
		if err != nil {
			return err
		}
		fmt.Println("created thread", thread.LocalID)
		deps.syncJob.Trigger()
		return nil

	case "note":
		if len(args) < 3 {
			return fmt.Errorf("usage: note <thread-id> <text>")
		}
		note, err := deps.local.SaveNote(ctx, models.Note{ThreadLocalID: args[1], Text: strings.Join(args[2:], " ")})
		if err != nil {
			return err
		}
		fmt.Println("created note", note.LocalID)
		deps.syncJob.Trigger()
		return nil

	case "threads":
		threads, err := deps.local.ListThreads(ctx)
		if err != nil {
			return err
		}
		for _, thread := range threads {
			fmt.Printf("%s  %s  [%s]\n", thread.LocalID, thread.Name, thread.SyncStatus)
		}
		return nil

	case "notes":
		if len(args) != 2 {
			return fmt.Errorf("usage: notes <thread-id>")
		}
		notes, err := deps.local.ListNotes(ctx, args[1])
		if err != nil {
			return err
		}
		for _, note := range notes {
			fmt.Printf("%s  %s  [%s]\n", note.LocalID, note.Text, note.SyncStatus)
		}
		return nil

	case "rm-thread":
		if len(args) != 2 {
			return fmt.Errorf("usage: rm-thread <thread-id>")
		}
		if err := deps.local.DeleteThread(ctx, args[1], time.Now()); err != nil {
			return err
		}
		deps.syncJob.Trigger()
		return nil

	case "rm-note":
		if len(args) != 2 {
			return fmt.Errorf("usage: rm-note <note-id>")
		}
		if err := deps.local.DeleteNote(ctx, args[1], time.Now()); err != nil {
			return err
		}
		deps.syncJob.Trigger()
		return nil

	case "sync":
		deps.syncJob.Trigger()
		fmt.Println("sync requested")
		return nil

	case "pair":
		payload, err := deps.pairings.StartSession(ctx)
		if err != nil {
			return err
		}
		encoded, err := pairing.EncodeQR(payload)
		if err != nil {
			return err
		}
		fmt.Println("scan this payload from the web client:")
		fmt.Println(string(encoded))
		return nil

	case "unpair":
		deps.pairings.EndSession()
		fmt.Println("pairing session ended")
		return nil

	case "purge-remote":
		stats, err := deps.remote.PurgeRemoteData(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("purged %d threads, %d notes\n", stats.ThreadsDeleted, stats.NotesDeleted)
		return nil
	}

	return fmt.Errorf("unknown command %q", args[0])
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
