package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/webclient"
	"github.com/noteleaf/noteleaf/models"
)

const (
	handshakeTimeout = 10 * time.Second

	// All web client instances on one machine rendezvous here to detect
	// each other.
	presenceAddr = "127.0.0.1:8219"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewDeviceLogger("noteleaf-web")

	sessionPath := os.Getenv("NOTELEAF_SESSION_FILE")
	if sessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("error resolving home directory")
		}
		sessionPath = filepath.Join(home, ".noteleaf", "web-session.json")
	}

	machine := webclient.NewMachine(
		webclient.WebsocketRelayListener{},
		webclient.NewHTTPHandshaker(handshakeTimeout),
		webclient.NewFileSessionStore(sessionPath),
		webclient.NewUDPPresenceBus(presenceAddr, log),
		nil,
		log,
	)
	machine.OnStateChange(func(state webclient.State, reason webclient.DisconnectReason) {
		if reason != webclient.ReasonNone {
			fmt.Printf("state: %s (%s)\n", state, reason)
			return
		}
		fmt.Printf("state: %s\n", state)
	})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	go machine.Run(ctx)

	runPrompt(ctx, machine)
}

// runPrompt reads commands from stdin until EOF, "quit" or signal
// cancellation.
func runPrompt(ctx context.Context, machine *webclient.Machine) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Println(`commands: pair <qr-json> | retry | disconnect | state | quit`)

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

		args := strings.SplitN(strings.TrimSpace(line), " ", 2)
		switch args[0] {
		case "":
			continue

		case "quit", "exit":
			return

		case "pair":
			if len(args) != 2 {
				fmt.Println("usage: pair <qr-json>")
				continue
			}
			var payload models.QRPayload
			if err := json.Unmarshal([]byte(args[1]), &payload); err != nil {
				fmt.Println("error: bad payload:", err)
				continue
			}
			machine.Pair(ctx, payload)

		case "retry":
			if err := machine.Retry(ctx); err != nil {
				fmt.Println("error:", err)
			}

		case "disconnect":
			machine.Disconnect()

		case "state":
			state, reason := machine.State()
			if reason != webclient.ReasonNone {
				fmt.Printf("%s (%s)\n", state, reason)
				continue
			}
			fmt.Println(state)

		default:
			fmt.Printf("unknown command %q\n", args[0])
		}
	}
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
