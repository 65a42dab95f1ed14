// goldfront is the terminal dashboard for the gold back office. It
// signs in against the gateway, restores a persisted session when one
// exists and drives every balance, branch, transfer and ledger
// operation through the shared workflow rules.
package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/Obkeldiyev/gold-front/pkg/cache"
	"github.com/Obkeldiyev/gold-front/pkg/gateway"
	"github.com/Obkeldiyev/gold-front/pkg/ledger"
	"github.com/Obkeldiyev/gold-front/pkg/resources"
	"github.com/Obkeldiyev/gold-front/pkg/session"
	"github.com/Obkeldiyev/gold-front/pkg/transfer"
	"github.com/Obkeldiyev/gold-front/pkg/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	defaultBase := os.Getenv("GOLD_API_URL")
	if defaultBase == "" {
		defaultBase = "http://localhost:9000"
	}

	var baseURL string
	var sessionPath string
	var logOutput string

	flags := pflag.NewFlagSet("goldfront", pflag.ContinueOnError)
	flags.StringVar(&baseURL, "api", defaultBase, "base URL of the gold API gateway")
	flags.StringVar(&sessionPath, "session", "", "path of the persisted session file (default: user config dir)")
	flags.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if logOutput != "" {
		f, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log output: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewJSONHandler(f, nil))
	}

	if sessionPath == "" {
		sessionPath = session.DefaultSessionPath()
	}

	storage := session.NewFileStorage(sessionPath)
	sessions := session.NewStore(storage, nil)
	gw := gateway.New(baseURL, sessions, sessions, logger)
	api := resources.New(gw, sessions)
	sessions.SetAuthenticator(api)

	caches := cache.NewStore()
	workflow := transfer.New(api, caches, logger)
	view := ledger.New(api, caches, logger)

	app := tui.NewApp(tui.Deps{
		Session:  sessions,
		API:      api,
		Workflow: workflow,
		Ledger:   view,
		Caches:   caches,
		Gateway:  gw,
		Logger:   logger,
	})

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
