// goldstub runs the in-memory gold API double on a local port. It
// exists for development without the real backend: goldfront pointed
// at it exercises every endpoint, and the seeded data gives the
// dashboard something to show.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/Obkeldiyev/gold-front/pkg/stub"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "9000"
	}

	var seed bool
	flags := pflag.NewFlagSet("goldstub", pflag.ContinueOnError)
	flags.StringVar(&port, "port", port, "port to listen on")
	flags.BoolVar(&seed, "seed", true, "seed a starting balance and two branches")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	server := stub.NewServer(logger)
	if seed {
		server.SeedBalance(1000)
		server.SeedBranch("Alpha", 500)
		server.SeedBranch("Beta", 250)
	}

	logger.Info("starting stub gold API",
		"port", port,
		"admin_user", stub.DefaultAdminUser,
	)
	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
