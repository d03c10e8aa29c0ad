package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/puzzle-arcade/internal/auth"
	"github.com/vovakirdan/puzzle-arcade/internal/httpapi"
	"github.com/vovakirdan/puzzle-arcade/internal/storage"
)

var (
	flagAPIAddr   string
	flagAPIOrigin string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the leaderboard REST API",
	Long: `Serve accounts and the shared leaderboard over HTTP.

Settings are read from the environment (a .env file in the working
directory is loaded first):

  JWT_SECRET        - HMAC secret for tokens (required)
  JWT_EXPIRES_DAYS  - token lifetime in days (default 7)
  PORT              - listen port (default 5000, --addr wins)
  CLIENT_ORIGIN     - allowed CORS origin (default http://localhost:3000)
  ARCADE_DB         - database path (default --db)

Examples:
  JWT_SECRET=change-me arcade api
  arcade api --addr :8080 --db ./scores.db`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "Listen address (default :$PORT)")
	apiCmd.Flags().StringVar(&flagAPIOrigin, "origin", "", "Allowed CORS origin (default $CLIENT_ORIGIN)")
}

func runAPI(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-api",
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	ttl := auth.DefaultTTL
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return errors.New("JWT_EXPIRES_DAYS must be a positive integer")
		}
		ttl = time.Duration(days) * 24 * time.Hour
	}

	cfg := httpapi.DefaultConfig()
	cfg.Logger = logger
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if flagAPIAddr != "" {
		cfg.Addr = flagAPIAddr
	}
	if origin := os.Getenv("CLIENT_ORIGIN"); origin != "" {
		cfg.Origin = origin
	}
	if flagAPIOrigin != "" {
		cfg.Origin = flagAPIOrigin
	}

	dbPath := flagDBPath
	if v := os.Getenv("ARCADE_DB"); v != "" && !cmd.Flags().Changed("db") {
		dbPath = v
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := httpapi.New(cfg, store, auth.NewIssuer(secret, ttl))
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("using database", "path", dbPath)
	return srv.ListenAndServe(ctx)
}
