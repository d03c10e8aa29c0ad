// Package httpapi serves the leaderboard REST API.
//
// Routes live under /api:
//   - /health
//   - /auth/register, /auth/login, /auth/logout, /auth/me, /auth/registered-players
//   - /scores (POST), /scores/top/{game}, /scores/user/me, /scores/stats, /scores/games
//
// Tokens are HS256 JWTs sent as "Authorization: Bearer <token>". Logged-out
// tokens are remembered by jti until they expire. Leaderboard reads are
// cached and the cache is dropped whenever a score is saved.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/puzzle-arcade/internal/auth"
	"github.com/vovakirdan/puzzle-arcade/internal/cache"
	"github.com/vovakirdan/puzzle-arcade/internal/storage"
)

// Config holds the server settings.
type Config struct {
	Addr     string        // listen address, e.g. ":5000"
	Origin   string        // allowed CORS origin
	TopTTL   time.Duration // lifetime of cached leaderboard pages
	Logger   *log.Logger
	Timeout  time.Duration // per-request handler budget
	MaxItems int64         // cache capacity, per cache
}

// DefaultConfig returns the settings used by `arcade api`.
func DefaultConfig() Config {
	return Config{
		Addr:     ":5000",
		Origin:   "http://localhost:3000",
		TopTTL:   time.Minute,
		Timeout:  10 * time.Second,
		MaxItems: 10_000,
	}
}

// Server bundles the router and its collaborators.
type Server struct {
	r       *chi.Mux
	cfg     Config
	store   *storage.Store
	tokens  *auth.Issuer
	top     *cache.Cache
	topGen  atomic.Uint64 // part of every leaderboard key; bumped on each saved score
	revoked *cache.Cache
	log     *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, store *storage.Store, tokens *auth.Issuer) (*Server, error) {
	def := DefaultConfig()
	if cfg.TopTTL <= 0 {
		cfg.TopTTL = def.TopTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = def.MaxItems
	}
	if cfg.Origin == "" {
		cfg.Origin = def.Origin
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	top, err := cache.New(cfg.MaxItems, cfg.TopTTL)
	if err != nil {
		return nil, err
	}
	revoked, err := cache.New(cfg.MaxItems, tokens.TTL())
	if err != nil {
		top.Close()
		return nil, err
	}

	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		store:   store,
		tokens:  tokens,
		top:     top,
		revoked: revoked,
		log:     cfg.Logger,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.Timeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.Origin))

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Route("/auth", s.mountAuth)
		r.Route("/scores", s.mountScores)
	})

	return s, nil
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// Close releases the caches.
func (s *Server) Close() {
	s.top.Close()
	s.revoked.Close()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting API server", "addr", s.cfg.Addr, "origin", s.cfg.Origin)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Stopping API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
