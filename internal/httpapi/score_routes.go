package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
	"github.com/vovakirdan/puzzle-arcade/internal/storage"
)

const (
	defaultTopLimit  = 10
	maxTopLimit      = 100
	defaultUserLimit = 20
)

func (s *Server) mountScores(r chi.Router) {
	r.With(s.requireAuth).Post("/", s.handleSaveScore)
	r.With(s.optionalAuth).Get("/top/{game}", s.handleTopScores)
	r.With(s.requireAuth).Get("/user/me", s.handleMyScores)
	r.Get("/stats", s.handleStats)
	r.Get("/games", s.handleGames)
}

// queryLimit parses ?limit=, falling back to def and capping at max.
func queryLimit(r *http.Request, def, max int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// saveScoreRequest tells a missing score apart from a score of 0.
type saveScoreRequest struct {
	Game        scoring.GameID `json:"game"`
	Difficulty  string         `json:"difficulty"`
	Score       *int           `json:"score"`
	Moves       int            `json:"moves"`
	TimeSeconds int            `json:"time_seconds"`
}

func (s *Server) handleSaveScore(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)

	var req saveScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Game == "" || req.Score == nil {
		writeError(w, http.StatusBadRequest, `The "game" and "score" fields are required`)
		return
	}
	sub := scoring.Submission{
		Game:        req.Game,
		Difficulty:  req.Difficulty,
		Score:       *req.Score,
		Moves:       req.Moves,
		TimeSeconds: req.TimeSeconds,
	}
	if err := sub.Validate(); err != nil {
		if errors.Is(err, scoring.ErrUnknownGame) {
			writeError(w, http.StatusBadRequest, invalidGameMessage())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.store.SaveScore(r.Context(), me.ID, sub)
	if err != nil {
		s.log.Error("Save score failed", "err", err, "user", me.Username)
		writeError(w, http.StatusInternalServerError, "Failed to save score")
		return
	}
	s.topGen.Add(1)
	s.top.Clear()

	s.log.Info("Score saved", "user", me.Username, "game", sub.Game, "score", sub.Score, "id", rec.ID)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Score saved successfully",
		"score":   rec,
	})
}

type topRow struct {
	Rank          int       `json:"rank"`
	Username      string    `json:"username"`
	Difficulty    string    `json:"difficulty"`
	Score         int       `json:"score"`
	Moves         int       `json:"moves"`
	TimeSeconds   int       `json:"time_seconds"`
	PlayedAt      time.Time `json:"played_at"`
	IsCurrentUser bool      `json:"is_current_user"`
}

func (s *Server) handleTopScores(w http.ResponseWriter, r *http.Request) {
	game, err := scoring.ParseGameID(chi.URLParam(r, "game"))
	if err != nil {
		writeError(w, http.StatusBadRequest, invalidGameMessage())
		return
	}
	difficulty := r.URL.Query().Get("difficulty")
	limit := queryLimit(r, defaultTopLimit, maxTopLimit)

	entries, err := s.topScores(r, game, difficulty, limit)
	if err != nil {
		s.log.Error("Top scores failed", "err", err, "game", game)
		writeError(w, http.StatusInternalServerError, "Failed to load scores")
		return
	}

	me := currentUser(r)
	rows := make([]topRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, topRow{
			Rank:          e.Rank,
			Username:      e.Username,
			Difficulty:    e.Difficulty,
			Score:         e.Score,
			Moves:         e.Moves,
			TimeSeconds:   e.TimeSeconds,
			PlayedAt:      e.PlayedAt,
			IsCurrentUser: me != nil && e.UserID == me.ID,
		})
	}

	label := difficulty
	if label == "" {
		label = "all"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"game":       game,
		"difficulty": label,
		"scores":     rows,
		"count":      len(rows),
	})
}

// topKey names a leaderboard page in the current score generation. A page
// read before a save is stored under the old generation and never served.
func (s *Server) topKey(game scoring.GameID, difficulty string, limit int) string {
	return fmt.Sprintf("top|%d|%s|%s|%d", s.topGen.Load(), game, difficulty, limit)
}

// topScores reads a leaderboard page through the cache.
func (s *Server) topScores(r *http.Request, game scoring.GameID, difficulty string, limit int) ([]storage.TopScore, error) {
	key := s.topKey(game, difficulty, limit)
	if v, ok := s.top.Get(key); ok {
		return v.([]storage.TopScore), nil
	}
	entries, err := s.store.TopScores(r.Context(), game, difficulty, limit)
	if err != nil {
		return nil, err
	}
	s.top.Set(key, entries)
	return entries, nil
}

func (s *Server) handleMyScores(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)

	var game scoring.GameID
	if raw := r.URL.Query().Get("game"); raw != "" {
		g, err := scoring.ParseGameID(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, invalidGameMessage())
			return
		}
		game = g
	}
	limit := queryLimit(r, defaultUserLimit, maxTopLimit)

	scores, err := s.store.UserScores(r.Context(), me.ID, game, limit)
	if err != nil {
		s.log.Error("User scores failed", "err", err, "user", me.Username)
		writeError(w, http.StatusInternalServerError, "Failed to load your scores")
		return
	}
	best, err := s.store.UserBestScores(r.Context(), me.ID, game)
	if err != nil {
		s.log.Error("Best scores failed", "err", err, "user", me.Username)
		writeError(w, http.StatusInternalServerError, "Failed to load your scores")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":       me.ID,
			"username": me.Username,
		},
		"scores":      scores,
		"best_scores": best,
		"total_games": len(scores),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.log.Error("Stats failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to load statistics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"stats":        stats.Games,
		"recent_games": stats.Recent,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

type gameInfo struct {
	ID           scoring.GameID `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Difficulties []string       `json:"difficulties"`
	Metrics      []string       `json:"metrics"`
}

var catalogue = []gameInfo{
	{
		ID:           scoring.GameMemory,
		Name:         "Memory Match",
		Description:  "Test your memory with card matching",
		Difficulties: []string{"easy", "medium", "hard"},
		Metrics:      []string{"moves", "time"},
	},
	{
		ID:           scoring.GameMinesweeper,
		Name:         "Minesweeper",
		Description:  "Find mines without detonating them",
		Difficulties: []string{"easy", "medium", "hard"},
		Metrics:      []string{"time", "flags"},
	},
	{
		ID:           scoring.GameSliding,
		Name:         "Sliding Puzzle",
		Description:  "Slide tiles to arrange them in order",
		Difficulties: []string{"easy", "medium", "hard"},
		Metrics:      []string{"moves", "time"},
	},
	{
		ID:           scoring.Game2048,
		Name:         "2048",
		Description:  "Join numbers to get to the 2048 tile",
		Difficulties: []string{"standard"},
		Metrics:      []string{"score", "moves"},
	},
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"games":   catalogue,
		"count":   len(catalogue),
	})
}

func invalidGameMessage() string {
	msg := "Invalid game. Must be one of:"
	for i, g := range scoring.Games {
		if i > 0 {
			msg += ","
		}
		msg += " " + string(g)
	}
	return msg
}
