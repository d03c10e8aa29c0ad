// Package scoring defines the leaderboard submission contract shared by the
// games, the local SQLite store and the REST API.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
)

// GameID identifies a game on the leaderboard.
type GameID string

const (
	GameMemory      GameID = "memory"
	GameMinesweeper GameID = "minesweeper"
	GameSliding     GameID = "sliding_puzzle"
	Game2048        GameID = "2048"
)

// Games lists every leaderboard game in display order.
var Games = []GameID{GameMinesweeper, Game2048, GameMemory, GameSliding}

// ErrUnknownGame is returned for identifiers outside the fixed game set.
var ErrUnknownGame = errors.New("scoring: unknown game")

// Valid reports whether g is one of the four leaderboard games.
func (g GameID) Valid() bool {
	switch g {
	case GameMemory, GameMinesweeper, GameSliding, Game2048:
		return true
	}
	return false
}

// ParseGameID validates a raw identifier.
func ParseGameID(s string) (GameID, error) {
	g := GameID(s)
	if !g.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownGame, s)
	}
	return g, nil
}

// Submission is one finished game as sent to the leaderboard.
type Submission struct {
	Game        GameID `json:"game"`
	Difficulty  string `json:"difficulty"`
	Score       int    `json:"score"`
	Moves       int    `json:"moves"`
	TimeSeconds int    `json:"time_seconds"`
}

// Validate checks the fields the store requires.
func (s Submission) Validate() error {
	if !s.Game.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownGame, s.Game)
	}
	if s.Score < 0 || s.Moves < 0 || s.TimeSeconds < 0 {
		return errors.New("scoring: score, moves and time_seconds must not be negative")
	}
	return nil
}

// Record is a stored score row.
type Record struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Game        GameID    `json:"game"`
	Difficulty  string    `json:"difficulty"`
	Score       int       `json:"score"`
	Moves       int       `json:"moves"`
	TimeSeconds int       `json:"time_seconds"`
	PlayedAt    time.Time `json:"played_at"`
}

// Result is the outcome of a submission.
type Result struct {
	Success bool
	Data    *Record
	Error   string
}

// Submitter persists finished games.
type Submitter interface {
	Submit(ctx context.Context, s Submission) (Result, error)
}

// ShouldSubmit reports whether a game ending with outcome o goes to the
// leaderboard. 2048 submits on reaching the target and on loss; the other
// games submit wins only.
func ShouldSubmit(game GameID, o core.Outcome) bool {
	if game == Game2048 {
		return o == core.OutcomeWon || o == core.OutcomeLost
	}
	return o == core.OutcomeWon
}

// failed builds the Result/error pair for a failed submission.
func failed(err error) (Result, error) {
	return Result{Success: false, Error: err.Error()}, err
}
