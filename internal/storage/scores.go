package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
)

// TopScore is one leaderboard row.
type TopScore struct {
	Rank        int       `json:"rank"`
	UserID      int64     `json:"-"`
	Username    string    `json:"username"`
	Difficulty  string    `json:"difficulty"`
	Score       int       `json:"score"`
	Moves       int       `json:"moves"`
	TimeSeconds int       `json:"time_seconds"`
	PlayedAt    time.Time `json:"played_at"`
}

// BestScore is a player's best result in one game.
type BestScore struct {
	Game      scoring.GameID `json:"game"`
	BestScore int            `json:"best_score"`
}

// GameStats aggregates every score of one game.
type GameStats struct {
	Game          scoring.GameID `json:"game"`
	TotalGames    int            `json:"total_games"`
	UniquePlayers int            `json:"unique_players"`
	HighestScore  int            `json:"highest_score"`
	AverageScore  float64        `json:"average_score"`
}

// RecentGame is a recent score with its player's name.
type RecentGame struct {
	scoring.Record
	Username string `json:"username"`
}

// Stats is the site-wide summary.
type Stats struct {
	Games  []GameStats
	Recent []RecentGame
}

const recordColumns = "s.id, s.user_id, s.game, s.difficulty, s.score, s.moves, s.time_seconds, s.played_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner, extra ...any) (scoring.Record, error) {
	var r scoring.Record
	var playedAt any
	dest := append([]any{&r.ID, &r.UserID, &r.Game, &r.Difficulty, &r.Score, &r.Moves, &r.TimeSeconds, &playedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return r, err
	}
	r.PlayedAt = parseTime(playedAt)
	return r, nil
}

// SaveScore records a finished game for userID.
func (s *Store) SaveScore(ctx context.Context, userID int64, sub scoring.Submission) (scoring.Record, error) {
	if err := sub.Validate(); err != nil {
		return scoring.Record{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (user_id, game, difficulty, score, moves, time_seconds)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, string(sub.Game), sub.Difficulty, sub.Score, sub.Moves, sub.TimeSeconds,
	)
	if err != nil {
		return scoring.Record{}, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return scoring.Record{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	rec, err := scanRecord(s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM scores s WHERE s.id = ?", id))
	if err != nil {
		return scoring.Record{}, fmt.Errorf("storage: cannot read saved score: %w", err)
	}
	return rec, nil
}

// RecordScore saves a score for a local player, creating the account on
// first use. It implements scoring.Recorder.
func (s *Store) RecordScore(ctx context.Context, username string, sub scoring.Submission) (scoring.Record, error) {
	u, err := s.EnsureLocalUser(ctx, username)
	if err != nil {
		return scoring.Record{}, err
	}
	return s.SaveScore(ctx, u.ID, sub)
}

var _ scoring.Recorder = (*Store)(nil)

// TopScores retrieves the best scores for a game, optionally restricted to
// one difficulty. Results are ordered by score descending, then by time.
func (s *Store) TopScores(ctx context.Context, game scoring.GameID, difficulty string, limit int) ([]TopScore, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT s.user_id, u.username, s.difficulty, s.score, s.moves, s.time_seconds, s.played_at
		 FROM scores s JOIN users u ON u.id = s.user_id
		 WHERE s.game = ?`
	args := []any{string(game)}
	if difficulty != "" {
		query += " AND s.difficulty = ?"
		args = append(args, difficulty)
	}
	query += " ORDER BY s.score DESC, s.time_seconds ASC, s.id ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	entries := []TopScore{}
	for rows.Next() {
		var e TopScore
		var playedAt any
		if err := rows.Scan(&e.UserID, &e.Username, &e.Difficulty, &e.Score, &e.Moves, &e.TimeSeconds, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.PlayedAt = parseTime(playedAt)
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// UserScores lists a player's scores, newest first. An empty game matches
// every game.
func (s *Store) UserScores(ctx context.Context, userID int64, game scoring.GameID, limit int) ([]scoring.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	query := "SELECT " + recordColumns + " FROM scores s WHERE s.user_id = ?"
	args := []any{userID}
	if game != "" {
		query += " AND s.game = ?"
		args = append(args, string(game))
	}
	query += " ORDER BY s.played_at DESC, s.id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user scores: %w", err)
	}
	defer rows.Close()

	records := []scoring.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// UserBestScores returns a player's highest score per game. An empty game
// matches every game.
func (s *Store) UserBestScores(ctx context.Context, userID int64, game scoring.GameID) ([]BestScore, error) {
	query := "SELECT game, MAX(score) FROM scores WHERE user_id = ?"
	args := []any{userID}
	if game != "" {
		query += " AND game = ?"
		args = append(args, string(game))
	}
	query += " GROUP BY game ORDER BY game"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best scores: %w", err)
	}
	defer rows.Close()

	best := []BestScore{}
	for rows.Next() {
		var b BestScore
		if err := rows.Scan(&b.Game, &b.BestScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best = append(best, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// HighScore returns the highest score for a game, or 0 when none exist.
func (s *Store) HighScore(ctx context.Context, game scoring.GameID) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE game = ?",
		string(game),
	).Scan(&score)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(score.Int64), nil
}

// Stats aggregates scores per game and lists the five most recent games.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game, COUNT(*), COUNT(DISTINCT user_id), MAX(score), AVG(score)
		 FROM scores
		 GROUP BY game
		 ORDER BY game`,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	defer rows.Close()

	stats := Stats{Games: []GameStats{}, Recent: []RecentGame{}}
	for rows.Next() {
		var g GameStats
		if err := rows.Scan(&g.Game, &g.TotalGames, &g.UniquePlayers, &g.HighestScore, &g.AverageScore); err != nil {
			return Stats{}, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.Games = append(stats.Games, g)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	recent, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+", u.username FROM scores s JOIN users u ON u.id = s.user_id ORDER BY s.played_at DESC, s.id DESC LIMIT 5",
	)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get recent games: %w", err)
	}
	defer recent.Close()

	for recent.Next() {
		var g RecentGame
		rec, err := scanRecord(recent, &g.Username)
		if err != nil {
			return Stats{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.Record = rec
		stats.Recent = append(stats.Recent, g)
	}
	if err := recent.Err(); err != nil {
		return Stats{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(ctx context.Context, game scoring.GameID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM scores WHERE game = ?", string(game))
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
