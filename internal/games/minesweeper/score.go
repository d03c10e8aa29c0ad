package minesweeper

import (
	"math"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
)

// AllFlaggedBonus is added when the player flagged every mine.
const AllFlaggedBonus = 200

// ScoreInput is everything a won game's score depends on.
type ScoreInput struct {
	TimeSeconds int
	Difficulty  config.Difficulty
	AllFlagged  bool
}

// ComputeScore returns max(100, (1000 - time*10) * multiplier + bonus).
// Only wins are scored.
func ComputeScore(in ScoreInput) int {
	total := float64(1000-in.TimeSeconds*10) * config.Multiplier(in.Difficulty)
	if in.AllFlagged {
		total += AllFlaggedBonus
	}
	return int(math.Round(math.Max(100, total)))
}
