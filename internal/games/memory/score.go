package memory

import (
	"math"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
)

// ScoreInput is everything a completed game's score depends on.
type ScoreInput struct {
	Moves       int
	TimeSeconds int
	Difficulty  config.Difficulty
}

// ComputeScore returns round(max(100, 1000 - moves*10 - time*2) * multiplier).
func ComputeScore(in ScoreInput) int {
	base := math.Max(100, float64(1000-in.Moves*10-in.TimeSeconds*2))
	return int(math.Round(base * config.Multiplier(in.Difficulty)))
}
