package sliding

import (
	"math"

	"github.com/vovakirdan/puzzle-arcade/internal/config"
)

// ScoreInput is everything a solved puzzle's score depends on.
type ScoreInput struct {
	Moves       int
	TimeSeconds int
	Difficulty  config.Difficulty
}

// ComputeScore returns round(max(100, 1000 - moves*5 - time*3) * multiplier).
func ComputeScore(in ScoreInput) int {
	base := math.Max(100, float64(1000-in.Moves*5-in.TimeSeconds*3))
	return int(math.Round(base * config.Multiplier(in.Difficulty)))
}
