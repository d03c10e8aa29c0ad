package t2048

import "math"

// ScoreInput is everything the leaderboard score depends on.
type ScoreInput struct {
	FinalScore  int
	HighestTile int
	Moves       int
	TimeSeconds int
}

// TileBonus rewards the highest tile reached.
func TileBonus(highest int) int {
	switch {
	case highest >= 2048:
		return 1000
	case highest >= 1024:
		return 500
	case highest >= 512:
		return 250
	case highest >= 256:
		return 100
	default:
		return 0
	}
}

// ComputeScore converts a finished (or won) game into a leaderboard score:
// max(100, score + tileBonus + min(500, score/moves*10) - time*2).
func ComputeScore(in ScoreInput) int {
	efficiency := 0.0
	if in.Moves > 0 {
		efficiency = float64(in.FinalScore) / float64(in.Moves)
	}
	efficiencyBonus := math.Min(500, efficiency*10)

	total := float64(in.FinalScore+TileBonus(in.HighestTile)) + efficiencyBonus - float64(in.TimeSeconds*2)
	return int(math.Round(math.Max(100, total)))
}

// ScoreInput builds the score input from the engine's current state.
func (e *Engine) ScoreInput(timeSeconds int) ScoreInput {
	return ScoreInput{
		FinalScore:  e.score,
		HighestTile: MaxTile(e.board),
		Moves:       e.moves,
		TimeSeconds: timeSeconds,
	}
}
