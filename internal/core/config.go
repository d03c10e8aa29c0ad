package core

// RuntimeConfig is handed to games when they are reset.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Platform ticks per second (default 30)
	Seed       int64  // RNG seed; 0 means the platform picks one from the clock
	Difficulty string // Difficulty key, validated by the game on Reset
	ConfigPath string // Optional game YAML override; empty uses the search path
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the platform-facing summary of a running game.
type GameState struct {
	Score    int     // Live in-game score (2048 score, revealed cells, pairs)
	GameOver bool    // The result screen is showing
	Paused   bool    // Whether the game is paused
	Outcome  Outcome // Terminal outcome once the engine has finished
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State  GameState
	Events []Event
}
