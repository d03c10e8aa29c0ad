package config

import (
	_ "embed"
)

//go:embed defaults/minesweeper.yaml
var defaultMinesweeperYAML []byte

//go:embed defaults/2048.yaml
var defaultT2048YAML []byte

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

//go:embed defaults/sliding_puzzle.yaml
var defaultSlidingYAML []byte

// DefaultMinesweeperConfig returns the built-in Minesweeper presets.
func DefaultMinesweeperConfig() MinesweeperConfig {
	return MinesweeperConfig{
		ResultDelayMS: 500,
		Presets: map[Difficulty]MinesweeperPreset{
			DifficultyEasy:   {Rows: 8, Cols: 10, Mines: 10},
			DifficultyMedium: {Rows: 14, Cols: 18, Mines: 40},
			DifficultyHard:   {Rows: 20, Cols: 24, Mines: 99},
		},
	}
}

// DefaultT2048Config returns the built-in 2048 ruleset.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Target:               2048,
		SpawnFourProbability: 0.1,
		InitialTiles:         2,
		Difficulties: []Difficulty{
			DifficultyStandard, DifficultyEasy, DifficultyMedium, DifficultyHard,
		},
	}
}

// DefaultMemoryConfig returns the built-in Memory Match presets.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		MismatchDelayMS: 1000,
		Symbols:         []string{"@", "#", "$", "%", "&", "*", "+", "=", "?", "!", "~", "^"},
		Presets: map[Difficulty]MemoryPreset{
			DifficultyEasy:   {Pairs: 6},
			DifficultyMedium: {Pairs: 8},
			DifficultyHard:   {Pairs: 10},
		},
	}
}

// DefaultSlidingConfig returns the built-in sliding puzzle presets.
func DefaultSlidingConfig() SlidingConfig {
	return SlidingConfig{
		ShuffleFactor: 20,
		Presets: map[Difficulty]SlidingPreset{
			DifficultyEasy:   {Size: 3},
			DifficultyMedium: {Size: 4},
			DifficultyHard:   {Size: 5},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "minesweeper":
		return defaultMinesweeperYAML
	case "2048":
		return defaultT2048YAML
	case "memory":
		return defaultMemoryYAML
	case "sliding_puzzle":
		return defaultSlidingYAML
	default:
		return nil
	}
}
