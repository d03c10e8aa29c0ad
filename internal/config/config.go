// Package config provides YAML-based game configuration loading and the
// closed set of difficulty keys shared by the puzzle games.
package config

import (
	"fmt"
	"slices"
)

// Difficulty is a difficulty key as shown to players and stored with scores.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyStandard Difficulty = "standard" // 2048 only
)

// Multiplier returns the score multiplier for a difficulty.
// Multipliers are fixed so leaderboards stay comparable across config files.
func Multiplier(d Difficulty) float64 {
	switch d {
	case DifficultyMedium:
		return 1.5
	case DifficultyHard:
		return 2
	default:
		return 1
	}
}

// ConfigurationError reports an unknown difficulty key or an unusable preset.
type ConfigurationError struct {
	Game   string
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("config: %s difficulty %q: %s", e.Game, e.Key, e.Reason)
	}
	return fmt.Sprintf("config: unknown %s difficulty %q", e.Game, e.Key)
}

// MinesweeperConfig contains board presets for Minesweeper.
type MinesweeperConfig struct {
	ResultDelayMS int                              `yaml:"result_delay_ms"`
	Presets       map[Difficulty]MinesweeperPreset `yaml:"presets"`
}

// MinesweeperPreset is the board shape for one difficulty.
type MinesweeperPreset struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Mines int `yaml:"mines"`
}

// T2048Config contains the 2048 ruleset.
type T2048Config struct {
	Target               int          `yaml:"target"`
	SpawnFourProbability float64      `yaml:"spawn_four_probability"`
	InitialTiles         int          `yaml:"initial_tiles"`
	Difficulties         []Difficulty `yaml:"difficulties"`
}

// MemoryConfig contains deck presets for Memory Match.
type MemoryConfig struct {
	MismatchDelayMS int                         `yaml:"mismatch_delay_ms"`
	Symbols         []string                    `yaml:"symbols"`
	Presets         map[Difficulty]MemoryPreset `yaml:"presets"`
}

// MemoryPreset is the deck size for one difficulty.
type MemoryPreset struct {
	Pairs int `yaml:"pairs"`
}

// SlidingConfig contains grid presets for the sliding puzzle.
type SlidingConfig struct {
	ShuffleFactor int                          `yaml:"shuffle_factor"`
	Presets       map[Difficulty]SlidingPreset `yaml:"presets"`
}

// SlidingPreset is the grid size for one difficulty.
type SlidingPreset struct {
	Size int `yaml:"size"`
}

// Preset resolves a difficulty key to its board shape.
func (c MinesweeperConfig) Preset(key string) (MinesweeperPreset, error) {
	p, ok := c.Presets[Difficulty(key)]
	if !ok {
		return p, &ConfigurationError{Game: "minesweeper", Key: key}
	}
	if p.Rows <= 0 || p.Cols <= 0 || p.Mines <= 0 {
		return p, &ConfigurationError{Game: "minesweeper", Key: key, Reason: "rows, cols and mines must be positive"}
	}
	if p.Mines >= p.Rows*p.Cols {
		return p, &ConfigurationError{Game: "minesweeper", Key: key, Reason: "too many mines for the board"}
	}
	return p, nil
}

// Resolve validates a 2048 difficulty key.
func (c T2048Config) Resolve(key string) (Difficulty, error) {
	d := Difficulty(key)
	if !slices.Contains(c.Difficulties, d) {
		return d, &ConfigurationError{Game: "2048", Key: key}
	}
	if c.InitialTiles < 1 || c.InitialTiles > 16 {
		return d, &ConfigurationError{Game: "2048", Key: key, Reason: "initial_tiles must be between 1 and 16"}
	}
	if c.SpawnFourProbability < 0 || c.SpawnFourProbability > 1 {
		return d, &ConfigurationError{Game: "2048", Key: key, Reason: "spawn_four_probability must be within [0, 1]"}
	}
	return d, nil
}

// Preset resolves a difficulty key to its deck size.
func (c MemoryConfig) Preset(key string) (MemoryPreset, error) {
	p, ok := c.Presets[Difficulty(key)]
	if !ok {
		return p, &ConfigurationError{Game: "memory", Key: key}
	}
	if p.Pairs <= 0 || p.Pairs > len(c.Symbols) {
		return p, &ConfigurationError{Game: "memory", Key: key, Reason: fmt.Sprintf("pairs must be between 1 and %d", len(c.Symbols))}
	}
	return p, nil
}

// Preset resolves a difficulty key to its grid size.
func (c SlidingConfig) Preset(key string) (SlidingPreset, error) {
	p, ok := c.Presets[Difficulty(key)]
	if !ok {
		return p, &ConfigurationError{Game: "sliding_puzzle", Key: key}
	}
	if p.Size < 2 {
		return p, &ConfigurationError{Game: "sliding_puzzle", Key: key, Reason: "size must be at least 2"}
	}
	return p, nil
}

// Keys returns the difficulty keys of a preset map in easy, medium, hard order.
func Keys[P any](presets map[Difficulty]P) []Difficulty {
	order := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyStandard}
	var keys []Difficulty
	for _, d := range order {
		if _, ok := presets[d]; ok {
			keys = append(keys, d)
		}
	}
	var extra []Difficulty
	for d := range presets {
		if !slices.Contains(order, d) {
			extra = append(extra, d)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}
