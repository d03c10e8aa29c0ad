package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMinesweeper loads Minesweeper configuration.
// Search order: customPath -> ~/.arcade/configs/minesweeper.yaml -> ./configs/minesweeper.yaml -> embedded default
func LoadMinesweeper(customPath string) (MinesweeperConfig, error) {
	return load("minesweeper", customPath, DefaultMinesweeperConfig)
}

// LoadT2048 loads the 2048 ruleset using the same search order.
func LoadT2048(customPath string) (T2048Config, error) {
	return load("2048", customPath, DefaultT2048Config)
}

// LoadMemory loads Memory Match configuration using the same search order.
func LoadMemory(customPath string) (MemoryConfig, error) {
	return load("memory", customPath, DefaultMemoryConfig)
}

// LoadSliding loads sliding puzzle configuration using the same search order.
func LoadSliding(customPath string) (SlidingConfig, error) {
	return load("sliding_puzzle", customPath, DefaultSlidingConfig)
}

// load walks the search order for one game. Values missing from a file keep
// the hardcoded defaults. Only an explicit customPath may fail the load;
// broken files in the implicit locations are skipped.
func load[T any](gameID, customPath string, defaults func() T) (T, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return defaults(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(data, defaults)
		if err != nil {
			return defaults(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := gameID + ".yaml"
	candidates := []string{filepath.Join("configs", filename)}
	if p := userConfigPath(filename); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data, defaults); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := decode(GetDefaultYAML(gameID), defaults); err == nil {
		return cfg, nil
	}
	return defaults(), nil
}

// decode strictly unmarshals YAML on top of the defaults so typos in keys are
// reported instead of silently ignored.
func decode[T any](data []byte, defaults func() T) (T, error) {
	cfg := defaults()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return defaults(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
