package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/puzzle-arcade/internal/platform/tui"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
	"github.com/vovakirdan/puzzle-arcade/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD/HJKL - Move (2048 slides, others move the cursor)
  Enter/Space      - Reveal, flip or slide at the cursor
  F                - Flag / question mark (Minesweeper)
  P                - Pause
  R                - New game
  B/Esc            - Back
  Q/Ctrl+C         - Quit

Difficulty keys come from 'arcade list'. The first one is used when
--difficulty is omitted.

Examples:
  arcade play minesweeper
  arcade play minesweeper --difficulty hard --player alice
  arcade play sliding_puzzle --config ./my-sliding.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty key (see 'arcade list')")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		return fmt.Errorf("unknown game %q", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	cfg.Difficulty = flagDifficulty
	if cfg.Difficulty == "" && len(info.Difficulties) > 0 {
		cfg.Difficulty = info.Difficulties[0]
	}

	var store *storage.Store
	if flagPlayer != "" {
		if store, err = storage.Open(flagDBPath); err != nil {
			return err
		}
		defer store.Close()
	}

	sub, err := submitter(store)
	if err != nil {
		return err
	}

	return tui.Run(game, sub, cfg)
}
