package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/puzzle-arcade/internal/platform/tui"
	"github.com/vovakirdan/puzzle-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Pick a game, then a difficulty. B or Esc goes back to the menu,
Tab opens the leaderboard.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Leaderboard
  B/Esc        - Back
  Q            - Quit

Examples:
  arcade menu
  arcade menu --player alice
  arcade menu --api-url http://localhost:5000 --token $TOKEN`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		if flagPlayer != "" {
			return err
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sub, err := submitter(store)
	if err != nil {
		return err
	}

	opts := tui.SessionOptions{
		Username:   flagPlayer,
		Config:     runtimeConfig(),
		ConfigPath: flagConfig,
		Submitter:  sub,
	}
	if store != nil {
		opts.Scores = store
	}
	return tui.RunSession(opts)
}
