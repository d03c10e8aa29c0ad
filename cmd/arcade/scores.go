package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/puzzle-arcade/internal/games/hud"
	"github.com/vovakirdan/puzzle-arcade/internal/platform/tui"
	"github.com/vovakirdan/puzzle-arcade/internal/registry"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
	"github.com/vovakirdan/puzzle-arcade/internal/storage"
)

var (
	flagScoresDifficulty string
	flagScoresLimit      int
	flagScoresClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the leaderboard",
	Long: `Without a game, opens the interactive leaderboard.
With a game, prints its top scores.

Examples:
  arcade scores
  arcade scores minesweeper --difficulty hard
  arcade scores 2048 --limit 25
  arcade scores memory --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only show this difficulty")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to print")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	game, err := scoring.ParseGameID(args[0])
	if err != nil {
		return err
	}
	info, _ := registry.Info(string(game))
	ctx := context.Background()

	if flagScoresClear {
		if err := store.ClearScores(ctx, game); err != nil {
			return err
		}
		fmt.Printf("Cleared all %s scores.\n", info.Title)
		return nil
	}

	scores, err := store.TopScores(ctx, game, flagScoresDifficulty, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := info.Title
	if flagScoresDifficulty != "" {
		title += " (" + flagScoresDifficulty + ")"
	}
	fmt.Printf("High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s --player <name>' to set the first high score!\n", game)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-8s  %-6s  %-6s  %s\n", "Rank", "Player", "Diff", "Score", "Moves", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-8s  %-6s  %-6s  %s\n", "----", "------", "----", "-----", "-----", "----", "----")
	for _, s := range scores {
		fmt.Printf("  %-4d  %-16s  %-8s  %-8d  %-6d  %-6s  %s\n",
			s.Rank, s.Username, s.Difficulty, s.Score, s.Moves,
			hud.Clock(s.TimeSeconds),
			s.PlayedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
