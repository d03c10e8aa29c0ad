// arcade is a terminal puzzle arcade with a shared leaderboard.
//
// Usage:
//
//	arcade list              - List available games and difficulties
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade scores [game]     - Show the leaderboard
//	arcade serve             - Start SSH server for remote play
//	arcade api               - Start the leaderboard REST API
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--config <path>     - Per-game YAML config override
//	--player <name>     - Save scores locally as this player
//	--api-url, --token  - Submit scores to a leaderboard API instead
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
	"github.com/vovakirdan/puzzle-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/puzzle-arcade/internal/games/memory"
	_ "github.com/vovakirdan/puzzle-arcade/internal/games/minesweeper"
	_ "github.com/vovakirdan/puzzle-arcade/internal/games/sliding"
	_ "github.com/vovakirdan/puzzle-arcade/internal/games/t2048"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagPlayer string
	flagAPIURL string
	flagToken  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Puzzle Arcade - Play puzzle games in your terminal",
	Long: `Puzzle Arcade bundles Minesweeper, 2048, Memory and the Sliding Puzzle
with a shared leaderboard.

Scores are saved when you pass --player (local database) or
--api-url and --token (leaderboard API). Otherwise games are unranked.

Examples:
  arcade list
  arcade play minesweeper --difficulty hard --player alice
  arcade menu --api-url http://localhost:5000 --token $TOKEN
  arcade scores 2048
  arcade serve --ssh :2222
  arcade api`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to a game config YAML")
	pf.StringVar(&flagPlayer, "player", "", "Record scores in the local database under this name")
	pf.StringVar(&flagAPIURL, "api-url", "", "Leaderboard API base URL (e.g. http://localhost:5000)")
	pf.StringVar(&flagToken, "token", "", "Bearer token for --api-url")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	return cfg
}

// submitter picks where finished games go: the API when --api-url is set,
// the local store when --player is set, nowhere otherwise.
func submitter(store *storage.Store) (scoring.Submitter, error) {
	switch {
	case flagAPIURL != "":
		if flagToken == "" {
			return nil, errors.New("--api-url needs --token")
		}
		return scoring.NewHTTPSubmitter(flagAPIURL, flagToken), nil

	case flagPlayer != "":
		if store == nil {
			return nil, errors.New("--player needs a scores database")
		}
		return scoring.LocalSubmitter{Store: store, Username: flagPlayer}, nil
	}
	return scoring.NopSubmitter{}, nil
}
