package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded games",
	Long: `Display the best and most recent games.

Games are recorded in the SQLite database (storage.db_path), so set
storage.backend to "sqlite" to keep a history.

Examples:
  tui2048 scores
  tui2048 scores --plain --limit 20
  tui2048 scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table instead of the interactive view")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to print with --plain")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the game history (the high score is kept)")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := storage.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer db.Close()

	if flagClear {
		if err := db.ClearGames(); err != nil {
			return err
		}
		fmt.Println("Game history cleared.")
		return nil
	}

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(db, width, height)
	}

	games, err := db.TopGames(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Best Games - 2048")
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tui2048' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "Rank", "Score", "Tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "----", "-----", "----", "-----", "----")
	for i, g := range games {
		fmt.Printf("  %-4d  %-10d  %-8d  %-6d  %s\n",
			i+1, g.Score, g.MaxTile, g.Moves, g.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := db.Stats(); err == nil {
		fmt.Printf("Games: %d  Best: %d  Average: %.0f  Best tile: %d\n",
			stats.GamesCount, stats.BestScore, stats.AvgScore, stats.BestTile)
	}
	if high, err := db.Load(); err == nil {
		fmt.Printf("High score: %d\n", high)
	}
	return nil
}
