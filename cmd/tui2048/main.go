// tui2048 is the 2048 sliding tile game for the terminal.
//
// Usage:
//
//	tui2048                  - Play a game (same as tui2048 play)
//	tui2048 play             - Play a game
//	tui2048 serve            - Serve games over SSH and WebSocket
//	tui2048 scores           - Show recorded games
//
// Global flags:
//
//	--config <path> - Path to a YAML config file
//	--seed <value>  - Set RNG seed for reproducible games
//	--debug         - Enable the debug boards
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagSeed   int64
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tui2048",
	Short: "2048 in your terminal",
	Long: `tui2048 is the 2048 sliding tile game for the terminal.

Slide the tiles with the arrow keys (or WASD / HJKL). Equal tiles merge
and add their value to the score. Reach 2048 and keep going.

Available commands:
  play     - Play a game (default)
  serve    - Serve games over SSH and WebSocket
  scores   - View recorded games

Examples:
  tui2048
  tui2048 --seed 42
  tui2048 serve --ssh :2222 --ws :8080
  tui2048 scores --plain`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug boards")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
