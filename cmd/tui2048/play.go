package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of 2048.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  U/Ctrl+Z         - Undo the last move
  R                - New game
  ?                - Toggle help
  Q/Esc/Ctrl+C     - Quit

With --debug, 0 loads a board holding every tile from 2 to 32768 and
1 loads a board for checking merge rules.

Examples:
  tui2048 play
  tui2048 play --seed 42
  tui2048 play --config ./my-2048.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, extra, closeStore, err := openStore(cfg)
	if err != nil {
		// The game still works, only the high score is not kept
		fmt.Fprintf(os.Stderr, "Warning: could not open high score storage: %v\n", err)
		logger.Warn("storage unavailable", "error", err)
	}
	defer closeStore()

	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.Seed = flagSeed

	opts := append(sessionOptions(cfg), extra...)
	if err := tui.Run(store, opts, tui.Options{
		Runtime: rc,
		Debug:   cfg.Game.Debug,
		Logger:  logger,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
