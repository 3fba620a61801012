package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// loadConfig reads the configuration and applies the global flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Game.Debug = flagDebug
	}
	return cfg, nil
}

// sessionOptions turns the game section into session options.
func sessionOptions(cfg config.Config) []session.Option {
	return []session.Option{
		session.WithSpawn4Probability(cfg.Game.Spawn4Probability),
		session.WithSpawnOnNoop(cfg.Game.SpawnOnNoop),
		session.WithInitialTiles(cfg.Game.InitialTiles),
		session.WithDebug(cfg.Game.Debug),
	}
}

// openStore opens the configured high score backend. The SQLite backend
// also records finished games. The returned close func is never nil.
func openStore(cfg config.Config) (session.HighScoreStore, []session.Option, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := storage.OpenSQLite(cfg.Storage.DBPath)
		if err != nil {
			return nil, nil, noop, err
		}
		return db, []session.Option{session.WithRecorder(db)}, db.Close, nil
	default:
		fs, err := storage.NewFileStore(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, noop, err
		}
		return fs, nil, noop, nil
	}
}

// newLogger builds the application logger. A terminal game cannot log to
// stderr, so toFile sends output to the configured log file instead.
func newLogger(cfg config.Config, toFile bool) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if toFile {
		out = io.Discard
		if cfg.Log.File != "" {
			path, err := storage.ExpandPath(cfg.Log.File)
			if err != nil {
				return nil, nil, err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to open log file: %w", err)
			}
			out = f
			closeFn = f.Close
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "tui2048",
	})
	return logger, closeFn, nil
}
