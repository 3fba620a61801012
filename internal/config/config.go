// Package config loads tui2048 settings from YAML and the environment.
package config

import "time"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the full application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game" envPrefix:"GAME_"`
	Storage StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
	Server  ServerConfig  `yaml:"server" envPrefix:"SERVER_"`
}

// GameConfig tunes the rules around a move.
type GameConfig struct {
	Spawn4Probability float64 `yaml:"spawn4_probability" env:"SPAWN4_PROBABILITY"`
	SpawnOnNoop       bool    `yaml:"spawn_on_noop" env:"SPAWN_ON_NOOP"`
	InitialTiles      int     `yaml:"initial_tiles" env:"INITIAL_TILES"`
	Debug             bool    `yaml:"debug" env:"DEBUG"`
}

// StorageConfig selects where high scores and games are kept.
type StorageConfig struct {
	Backend  string `yaml:"backend" env:"BACKEND"` // "file" or "sqlite"
	FilePath string `yaml:"file_path" env:"FILE_PATH"`
	DBPath   string `yaml:"db_path" env:"DB_PATH"`
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"` // empty logs to stderr
}

// ServerConfig holds the remote play listeners.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr" env:"SSH_ADDR"`
	HostKeyPath string        `yaml:"host_key_path" env:"HOST_KEY_PATH"`
	WSAddr      string        `yaml:"ws_addr" env:"WS_ADDR"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			Spawn4Probability: 0.1,
			InitialTiles:      1,
		},
		Storage: StorageConfig{
			Backend:  BackendFile,
			FilePath: "~/.tui2048/highscore",
			DBPath:   "~/.tui2048/tui2048.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.tui2048/tui2048.log",
		},
		Server: ServerConfig{
			SSHAddr:     ":23234",
			HostKeyPath: ".ssh/tui2048_ed25519",
			WSAddr:      ":8080",
			IdleTimeout: 10 * time.Minute,
		},
	}
}
