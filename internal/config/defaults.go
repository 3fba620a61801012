package config

import (
	_ "embed"
)

//go:embed defaults/tui2048.yaml
var defaultYAML []byte
