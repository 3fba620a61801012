package session

import (
	"strings"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Command is a move request coming from an input collaborator.
// The zero value is CommandInvalid, which is always a silent no-op.
type Command int

const (
	CommandInvalid Command = iota
	CommandUp
	CommandDown
	CommandLeft
	CommandRight
	CommandDebug
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandUp:
		return "up"
	case CommandDown:
		return "down"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandDebug:
		return "debug"
	default:
		return "invalid"
	}
}

// Direction returns the move direction for directional commands.
func (c Command) Direction() (engine.Direction, bool) {
	switch c {
	case CommandUp:
		return engine.DirUp, true
	case CommandDown:
		return engine.DirDown, true
	case CommandLeft:
		return engine.DirLeft, true
	case CommandRight:
		return engine.DirRight, true
	}
	return 0, false
}

var directionCommands = [...]Command{
	engine.DirUp:    CommandUp,
	engine.DirDown:  CommandDown,
	engine.DirLeft:  CommandLeft,
	engine.DirRight: CommandRight,
}

// ParseCommand maps a command name to a Command. Unrecognized input maps to
// CommandInvalid.
func ParseCommand(s string) Command {
	if dir, ok := engine.ParseDirection(s); ok {
		return directionCommands[dir]
	}
	if strings.EqualFold(strings.TrimSpace(s), "debug") {
		return CommandDebug
	}
	return CommandInvalid
}
