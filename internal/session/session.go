// Package session orchestrates a 2048 game: it snapshots state for undo,
// applies moves through the engine, tracks the score and spawns new tiles,
// and reports every change as events.
//
// A Session is not safe for concurrent use. Each player (terminal, SSH
// connection, websocket) owns its own Session and drives it from a single
// goroutine.
package session

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// GameState is the observable state of a session.
type GameState struct {
	Board     engine.Board
	Score     int
	HighScore int
}

// GameResult summarizes a finished game.
type GameResult struct {
	Score   int
	MaxTile uint32
	Moves   int
}

// GameRecorder stores finished games.
type GameRecorder interface {
	RecordGame(result GameResult) error
}

// Result is returned by Move and Handle.
type Result struct {
	Outcome engine.MoveOutcome
	Spawn   *engine.SpawnResult // nil when no spawn was attempted
	Events  []Event
}

// Session runs one game.
type Session struct {
	board   engine.Board
	score   *ScoreTracker
	history History
	spawner *engine.Spawner

	renderer Renderer
	recorder GameRecorder
	logger   *log.Logger

	rng          engine.RandSource
	spawn4Prob   float64
	spawnOnNoop  bool
	initialTiles int
	debug        bool

	moves    int
	recorded bool
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the randomness source used for spawning.
func WithRand(rng engine.RandSource) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithSeed seeds the default randomness source.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSpawn4Probability sets the chance that a new tile is a 4.
func WithSpawn4Probability(p float64) Option {
	return func(s *Session) {
		s.spawn4Prob = p
	}
}

// WithSpawnOnNoop makes every move attempt spawn a tile, even when the
// move did not change the board.
func WithSpawnOnNoop(enabled bool) Option {
	return func(s *Session) {
		s.spawnOnNoop = enabled
	}
}

// WithInitialTiles sets how many tiles Reset places (default 1).
func WithInitialTiles(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.initialTiles = n
		}
	}
}

// WithDebug lets CommandDebug load the debug ladder board.
func WithDebug(enabled bool) Option {
	return func(s *Session) {
		s.debug = enabled
	}
}

// WithRenderer forwards every event to r.
func WithRenderer(r Renderer) Option {
	return func(s *Session) {
		s.renderer = r
	}
}

// WithRecorder stores finished games in r.
func WithRecorder(r GameRecorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New creates a session with an empty board. Call Reset to start a game.
// store may be nil.
func New(store HighScoreStore, opts ...Option) *Session {
	s := &Session{
		spawn4Prob:   engine.DefaultSpawn4Probability,
		initialTiles: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s.score = NewScoreTracker(store, s.logger)
	s.spawner = engine.NewSpawner(s.rng, s.spawn4Prob)
	return s
}

// State returns a copy of the current state.
func (s *Session) State() GameState {
	return GameState{
		Board:     s.board,
		Score:     s.score.Score(),
		HighScore: s.score.HighScore(),
	}
}

// Moves returns the number of moves that changed the board in this game.
func (s *Session) Moves() int {
	return s.moves
}

// Debug reports whether the debug boards are enabled.
func (s *Session) Debug() bool {
	return s.debug
}

// Over reports whether no move can change the board any more.
// The session stays usable; only Reset or Restore make progress possible.
func (s *Session) Over() bool {
	return !s.board.CanMove()
}

// Handle dispatches a command. Directional commands move, CommandDebug loads
// the ladder board when debug is enabled, everything else is ignored
// without touching the undo snapshot.
func (s *Session) Handle(cmd Command) Result {
	if dir, ok := cmd.Direction(); ok {
		return s.Move(dir)
	}

	if cmd == CommandDebug && s.debug {
		events, err := s.LoadDebugBoard(DebugLadder)
		if err != nil {
			s.logger.Error("debug board", "error", err)
			return Result{}
		}
		return Result{Events: events}
	}

	return Result{}
}

// Move applies one move: snapshot, slide and merge, score, spawn.
func (s *Session) Move(dir engine.Direction) Result {
	if !dir.Valid() {
		return Result{}
	}

	s.history.Save(s.board, s.score.Score())

	out := engine.Apply(dir, s.board)
	s.board = out.Board

	events := make([]Event, 0, len(out.Changes)+3)
	for _, c := range out.Changes {
		events = append(events, cellChanged(c.Row, c.Col, c.Value))
	}

	if out.Score > 0 {
		total, raised := s.score.Add(out.Score)
		events = append(events, scoreChanged(total))
		if raised {
			events = append(events, highScoreChanged(s.score.HighScore()))
		}
	}

	if out.Changed {
		s.moves++
	}

	res := Result{Outcome: out}

	// A full board still gets a spawn attempt so the failure is reported.
	if out.Changed || s.spawnOnNoop || !s.board.AnyEmptyCell() {
		spawn := s.spawner.Spawn(&s.board)
		res.Spawn = &spawn
		events = append(events, s.spawnEvent(spawn))
	}

	s.logger.Debug("move",
		"dir", dir,
		"changed", out.Changed,
		"gained", out.Score,
		"score", s.score.Score(),
	)

	res.Events = events
	Dispatch(s.renderer, events)
	return res
}

// Restore returns the board and score to the snapshot taken before the last
// move attempt. Every cell is reported as changed.
func (s *Session) Restore() []Event {
	snap := s.history.Restore()
	s.board = snap.Board

	events := s.allCells()
	raised := s.score.HardSet(snap.Score)
	events = append(events, scoreChanged(snap.Score))
	if raised {
		events = append(events, highScoreChanged(s.score.HighScore()))
	}

	Dispatch(s.renderer, events)
	return events
}

// Reset starts a new game: the board is cleared, the score zeroed, the high
// score re-read from the store and the initial tiles spawned. The previous
// game, if any moves were made, is recorded first.
func (s *Session) Reset() []Event {
	if err := s.Finish(); err != nil {
		s.logger.Warn("could not record game", "error", err)
	}

	s.board = engine.Board{}
	s.history = History{}
	s.moves = 0
	s.recorded = false

	events := s.allCells()
	s.score.HardSet(0)
	events = append(events, scoreChanged(0))
	events = append(events, highScoreChanged(s.score.LoadHighScore()))

	for range s.initialTiles {
		events = append(events, s.spawnEvent(s.spawner.Spawn(&s.board)))
	}

	Dispatch(s.renderer, events)
	return events
}

// Finish records the current game with the recorder once. Games without
// any effective move are not recorded.
func (s *Session) Finish() error {
	if s.recorder == nil || s.recorded || s.moves == 0 {
		return nil
	}
	s.recorded = true

	return s.recorder.RecordGame(GameResult{
		Score:   s.score.Score(),
		MaxTile: s.board.MaxTile(),
		Moves:   s.moves,
	})
}

func (s *Session) spawnEvent(spawn engine.SpawnResult) Event {
	if spawn.BoardFull() {
		s.logger.Debug("no empty cell for a new tile")
		return generationFailed()
	}
	return cellChanged(spawn.Row, spawn.Col, spawn.Value)
}

func (s *Session) allCells() []Event {
	events := make([]Event, 0, engine.Size*engine.Size+2)
	for row := range engine.Size {
		for col := range engine.Size {
			events = append(events, cellChanged(row, col, s.board[row][col]))
		}
	}
	return events
}
