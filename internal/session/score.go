package session

import (
	"github.com/charmbracelet/log"
)

// HighScoreStore persists the best score across games.
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// ScoreTracker accumulates the running score and raises the high score
// whenever it is exceeded.
type ScoreTracker struct {
	score  int
	high   int
	store  HighScoreStore
	logger *log.Logger
}

// NewScoreTracker creates a tracker backed by store. store may be nil, in
// which case the high score only lives in memory.
func NewScoreTracker(store HighScoreStore, logger *log.Logger) *ScoreTracker {
	if logger == nil {
		logger = log.Default()
	}
	return &ScoreTracker{
		store:  store,
		logger: logger,
	}
}

// Score returns the running score.
func (t *ScoreTracker) Score() int {
	return t.score
}

// HighScore returns the best known score.
func (t *ScoreTracker) HighScore() int {
	return t.high
}

// Add increases the score by delta and returns the new total and whether
// the high score was raised.
func (t *ScoreTracker) Add(delta int) (total int, raised bool) {
	t.score += delta
	return t.score, t.raise()
}

// HardSet overwrites the score. Returns true if the high score was raised.
func (t *ScoreTracker) HardSet(value int) bool {
	t.score = value
	return t.raise()
}

// LoadHighScore re-reads the persisted high score. A store error is logged
// and the high score falls back to 0.
func (t *ScoreTracker) LoadHighScore() int {
	if t.store == nil {
		return t.high
	}

	high, err := t.store.Load()
	if err != nil {
		t.logger.Warn("high score unavailable, starting from 0", "error", err)
		high = 0
	}
	t.high = high
	return t.high
}

func (t *ScoreTracker) raise() bool {
	if t.score <= t.high {
		return false
	}

	t.high = t.score
	if t.store != nil {
		if err := t.store.Save(t.high); err != nil {
			t.logger.Warn("could not persist high score", "score", t.high, "error", err)
		}
	}
	return true
}
