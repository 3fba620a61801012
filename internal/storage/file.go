// Package storage persists high scores and finished games.
//
// FileStore keeps a single high score in a plain text file. SQLiteStore
// keeps the high score plus a history of games, using the pure-Go
// modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ErrCorrupt is returned when a stored high score cannot be parsed.
var ErrCorrupt = errors.New("storage: corrupt high score")

// CorruptError describes an unreadable high score file.
type CorruptError struct {
	Path    string
	Content string
	Err     error // parse error, may be nil
}

func (e *CorruptError) Error() string {
	msg := fmt.Sprintf("storage: corrupt high score in %s: %q", e.Path, e.Content)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match ErrCorrupt.
func (e *CorruptError) Unwrap() error {
	return ErrCorrupt
}

// FileStore stores the high score as a decimal number in a text file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store at path. An empty path uses
// DefaultHighScorePath.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultHighScorePath
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: expanded}, nil
}

// Path returns the resolved file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the high score. A missing file is created empty and counts as
// 0, as does an empty file.
func (s *FileStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	score, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		if err := ensureDir(s.path); err != nil {
			return 0, err
		}
		if err := os.WriteFile(s.path, nil, 0o644); err != nil {
			return 0, fmt.Errorf("storage: cannot create %s: %w", s.path, err)
		}
		return 0, nil
	}
	return score, err
}

// read parses the file. Callers hold mu.
func (s *FileStore) read() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", s.path, err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return 0, nil
	}

	score, err := strconv.Atoi(content)
	if err != nil {
		return 0, &CorruptError{Path: s.path, Content: content, Err: err}
	}
	if score < 0 {
		return 0, &CorruptError{Path: s.path, Content: content}
	}
	return score, nil
}

// Save stores score if it beats the saved high score. A missing or corrupt
// file is replaced.
func (s *FileStore) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("storage: negative high score %d", score)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, err := s.read(); err == nil && current >= score {
		return nil
	}

	if err := ensureDir(s.path); err != nil {
		return err
	}

	// Write then rename so a crash never leaves a half-written file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(score)+"\n"), 0o644); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", s.path, err)
	}
	return nil
}
