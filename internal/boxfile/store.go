package boxfile

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jacoelho/box/internal/token"
)

// Store is an open box file held in memory. Mutations go through the
// Sequence; nothing reaches disk until Rewrite.
type Store struct {
	path   string
	seq    *token.Sequence
	dirty  bool
	logger *slog.Logger
}

// Open parses the box file at path.
func Open(path string, opts Options) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &FileOpenError{Path: path, Err: err}
	}
	defer file.Close()

	seq, err := Parse(file, path, opts)
	if err != nil {
		return nil, err
	}

	logger := opts.logger()
	logger.Debug("open box file", "file", path, "tokens", seq.Len())

	return &Store{path: path, seq: seq, logger: logger}, nil
}

// New wraps an already built sequence.
func New(path string, seq *token.Sequence, opts Options) *Store {
	if seq == nil {
		seq = token.NewSequence()
	}
	return &Store{path: path, seq: seq, logger: opts.logger()}
}

// Path returns the file the store was opened from.
func (s *Store) Path() string {
	return s.path
}

// Sequence returns the token chain owned by the store.
func (s *Store) Sequence() *token.Sequence {
	return s.seq
}

// Logger returns the logger the store was opened with.
func (s *Store) Logger() *slog.Logger {
	return s.logger
}

// Dirty reports whether the in-memory state diverged from the file.
func (s *Store) Dirty() bool {
	return s.dirty
}

// MarkDirty records that the store must be rewritten.
func (s *Store) MarkDirty() {
	s.dirty = true
}

// Render writes the canonical box drawing of the store.
func (s *Store) Render(w io.Writer) error {
	return Render(w, s.seq)
}

// Rewrite truncates the file at path and writes the rendered store into it.
// Symlinks and hard links keep pointing at the rewritten file. The drawing is
// rendered before the file is opened, so a render failure leaves it untouched.
func (s *Store) Rewrite(path string) error {
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		return fmt.Errorf("render box file: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open box file for writing: %w", err)
	}

	n, err := buf.WriteTo(file)
	if err != nil {
		file.Close()
		return fmt.Errorf("write box file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close box file: %w", err)
	}

	s.logger.Debug("rewrite box file", "file", path, "bytes", n)
	if path == s.path {
		s.dirty = false
	}
	return nil
}

// Close releases every token. The store is empty afterwards.
func (s *Store) Close() error {
	s.seq.Reset()
	return nil
}
