// Package boxfile reads and writes box files: named lists drawn as ASCII boxes.
//
//	 Groceries
//	+-----------+
//	| milk      |
//	| eggs      |
//	+-----------+
//
// Lines are classified purely by their first two characters. Borders, blank
// lines and anything unrecognised are dropped on parse and regenerated on render.
package boxfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jacoelho/box/internal/token"
)

// DefaultMaxLineLength bounds a line plus one byte for its newline terminator.
const DefaultMaxLineLength = 256

// Options tunes parsing. The zero value uses the defaults.
type Options struct {
	MaxLineLength int
	Logger        *slog.Logger
}

func (o Options) maxLineLength() int {
	if o.MaxLineLength <= 0 {
		return DefaultMaxLineLength
	}
	return o.MaxLineLength
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Parse builds a token sequence from r. name identifies the source in errors.
// On error no sequence is returned.
func Parse(r io.Reader, name string, opts Options) (*token.Sequence, error) {
	limit := opts.maxLineLength()
	logger := opts.logger()
	reader := bufio.NewReader(r)
	seq := token.NewSequence()

	for index := 0; ; index++ {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if line == "" && err != nil {
			break
		}

		line = strings.TrimSuffix(line, "\n")
		// One byte is reserved for the terminator whether or not the line has
		// one, so the content of any line must stay below limit-1 bytes.
		if len(line)+1 >= limit {
			return nil, &LineTooLongError{Path: name, Index: index, Limit: limit}
		}

		kind := Classify(line)
		if kind == token.Unknown {
			logger.Debug("discard line", "file", name, "index", index)
		} else {
			seq.Push(kind, index+1, Value(line, kind))
		}

		if err != nil {
			break
		}
	}

	return seq, nil
}
