package boxfile

import (
	"strings"

	"github.com/jacoelho/box/internal/token"
)

// Glyphs of the box drawing. A line starting with VerticalBorder is an item;
// Corner and HorizontalBorder only appear in border lines.
const (
	Corner           = '+'
	HorizontalBorder = '-'
	VerticalBorder   = '|'
)

// Classify decides the token kind of a single line with its newline removed.
func Classify(line string) token.Kind {
	switch {
	case len(line) < 2:
		return token.Unknown
	case line[0] == VerticalBorder:
		return token.Item
	case line[0] == Corner:
		return token.Unknown
	case !isSpace(line[1]):
		return token.Title
	default:
		return token.Unknown
	}
}

// Value extracts the content of a classified line, dropping the box decoration.
func Value(line string, kind token.Kind) string {
	switch kind {
	case token.Title:
		return strings.TrimRightFunc(line[1:], isSpaceRune)
	case token.Item:
		body := line[2:]
		if border := strings.LastIndexByte(body, VerticalBorder); border >= 0 {
			body = body[:border]
		}
		return strings.TrimRightFunc(body, isSpaceRune)
	default:
		return ""
	}
}

// isSpace matches the C locale whitespace set.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isSpaceRune(r rune) bool {
	return r < 0x80 && isSpace(byte(r))
}
