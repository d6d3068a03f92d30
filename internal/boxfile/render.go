package boxfile

import (
	"bufio"
	"io"
	"strings"

	"github.com/jacoelho/box/internal/token"
)

// Render draws every box of seq in canonical form. Items that precede the
// first title belong to no box and are not drawn.
func Render(w io.Writer, seq *token.Sequence) error {
	bw := bufio.NewWriter(w)

	for tok, ok := seq.First(); ok; tok, ok = seq.Next(tok.ID) {
		if tok.Kind != token.Title {
			continue
		}

		var items []token.Token
		for item, ok := seq.Next(tok.ID); ok && item.Kind == token.Item; item, ok = seq.Next(item.ID) {
			items = append(items, item)
		}

		writeBox(bw, tok.Text, items)
		if len(items) > 0 {
			tok = items[len(items)-1]
		}
	}

	return bw.Flush()
}

// indent is the content width between "| " and " |". A title is drawn one
// column left of the items, so it needs one column less.
func indent(title string, items []token.Token) int {
	width := len(title) - 1
	for _, item := range items {
		width = max(width, len(item.Text))
	}
	return width
}

func writeBox(w *bufio.Writer, title string, items []token.Token) {
	width := indent(title, items)

	w.WriteByte(' ')
	w.WriteString(title)
	w.WriteByte('\n')

	writeBorder(w, width+2)
	for _, item := range items {
		w.WriteByte(VerticalBorder)
		w.WriteByte(' ')
		w.WriteString(item.Text)
		w.WriteString(strings.Repeat(" ", width-len(item.Text)))
		w.WriteByte(' ')
		w.WriteByte(VerticalBorder)
		w.WriteByte('\n')
	}
	writeBorder(w, width+2)

	w.WriteByte('\n')
}

func writeBorder(w *bufio.Writer, length int) {
	w.WriteByte(Corner)
	w.WriteString(strings.Repeat(string(HorizontalBorder), max(length, 0)))
	w.WriteByte(Corner)
	w.WriteByte('\n')
}
