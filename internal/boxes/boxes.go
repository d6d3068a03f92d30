// Package boxes implements the box operations on an open store. Each
// operation runs its own cursor over the store's token sequence.
package boxes

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jacoelho/box/internal/boxfile"
	"github.com/jacoelho/box/internal/token"
)

// ItemSeparator splits the item list given to Append.
const ItemSeparator = ","

// ErrNoItems is returned by Append when the item list holds no items.
var ErrNoItems = errors.New("no items to append")

// Create adds an empty box named name after every other token.
func Create(store *boxfile.Store, name string) {
	seq := store.Sequence()
	anchor := token.None
	if last, ok := seq.Last(); ok {
		anchor = last.ID
	}

	seq.InsertAfter(anchor, token.Title, name)
	store.MarkDirty()
	store.Logger().Debug("create box", "box", name)
}

// SplitItems splits a comma separated list, dropping empty entries.
func SplitItems(csv string) []string {
	return strings.FieldsFunc(csv, func(r rune) bool {
		return strings.ContainsRune(ItemSeparator, r)
	})
}

// Append adds the items of csv, in order, to every box named name.
// An item list without items fails with ErrNoItems and leaves the store untouched.
func Append(store *boxfile.Store, name string, csv string) error {
	items := SplitItems(csv)
	if len(items) == 0 {
		return fmt.Errorf("append to %q: %w", name, ErrNoItems)
	}

	seq := store.Sequence()
	cursor := seq.Cursor()
	matches := 0
	for tok, ok := cursor.Next(); ok; tok, ok = cursor.Next() {
		if !isBox(tok, name) {
			continue
		}

		anchor := tok
		for _, item := range items {
			anchor = seq.InsertAfter(anchor.ID, token.Item, item)
		}
		matches++
	}

	store.MarkDirty()
	store.Logger().Debug("append items", "box", name, "items", len(items), "boxes", matches)
	return nil
}

// Read writes the items of the first box named name, one per line.
func Read(store *boxfile.Store, name string, w io.Writer) error {
	cursor := store.Sequence().Cursor()
	for tok, ok := cursor.Next(); ok; tok, ok = cursor.Next() {
		if !isBox(tok, name) {
			continue
		}

		for item, ok := cursor.Next(); ok && item.Kind == token.Item; item, ok = cursor.Next() {
			if _, err := fmt.Fprintln(w, item.Text); err != nil {
				return err
			}
		}
		break
	}

	return nil
}

// Delete removes the first box named name together with its items.
func Delete(store *boxfile.Store, name string) {
	cursor := store.Sequence().Cursor()
	deleted := false
	for tok, ok := cursor.Next(); ok; tok, ok = cursor.Next() {
		if !isBox(tok, name) {
			continue
		}

		for next, ok := cursor.Remove(); ok && next.Kind == token.Item; next, ok = cursor.Remove() {
		}
		deleted = true
		break
	}

	store.MarkDirty()
	store.Logger().Debug("delete box", "box", name, "found", deleted)
}

// List writes every box title, one per line, in file order.
func List(store *boxfile.Store, w io.Writer) error {
	cursor := store.Sequence().Cursor()
	for tok, ok := cursor.Next(); ok; tok, ok = cursor.Next() {
		if tok.Kind != token.Title {
			continue
		}
		if _, err := fmt.Fprintln(w, tok.Text); err != nil {
			return err
		}
	}

	return nil
}

func isBox(tok token.Token, name string) bool {
	return tok.Kind == token.Title && tok.Text == name
}
