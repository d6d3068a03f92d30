package boxes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jacoelho/box/internal/boxfile"
	"github.com/jacoelho/box/internal/token"
)

// Format determines how Export prints boxes.
type Format string

const (
	// FormatText prints the canonical box drawing.
	FormatText Format = "text"
	// FormatYAML prints a list of title and items mappings.
	FormatYAML Format = "yaml"
	// FormatJSON prints the same list as indented JSON.
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned by ParseFormat for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat resolves a format name. The empty name selects text.
func ParseFormat(input string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(input))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, input)
	}
}

// Box is one title with its items.
type Box struct {
	Title string   `yaml:"title" json:"title"`
	Items []string `yaml:"items" json:"items"`
}

// Collect groups the store into boxes. Items before the first title are skipped.
func Collect(store *boxfile.Store) []Box {
	var boxes []Box
	cursor := store.Sequence().Cursor()
	for tok, ok := cursor.Next(); ok; tok, ok = cursor.Next() {
		switch {
		case tok.Kind == token.Title:
			boxes = append(boxes, Box{Title: tok.Text, Items: []string{}})
		case tok.Kind == token.Item && len(boxes) > 0:
			current := &boxes[len(boxes)-1]
			current.Items = append(current.Items, tok.Text)
		}
	}
	return boxes
}

// Export writes every box of the store in the requested format.
func Export(store *boxfile.Store, w io.Writer, format Format) error {
	switch format {
	case FormatText, "":
		return store.Render(w)
	case FormatYAML:
		boxes := Collect(store)
		if boxes == nil {
			boxes = []Box{}
		}
		payload, err := yaml.Marshal(boxes)
		if err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		_, err = w.Write(payload)
		return err
	case FormatJSON:
		boxes := Collect(store)
		if boxes == nil {
			boxes = []Box{}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(boxes)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
