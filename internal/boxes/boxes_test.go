package boxes

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/jacoelho/box/internal/boxfile"
	"github.com/jacoelho/box/internal/token"
)

const twoBoxes = ` A
+----+
| a1 |
| a2 |
+----+

 B
+----+
| b1 |
+----+

`

func newStore(t *testing.T, content string) *boxfile.Store {
	t.Helper()

	seq, err := boxfile.Parse(strings.NewReader(content), "boxes.txt", boxfile.Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return boxfile.New("boxes.txt", seq, boxfile.Options{})
}

func lines(t *testing.T, fn func(w *bytes.Buffer) error) []string {
	t.Helper()

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		t.Fatalf("unexpected error = %v", err)
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func list(t *testing.T, store *boxfile.Store) []string {
	t.Helper()
	return lines(t, func(w *bytes.Buffer) error { return List(store, w) })
}

func read(t *testing.T, store *boxfile.Store, name string) []string {
	t.Helper()
	return lines(t, func(w *bytes.Buffer) error { return Read(store, name, w) })
}

func TestCreate(t *testing.T) {
	t.Parallel()

	store := newStore(t, twoBoxes)
	Create(store, "Groceries")

	if !store.Dirty() {
		t.Fatal("Create() should mark the store dirty")
	}
	if got, want := list(t, store), []string{"A", "B", "Groceries"}; !slices.Equal(got, want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
}

func TestCreateOnEmptyStore(t *testing.T) {
	t.Parallel()

	store := newStore(t, "")
	Create(store, "Groceries")
	Create(store, "Work")

	if got, want := list(t, store), []string{"Groceries", "Work"}; !slices.Equal(got, want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
}

func TestAppendThenRead(t *testing.T) {
	t.Parallel()

	store := newStore(t, " A\n+--+\n+--+\n\n")
	if err := Append(store, "A", "milk,eggs,bread"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if !store.Dirty() {
		t.Fatal("Append() should mark the store dirty")
	}
	if got, want := read(t, store, "A"), []string{"milk", "eggs", "bread"}; !slices.Equal(got, want) {
		t.Fatalf("Read() = %v, want %v", got, want)
	}
}

func TestAppendToExistingItems(t *testing.T) {
	t.Parallel()

	store := newStore(t, twoBoxes)
	if err := Append(store, "A", "x,y"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// New items go right after the title.
	if got, want := read(t, store, "A"), []string{"x", "y", "a1", "a2"}; !slices.Equal(got, want) {
		t.Fatalf("Read() = %v, want %v", got, want)
	}
	if got, want := read(t, store, "B"), []string{"b1"}; !slices.Equal(got, want) {
		t.Fatalf("Read(B) = %v, want %v", got, want)
	}
}

func TestAppendNoItems(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", ",", ",,,"} {
		store := newStore(t, twoBoxes)
		before := store.Sequence().Tokens()

		err := Append(store, "A", input)
		if !errors.Is(err, ErrNoItems) {
			t.Fatalf("Append(%q) error = %v, want ErrNoItems", input, err)
		}
		if store.Dirty() {
			t.Fatalf("Append(%q) should not mark the store dirty", input)
		}
		if after := store.Sequence().Tokens(); !slices.Equal(after, before) {
			t.Fatalf("Append(%q) mutated the store: %v", input, after)
		}
	}
}

func TestAppendSkipsEmptyEntries(t *testing.T) {
	t.Parallel()

	store := newStore(t, " A\n")
	if err := Append(store, "A", ",milk,,eggs,"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if got, want := read(t, store, "A"), []string{"milk", "eggs"}; !slices.Equal(got, want) {
		t.Fatalf("Read() = %v, want %v", got, want)
	}
}

func TestAppendMissingBox(t *testing.T) {
	t.Parallel()

	store := newStore(t, twoBoxes)
	if err := Append(store, "missing", "x"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if store.Sequence().Len() != 5 {
		t.Fatalf("Len() = %d, want 5", store.Sequence().Len())
	}
}

func TestDuplicateTitles(t *testing.T) {
	t.Parallel()

	store := newStore(t, " A\n| first |\n B\n A\n| second |\n")
	if err := Append(store, "A", "x,y"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	var got []string
	for _, tok := range store.Sequence().Tokens() {
		got = append(got, tok.Text)
	}
	want := []string{"A", "x", "y", "first", "B", "A", "x", "y", "second"}
	if !slices.Equal(got, want) {
		t.Fatalf("tokens = %v, want %v", got, want)
	}

	// Read stops after the first group.
	if got, want := read(t, store, "A"), []string{"x", "y", "first"}; !slices.Equal(got, want) {
		t.Fatalf("Read() = %v, want %v", got, want)
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		box  string
		want []string
	}{
		{name: "first box", box: "A", want: []string{"a1", "a2"}},
		{name: "last box", box: "B", want: []string{"b1"}},
		{name: "missing box", box: "C", want: nil},
		{name: "item text is not a box", box: "a1", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newStore(t, twoBoxes)
			if got := read(t, store, tt.box); !slices.Equal(got, tt.want) {
				t.Fatalf("Read(%q) = %v, want %v", tt.box, got, tt.want)
			}
			if store.Dirty() {
				t.Fatal("Read() should not mark the store dirty")
			}
		})
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		box      string
		wantList []string
		wantLen  int
	}{
		{name: "first box", content: twoBoxes, box: "A", wantList: []string{"B"}, wantLen: 2},
		{name: "last box", content: twoBoxes, box: "B", wantList: []string{"A"}, wantLen: 3},
		{name: "missing box", content: twoBoxes, box: "C", wantList: []string{"A", "B"}, wantLen: 5},
		{name: "empty box", content: " A\n B\n| b1 |\n", box: "A", wantList: []string{"B"}, wantLen: 2},
		{name: "only duplicate head", content: " A\n| 1 |\n A\n| 2 |\n", box: "A", wantList: []string{"A"}, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newStore(t, tt.content)
			Delete(store, tt.box)

			if !store.Dirty() {
				t.Fatal("Delete() should mark the store dirty")
			}
			if got := list(t, store); !slices.Equal(got, tt.wantList) {
				t.Fatalf("List() = %v, want %v", got, tt.wantList)
			}
			if store.Sequence().Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", store.Sequence().Len(), tt.wantLen)
			}
		})
	}
}

func TestDeleteThenRead(t *testing.T) {
	t.Parallel()

	store := newStore(t, twoBoxes)
	Delete(store, "A")

	if got := read(t, store, "A"); got != nil {
		t.Fatalf("Read() after Delete = %v, want nothing", got)
	}

	var buf bytes.Buffer
	if err := store.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.String() != " B\n+----+\n| b1 |\n+----+\n\n" {
		t.Fatalf("Render() = %q", buf.String())
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	store := newStore(t, "garbage line\n+--+\n\n    \n"+twoBoxes)

	// "garbage line" reads as a title with its first character dropped.
	want := []string{"arbage line", "A", "B"}
	if got := list(t, store); !slices.Equal(got, want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
}

func TestListSkipsStrayItems(t *testing.T) {
	t.Parallel()

	seq := token.NewSequence()
	seq.Push(token.Item, 0, "orphan")
	seq.Push(token.Title, 0, "A")
	store := boxfile.New("boxes.txt", seq, boxfile.Options{})

	if got, want := list(t, store), []string{"A"}; !slices.Equal(got, want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
}

func TestSplitItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{input: "", want: nil},
		{input: ",,", want: nil},
		{input: "milk", want: []string{"milk"}},
		{input: "milk,eggs,bread", want: []string{"milk", "eggs", "bread"}},
		{input: " milk , eggs", want: []string{" milk ", " eggs"}},
	}

	for _, tt := range tests {
		if got := SplitItems(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("SplitItems(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
