package buffer

import (
	"testing"

	"github.com/zee-editor/zee/internal/engine/rope"
)

func TestNewNormalizesLineEndings(t *testing.T) {
	b := New(1, "/tmp/f.txt", "f.txt", "a\r\nb\rc")
	if got := b.Text().String(); got != "a\nb\nc\n" {
		t.Fatalf("text = %q", got)
	}
}

func TestFileBufferKeepsTrailingNewline(t *testing.T) {
	b := New(1, "/tmp/f.txt", "f.txt", "no newline")
	if got := b.Text().String(); got != "no newline\n" {
		t.Fatalf("text = %q", got)
	}
	// Scratch buffers are left alone.
	s := NewScratch(2)
	if got := s.Text().String(); got != "" {
		t.Fatalf("scratch = %q", got)
	}
}

func TestInsertAdvancesVersionAndCursor(t *testing.T) {
	b := NewScratch(1)
	v := b.Version()
	b.Insert(0, "hi")
	if b.Version() != v+1 {
		t.Fatalf("version = %d", b.Version())
	}
	if b.Cursor.Point() != 2 {
		t.Fatalf("cursor = %d", b.Cursor.Point())
	}
	if !b.Dirty() {
		t.Fatal("not dirty")
	}
}

func TestRemoveAndReplace(t *testing.T) {
	b := NewScratch(1)
	b.Insert(0, "hello world")
	b.Remove(5, 11)
	if got := b.Text().String(); got != "hello" {
		t.Fatalf("after remove: %q", got)
	}
	b.Replace(0, 5, "goodbye")
	if got := b.Text().String(); got != "goodbye" {
		t.Fatalf("after replace: %q", got)
	}
	if b.Cursor.Point() != 7 {
		t.Fatalf("cursor = %d", b.Cursor.Point())
	}
}

func TestRemoveClamps(t *testing.T) {
	b := NewScratch(1)
	b.Insert(0, "abc")
	edit := b.Remove(2, 100)
	if edit.Removed != "c" {
		t.Fatalf("removed = %q", edit.Removed)
	}
	if edit := b.Remove(5, 9); edit.Removed != "" || edit.Inserted != "" {
		t.Fatalf("out-of-range remove produced %+v", edit)
	}
}

// Replaying the root-to-current path of the history tree from the
// root state reproduces the live buffer byte for byte.
func TestHistoryReplayInvariant(t *testing.T) {
	b := NewScratch(1)
	b.Insert(0, "the quick brown fox\n")
	b.History.Seal()
	b.Insert(4, "very ")
	b.History.Seal()
	b.Remove(0, 4)
	b.History.Seal()
	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	b.Insert(0, "a ")
	b.History.Seal()

	replayed := rope.New()
	path := b.History.PathFromRoot()
	for _, idx := range path[1:] {
		replayed = b.History.EditOf(idx).Apply(replayed)
	}
	if replayed.String() != b.Text().String() {
		t.Fatalf("replay = %q, live = %q", replayed.String(), b.Text().String())
	}
}

func TestUndoRestoresCursor(t *testing.T) {
	b := NewScratch(1)
	b.Insert(0, "one")
	b.History.Seal()
	b.Insert(3, " two")
	b.History.Seal()

	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := b.Text().String(); got != "one" {
		t.Fatalf("text = %q", got)
	}
	if b.Cursor.Point() != 3 {
		t.Fatalf("cursor = %d", b.Cursor.Point())
	}

	if _, err := b.Redo(); err != nil {
		t.Fatal(err)
	}
	if got := b.Text().String(); got != "one two" {
		t.Fatalf("text = %q", got)
	}
	if b.Cursor.Point() != 7 {
		t.Fatalf("cursor = %d", b.Cursor.Point())
	}
}

func TestUndoBumpsVersion(t *testing.T) {
	b := NewScratch(1)
	b.Insert(0, "x")
	v := b.Version()
	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	if b.Version() <= v {
		t.Fatalf("version = %d, want > %d", b.Version(), v)
	}
}

func TestMarkSaved(t *testing.T) {
	b := New(1, "/tmp/f", "f", "content")
	b.Insert(0, "x")
	b.MarkSaved()
	if b.Dirty() {
		t.Fatal("still dirty")
	}
}
