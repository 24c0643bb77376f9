// Package buffer ties a rope to its history tree, cursor, mode and
// parse state. A buffer has a stable identity; windows reference
// buffers by id, never by pointer.
package buffer

import (
	"strings"

	"github.com/zee-editor/zee/internal/engine/cursor"
	"github.com/zee-editor/zee/internal/engine/history"
	"github.com/zee-editor/zee/internal/engine/rope"
	"github.com/zee-editor/zee/internal/syntax"
)

// ID identifies a buffer across the editor.
type ID int

// Buffer is an open text document.
type Buffer struct {
	id      ID
	path    string // empty for scratch buffers
	name    string
	text    rope.Rope
	version uint64
	dirty   bool

	Cursor  cursor.Cursor
	History *history.Tree
	Mode    *syntax.Mode
	Parse   *syntax.ParseState
}

// New creates a buffer with the given content. File buffers keep a
// trailing newline so the last line always ends like every other.
func New(id ID, path, name, content string) *Buffer {
	content = normalizeLineEndings(content)
	if path != "" {
		content = ensureTrailingNewline(content)
	}
	return &Buffer{
		id:      id,
		path:    path,
		name:    name,
		text:    rope.FromString(content),
		Cursor:  cursor.New(),
		History: history.New(),
		Parse:   syntax.NewParseState(),
	}
}

// NewScratch creates the unnamed scratch buffer.
func NewScratch(id ID) *Buffer {
	return New(id, "", "*scratch*", "")
}

// ID returns the buffer's identity.
func (b *Buffer) ID() ID { return b.id }

// Path returns the file path, or "" for scratch buffers.
func (b *Buffer) Path() string { return b.path }

// Name returns the display name.
func (b *Buffer) Name() string { return b.name }

// Text returns the current rope. Ropes are immutable, so the returned
// value is a snapshot safe to hand to a worker.
func (b *Buffer) Text() rope.Rope { return b.text }

// Version returns the edit version, incremented on every mutation.
func (b *Buffer) Version() uint64 { return b.version }

// Dirty reports whether the buffer has unsaved changes.
func (b *Buffer) Dirty() bool { return b.dirty }

// MarkSaved clears the dirty flag after a successful write.
func (b *Buffer) MarkSaved() { b.dirty = false }

// Insert splices text at a character offset, records the edit in the
// history tree and returns it. The cursor is left after the insertion.
func (b *Buffer) Insert(at rope.CharOffset, text string) history.Edit {
	edit := history.Edit{Start: at, Inserted: text}
	b.apply(edit)
	b.Cursor.MoveTo(b.text, at+charLen(text))
	b.History.Commit(edit, b.Cursor.Point(), b.version)
	return edit
}

// Remove deletes the character range [start, end), recording the edit.
func (b *Buffer) Remove(start, end rope.CharOffset) history.Edit {
	if end > b.text.LenChars() {
		end = b.text.LenChars()
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return history.Edit{}
	}
	edit := history.Edit{Start: start, Removed: b.text.Slice(start, end)}
	b.apply(edit)
	b.Cursor.MoveTo(b.text, start)
	b.History.Commit(edit, b.Cursor.Point(), b.version)
	return edit
}

// Replace substitutes the character range [start, end) with text.
func (b *Buffer) Replace(start, end rope.CharOffset, text string) history.Edit {
	if start < 0 {
		start = 0
	}
	if end > b.text.LenChars() {
		end = b.text.LenChars()
	}
	edit := history.Edit{Start: start, Inserted: text, Removed: b.text.Slice(start, end)}
	b.apply(edit)
	b.Cursor.MoveTo(b.text, start+charLen(text))
	b.History.Commit(edit, b.Cursor.Point(), b.version)
	return edit
}

// Undo applies the inverse of the current revision's edit. Returns the
// applied edit for the syntax pipeline.
func (b *Buffer) Undo() (history.Edit, error) {
	edit, cur, err := b.History.Undo()
	if err != nil {
		return history.Edit{}, err
	}
	b.apply(edit)
	b.Cursor.MoveTo(b.text, cur)
	return edit, nil
}

// Redo applies the edit of the selected child revision.
func (b *Buffer) Redo() (history.Edit, error) {
	edit, cur, err := b.History.Redo()
	if err != nil {
		return history.Edit{}, err
	}
	b.apply(edit)
	b.Cursor.MoveTo(b.text, cur)
	return edit, nil
}

// NavigateTree drives the edit-tree viewer. Up/Down mutate the buffer;
// Left/Right only change which sibling the next redo follows.
func (b *Buffer) NavigateTree(dir history.Direction) (history.Edit, bool, error) {
	edit, cur, applied, err := b.History.Navigate(dir)
	if err != nil {
		return history.Edit{}, false, err
	}
	if applied {
		b.apply(edit)
		b.Cursor.MoveTo(b.text, cur)
	}
	return edit, applied, nil
}

// apply performs the splice and bumps the version.
func (b *Buffer) apply(edit history.Edit) {
	b.text = edit.Apply(b.text)
	b.version++
	b.dirty = true
}

func charLen(s string) rope.CharOffset {
	var n rope.CharOffset
	for range s {
		n++
	}
	return n
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func ensureTrailingNewline(s string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}
