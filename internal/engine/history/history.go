// Package history implements a persistent tree of buffer revisions.
// Undo moves towards the root, redo towards the selected child, and
// sibling selection picks which branch the next redo follows.
package history

import (
	"errors"
	"time"

	"github.com/zee-editor/zee/internal/engine/rope"
)

// Boundary errors. They are reported on the status line and never
// abort the editor.
var (
	// ErrAtRoot is returned by Undo when there is nothing to undo.
	ErrAtRoot = errors.New("AtRoot")

	// ErrAtLeaf is returned by Redo when there is nothing to redo.
	ErrAtLeaf = errors.New("AtLeaf")
)

// CoalesceTimeout seals the coalescing window after a pause in typing.
const CoalesceTimeout = 750 * time.Millisecond

// Direction is a navigation direction in the edit-tree viewer.
type Direction int

const (
	Up    Direction = iota // undo
	Down                   // redo along the selected child
	Left                   // select previous sibling
	Right                  // select next sibling
)

// Edit is a reversible splice: at Start, Removed was replaced by
// Inserted. Offsets are character offsets.
type Edit struct {
	Start    rope.CharOffset
	Inserted string
	Removed  string
}

// Apply applies the edit to a rope.
func (e Edit) Apply(r rope.Rope) rope.Rope {
	if e.Removed != "" {
		r = r.Delete(e.Start, e.Start+charLen(e.Removed))
	}
	if e.Inserted != "" {
		r = r.Insert(e.Start, e.Inserted)
	}
	return r
}

// Invert returns the edit that undoes this one.
func (e Edit) Invert() Edit {
	return Edit{Start: e.Start, Inserted: e.Removed, Removed: e.Inserted}
}

// IsInsert reports whether the edit is a pure insertion.
func (e Edit) IsInsert() bool { return e.Inserted != "" && e.Removed == "" }

func (e Edit) equal(other Edit) bool {
	return e.Start == other.Start && e.Inserted == other.Inserted && e.Removed == other.Removed
}

// revision is one node of the tree. Revisions are arena-allocated and
// referenced by index, so there are no cyclic pointers to manage.
type revision struct {
	edit     Edit // edit applied to the parent to reach this revision
	cursor   rope.CharOffset
	version  uint64
	parent   int32
	children []int32
	selected int // index into children the next redo follows
}

// Tree is the revision tree for one buffer. The zero value is not
// usable; call New.
type Tree struct {
	revisions []revision
	current   int32

	// Coalescing window state.
	sealed     bool
	lastClass  charClass
	lastCommit time.Time
	now        func() time.Time
}

// New creates a tree whose root represents the buffer's initial state.
func New() *Tree {
	return &Tree{
		revisions: []revision{{parent: -1}},
		sealed:    true,
		now:       time.Now,
	}
}

// Commit appends a new revision under the current one and moves to it.
// Contiguous single-cluster insertions of the same character class
// within the coalescing window merge into the current revision instead.
// If the current revision already has a child with an identical edit,
// that child is reused.
func (t *Tree) Commit(edit Edit, cursor rope.CharOffset, version uint64) {
	now := t.now()
	if t.tryCoalesce(edit, cursor, version, now) {
		return
	}

	cur := &t.revisions[t.current]
	for i, childIdx := range cur.children {
		if t.revisions[childIdx].edit.equal(edit) {
			cur.selected = i
			t.current = childIdx
			child := &t.revisions[t.current]
			child.cursor = cursor
			child.version = version
			t.openWindow(edit, now)
			return
		}
	}

	idx := int32(len(t.revisions))
	t.revisions = append(t.revisions, revision{
		edit:    edit,
		cursor:  cursor,
		version: version,
		parent:  t.current,
	})
	cur = &t.revisions[t.current]
	cur.children = append(cur.children, idx)
	cur.selected = len(cur.children) - 1
	t.current = idx
	t.openWindow(edit, now)
}

func (t *Tree) tryCoalesce(edit Edit, cursor rope.CharOffset, version uint64, now time.Time) bool {
	if t.sealed || !edit.IsInsert() || charLen(edit.Inserted) != 1 {
		return false
	}
	if now.Sub(t.lastCommit) >= CoalesceTimeout {
		t.sealed = true
		return false
	}
	cur := &t.revisions[t.current]
	if cur.parent < 0 || !cur.edit.IsInsert() || len(cur.children) > 0 {
		return false
	}
	class := classify(edit.Inserted)
	if class != t.lastClass {
		return false
	}
	// Must extend the pending insertion exactly at its end.
	if edit.Start != cur.edit.Start+charLen(cur.edit.Inserted) {
		return false
	}
	cur.edit.Inserted += edit.Inserted
	cur.cursor = cursor
	cur.version = version
	t.lastCommit = now
	return true
}

func (t *Tree) openWindow(edit Edit, now time.Time) {
	if edit.IsInsert() && charLen(edit.Inserted) == 1 {
		t.sealed = false
		t.lastClass = classify(edit.Inserted)
		t.lastCommit = now
	} else {
		t.sealed = true
	}
}

// Seal closes the coalescing window. Any non-insertion command, cursor
// jump or focus change calls this.
func (t *Tree) Seal() { t.sealed = true }

// Undo moves to the parent revision. It returns the inverse edit to
// apply to the buffer and the cursor recorded at the parent.
func (t *Tree) Undo() (Edit, rope.CharOffset, error) {
	t.sealed = true
	cur := t.revisions[t.current]
	if cur.parent < 0 {
		return Edit{}, 0, ErrAtRoot
	}
	t.current = cur.parent
	return cur.edit.Invert(), t.revisions[t.current].cursor, nil
}

// Redo moves to the selected child revision, returning its edit and
// cursor.
func (t *Tree) Redo() (Edit, rope.CharOffset, error) {
	t.sealed = true
	cur := t.revisions[t.current]
	if len(cur.children) == 0 {
		return Edit{}, 0, ErrAtLeaf
	}
	child := cur.children[cur.selected]
	t.current = child
	rev := t.revisions[child]
	return rev.edit, rev.cursor, nil
}

// SelectSibling changes which child of the current revision the next
// redo follows. delta is -1 or +1; selection clamps at both ends.
// The buffer is not touched.
func (t *Tree) SelectSibling(delta int) {
	cur := &t.revisions[t.current]
	next := cur.selected + delta
	if next < 0 || next >= len(cur.children) {
		return
	}
	cur.selected = next
}

// Navigate maps the edit-tree viewer's four directions onto the tree.
// Up and Down return an edit to apply; Left and Right only change the
// selection and return applied=false.
func (t *Tree) Navigate(dir Direction) (edit Edit, cursor rope.CharOffset, applied bool, err error) {
	switch dir {
	case Up:
		edit, cursor, err = t.Undo()
		return edit, cursor, err == nil, err
	case Down:
		edit, cursor, err = t.Redo()
		return edit, cursor, err == nil, err
	case Left:
		t.SelectSibling(-1)
	case Right:
		t.SelectSibling(1)
	}
	return Edit{}, 0, false, nil
}

// Len returns the number of revisions in the tree.
func (t *Tree) Len() int { return len(t.revisions) }

// Current returns the index of the current revision.
func (t *Tree) Current() int { return int(t.current) }

// Parent returns the parent index of a revision, or -1 for the root.
func (t *Tree) Parent(i int) int { return int(t.revisions[i].parent) }

// Children returns the child indices of a revision.
func (t *Tree) Children(i int) []int {
	rev := t.revisions[i]
	out := make([]int, len(rev.children))
	for j, c := range rev.children {
		out[j] = int(c)
	}
	return out
}

// Selected returns which child of revision i the next redo follows.
func (t *Tree) Selected(i int) int { return t.revisions[i].selected }

// Version returns the buffer version recorded at revision i.
func (t *Tree) Version(i int) uint64 { return t.revisions[i].version }

// PathFromRoot returns the revision indices from the root to current,
// inclusive. Replaying the edits of this path (skipping the root) from
// the root state reproduces the live buffer.
func (t *Tree) PathFromRoot() []int {
	var path []int
	for i := t.current; i >= 0; i = t.revisions[i].parent {
		path = append(path, int(i))
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// EditOf returns the edit that produced revision i.
func (t *Tree) EditOf(i int) Edit { return t.revisions[i].edit }

// charClass groups runes for coalescing: a run of word characters, a
// run of whitespace, or a run of punctuation forms one undo step.
type charClass int

const (
	classWord charClass = iota
	classSpace
	classPunct
)

func classify(s string) charClass {
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return classSpace
		case r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r > 127:
			return classWord
		default:
			return classPunct
		}
	}
	return classPunct
}

func charLen(s string) rope.CharOffset {
	var n rope.CharOffset
	for range s {
		n++
	}
	return n
}
