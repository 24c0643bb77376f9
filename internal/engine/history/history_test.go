package history

import (
	"errors"
	"testing"
	"time"

	"github.com/zee-editor/zee/internal/engine/rope"
)

// fixedClock lets tests control the coalescing window.
type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTree() (*Tree, *fixedClock) {
	clock := &fixedClock{t: time.Unix(1000, 0)}
	tree := New()
	tree.now = clock.now
	return tree, clock
}

func insert(at rope.CharOffset, s string) Edit {
	return Edit{Start: at, Inserted: s}
}

func TestUndoAtRoot(t *testing.T) {
	tree, _ := newTestTree()
	if _, _, err := tree.Undo(); !errors.Is(err, ErrAtRoot) {
		t.Fatalf("err = %v, want ErrAtRoot", err)
	}
}

func TestRedoAtLeaf(t *testing.T) {
	tree, _ := newTestTree()
	if _, _, err := tree.Redo(); !errors.Is(err, ErrAtLeaf) {
		t.Fatalf("err = %v, want ErrAtLeaf", err)
	}
}

func TestCommitUndoRedo(t *testing.T) {
	tree, _ := newTestTree()
	r := rope.FromString("")

	e := insert(0, "hello")
	r = e.Apply(r)
	tree.Commit(e, 5, 1)

	undoEdit, cursor, err := tree.Undo()
	if err != nil {
		t.Fatal(err)
	}
	r = undoEdit.Apply(r)
	if r.String() != "" {
		t.Fatalf("after undo: %q", r.String())
	}
	if cursor != 0 {
		t.Fatalf("cursor = %d", cursor)
	}

	redoEdit, cursor, err := tree.Redo()
	if err != nil {
		t.Fatal(err)
	}
	r = redoEdit.Apply(r)
	if r.String() != "hello" {
		t.Fatalf("after redo: %q", r.String())
	}
	if cursor != 5 {
		t.Fatalf("cursor = %d", cursor)
	}
}

// Replaying an edit sequence and then its reverse restores the buffer
// exactly, for a mixed sequence of insertions and deletions.
func TestInversionProperty(t *testing.T) {
	edits := []Edit{
		{Start: 0, Inserted: "the flowers are blooming\n"},
		{Start: 4, Inserted: "red "},
		{Start: 0, Removed: "the "},
		{Start: 10, Inserted: "not ", Removed: "are "},
		{Start: 2, Removed: "d"},
	}

	start := rope.FromString("")
	r := start
	for _, e := range edits {
		r = e.Apply(r)
	}
	for i := len(edits) - 1; i >= 0; i-- {
		r = edits[i].Invert().Apply(r)
	}
	if !r.Equals(start) {
		t.Fatalf("inversion failed: %q", r.String())
	}
}

func TestBranching(t *testing.T) {
	tree, clock := newTestTree()
	r := rope.FromString("")

	// Type "a", undo, type "b": the root gains two children.
	ea := insert(0, "a")
	r = ea.Apply(r)
	tree.Commit(ea, 1, 1)
	clock.advance(time.Second)

	undoEdit, _, _ := tree.Undo()
	r = undoEdit.Apply(r)

	eb := insert(0, "b")
	r = eb.Apply(r)
	tree.Commit(eb, 1, 2)
	clock.advance(time.Second)

	if kids := tree.Children(0); len(kids) != 2 {
		t.Fatalf("root has %d children, want 2", len(kids))
	}
	if r.String() != "b" {
		t.Fatalf("buffer = %q", r.String())
	}

	// Undo to the root and redo: the selected branch is "b".
	undoEdit, _, _ = tree.Undo()
	r = undoEdit.Apply(r)
	if got := tree.Selected(0); got != 1 {
		t.Fatalf("selected = %d, want 1", got)
	}

	// Left selects the earlier sibling; Down redoes it.
	tree.SelectSibling(-1)
	if got := tree.Selected(0); got != 0 {
		t.Fatalf("selected = %d, want 0", got)
	}
	redoEdit, _, err := tree.Redo()
	if err != nil {
		t.Fatal(err)
	}
	r = redoEdit.Apply(r)
	if r.String() != "a" {
		t.Fatalf("buffer = %q", r.String())
	}
}

func TestSelectSiblingClamps(t *testing.T) {
	tree, _ := newTestTree()
	tree.SelectSibling(-1)
	tree.SelectSibling(1) // no children: must not panic
	if tree.Selected(0) != 0 {
		t.Fatal("selection moved without children")
	}
}

func TestNavigate(t *testing.T) {
	tree, clock := newTestTree()
	tree.Commit(insert(0, "x"), 1, 1)
	clock.advance(time.Second)

	if _, _, applied, err := tree.Navigate(Up); err != nil || !applied {
		t.Fatalf("Up: applied=%v err=%v", applied, err)
	}
	if _, _, applied, _ := tree.Navigate(Left); applied {
		t.Fatal("Left must not apply an edit")
	}
	if _, _, applied, err := tree.Navigate(Down); err != nil || !applied {
		t.Fatalf("Down: applied=%v err=%v", applied, err)
	}
}

func TestCoalescing(t *testing.T) {
	tree, clock := newTestTree()

	tree.Commit(insert(0, "f"), 1, 1)
	clock.advance(10 * time.Millisecond)
	tree.Commit(insert(1, "o"), 2, 2)
	clock.advance(10 * time.Millisecond)
	tree.Commit(insert(2, "o"), 3, 3)

	// Three keystrokes, one revision besides the root.
	if tree.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tree.Len())
	}
	if got := tree.EditOf(1).Inserted; got != "foo" {
		t.Fatalf("coalesced insert = %q", got)
	}
}

func TestCoalescingBreaksOnClass(t *testing.T) {
	tree, clock := newTestTree()

	tree.Commit(insert(0, "a"), 1, 1)
	clock.advance(10 * time.Millisecond)
	tree.Commit(insert(1, " "), 2, 2) // whitespace starts a new step
	if tree.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tree.Len())
	}
}

func TestCoalescingBreaksOnTimeout(t *testing.T) {
	tree, clock := newTestTree()

	tree.Commit(insert(0, "a"), 1, 1)
	clock.advance(CoalesceTimeout + time.Millisecond)
	tree.Commit(insert(1, "b"), 2, 2)
	if tree.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tree.Len())
	}
}

func TestCoalescingBreaksOnSeal(t *testing.T) {
	tree, clock := newTestTree()

	tree.Commit(insert(0, "a"), 1, 1)
	clock.advance(10 * time.Millisecond)
	tree.Seal() // cursor jump or non-insert command
	tree.Commit(insert(1, "b"), 2, 2)
	if tree.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tree.Len())
	}
}

func TestDeduplication(t *testing.T) {
	tree, clock := newTestTree()

	e := insert(0, "dup")
	tree.Commit(e, 3, 1)
	clock.advance(time.Second)
	tree.Undo()
	tree.Commit(e, 3, 2) // identical edit: reuse the child
	if tree.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tree.Len())
	}
	if tree.Current() != 1 {
		t.Fatalf("current = %d, want 1", tree.Current())
	}
}

// Versions increase strictly along any root-to-leaf path.
func TestVersionMonotonicity(t *testing.T) {
	tree, clock := newTestTree()
	version := uint64(0)

	commit := func(e Edit) {
		version++
		tree.Commit(e, e.Start, version)
		clock.advance(time.Second)
	}

	commit(insert(0, "one"))
	commit(insert(3, "\n"))
	tree.Undo()
	commit(insert(3, "!"))

	path := tree.PathFromRoot()
	last := uint64(0)
	for _, i := range path[1:] {
		v := tree.Version(i)
		if v <= last {
			t.Fatalf("version %d not increasing after %d", v, last)
		}
		last = v
	}
}

// Insert "foo" as three separate steps, undo three times, redo twice:
// two of the three characters come back.
func TestUndoThreeRedoTwo(t *testing.T) {
	tree, clock := newTestTree()
	r := rope.FromString("")

	for i, s := range []string{"f", "o", "o"} {
		e := insert(rope.CharOffset(i), s)
		r = e.Apply(r)
		tree.Commit(e, rope.CharOffset(i+1), uint64(i+1))
		tree.Seal() // separate steps
		clock.advance(time.Second)
	}

	for i := 0; i < 3; i++ {
		if e, _, err := tree.Undo(); err == nil {
			r = e.Apply(r)
		}
	}
	if r.String() != "" {
		t.Fatalf("after undos: %q", r.String())
	}
	for i := 0; i < 2; i++ {
		if e, _, err := tree.Redo(); err == nil {
			r = e.Apply(r)
		}
	}
	if r.String() != "fo" {
		t.Fatalf("after redos: %q, want \"fo\"", r.String())
	}
}
