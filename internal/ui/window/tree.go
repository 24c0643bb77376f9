// Package window manages the binary split tree of viewports. Leaves
// reference buffers by id; exactly one leaf has focus.
package window

import "github.com/zee-editor/zee/internal/engine/buffer"

// Orientation is the direction of a split.
type Orientation int

const (
	// Horizontal places the two children side by side (split right).
	Horizontal Orientation = iota

	// Vertical stacks the two children (split below).
	Vertical
)

// Leaf is a viewport onto a buffer.
type Leaf struct {
	Buffer    buffer.ID
	TopLine   int
	ScrollCol int
}

// node is either a leaf or an internal split.
type node struct {
	// Internal fields.
	orientation Orientation
	ratio       float64
	left, right *node

	// Leaf payload, nil for internal nodes.
	leaf *Leaf
}

func (n *node) isLeaf() bool { return n.leaf != nil }

// Tree is the window layout for the whole screen.
type Tree struct {
	root    *node
	focused *node // always a leaf
}

// New creates a single-window tree showing the given buffer.
func New(buf buffer.ID) *Tree {
	leaf := &node{leaf: &Leaf{Buffer: buf}}
	return &Tree{root: leaf, focused: leaf}
}

// Focused returns the focused leaf.
func (t *Tree) Focused() *Leaf { return t.focused.leaf }

// Split replaces the focused leaf with an internal node whose two
// children show the focused buffer. The original leaf keeps focus and
// the ratio defaults to an even split.
func (t *Tree) Split(o Orientation) {
	old := t.focused
	first := &node{leaf: &Leaf{Buffer: old.leaf.Buffer, TopLine: old.leaf.TopLine}}
	second := &node{leaf: &Leaf{Buffer: old.leaf.Buffer, TopLine: old.leaf.TopLine}}

	old.leaf = nil
	old.orientation = o
	old.ratio = 0.5
	old.left = first
	old.right = second

	t.focused = first
}

// SplitBelow splits the focused window into two stacked viewports.
func (t *Tree) SplitBelow() { t.Split(Vertical) }

// SplitRight splits the focused window into two side-by-side
// viewports.
func (t *Tree) SplitRight() { t.Split(Horizontal) }

// CloseFocused removes the focused leaf and promotes its sibling.
// Closing the last window leaves a single leaf showing scratch.
func (t *Tree) CloseFocused(scratch buffer.ID) {
	parent, isLeft := t.parentOf(t.root, nil, false, t.focused)
	if parent == nil {
		// Closing the only window: show the scratch buffer.
		t.root = &node{leaf: &Leaf{Buffer: scratch}}
		t.focused = t.root
		return
	}

	survivor := parent.left
	if isLeft {
		survivor = parent.right
	}
	*parent = *survivor
	t.focused = firstLeaf(parent)
}

// Fullscreen replaces the whole tree with the focused leaf. The other
// windows are gone for good; restore is not supported.
func (t *Tree) Fullscreen() {
	leaf := *t.focused.leaf
	t.root = &node{leaf: &leaf}
	t.focused = t.root
}

// FocusNext moves focus to the next leaf in depth-first order,
// wrapping around.
func (t *Tree) FocusNext() {
	leaves := t.leafNodes()
	for i, n := range leaves {
		if n == t.focused {
			t.focused = leaves[(i+1)%len(leaves)]
			return
		}
	}
}

// FocusPrevious moves focus to the previous leaf in depth-first order.
func (t *Tree) FocusPrevious() {
	leaves := t.leafNodes()
	for i, n := range leaves {
		if n == t.focused {
			t.focused = leaves[(i-1+len(leaves))%len(leaves)]
			return
		}
	}
}

// CountLeaves returns the number of windows.
func (t *Tree) CountLeaves() int { return len(t.leafNodes()) }

// Leaves returns all viewports in depth-first order.
func (t *Tree) Leaves() []*Leaf {
	nodes := t.leafNodes()
	out := make([]*Leaf, len(nodes))
	for i, n := range nodes {
		out[i] = n.leaf
	}
	return out
}

// References reports whether any window shows the given buffer.
func (t *Tree) References(id buffer.ID) bool {
	for _, l := range t.Leaves() {
		if l.Buffer == id {
			return true
		}
	}
	return false
}

// ReplaceBuffer points every window showing old at new. Used when a
// buffer is killed.
func (t *Tree) ReplaceBuffer(old, new buffer.ID) {
	for _, l := range t.Leaves() {
		if l.Buffer == old {
			l.Buffer = new
			l.TopLine = 0
			l.ScrollCol = 0
		}
	}
}

// Placement is the screen geometry assigned to one window.
type Placement struct {
	Leaf    *Leaf
	Focused bool
	X, Y    int
	W, H    int
}

// Layout computes the geometry of every window within a rectangle.
func (t *Tree) Layout(width, height int) []Placement {
	var out []Placement
	t.layout(t.root, 0, 0, width, height, &out)
	return out
}

func (t *Tree) layout(n *node, x, y, w, h int, out *[]Placement) {
	if n.isLeaf() {
		*out = append(*out, Placement{
			Leaf:    n.leaf,
			Focused: n == t.focused,
			X:       x, Y: y, W: w, H: h,
		})
		return
	}
	if n.orientation == Horizontal {
		lw := int(float64(w) * n.ratio)
		t.layout(n.left, x, y, lw, h, out)
		t.layout(n.right, x+lw, y, w-lw, h, out)
	} else {
		lh := int(float64(h) * n.ratio)
		t.layout(n.left, x, y, w, lh, out)
		t.layout(n.right, x, y+lh, w, h-lh, out)
	}
}

// parentOf finds the parent of target and whether target is the left
// child. Returns nil when target is the root.
func (t *Tree) parentOf(n, parent *node, isLeft bool, target *node) (*node, bool) {
	if n == target {
		return parent, isLeft
	}
	if n.isLeaf() {
		return nil, false
	}
	if p, l := t.parentOf(n.left, n, true, target); p != nil {
		return p, l
	}
	return t.parentOf(n.right, n, false, target)
}

func firstLeaf(n *node) *node {
	for !n.isLeaf() {
		n = n.left
	}
	return n
}

func (t *Tree) leafNodes() []*node {
	var out []*node
	var walk func(*node)
	walk = func(n *node) {
		if n.isLeaf() {
			out = append(out, n)
			return
		}
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return out
}
