// Package cursor provides the cursor model and movement primitives.
// A cursor is a character offset held on a grapheme cluster boundary,
// with an optional selection anchor and a goal column that preserves
// the horizontal position across vertical motion.
package cursor

import "github.com/zee-editor/zee/internal/engine/rope"

// Cursor is an insertion point in a buffer.
type Cursor struct {
	point     rope.CharOffset
	anchor    rope.CharOffset
	hasAnchor bool
	goal      int // visual goal column; -1 when unset
}

// New creates a cursor at the start of the buffer.
func New() Cursor {
	return Cursor{goal: -1}
}

// At creates a cursor at the given offset.
func At(point rope.CharOffset) Cursor {
	return Cursor{point: point, goal: -1}
}

// Point returns the cursor's character offset.
func (c Cursor) Point() rope.CharOffset { return c.point }

// HasSelection reports whether a selection anchor is set.
func (c Cursor) HasSelection() bool { return c.hasAnchor }

// Selection returns the selected half-open character range. When no
// anchor is set, both bounds equal the cursor point.
func (c Cursor) Selection() (start, end rope.CharOffset) {
	if !c.hasAnchor || c.anchor == c.point {
		return c.point, c.point
	}
	if c.anchor < c.point {
		return c.anchor, c.point
	}
	return c.point, c.anchor
}

// BeginSelection anchors a selection at the current point.
func (c *Cursor) BeginSelection() {
	c.anchor = c.point
	c.hasAnchor = true
}

// ClearSelection drops the anchor.
func (c *Cursor) ClearSelection() {
	c.hasAnchor = false
}

// SelectAll selects the entire buffer, leaving the point at the start.
func (c *Cursor) SelectAll(text rope.Rope) {
	c.point = 0
	c.anchor = text.LenChars()
	c.hasAnchor = true
	c.goal = -1
}

// MoveTo places the cursor on the grapheme boundary at or before the
// given offset and resets the goal column. The selection anchor, if
// any, stays where it is.
func (c *Cursor) MoveTo(text rope.Rope, point rope.CharOffset) {
	if point < 0 {
		point = 0
	}
	if n := text.LenChars(); point > n {
		point = n
	}
	if !text.IsGraphemeBoundary(point) {
		point = text.PrevGraphemeBoundary(point)
	}
	c.point = point
	c.goal = -1
}

// Sync re-clamps the cursor after the buffer changed underneath it,
// e.g. when an asynchronous reload replaced the text.
func (c *Cursor) Sync(text rope.Rope) {
	if c.point > text.LenChars() {
		c.point = text.LenChars()
	}
	if !text.IsGraphemeBoundary(c.point) {
		c.point = text.PrevGraphemeBoundary(c.point)
	}
	if c.hasAnchor && c.anchor > text.LenChars() {
		c.anchor = text.LenChars()
	}
	c.goal = -1
}
