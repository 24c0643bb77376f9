package rope

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Grapheme navigation. Cursors sit on extended grapheme cluster
// boundaries, never inside a cluster. Clusters cannot span a newline,
// so boundary searches only ever look at a single line of text.

// NextGraphemeBoundary returns the first grapheme boundary after char.
// Saturates at the end of the rope.
func (r Rope) NextGraphemeBoundary(char CharOffset) CharOffset {
	total := r.LenChars()
	if char >= total {
		return total
	}
	if char < 0 {
		char = 0
	}
	line := r.CharToLine(char)
	start := r.LineToChar(line)
	text := r.Line(line)

	offset := start
	state := -1
	for len(text) > 0 {
		cluster, rest, _, next := uniseg.StepString(text, state)
		width := CharOffset(0)
		for range cluster {
			width++
		}
		if offset+width > char {
			return offset + width
		}
		offset += width
		text, state = rest, next
	}
	return total
}

// PrevGraphemeBoundary returns the last grapheme boundary before char.
// Saturates at zero.
func (r Rope) PrevGraphemeBoundary(char CharOffset) CharOffset {
	if char <= 0 {
		return 0
	}
	if n := r.LenChars(); char > n {
		char = n
	}
	line := r.CharToLine(char - 1)
	start := r.LineToChar(line)
	text := r.Line(line)

	offset := start
	prev := start
	state := -1
	for len(text) > 0 {
		cluster, rest, _, next := uniseg.StepString(text, state)
		width := CharOffset(0)
		for range cluster {
			width++
		}
		if offset+width >= char {
			return offset
		}
		prev = offset
		offset += width
		text, state = rest, next
	}
	return prev
}

// NextGraphemeBoundaryN applies NextGraphemeBoundary n times.
func (r Rope) NextGraphemeBoundaryN(char CharOffset, n int) CharOffset {
	for i := 0; i < n; i++ {
		char = r.NextGraphemeBoundary(char)
	}
	return char
}

// PrevGraphemeBoundaryN applies PrevGraphemeBoundary n times.
func (r Rope) PrevGraphemeBoundaryN(char CharOffset, n int) CharOffset {
	for i := 0; i < n; i++ {
		char = r.PrevGraphemeBoundary(char)
	}
	return char
}

// IsGraphemeBoundary reports whether char falls on a cluster boundary.
func (r Rope) IsGraphemeBoundary(char CharOffset) bool {
	if char <= 0 || char >= r.LenChars() {
		return true
	}
	return r.PrevGraphemeBoundary(char+1) == char ||
		r.NextGraphemeBoundary(char-1) == char
}

// Width returns the display width of s, expanding tabs to the next
// tab stop and giving East-Asian-wide clusters two columns.
func Width(tabWidth int, s string) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	col := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, next := uniseg.StepString(s, state)
		if cluster == "\t" {
			col += tabWidth - col%tabWidth
		} else if cluster != "\n" {
			col += runewidth.StringWidth(cluster)
		}
		s, state = rest, next
	}
	return col
}

// GraphemeWidth returns the display width of a single cluster at a
// given starting column (tabs depend on the column they start in).
func GraphemeWidth(tabWidth int, col int, cluster string) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = 4
		}
		return tabWidth - col%tabWidth
	}
	if cluster == "\n" {
		return 0
	}
	return runewidth.StringWidth(cluster)
}

// Graphemes calls fn for every grapheme cluster in the character range
// [start, end), passing the cluster text and its starting char offset.
// Returning false stops the walk.
func (r Rope) Graphemes(start, end CharOffset, fn func(cluster string, at CharOffset) bool) {
	text := r.Slice(start, end)
	offset := start
	state := -1
	for len(text) > 0 {
		cluster, rest, _, next := uniseg.StepString(text, state)
		if !fn(cluster, offset) {
			return
		}
		for range cluster {
			offset++
		}
		text, state = rest, next
	}
}
