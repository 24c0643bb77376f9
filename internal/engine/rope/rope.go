// Package rope implements an immutable chunked rope for text storage.
// Operations return new Rope values; the original is never modified,
// so a snapshot handed to a worker is just a copy of one pointer.
package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope. The zero value is an empty rope.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeaf(nil)}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	chunks := splitIntoChunks(s)
	var leaves []*node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leaf := make([]chunk, end-i)
		copy(leaf, chunks[i:end])
		leaves = append(leaves, newLeaf(leaf))
	}
	return Rope{root: buildFromNodes(leaves)}
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Rope{}, err
	}
	return FromString(string(data)), nil
}

// LenChars returns the total number of characters.
func (r Rope) LenChars() CharOffset {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// LenBytes returns the total number of bytes.
func (r Rope) LenBytes() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LenLines returns the number of lines (newlines + 1).
func (r Rope) LenLines() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty reports whether the rope contains no text.
func (r Rope) IsEmpty() bool { return r.LenChars() == 0 }

// String returns the full text. Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(r.root.summary.Bytes))
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text of the character range [start, end), clamped.
func (r Rope) Slice(start, end CharOffset) string {
	if r.root == nil {
		return ""
	}
	start = r.clamp(start)
	end = r.clamp(end)
	if start >= end {
		return ""
	}
	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// CharAt returns the character at the given offset, or 0 past the end.
func (r Rope) CharAt(char CharOffset) rune {
	s := r.Slice(char, char+1)
	if s == "" {
		return 0
	}
	return []rune(s)[0]
}

// Insert inserts text at a character offset, clamped to the valid range.
func (r Rope) Insert(char CharOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.LenChars() == 0 {
		return FromString(text)
	}
	char = r.clamp(char)
	left, right := r.root.split(char)
	mid := FromString(text)
	return Rope{root: concatNodes(concatNodes(left, mid.root), right)}
}

// Delete removes the character range [start, end), clamped.
func (r Rope) Delete(start, end CharOffset) Rope {
	if r.root == nil {
		return r
	}
	start = r.clamp(start)
	end = r.clamp(end)
	if start >= end {
		return r
	}
	left, rest := r.root.split(start)
	_, right := rest.split(end - start)
	return Rope{root: concatNodes(left, right)}
}

// Concat joins two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil {
		return other
	}
	if other.root == nil {
		return r
	}
	return Rope{root: concatNodes(r.root, other.root)}
}

// CharToByte converts a character offset to a byte offset.
func (r Rope) CharToByte(char CharOffset) ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.byteOfChar(r.clamp(char))
}

// ByteToChar converts a byte offset to a character offset.
func (r Rope) ByteToChar(b ByteOffset) CharOffset {
	if r.root == nil {
		return 0
	}
	return r.root.charOfByte(b)
}

// LineToChar returns the character offset at which the given line starts.
// Out-of-range lines saturate to the end of the rope.
func (r Rope) LineToChar(line int) CharOffset {
	if r.root == nil {
		return 0
	}
	return r.root.charOfLineStart(line)
}

// CharToLine returns the 0-based line containing the given offset.
func (r Rope) CharToLine(char CharOffset) int {
	if r.root == nil {
		return 0
	}
	return r.root.lineOfChar(r.clamp(char))
}

// LineToByte returns the byte offset at which the given line starts.
func (r Rope) LineToByte(line int) ByteOffset {
	return r.CharToByte(r.LineToChar(line))
}

// ByteToLine returns the line containing the given byte offset.
func (r Rope) ByteToLine(b ByteOffset) int {
	return r.CharToLine(r.ByteToChar(b))
}

// Line returns the text of a line including its trailing newline, if any.
func (r Rope) Line(line int) string {
	start := r.LineToChar(line)
	end := r.LenChars()
	if line+1 < r.LenLines() {
		end = r.LineToChar(line + 1)
	}
	return r.Slice(start, end)
}

// LineLen returns the length in characters of a line, excluding the
// trailing newline.
func (r Rope) LineLen(line int) CharOffset {
	start := r.LineToChar(line)
	var end CharOffset
	if line+1 < r.LenLines() {
		end = r.LineToChar(line+1) - 1
	} else {
		end = r.LenChars()
	}
	if end < start {
		end = start
	}
	return end - start
}

// Equals reports whether two ropes hold the same text.
func (r Rope) Equals(other Rope) bool {
	if r.LenBytes() != other.LenBytes() || r.LenChars() != other.LenChars() {
		return false
	}
	return r.String() == other.String()
}

func (r Rope) clamp(char CharOffset) CharOffset {
	if char < 0 {
		return 0
	}
	if n := r.LenChars(); char > n {
		return n
	}
	return char
}
