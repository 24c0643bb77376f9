package cursor

import (
	"unicode"

	"github.com/zee-editor/zee/internal/engine/rope"
)

// Direction is a movement direction.
type Direction int

const (
	Backward Direction = iota
	Forward
)

// MoveHorizontally moves by count grapheme clusters.
func MoveHorizontally(text rope.Rope, c *Cursor, dir Direction, count int) {
	switch dir {
	case Forward:
		c.point = text.NextGraphemeBoundaryN(c.point, count)
	case Backward:
		c.point = text.PrevGraphemeBoundaryN(c.point, count)
	}
	c.goal = -1
}

// MoveVertically moves by count lines, keeping the goal column. The
// goal is captured on the first vertical move and consulted on every
// subsequent one, so crossing a short line does not lose the column.
func MoveVertically(text rope.Rope, c *Cursor, tabWidth int, dir Direction, count int) {
	maxLine := text.LenLines() - 1
	curLine := text.CharToLine(c.point)

	var newLine int
	switch {
	case dir == Forward && curLine < maxLine:
		newLine = curLine + count
		if newLine > maxLine {
			newLine = maxLine
		}
	case dir == Forward:
		MoveToEndOfLine(text, c)
		return
	case dir == Backward && curLine > 0:
		newLine = curLine - count
		if newLine < 0 {
			newLine = 0
		}
	default:
		return
	}

	if c.goal < 0 {
		lineStart := text.LineToChar(curLine)
		c.goal = rope.Width(tabWidth, text.Slice(lineStart, c.point))
	}

	newStart := text.LineToChar(newLine)
	newEnd := newStart + text.LineLen(newLine)
	col := 0
	point := newStart
	text.Graphemes(newStart, newEnd, func(cluster string, at rope.CharOffset) bool {
		w := rope.GraphemeWidth(tabWidth, col, cluster)
		if col+w > c.goal {
			return false
		}
		col += w
		point = at + charLen(cluster)
		return true
	})
	c.point = point
}

// MoveWord moves by count words. A word is a maximal run of word
// characters; everything between words is skipped.
func MoveWord(text rope.Rope, c *Cursor, dir Direction, count int) {
	for i := 0; i < count; i++ {
		switch dir {
		case Forward:
			p := skipForward(text, c.point, func(r rune) bool { return !isWordRune(r) })
			c.point = skipForward(text, p, isWordRune)
		case Backward:
			p := skipBackward(text, c.point, func(r rune) bool { return !isWordRune(r) })
			c.point = skipBackward(text, p, isWordRune)
		}
	}
	c.goal = -1
}

// MoveParagraph moves by count paragraphs. Paragraphs are separated by
// blank (all-whitespace) lines.
func MoveParagraph(text rope.Rope, c *Cursor, dir Direction, count int) {
	for i := 0; i < count; i++ {
		line := text.CharToLine(c.point)
		switch dir {
		case Forward:
			target := text.LenChars()
			for l := line + 1; l < text.LenLines(); l++ {
				if isBlankLine(text, l) {
					target = text.LineToChar(l)
					break
				}
			}
			c.point = target
		case Backward:
			target := rope.CharOffset(0)
			for l := line - 1; l >= 0; l-- {
				if isBlankLine(text, l) {
					target = text.LineToChar(l)
					break
				}
			}
			c.point = target
		}
	}
	c.goal = -1
}

// MovePage moves by a viewport height worth of lines, preserving the
// goal column like any vertical motion.
func MovePage(text rope.Rope, c *Cursor, tabWidth int, dir Direction, pageLines int) {
	if pageLines < 1 {
		pageLines = 1
	}
	MoveVertically(text, c, tabWidth, dir, pageLines)
}

// MoveToStartOfLine moves to column zero of the current line.
func MoveToStartOfLine(text rope.Rope, c *Cursor) {
	c.point = text.LineToChar(text.CharToLine(c.point))
	c.goal = -1
}

// MoveToEndOfLine moves past the last character of the current line,
// before its newline.
func MoveToEndOfLine(text rope.Rope, c *Cursor) {
	line := text.CharToLine(c.point)
	c.point = text.LineToChar(line) + text.LineLen(line)
	c.goal = -1
}

// MoveToStartOfBuffer moves to offset zero.
func MoveToStartOfBuffer(c *Cursor) {
	c.point = 0
	c.goal = -1
}

// MoveToEndOfBuffer moves past the last character.
func MoveToEndOfBuffer(text rope.Rope, c *Cursor) {
	c.point = text.LenChars()
	c.goal = -1
}

func skipForward(text rope.Rope, from rope.CharOffset, pred func(rune) bool) rope.CharOffset {
	n := text.LenChars()
	for from < n && pred(text.CharAt(from)) {
		from++
	}
	return from
}

func skipBackward(text rope.Rope, from rope.CharOffset, pred func(rune) bool) rope.CharOffset {
	for from > 0 && pred(text.CharAt(from-1)) {
		from--
	}
	return from
}

func isWordRune(r rune) bool {
	return r == '_' || (!unicode.IsSpace(r) && !isASCIIPunct(r))
}

func isASCIIPunct(r rune) bool {
	return r < 128 && (unicode.IsPunct(r) || unicode.IsSymbol(r))
}

func isBlankLine(text rope.Rope, line int) bool {
	start := text.LineToChar(line)
	end := start + text.LineLen(line)
	for _, r := range text.Slice(start, end) {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func charLen(s string) rope.CharOffset {
	var n rope.CharOffset
	for range s {
		n++
	}
	return n
}
