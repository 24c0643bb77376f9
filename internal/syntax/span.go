package syntax

import (
	"sort"

	"github.com/zee-editor/zee/internal/engine/history"
	"github.com/zee-editor/zee/internal/engine/rope"
)

// Span tags a byte range with a highlight name such as "keyword" or
// "string". Spans in a ParseState are sorted and non-overlapping.
type Span struct {
	Start     rope.ByteOffset
	End       rope.ByteOffset
	Highlight string
}

// TreeEdit mirrors a buffer edit in the coordinates the parser needs:
// byte offsets plus row/column equivalents. It is applied synchronously
// to the stale parse state so old spans keep lining up roughly until
// the next parse result lands.
type TreeEdit struct {
	StartByte   rope.ByteOffset
	OldEndByte  rope.ByteOffset
	NewEndByte  rope.ByteOffset
	StartPoint  rope.Point
	OldEndPoint rope.Point
	NewEndPoint rope.Point
}

// MakeTreeEdit converts a committed edit into a TreeEdit. oldText is
// the rope before the edit was applied.
func MakeTreeEdit(oldText rope.Rope, edit history.Edit) TreeEdit {
	startByte := oldText.CharToByte(edit.Start)
	startPoint := pointAt(oldText, edit.Start)

	oldEndByte := startByte + rope.ByteOffset(len(edit.Removed))
	newEndByte := startByte + rope.ByteOffset(len(edit.Inserted))

	return TreeEdit{
		StartByte:   startByte,
		OldEndByte:  oldEndByte,
		NewEndByte:  newEndByte,
		StartPoint:  startPoint,
		OldEndPoint: advancePoint(startPoint, edit.Removed),
		NewEndPoint: advancePoint(startPoint, edit.Inserted),
	}
}

func pointAt(text rope.Rope, char rope.CharOffset) rope.Point {
	line := text.CharToLine(char)
	return rope.Point{
		Line:   line,
		Column: int(char - text.LineToChar(line)),
	}
}

func advancePoint(p rope.Point, s string) rope.Point {
	for _, r := range s {
		if r == '\n' {
			p.Line++
			p.Column = 0
		} else {
			p.Column++
		}
	}
	return p
}

// ParseState is a buffer's view of the highlighting pipeline: the last
// accepted tree, the edit version it reflects, and the spans derived
// from it.
type ParseState struct {
	Tree    *Tree
	Version uint64
	Spans   []Span
}

// NewParseState returns an empty parse state at version zero.
func NewParseState() *ParseState {
	return &ParseState{}
}

// ApplyEdit shifts the stale spans through an edit so they still point
// at roughly the right text. Spans inside the edited range are
// dropped; spans after it slide by the length delta.
func (ps *ParseState) ApplyEdit(te TreeEdit) {
	delta := te.NewEndByte - te.OldEndByte
	out := ps.Spans[:0]
	for _, s := range ps.Spans {
		switch {
		case s.End <= te.StartByte:
			out = append(out, s)
		case s.Start >= te.OldEndByte:
			out = append(out, Span{Start: s.Start + delta, End: s.End + delta, Highlight: s.Highlight})
		case s.Start < te.StartByte:
			// Keep the prefix that survived the edit.
			out = append(out, Span{Start: s.Start, End: te.StartByte, Highlight: s.Highlight})
		}
	}
	ps.Spans = out
}

// Accept installs a parse result if it is not stale: the result must
// be at least as new as the current state and must match the buffer's
// live version. Returns false when the result should be discarded.
func (ps *ParseState) Accept(tree *Tree, spans []Span, resultVersion, liveVersion uint64) bool {
	if resultVersion < ps.Version || resultVersion != liveVersion {
		return false
	}
	ps.Tree = tree
	ps.Version = resultVersion
	ps.Spans = spans
	return true
}

// SpanAt finds the span covering a byte offset, by binary search.
func SpanAt(spans []Span, b rope.ByteOffset) (Span, bool) {
	i := sort.Search(len(spans), func(i int) bool { return spans[i].End > b })
	if i < len(spans) && spans[i].Start <= b {
		return spans[i], true
	}
	return Span{}, false
}

// SpansInRange returns the subsequence of spans overlapping [start, end).
func SpansInRange(spans []Span, start, end rope.ByteOffset) []Span {
	lo := sort.Search(len(spans), func(i int) bool { return spans[i].End > start })
	hi := sort.Search(len(spans), func(i int) bool { return spans[i].Start >= end })
	if lo >= hi {
		return nil
	}
	return spans[lo:hi]
}
