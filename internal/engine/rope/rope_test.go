package rope

import (
	"strings"
	"testing"
)

func TestFromStringRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"hello",
		"hello\nworld\n",
		strings.Repeat("a", 10_000),
		strings.Repeat("line one\nline two\n", 500),
		"héllo wörld 豈 更 車\n👨‍👩‍👧‍👦 done\n",
	}
	for _, want := range tests {
		r := FromString(want)
		if got := r.String(); got != want {
			t.Errorf("round trip failed for %d bytes: got %d bytes", len(want), len(got))
		}
	}
}

func TestInsertDelete(t *testing.T) {
	r := FromString("hello world")
	r = r.Insert(5, ",")
	if got := r.String(); got != "hello, world" {
		t.Fatalf("insert: got %q", got)
	}
	r = r.Delete(5, 6)
	if got := r.String(); got != "hello world" {
		t.Fatalf("delete: got %q", got)
	}
}

func TestInsertClamps(t *testing.T) {
	r := FromString("ab")
	r = r.Insert(100, "c")
	if got := r.String(); got != "abc" {
		t.Errorf("insert past end: got %q", got)
	}
	r = r.Insert(-5, "x")
	if got := r.String(); got != "xabc" {
		t.Errorf("insert before start: got %q", got)
	}
}

func TestDeleteClamps(t *testing.T) {
	r := FromString("abc")
	if got := r.Delete(2, 100).String(); got != "ab" {
		t.Errorf("delete past end: got %q", got)
	}
	if got := r.Delete(5, 9).String(); got != "abc" {
		t.Errorf("delete out of range: got %q", got)
	}
}

func TestInsertUnicode(t *testing.T) {
	r := FromString("豈更車")
	r = r.Insert(1, "x")
	if got := r.String(); got != "豈x更車" {
		t.Fatalf("got %q", got)
	}
	if r.LenChars() != 4 {
		t.Fatalf("LenChars = %d, want 4", r.LenChars())
	}
}

func TestLargeEdits(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 2000; i++ {
		sb.WriteString("the quick brown fox\n")
	}
	r := FromString(sb.String())

	r = r.Insert(r.LenChars()/2, "JUMPED")
	if !strings.Contains(r.String(), "JUMPED") {
		t.Fatal("middle insert lost")
	}

	before := r.LenChars()
	r = r.Delete(10, 30)
	if r.LenChars() != before-20 {
		t.Fatalf("LenChars = %d, want %d", r.LenChars(), before-20)
	}
}

func TestLineIndexing(t *testing.T) {
	r := FromString("one\ntwo\nthree\n")
	if got := r.LenLines(); got != 4 {
		t.Fatalf("LenLines = %d, want 4", got)
	}
	wantStarts := []CharOffset{0, 4, 8, 14}
	for line, want := range wantStarts {
		if got := r.LineToChar(line); got != want {
			t.Errorf("LineToChar(%d) = %d, want %d", line, got, want)
		}
	}
	if got := r.CharToLine(5); got != 1 {
		t.Errorf("CharToLine(5) = %d, want 1", got)
	}
	if got := r.Line(1); got != "two\n" {
		t.Errorf("Line(1) = %q", got)
	}
	if got := r.LineLen(2); got != 5 {
		t.Errorf("LineLen(2) = %d, want 5", got)
	}
}

// Line/char conversions must invert each other for every valid line,
// including after edits.
func TestLineCharBijection(t *testing.T) {
	r := FromString(strings.Repeat("alpha\nbeta gamma\n\ndelta\n", 200))
	r = r.Insert(37, "inserted\ntext\n")
	r = r.Delete(400, 450)

	for line := 0; line < r.LenLines(); line++ {
		start := r.LineToChar(line)
		if got := r.CharToLine(start); got != line {
			t.Fatalf("CharToLine(LineToChar(%d)) = %d", line, got)
		}
	}
	for line := 0; line < r.LenLines(); line++ {
		b := r.LineToByte(line)
		if got := r.ByteToLine(b); got != line {
			t.Fatalf("ByteToLine(LineToByte(%d)) = %d", line, got)
		}
	}
}

func TestCharByteConversion(t *testing.T) {
	r := FromString("a豈b更c")
	tests := []struct {
		char CharOffset
		byte ByteOffset
	}{
		{0, 0}, {1, 1}, {2, 4}, {3, 5}, {4, 8}, {5, 9},
	}
	for _, tt := range tests {
		if got := r.CharToByte(tt.char); got != tt.byte {
			t.Errorf("CharToByte(%d) = %d, want %d", tt.char, got, tt.byte)
		}
		if got := r.ByteToChar(tt.byte); got != tt.char {
			t.Errorf("ByteToChar(%d) = %d, want %d", tt.byte, got, tt.char)
		}
	}
}

func TestSlice(t *testing.T) {
	r := FromString("hello world")
	if got := r.Slice(6, 11); got != "world" {
		t.Errorf("Slice = %q", got)
	}
	if got := r.Slice(6, 100); got != "world" {
		t.Errorf("clamped Slice = %q", got)
	}
	if got := r.Slice(8, 3); got != "" {
		t.Errorf("inverted Slice = %q", got)
	}
}

func TestGraphemeBoundaries(t *testing.T) {
	// The family emoji is a single cluster of 7 chars (4 runes + 3 ZWJ).
	emoji := "👨‍👩‍👧‍👦"
	r := FromString("a" + emoji + "b")
	clusterLen := CharOffset(0)
	for range emoji {
		clusterLen++
	}

	if got := r.NextGraphemeBoundary(0); got != 1 {
		t.Errorf("NextGraphemeBoundary(0) = %d, want 1", got)
	}
	if got := r.NextGraphemeBoundary(1); got != 1+clusterLen {
		t.Errorf("NextGraphemeBoundary(1) = %d, want %d", got, 1+clusterLen)
	}
	if got := r.PrevGraphemeBoundary(1 + clusterLen); got != 1 {
		t.Errorf("PrevGraphemeBoundary(%d) = %d, want 1", 1+clusterLen, got)
	}
	if r.IsGraphemeBoundary(2) {
		t.Error("offset 2 should be inside the emoji cluster")
	}
}

func TestGraphemeAcrossLines(t *testing.T) {
	r := FromString("ab\ncd")
	if got := r.NextGraphemeBoundary(2); got != 3 {
		t.Errorf("NextGraphemeBoundary(newline) = %d, want 3", got)
	}
	if got := r.PrevGraphemeBoundary(3); got != 2 {
		t.Errorf("PrevGraphemeBoundary(line start) = %d, want 2", got)
	}
}

func TestGraphemeSaturation(t *testing.T) {
	r := FromString("ab")
	if got := r.NextGraphemeBoundary(10); got != 2 {
		t.Errorf("NextGraphemeBoundary past end = %d, want 2", got)
	}
	if got := r.PrevGraphemeBoundary(-4); got != 0 {
		t.Errorf("PrevGraphemeBoundary before start = %d, want 0", got)
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"abc", 3},
		{"豈", 2},
		{"a\tb", 5}, // tab expands to column 4
		{"\t\t", 8},
		{"", 0},
	}
	for _, tt := range tests {
		if got := Width(4, tt.text); got != tt.want {
			t.Errorf("Width(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestConcatEquals(t *testing.T) {
	a := FromString("hello ")
	b := FromString("world")
	if !a.Concat(b).Equals(FromString("hello world")) {
		t.Error("concat mismatch")
	}
}
