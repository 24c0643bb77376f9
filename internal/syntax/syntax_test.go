package syntax

import (
	"errors"
	"testing"

	"github.com/zee-editor/zee/internal/engine/history"
	"github.com/zee-editor/zee/internal/engine/rope"
)

func testModes() []*Mode {
	return []*Mode{
		{
			Name:     "rust",
			Patterns: []Pattern{{Suffix: ".rs"}},
		},
		{
			Name:     "python",
			Patterns: []Pattern{{Suffix: ".py"}},
			Shebangs: []string{"python", "python3"},
		},
		{
			Name:     "toml",
			Patterns: []Pattern{{Name: "Cargo.toml"}, {Suffix: ".toml"}},
		},
	}
}

func TestSelectModeBySuffix(t *testing.T) {
	m := SelectMode(testModes(), "src/main.rs", "")
	if m.Name != "rust" {
		t.Fatalf("mode = %s", m.Name)
	}
}

func TestSelectModeByName(t *testing.T) {
	m := SelectMode(testModes(), "project/Cargo.toml", "")
	if m.Name != "toml" {
		t.Fatalf("mode = %s", m.Name)
	}
}

func TestSelectModeShebangOverridesSuffix(t *testing.T) {
	// A .rs suffix would match rust, but the shebang wins.
	m := SelectMode(testModes(), "script.rs", "#!/usr/bin/env python3")
	if m.Name != "python" {
		t.Fatalf("mode = %s", m.Name)
	}
}

func TestSelectModeFallback(t *testing.T) {
	m := SelectMode(testModes(), "notes.txt", "")
	if m != PlainTextMode {
		t.Fatalf("mode = %s", m.Name)
	}
}

func TestFirstMatchWins(t *testing.T) {
	modes := []*Mode{
		{Name: "first", Patterns: []Pattern{{Suffix: ".x"}}},
		{Name: "second", Patterns: []Pattern{{Suffix: ".x"}}},
	}
	if m := SelectMode(modes, "a.x", ""); m.Name != "first" {
		t.Fatalf("mode = %s", m.Name)
	}
}

func TestIndentationString(t *testing.T) {
	if got := (Indentation{Width: 2, Unit: IndentSpace}).String(); got != "  " {
		t.Errorf("spaces: %q", got)
	}
	if got := (Indentation{Width: 8, Unit: IndentTab}).String(); got != "\t" {
		t.Errorf("tab: %q", got)
	}
}

func TestLoadGrammar(t *testing.T) {
	if _, err := LoadGrammar("go"); err != nil {
		t.Fatalf("go grammar: %v", err)
	}
	_, err := LoadGrammar("cobol")
	if !errors.Is(err, ErrGrammarLoad) {
		t.Fatalf("err = %v, want ErrGrammarLoad", err)
	}
}

func TestResolveGrammars(t *testing.T) {
	modes := []*Mode{
		{Name: "go", GrammarID: "go"},
		{Name: "weird", GrammarID: "no-such"},
		{Name: "plainish"},
	}
	errs := ResolveGrammars(modes)
	if len(errs) != 1 {
		t.Fatalf("errs = %v", errs)
	}
	if modes[0].Grammar() == nil {
		t.Error("go grammar not attached")
	}
	if modes[1].Grammar() != nil {
		t.Error("failed grammar must stay nil")
	}
}

func TestLexGrammarSpans(t *testing.T) {
	g, _ := LoadGrammar("go")
	text := rope.FromString("// a comment\nfunc main() {\n\treturn 42\n}\n")
	tree := g.Parse(nil, text)
	spans := g.Highlights(tree)

	if len(spans) == 0 {
		t.Fatal("no spans")
	}
	assertSorted(t, spans)

	// The comment covers the first line.
	first := spans[0]
	if first.Highlight != "comment" || first.Start != 0 || first.End != 12 {
		t.Errorf("first span = %+v", first)
	}
	// "func" and "return" are keywords, "42" a number.
	var names []string
	for _, s := range spans {
		names = append(names, s.Highlight)
	}
	wantSubset(t, names, "comment", "keyword", "constant.numeric")
}

func TestLexGrammarMultiLine(t *testing.T) {
	g, _ := LoadGrammar("go")
	text := rope.FromString("a\n/* one\ntwo\nthree */\nb\n")
	spans := g.Highlights(g.Parse(nil, text))

	comments := 0
	for _, s := range spans {
		if s.Highlight == "comment" {
			comments++
		}
	}
	if comments != 3 {
		t.Fatalf("comment spans = %d, want 3 (one per line)", comments)
	}
	assertSorted(t, spans)
}

func TestSpanAt(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 4, Highlight: "keyword"},
		{Start: 10, End: 14, Highlight: "string"},
	}
	if s, ok := SpanAt(spans, 2); !ok || s.Highlight != "keyword" {
		t.Errorf("SpanAt(2) = %+v, %v", s, ok)
	}
	if _, ok := SpanAt(spans, 6); ok {
		t.Error("SpanAt(6) must miss")
	}
	if s, ok := SpanAt(spans, 13); !ok || s.Highlight != "string" {
		t.Errorf("SpanAt(13) = %+v, %v", s, ok)
	}
}

func TestSpansInRange(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 4},
		{Start: 6, End: 9},
		{Start: 20, End: 30},
	}
	got := SpansInRange(spans, 5, 15)
	if len(got) != 1 || got[0].Start != 6 {
		t.Fatalf("got %+v", got)
	}
}

func TestApplyEditShiftsSpans(t *testing.T) {
	ps := NewParseState()
	ps.Spans = []Span{
		{Start: 0, End: 4, Highlight: "keyword"},
		{Start: 10, End: 20, Highlight: "string"},
	}
	// Insert 5 bytes at byte 6: later spans slide right.
	ps.ApplyEdit(TreeEdit{StartByte: 6, OldEndByte: 6, NewEndByte: 11})
	if ps.Spans[0].Start != 0 || ps.Spans[0].End != 4 {
		t.Errorf("untouched span moved: %+v", ps.Spans[0])
	}
	if ps.Spans[1].Start != 15 || ps.Spans[1].End != 25 {
		t.Errorf("later span = %+v", ps.Spans[1])
	}
}

func TestApplyEditDropsEditedSpans(t *testing.T) {
	ps := NewParseState()
	ps.Spans = []Span{{Start: 5, End: 15, Highlight: "string"}}
	// The edit replaces bytes 8..12; the span is truncated to its
	// surviving prefix.
	ps.ApplyEdit(TreeEdit{StartByte: 8, OldEndByte: 12, NewEndByte: 9})
	if len(ps.Spans) != 1 || ps.Spans[0].End != 8 {
		t.Fatalf("spans = %+v", ps.Spans)
	}
}

func TestAcceptStaleResult(t *testing.T) {
	ps := NewParseState()
	tree := &Tree{}

	if !ps.Accept(tree, nil, 3, 3) {
		t.Fatal("fresh result rejected")
	}
	// Older than the state: rejected.
	if ps.Accept(tree, nil, 2, 2) {
		t.Fatal("stale result accepted")
	}
	// Newer than the state but the buffer has moved on: rejected.
	if ps.Accept(tree, nil, 4, 7) {
		t.Fatal("result for superseded version accepted")
	}
	if ps.Version != 3 {
		t.Fatalf("version = %d", ps.Version)
	}
}

func TestMakeTreeEdit(t *testing.T) {
	old := rope.FromString("hello\nworld\n")
	edit := history.Edit{Start: 6, Inserted: "brave\n", Removed: ""}
	te := MakeTreeEdit(old, edit)

	if te.StartByte != 6 || te.OldEndByte != 6 || te.NewEndByte != 12 {
		t.Errorf("bytes = %+v", te)
	}
	if te.StartPoint != (rope.Point{Line: 1, Column: 0}) {
		t.Errorf("start point = %+v", te.StartPoint)
	}
	if te.NewEndPoint != (rope.Point{Line: 2, Column: 0}) {
		t.Errorf("new end point = %+v", te.NewEndPoint)
	}
}

func assertSorted(t *testing.T, spans []Span) {
	t.Helper()
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].End {
			t.Fatalf("spans overlap or unsorted at %d: %+v then %+v", i, spans[i-1], spans[i])
		}
	}
}

func wantSubset(t *testing.T, got []string, want ...string) {
	t.Helper()
	seen := make(map[string]bool, len(got))
	for _, g := range got {
		seen[g] = true
	}
	for _, w := range want {
		if !seen[w] {
			t.Errorf("missing highlight %q in %v", w, got)
		}
	}
}
