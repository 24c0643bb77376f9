package syntax

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/zee-editor/zee/internal/engine/rope"
)

// LexGrammar is a line-oriented lexical grammar. It tokenizes with
// regex rules, keyword tables and multi-line constructs, emitting the
// highlight names a tree-sitter query would produce for the same text.
type LexGrammar struct {
	id       string
	rules    []lexRule
	keywords map[string]string
	multi    []multiLineRule
}

type lexRule struct {
	pattern   *regexp.Regexp
	highlight string
}

// multiLineRule spans lines, like block comments and raw strings.
type multiLineRule struct {
	start     string
	end       string
	highlight string
}

// NewLexGrammar creates an empty lexical grammar.
func NewLexGrammar(id string) *LexGrammar {
	return &LexGrammar{
		id:       id,
		keywords: make(map[string]string),
	}
}

// AddRule registers a single-line regex rule.
func (g *LexGrammar) AddRule(pattern, highlight string) *LexGrammar {
	g.rules = append(g.rules, lexRule{
		pattern:   regexp.MustCompile(pattern),
		highlight: highlight,
	})
	return g
}

// AddKeywords registers identifier keywords under one highlight name.
func (g *LexGrammar) AddKeywords(highlight string, words ...string) *LexGrammar {
	for _, w := range words {
		g.keywords[w] = highlight
	}
	return g
}

// AddMultiLine registers a construct that may span lines.
func (g *LexGrammar) AddMultiLine(start, end, highlight string) *LexGrammar {
	g.multi = append(g.multi, multiLineRule{start: start, end: end, highlight: highlight})
	return g
}

// ID implements Grammar.
func (g *LexGrammar) ID() string { return g.id }

// Highlights implements Grammar.
func (g *LexGrammar) Highlights(tree *Tree) []Span {
	if tree == nil {
		return nil
	}
	return tree.spans
}

// Parse implements Grammar with a full scan of the snapshot. The prior
// tree is accepted as an incremental hint but a lexical scan is cheap
// enough to redo from the top.
func (g *LexGrammar) Parse(_ *Tree, text rope.Rope) *Tree {
	var spans []Span
	var base rope.ByteOffset
	inMulti := -1 // index into g.multi, -1 when in normal state

	full := text.String()
	for len(full) > 0 {
		line := full
		if i := strings.IndexByte(full, '\n'); i >= 0 {
			line = full[:i]
			full = full[i+1:]
		} else {
			full = ""
		}

		rest := line
		restBase := base
		if inMulti >= 0 {
			rule := g.multi[inMulti]
			end := strings.Index(rest, rule.end)
			if end < 0 {
				if len(rest) > 0 {
					spans = append(spans, Span{Start: restBase, End: restBase + rope.ByteOffset(len(rest)), Highlight: rule.highlight})
				}
				base += rope.ByteOffset(len(line) + 1)
				continue
			}
			stop := end + len(rule.end)
			spans = append(spans, Span{Start: restBase, End: restBase + rope.ByteOffset(stop), Highlight: rule.highlight})
			rest = rest[stop:]
			restBase += rope.ByteOffset(stop)
			inMulti = -1
		}

		lineSpans, next := g.scanLine(rest, restBase)
		spans = append(spans, lineSpans...)
		inMulti = next
		base += rope.ByteOffset(len(line) + 1)
	}

	return &Tree{spans: spans}
}

// scanLine tokenizes one line in the normal state. Returns the spans
// and the multi-line state the next line starts in.
func (g *LexGrammar) scanLine(line string, base rope.ByteOffset) ([]Span, int) {
	if len(line) == 0 {
		return nil, -1
	}
	var spans []Span
	covered := make([]bool, len(line))
	next := -1

	for mi, rule := range g.multi {
		from := 0
		for {
			idx := strings.Index(line[from:], rule.start)
			if idx < 0 {
				break
			}
			start := from + idx
			if isCovered(covered, start, start+len(rule.start)) {
				from = start + len(rule.start)
				continue
			}
			endIdx := strings.Index(line[start+len(rule.start):], rule.end)
			if endIdx >= 0 {
				stop := start + len(rule.start) + endIdx + len(rule.end)
				spans = append(spans, Span{Start: base + rope.ByteOffset(start), End: base + rope.ByteOffset(stop), Highlight: rule.highlight})
				markCovered(covered, start, stop)
				from = stop
				continue
			}
			spans = append(spans, Span{Start: base + rope.ByteOffset(start), End: base + rope.ByteOffset(len(line)), Highlight: rule.highlight})
			markCovered(covered, start, len(line))
			next = mi
			break
		}
		if next >= 0 {
			break
		}
	}

	for _, rule := range g.rules {
		for _, match := range rule.pattern.FindAllStringIndex(line, -1) {
			start, end := match[0], match[1]
			if end > start && !isCovered(covered, start, end) {
				spans = append(spans, Span{Start: base + rope.ByteOffset(start), End: base + rope.ByteOffset(end), Highlight: rule.highlight})
				markCovered(covered, start, end)
			}
		}
	}

	spans = append(spans, g.scanKeywords(line, base, covered)...)

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans, next
}

// scanKeywords walks identifiers and emits spans for the ones in the
// keyword table.
func (g *LexGrammar) scanKeywords(line string, base rope.ByteOffset, covered []bool) []Span {
	var spans []Span
	i := 0
	for i < len(line) {
		if covered[i] {
			i++
			continue
		}
		r := rune(line[i])
		if !unicode.IsLetter(r) && r != '_' {
			i++
			continue
		}
		start := i
		for i < len(line) {
			r = rune(line[i])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			i++
		}
		if isCovered(covered, start, i) {
			continue
		}
		if hl, ok := g.keywords[line[start:i]]; ok {
			spans = append(spans, Span{Start: base + rope.ByteOffset(start), End: base + rope.ByteOffset(i), Highlight: hl})
			markCovered(covered, start, i)
		}
	}
	return spans
}

func isCovered(covered []bool, start, end int) bool {
	for i := start; i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	if start < 0 {
		start = 0
	}
	for i := start; i < end && i < len(covered); i++ {
		covered[i] = true
	}
}
