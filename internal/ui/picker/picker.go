// Package picker implements the generic fuzzy-filtered list used for
// files, buffers and themes. Candidates stream in while the user
// types; the top matches are kept in a bounded heap and re-scored when
// the query changes, without restarting the enumeration.
package picker

import (
	"container/heap"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zee-editor/zee/internal/input/fuzzy"
)

// Candidate is one selectable entry.
type Candidate struct {
	Text string
	Data any
}

// Item is a scored candidate.
type Item struct {
	Candidate
	Score   int
	Indices []int
}

// Kind names what the picker is listing.
type Kind int

const (
	KindFiles Kind = iota
	KindRepository
	KindBuffers
	KindKillBuffers
	KindThemes
)

// Picker holds the interactive state: the query, every candidate seen
// so far, and the current top matches.
type Picker struct {
	kind     Kind
	query    string
	seen     []Candidate
	top      topHeap
	selected int
	limit    int
	done     bool // enumeration finished
}

// New creates a picker keeping at most limit matches.
func New(kind Kind, limit int) *Picker {
	if limit <= 0 {
		limit = 256
	}
	return &Picker{kind: kind, limit: limit}
}

// Kind returns what the picker lists.
func (p *Picker) Kind() Kind { return p.kind }

// Query returns the current query string.
func (p *Picker) Query() string { return p.query }

// Add feeds newly discovered candidates. They are scored against the
// current query immediately.
func (p *Picker) Add(candidates ...Candidate) {
	for _, c := range candidates {
		p.seen = append(p.seen, c)
		p.offer(c)
	}
	p.clampSelection()
}

// SetQuery replaces the query and re-scores every candidate seen so
// far. The enumerator keeps running; future Add calls use the new
// query.
func (p *Picker) SetQuery(query string) {
	p.query = query
	p.top = p.top[:0]
	for _, c := range p.seen {
		p.offer(c)
	}
	p.selected = 0
	p.clampSelection()
}

// Finish marks the candidate stream as complete.
func (p *Picker) Finish() { p.done = true }

// Done reports whether enumeration has finished.
func (p *Picker) Done() bool { return p.done }

// SeenCount returns how many candidates have arrived.
func (p *Picker) SeenCount() int { return len(p.seen) }

// Results returns the current matches, best first.
func (p *Picker) Results() []Item {
	out := make([]Item, len(p.top))
	copy(out, p.top)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Text < out[j].Text
	})
	return out
}

// Selected returns the currently selected item.
func (p *Picker) Selected() (Item, bool) {
	results := p.Results()
	if p.selected < 0 || p.selected >= len(results) {
		return Item{}, false
	}
	return results[p.selected], true
}

// SelectedIndex returns the selection position within Results.
func (p *Picker) SelectedIndex() int { return p.selected }

// MoveSelection moves the selection by delta, clamping at both ends.
func (p *Picker) MoveSelection(delta int) {
	p.selected += delta
	p.clampSelection()
}

// ExpandSelection copies the selected candidate into the query, the
// Tab behavior.
func (p *Picker) ExpandSelection() {
	if item, ok := p.Selected(); ok {
		p.SetQuery(item.Text)
	}
}

// AscendDirectory rewrites a path query to its parent directory, the
// C-l behavior. Returns false when the query does not look like a
// path.
func (p *Picker) AscendDirectory() bool {
	q := strings.TrimSuffix(p.query, string(filepath.Separator))
	if q == "" || !strings.ContainsRune(p.query, filepath.Separator) {
		return false
	}
	parent := filepath.Dir(q)
	if parent == q {
		return false
	}
	if parent == "/" {
		p.SetQuery("/")
	} else {
		p.SetQuery(parent + string(filepath.Separator))
	}
	return true
}

func (p *Picker) offer(c Candidate) {
	score, indices, ok := fuzzy.Match(p.query, c.Text)
	if !ok {
		return
	}
	item := Item{Candidate: c, Score: score, Indices: indices}
	if len(p.top) < p.limit {
		heap.Push(&p.top, item)
		return
	}
	if worse(p.top[0], item) {
		p.top[0] = item
		heap.Fix(&p.top, 0)
	}
}

func (p *Picker) clampSelection() {
	if p.selected < 0 {
		p.selected = 0
	}
	if n := len(p.top); p.selected >= n && n > 0 {
		p.selected = n - 1
	}
}

// worse reports whether a ranks below b in the result order.
func worse(a, b Item) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Text > b.Text
}

// topHeap is a min-heap on the result order, so the weakest match sits
// at the root ready to be evicted.
type topHeap []Item

func (h topHeap) Len() int            { return len(h) }
func (h topHeap) Less(i, j int) bool  { return worse(h[i], h[j]) }
func (h topHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *topHeap) Push(x any)         { *h = append(*h, x.(Item)) }
func (h *topHeap) Pop() any           { old := *h; n := len(old); it := old[n-1]; *h = old[:n-1]; return it }
