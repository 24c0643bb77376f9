package syntax

import (
	"errors"
	"fmt"

	"github.com/zee-editor/zee/internal/engine/rope"
)

// ErrGrammarLoad reports that a configured grammar could not be
// resolved. It is non-fatal: the mode keeps working unhighlighted.
var ErrGrammarLoad = errors.New("grammar load failed")

// Tree is an opaque parse result. The built-in grammars produce the
// highlight spans directly; the prior tree is available as an
// incremental hint, the way a tree-sitter parse would reuse it.
type Tree struct {
	spans []Span
}

// Grammar turns a text snapshot into a tree and highlight spans.
// Implementations must be safe for use from a worker goroutine:
// they receive immutable snapshots and return fresh values.
type Grammar interface {
	ID() string
	Parse(prior *Tree, text rope.Rope) *Tree
	Highlights(tree *Tree) []Span
}

// registry holds the grammars compiled into the editor, keyed by id.
var registry = map[string]Grammar{}

// Register adds a grammar to the registry. Called from init.
func Register(g Grammar) {
	registry[g.ID()] = g
}

// LoadGrammar resolves a grammar id.
func LoadGrammar(id string) (Grammar, error) {
	if g, ok := registry[id]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: no grammar with id %q", ErrGrammarLoad, id)
}

// RegisteredGrammars lists the available grammar ids.
func RegisteredGrammars() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

// ResolveGrammars attaches grammars to modes. Load failures are
// collected and reported; the affected modes fall back to no
// highlighting.
func ResolveGrammars(modes []*Mode) []error {
	var errs []error
	for _, m := range modes {
		if m.GrammarID == "" {
			continue
		}
		g, err := LoadGrammar(m.GrammarID)
		if err != nil {
			errs = append(errs, fmt.Errorf("mode %s: %w", m.Name, err))
			continue
		}
		m.SetGrammar(g)
	}
	return errs
}
