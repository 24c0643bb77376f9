// Package syntax implements language modes and the incremental
// highlighting pipeline: parse jobs keyed by buffer version produce
// highlight spans that the renderer reads on the main loop.
package syntax

import (
	"path/filepath"
	"strings"
)

// IndentUnit is the character used for indentation.
type IndentUnit int

const (
	IndentSpace IndentUnit = iota
	IndentTab
)

// Indentation describes a mode's indentation settings.
type Indentation struct {
	Width int
	Unit  IndentUnit
}

// String returns one indentation step as text.
func (i Indentation) String() string {
	if i.Unit == IndentTab {
		return "\t"
	}
	width := i.Width
	if width <= 0 {
		width = 4
	}
	return strings.Repeat(" ", width)
}

// Pattern matches a filename either by suffix or by exact name.
// Exactly one of Suffix and Name is set.
type Pattern struct {
	Suffix string
	Name   string
}

// Matches reports whether the pattern matches the file name of path.
func (p Pattern) Matches(path string) bool {
	name := filepath.Base(path)
	if p.Name != "" {
		return name == p.Name
	}
	return p.Suffix != "" && strings.HasSuffix(name, p.Suffix)
}

// Mode describes how a family of files is edited and highlighted.
type Mode struct {
	Name           string
	Scope          string
	InjectionRegex string
	Patterns       []Pattern
	Shebangs       []string
	CommentToken   string
	Indentation    Indentation
	GrammarID      string

	// TrimTrailingWhitespace removes trailing blanks on save.
	TrimTrailingWhitespace bool

	grammar Grammar
}

// Grammar returns the resolved grammar, or nil when the mode
// highlights nothing.
func (m *Mode) Grammar() Grammar {
	if m == nil {
		return nil
	}
	return m.grammar
}

// SetGrammar attaches a resolved grammar handle.
func (m *Mode) SetGrammar(g Grammar) { m.grammar = g }

// MatchesPath reports whether any filename pattern matches.
func (m *Mode) MatchesPath(path string) bool {
	for _, p := range m.Patterns {
		if p.Matches(path) {
			return true
		}
	}
	return false
}

// MatchesShebang reports whether the interpreter of a "#!" first line
// is one of the mode's shebangs.
func (m *Mode) MatchesShebang(firstLine string) bool {
	if len(m.Shebangs) == 0 || !strings.HasPrefix(firstLine, "#!") {
		return false
	}
	rest := strings.TrimSpace(firstLine[2:])
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return false
	}
	interp := filepath.Base(fields[0])
	if interp == "env" && len(fields) > 1 {
		interp = filepath.Base(fields[1])
	}
	for _, s := range m.Shebangs {
		if s == interp {
			return true
		}
	}
	return false
}

// PlainTextMode is the fallback for files no mode claims.
var PlainTextMode = &Mode{
	Name:        "plain",
	Indentation: Indentation{Width: 4, Unit: IndentSpace},
}

// SelectMode assigns a mode to a file. Modes are tried in declaration
// order, first match wins; a shebang match beats any suffix match.
func SelectMode(modes []*Mode, path, firstLine string) *Mode {
	for _, m := range modes {
		if m.MatchesShebang(firstLine) {
			return m
		}
	}
	for _, m := range modes {
		if m.MatchesPath(path) {
			return m
		}
	}
	return PlainTextMode
}
