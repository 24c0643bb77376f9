// Package key models terminal keyboard events.
package key

import "fmt"

// Key identifies a non-character key. Character keys use KeyRune with
// the Rune field set.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Modifier is a bitset of held modifier keys.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModAlt
)

// Event is a single key press.
type Event struct {
	Key  Key
	Rune rune
	Mod  Modifier
}

// Char creates a plain character event.
func Char(r rune) Event { return Event{Key: KeyRune, Rune: r} }

// Ctrl creates a Ctrl-modified character event.
func Ctrl(r rune) Event { return Event{Key: KeyRune, Rune: r, Mod: ModCtrl} }

// Alt creates an Alt-modified character event.
func Alt(r rune) Event { return Event{Key: KeyRune, Rune: r, Mod: ModAlt} }

// Special creates an event for a non-character key.
func Special(k Key) Event { return Event{Key: k} }

// IsPlainRune reports whether the event would self-insert: a printable
// character with no Ctrl or Alt held.
func (e Event) IsPlainRune() bool {
	return e.Key == KeyRune && e.Mod == ModNone && e.Rune != 0
}

// String renders the event the way the status line shows chords:
// "C-x", "A-<", "SPC", "RET", "TAB", "ESC", "Up".
func (e Event) String() string {
	prefix := ""
	if e.Mod&ModCtrl != 0 {
		prefix += "C-"
	}
	if e.Mod&ModAlt != 0 {
		prefix += "A-"
	}

	var name string
	switch e.Key {
	case KeyRune:
		switch e.Rune {
		case ' ':
			name = "SPC"
		case '\t':
			name = "TAB"
		case '\n':
			name = "RET"
		default:
			name = string(e.Rune)
		}
	case KeyEscape:
		name = "ESC"
	case KeyEnter:
		name = "RET"
	case KeyTab:
		name = "TAB"
	case KeyBackspace:
		name = "BS"
	case KeyDelete:
		name = "DEL"
	case KeyHome:
		name = "Home"
	case KeyEnd:
		name = "End"
	case KeyPageUp:
		name = "PgUp"
	case KeyPageDown:
		name = "PgDn"
	case KeyUp:
		name = "Up"
	case KeyDown:
		name = "Down"
	case KeyLeft:
		name = "Left"
	case KeyRight:
		name = "Right"
	default:
		name = fmt.Sprintf("Key(%d)", e.Key)
	}
	return prefix + name
}

// FormatSequence renders a chord for the status line.
func FormatSequence(events []Event) string {
	out := ""
	for i, e := range events {
		if i > 0 {
			out += " "
		}
		out += e.String()
	}
	return out
}
