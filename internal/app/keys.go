package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/zee-editor/zee/internal/input/key"
)

// convertKey translates a tcell key event into our key model.
// tcell folds C-h, C-i and C-m into Backspace, Tab and Enter; we keep
// that folding, it is what the terminal actually sends.
func convertKey(ev *tcell.EventKey) key.Event {
	mod := key.ModNone
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mod |= key.ModAlt
	}

	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			mod |= key.ModCtrl
		}
		return key.Event{Key: key.KeyRune, Rune: ev.Rune(), Mod: mod}
	case tcell.KeyEnter:
		return key.Event{Key: key.KeyEnter, Mod: mod}
	case tcell.KeyTab:
		return key.Event{Key: key.KeyTab, Mod: mod}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Event{Key: key.KeyBackspace, Mod: mod}
	case tcell.KeyEsc:
		return key.Event{Key: key.KeyEscape, Mod: mod}
	case tcell.KeyDelete:
		return key.Event{Key: key.KeyDelete, Mod: mod}
	case tcell.KeyHome:
		return key.Event{Key: key.KeyHome, Mod: mod}
	case tcell.KeyEnd:
		return key.Event{Key: key.KeyEnd, Mod: mod}
	case tcell.KeyPgUp:
		return key.Event{Key: key.KeyPageUp, Mod: mod}
	case tcell.KeyPgDn:
		return key.Event{Key: key.KeyPageDown, Mod: mod}
	case tcell.KeyUp:
		return key.Event{Key: key.KeyUp, Mod: mod}
	case tcell.KeyDown:
		return key.Event{Key: key.KeyDown, Mod: mod}
	case tcell.KeyLeft:
		return key.Event{Key: key.KeyLeft, Mod: mod}
	case tcell.KeyRight:
		return key.Event{Key: key.KeyRight, Mod: mod}
	case tcell.KeyCtrlSpace:
		return key.Event{Key: key.KeyRune, Rune: ' ', Mod: mod | key.ModCtrl}
	case tcell.KeyCtrlUnderscore:
		return key.Event{Key: key.KeyRune, Rune: '_', Mod: mod | key.ModCtrl}
	}

	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.Event{
			Key:  key.KeyRune,
			Rune: rune('a' + k - tcell.KeyCtrlA),
			Mod:  mod | key.ModCtrl,
		}
	}
	return key.Event{Key: key.KeyNone}
}
