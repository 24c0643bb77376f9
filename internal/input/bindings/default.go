package bindings

import "github.com/zee-editor/zee/internal/input/key"

// Default returns the stock binding table. Command names are the ones
// registered by the editor package.
func Default() *Bindings {
	b := New()

	// Cancel fires from inside any prefix.
	b.AddEndsWith("cancel", key.Ctrl('g'))

	// Movement.
	b.Add("move-up", key.Ctrl('p'))
	b.Add("move-up", key.Special(key.KeyUp))
	b.Add("move-down", key.Ctrl('n'))
	b.Add("move-down", key.Special(key.KeyDown))
	b.Add("move-backward", key.Ctrl('b'))
	b.Add("move-backward", key.Special(key.KeyLeft))
	b.Add("move-forward", key.Ctrl('f'))
	b.Add("move-forward", key.Special(key.KeyRight))
	b.Add("move-backward-word", key.Alt('b'))
	b.Add("move-forward-word", key.Alt('f'))
	b.Add("move-backward-paragraph", key.Alt('p'))
	b.Add("move-forward-paragraph", key.Alt('n'))
	b.Add("move-page-down", key.Ctrl('v'))
	b.Add("move-page-down", key.Special(key.KeyPageDown))
	b.Add("move-page-up", key.Alt('v'))
	b.Add("move-page-up", key.Special(key.KeyPageUp))
	b.Add("move-start-of-line", key.Ctrl('a'))
	b.Add("move-start-of-line", key.Special(key.KeyHome))
	b.Add("move-end-of-line", key.Ctrl('e'))
	b.Add("move-end-of-line", key.Special(key.KeyEnd))
	b.Add("move-start-of-buffer", key.Alt('<'))
	b.Add("move-end-of-buffer", key.Alt('>'))
	b.Add("center-cursor-visually", key.Ctrl('l'))

	// Editing.
	b.Add("delete-forward", key.Ctrl('d'))
	b.Add("delete-forward", key.Special(key.KeyDelete))
	b.Add("delete-backward", key.Special(key.KeyBackspace))
	b.Add("delete-line", key.Ctrl('k'))
	b.Add("insert-new-line", key.Special(key.KeyEnter))
	b.Add("insert-new-line-after", key.Ctrl('o'))
	b.Add("insert-tab", key.Special(key.KeyTab))

	// Selection, kill ring.
	b.Add("toggle-selection", key.Ctrl(' '))
	b.Add("select-all", key.Ctrl('x'), key.Char('h'))
	b.Add("copy-selection", key.Alt('w'))
	b.Add("cut-selection", key.Ctrl('w'))
	b.Add("paste-clipboard", key.Ctrl('y'))

	// History.
	b.Add("undo", key.Ctrl('z'))
	b.Add("undo", key.Ctrl('_'))
	b.Add("undo", key.Ctrl('/'))
	b.Add("redo", key.Ctrl('q'))
	b.Add("toggle-edit-tree", key.Ctrl('x'), key.Char('u'))

	// Files and buffers.
	b.Add("save-buffer", key.Ctrl('x'), key.Ctrl('s'))
	b.Add("save-buffer", key.Ctrl('x'), key.Char('s'))
	b.Add("find-file", key.Ctrl('x'), key.Ctrl('f'))
	b.Add("find-file-in-repo", key.Ctrl('x'), key.Ctrl('v'))
	b.Add("switch-buffer", key.Ctrl('x'), key.Char('b'))
	b.Add("kill-buffer", key.Ctrl('x'), key.Char('k'))

	// Windows.
	b.Add("focus-next-window", key.Ctrl('x'), key.Char('o'))
	b.Add("focus-next-window", key.Ctrl('x'), key.Ctrl('o'))
	b.Add("focus-previous-window", key.Ctrl('x'), key.Char('i'))
	b.Add("focus-previous-window", key.Ctrl('x'), key.Ctrl('i'))
	b.Add("fullscreen-window", key.Ctrl('x'), key.Char('1'))
	b.Add("fullscreen-window", key.Ctrl('x'), key.Ctrl('1'))
	b.Add("split-window-below", key.Ctrl('x'), key.Char('2'))
	b.Add("split-window-below", key.Ctrl('x'), key.Ctrl('2'))
	b.Add("split-window-right", key.Ctrl('x'), key.Char('3'))
	b.Add("split-window-right", key.Ctrl('x'), key.Ctrl('3'))
	b.Add("delete-window", key.Ctrl('x'), key.Char('0'))
	b.Add("delete-window", key.Ctrl('x'), key.Ctrl('0'))

	// Theme, quit.
	b.Add("change-theme", key.Ctrl('x'), key.Ctrl('t'))
	b.Add("quit", key.Ctrl('x'), key.Ctrl('c'))

	return b
}
