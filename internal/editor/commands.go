package editor

import (
	"github.com/zee-editor/zee/internal/engine/cursor"
	"github.com/zee-editor/zee/internal/engine/history"
	"github.com/zee-editor/zee/internal/engine/rope"
	"github.com/zee-editor/zee/internal/syntax"
	"github.com/zee-editor/zee/internal/ui/picker"
)

func init() {
	// Movement.
	Register("move-up", moveVertical(cursor.Backward, 1))
	Register("move-down", moveVertical(cursor.Forward, 1))
	Register("move-backward", moveHorizontal(cursor.Backward))
	Register("move-forward", moveHorizontal(cursor.Forward))
	Register("move-backward-word", moveWord(cursor.Backward))
	Register("move-forward-word", moveWord(cursor.Forward))
	Register("move-backward-paragraph", moveParagraph(cursor.Backward))
	Register("move-forward-paragraph", moveParagraph(cursor.Forward))
	Register("move-page-up", movePage(cursor.Backward))
	Register("move-page-down", movePage(cursor.Forward))
	Register("move-start-of-line", func(ctx *Context) ([]Effect, error) {
		cursor.MoveToStartOfLine(ctx.Buffer.Text(), &ctx.Buffer.Cursor)
		return nil, nil
	})
	Register("move-end-of-line", func(ctx *Context) ([]Effect, error) {
		cursor.MoveToEndOfLine(ctx.Buffer.Text(), &ctx.Buffer.Cursor)
		return nil, nil
	})
	Register("move-start-of-buffer", func(ctx *Context) ([]Effect, error) {
		cursor.MoveToStartOfBuffer(&ctx.Buffer.Cursor)
		return nil, nil
	})
	Register("move-end-of-buffer", func(ctx *Context) ([]Effect, error) {
		cursor.MoveToEndOfBuffer(ctx.Buffer.Text(), &ctx.Buffer.Cursor)
		return nil, nil
	})
	Register("center-cursor-visually", func(*Context) ([]Effect, error) {
		return []Effect{WindowEffect{Op: WindowCenterCursor}}, nil
	})

	// Editing.
	Register("delete-forward", deleteForward)
	Register("delete-backward", deleteBackward)
	Register("delete-line", deleteLine)
	Register("insert-new-line", func(ctx *Context) ([]Effect, error) {
		return insertText(ctx, "\n", true), nil
	})
	Register("insert-new-line-after", func(ctx *Context) ([]Effect, error) {
		return insertText(ctx, "\n", false), nil
	})
	Register("insert-tab", func(ctx *Context) ([]Effect, error) {
		unit := "\t"
		if m := ctx.Buffer.Mode; m != nil {
			unit = m.Indentation.String()
		}
		return insertText(ctx, unit, true), nil
	})

	// Selection and kill ring.
	Register("toggle-selection", func(ctx *Context) ([]Effect, error) {
		c := &ctx.Buffer.Cursor
		if c.HasSelection() {
			c.ClearSelection()
		} else {
			c.BeginSelection()
		}
		return nil, nil
	})
	Register("select-all", func(ctx *Context) ([]Effect, error) {
		ctx.Buffer.Cursor.SelectAll(ctx.Buffer.Text())
		return nil, nil
	})
	Register("copy-selection", copySelection)
	Register("cut-selection", cutSelection)
	Register("paste-clipboard", paste)
	Register("cancel", func(ctx *Context) ([]Effect, error) {
		ctx.Buffer.Cursor.ClearSelection()
		return nil, nil
	})

	// History.
	Register("undo", undoCmd)
	Register("redo", redoCmd)
	Register("toggle-edit-tree", func(*Context) ([]Effect, error) {
		return []Effect{ToggleTreeViewerEffect{}}, nil
	})

	// Files, buffers, pickers.
	Register("save-buffer", func(ctx *Context) ([]Effect, error) {
		return []Effect{SaveEffect{Buffer: ctx.Buffer}}, nil
	})
	Register("find-file", openPicker(picker.KindFiles))
	Register("find-file-in-repo", openPicker(picker.KindRepository))
	Register("switch-buffer", openPicker(picker.KindBuffers))
	Register("kill-buffer", openPicker(picker.KindKillBuffers))

	// Windows.
	Register("split-window-below", windowCmd(WindowSplitBelow))
	Register("split-window-right", windowCmd(WindowSplitRight))
	Register("delete-window", windowCmd(WindowClose))
	Register("fullscreen-window", windowCmd(WindowFullscreen))
	Register("focus-next-window", windowCmd(WindowFocusNext))
	Register("focus-previous-window", windowCmd(WindowFocusPrevious))

	// Theme, quit.
	Register("change-theme", func(*Context) ([]Effect, error) {
		return []Effect{CycleThemeEffect{}}, nil
	})
	Register("quit", func(*Context) ([]Effect, error) {
		return []Effect{QuitEffect{}}, nil
	})
}

func moveHorizontal(dir cursor.Direction) Command {
	return func(ctx *Context) ([]Effect, error) {
		cursor.MoveHorizontally(ctx.Buffer.Text(), &ctx.Buffer.Cursor, dir, 1)
		return nil, nil
	}
}

func moveVertical(dir cursor.Direction, count int) Command {
	return func(ctx *Context) ([]Effect, error) {
		cursor.MoveVertically(ctx.Buffer.Text(), &ctx.Buffer.Cursor, ctx.TabWidth, dir, count)
		return nil, nil
	}
}

func moveWord(dir cursor.Direction) Command {
	return func(ctx *Context) ([]Effect, error) {
		cursor.MoveWord(ctx.Buffer.Text(), &ctx.Buffer.Cursor, dir, 1)
		return nil, nil
	}
}

func moveParagraph(dir cursor.Direction) Command {
	return func(ctx *Context) ([]Effect, error) {
		cursor.MoveParagraph(ctx.Buffer.Text(), &ctx.Buffer.Cursor, dir, 1)
		return nil, nil
	}
}

func movePage(dir cursor.Direction) Command {
	return func(ctx *Context) ([]Effect, error) {
		cursor.MovePage(ctx.Buffer.Text(), &ctx.Buffer.Cursor, ctx.TabWidth, dir, ctx.PageLines)
		return nil, nil
	}
}

func windowCmd(op WindowOp) Command {
	return func(*Context) ([]Effect, error) {
		return []Effect{WindowEffect{Op: op}}, nil
	}
}

func openPicker(kind picker.Kind) Command {
	return func(*Context) ([]Effect, error) {
		return []Effect{OpenPickerEffect{Kind: kind}}, nil
	}
}

// InsertChar self-inserts one character. It is the only path that
// keeps the coalescing window open.
func InsertChar(ctx *Context, r rune) []Effect {
	return insertText(ctx, string(r), true)
}

// insertText splices text at the cursor. A pending selection is
// replaced. When moveCursor is false the cursor stays put, the C-o
// behavior.
func insertText(ctx *Context, text string, moveCursor bool) []Effect {
	b := ctx.Buffer
	old := b.Text()
	before := b.Cursor.Point()

	var edit history.Edit
	if start, end := b.Cursor.Selection(); start != end {
		b.Cursor.ClearSelection()
		edit = b.Replace(start, end, text)
	} else {
		edit = b.Insert(b.Cursor.Point(), text)
	}
	if !moveCursor {
		b.Cursor.MoveTo(b.Text(), before)
	}
	return parseEffects(ctx, old, edit)
}

func deleteForward(ctx *Context) ([]Effect, error) {
	b := ctx.Buffer
	old := b.Text()
	if start, end := b.Cursor.Selection(); start != end {
		b.Cursor.ClearSelection()
		return parseEffects(ctx, old, b.Remove(start, end)), nil
	}
	point := b.Cursor.Point()
	next := old.NextGraphemeBoundary(point)
	if next == point {
		return nil, nil
	}
	return parseEffects(ctx, old, b.Remove(point, next)), nil
}

func deleteBackward(ctx *Context) ([]Effect, error) {
	b := ctx.Buffer
	old := b.Text()
	if start, end := b.Cursor.Selection(); start != end {
		b.Cursor.ClearSelection()
		return parseEffects(ctx, old, b.Remove(start, end)), nil
	}
	point := b.Cursor.Point()
	prev := old.PrevGraphemeBoundary(point)
	if prev == point {
		return nil, nil
	}
	return parseEffects(ctx, old, b.Remove(prev, point)), nil
}

// deleteLine kills the whole current line including its newline. The
// killed text lands in the kill ring.
func deleteLine(ctx *Context) ([]Effect, error) {
	b := ctx.Buffer
	old := b.Text()
	if old.LenChars() == 0 {
		return nil, nil
	}
	line := old.CharToLine(b.Cursor.Point())
	start := old.LineToChar(line)
	end := old.LenChars()
	if line+1 < old.LenLines() {
		end = old.LineToChar(line + 1)
	}
	if start == end {
		return nil, nil
	}
	ctx.KillRing.Push(old.Slice(start, end))
	return parseEffects(ctx, old, b.Remove(start, end)), nil
}

func copySelection(ctx *Context) ([]Effect, error) {
	b := ctx.Buffer
	start, end := b.Cursor.Selection()
	if start == end {
		return nil, nil
	}
	text := b.Text().Slice(start, end)
	ctx.KillRing.Push(text)
	b.Cursor.ClearSelection()
	return []Effect{SetClipboardEffect{Text: text}}, nil
}

func cutSelection(ctx *Context) ([]Effect, error) {
	b := ctx.Buffer
	old := b.Text()
	start, end := b.Cursor.Selection()
	if start == end {
		return nil, nil
	}
	text := old.Slice(start, end)
	ctx.KillRing.Push(text)
	b.Cursor.ClearSelection()
	effects := parseEffects(ctx, old, b.Remove(start, end))
	return append(effects, SetClipboardEffect{Text: text}), nil
}

func paste(ctx *Context) ([]Effect, error) {
	text, ok := ctx.KillRing.Peek()
	if !ok {
		return nil, nil
	}
	return insertText(ctx, text, true), nil
}

func undoCmd(ctx *Context) ([]Effect, error) {
	b := ctx.Buffer
	old := b.Text()
	edit, err := b.Undo()
	if err != nil {
		return nil, err
	}
	return parseEffects(ctx, old, edit), nil
}

func redoCmd(ctx *Context) ([]Effect, error) {
	b := ctx.Buffer
	old := b.Text()
	edit, err := b.Redo()
	if err != nil {
		return nil, err
	}
	return parseEffects(ctx, old, edit), nil
}

// parseEffects wraps a committed edit into the effect that drives the
// syntax pipeline.
func parseEffects(ctx *Context, oldText rope.Rope, edit history.Edit) []Effect {
	if edit.Inserted == "" && edit.Removed == "" {
		return nil
	}
	return []Effect{ParseEffect{
		Buffer: ctx.Buffer,
		Edit:   syntax.MakeTreeEdit(oldText, edit),
	}}
}
