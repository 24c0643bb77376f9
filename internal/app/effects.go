package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zee-editor/zee/internal/editor"
	"github.com/zee-editor/zee/internal/engine/buffer"
	"github.com/zee-editor/zee/internal/engine/rope"
	"github.com/zee-editor/zee/internal/syntax"
	"github.com/zee-editor/zee/internal/task"
	"github.com/zee-editor/zee/internal/ui/picker"
)

// executeEffects carries out what a command asked for. Effects never
// fail the command that produced them; failures surface on the status
// line.
func (app *Application) executeEffects(effects []editor.Effect) {
	for _, e := range effects {
		switch eff := e.(type) {
		case editor.ParseEffect:
			eff.Buffer.Parse.ApplyEdit(eff.Edit)
			app.scheduleParse(eff.Buffer)
		case editor.SaveEffect:
			app.saveBuffer(eff.Buffer)
		case editor.SetClipboardEffect:
			app.setClipboard(eff.Text)
		case editor.OpenPickerEffect:
			app.openPicker(eff.Kind)
		case editor.WindowEffect:
			app.applyWindowOp(eff.Op)
		case editor.CycleThemeEffect:
			app.theme = (app.theme + 1) % len(app.themes)
			app.setStatus(fmt.Sprintf("theme: %s", app.themes[app.theme].Name), false)
		case editor.ToggleTreeViewerEffect:
			app.treeViewer = !app.treeViewer
		case editor.QuitEffect:
			app.quit = true
		}
	}
}

// scheduleParse snapshots the buffer and queues an incremental parse.
// The job key is the buffer id, so rapid typing supersedes pending
// parses for the same buffer.
func (app *Application) scheduleParse(buf *buffer.Buffer) {
	grammar := buf.Mode.Grammar()
	if grammar == nil {
		return
	}
	snapshot := buf.Text()
	version := buf.Version()
	prior := buf.Parse.Tree
	id := buf.ID()

	app.pool.Submit(task.JobID{Kind: task.KindParse, Key: fmt.Sprintf("%d", id)},
		func(*task.Context) (any, error) {
			tree := grammar.Parse(prior, snapshot)
			return parseDone{
				bufferID: id,
				version:  version,
				tree:     tree,
				spans:    grammar.Highlights(tree),
			}, nil
		})
}

// saveBuffer runs the trim pass, then writes the snapshot from a job.
// The dirty flag only clears when the write lands.
func (app *Application) saveBuffer(buf *buffer.Buffer) {
	if buf.Path() == "" {
		app.setStatus("scratch buffer has no file to save to", true)
		return
	}
	if buf.Mode != nil && buf.Mode.TrimTrailingWhitespace {
		app.trimTrailingWhitespace(buf)
	}

	content := buf.Text().String()
	path := buf.Path()
	id := buf.ID()
	app.pool.Submit(task.JobID{Kind: task.KindWrite, Key: path},
		func(*task.Context) (any, error) {
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return nil, err
			}
			return writeDone{bufferID: id, path: path}, nil
		})
}

// trimTrailingWhitespace removes trailing blanks line by line, bottom
// to top so earlier offsets stay valid. Each removal is a real edit:
// undo brings the whitespace back.
func (app *Application) trimTrailingWhitespace(buf *buffer.Buffer) {
	text := buf.Text()
	point := buf.Cursor.Point()
	for line := text.LenLines() - 1; line >= 0; line-- {
		start := text.LineToChar(line)
		end := start + text.LineLen(line)
		lineText := text.Slice(start, end)
		trimmed := strings.TrimRight(lineText, " \t")
		if len(trimmed) == len(lineText) {
			continue
		}
		cut := start + rope.CharOffset(charLen(trimmed))
		old := buf.Text()
		edit := buf.Remove(cut, end)
		buf.Parse.ApplyEdit(syntax.MakeTreeEdit(old, edit))
		text = buf.Text()
	}
	buf.Cursor.MoveTo(buf.Text(), point)
	buf.History.Seal()
	app.scheduleParse(buf)
}

// setClipboard pushes text to the system clipboard when the terminal
// supports it (OSC 52); the kill ring already has the text either way.
func (app *Application) setClipboard(text string) {
	if cb, ok := app.screen.(interface{ SetClipboard([]byte) }); ok {
		cb.SetClipboard([]byte(text))
	}
}

// openPicker starts the interactive picker for the given source.
func (app *Application) openPicker(kind picker.Kind) {
	app.picker = picker.New(kind, 512)
	app.treeViewer = false

	switch kind {
	case picker.KindFiles:
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		app.picker.SetQuery(wd + string(filepath.Separator))
		app.listPickerDirectory()
	case picker.KindRepository:
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		app.startRepositoryWalk(wd)
	case picker.KindBuffers, picker.KindKillBuffers:
		for _, id := range app.order {
			b := app.buffers[id]
			app.picker.Add(picker.Candidate{Text: b.Name(), Data: id})
		}
		app.picker.Finish()
	case picker.KindThemes:
		for i, t := range app.themes {
			app.picker.Add(picker.Candidate{Text: t.Name, Data: i})
		}
		app.picker.Finish()
	}
}

// listPickerDirectory lists the directory named by the picker query
// through a read job.
func (app *Application) listPickerDirectory() {
	query := app.picker.Query()
	dir := query
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir = filepath.Dir(dir)
	}
	app.pool.Submit(task.JobID{Kind: task.KindRead, Key: "picker-dir"},
		func(*task.Context) (any, error) {
			entries, err := picker.ListDirectory(dir)
			if err != nil {
				return nil, err
			}
			return walkBatch{paths: prefixAll(dir, entries), done: true}, nil
		})
}

// startRepositoryWalk streams the recursive listing into the queue in
// batches; the picker scores them as they arrive.
func (app *Application) startRepositoryWalk(root string) {
	queue := app.queue
	app.pool.Submit(task.JobID{Kind: task.KindWalk, Key: "picker-walk"},
		func(ctx *task.Context) (any, error) {
			err := picker.WalkRepository(root, ctx.Cancelled, func(batch []string) bool {
				select {
				case queue <- walkBatch{paths: batch}:
					return true
				default:
					// Queue full: drop the batch rather than stall the
					// walker; the tail of a huge listing is best-effort.
					return !ctx.Cancelled()
				}
			})
			return walkBatch{done: true}, err
		})
}

func prefixAll(dir string, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(dir, strings.TrimSuffix(n, string(filepath.Separator)))
		if strings.HasSuffix(n, string(filepath.Separator)) {
			out[i] += string(filepath.Separator)
		}
	}
	return out
}

// applyWindowOp manipulates the window tree.
func (app *Application) applyWindowOp(op editor.WindowOp) {
	switch op {
	case editor.WindowSplitBelow:
		app.windows.SplitBelow()
	case editor.WindowSplitRight:
		app.windows.SplitRight()
	case editor.WindowClose:
		app.windows.CloseFocused(app.scratch)
	case editor.WindowFullscreen:
		app.windows.Fullscreen()
	case editor.WindowFocusNext:
		app.windows.FocusNext()
	case editor.WindowFocusPrevious:
		app.windows.FocusPrevious()
	case editor.WindowCenterCursor:
		app.ensureCursorVisible(true)
	}
}

func charLen(s string) (n int) {
	for range s {
		n++
	}
	return n
}
