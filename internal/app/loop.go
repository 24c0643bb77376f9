package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zee-editor/zee/internal/editor"
	"github.com/zee-editor/zee/internal/engine/buffer"
	"github.com/zee-editor/zee/internal/engine/history"
	"github.com/zee-editor/zee/internal/input/bindings"
	"github.com/zee-editor/zee/internal/input/key"
	"github.com/zee-editor/zee/internal/syntax"
	"github.com/zee-editor/zee/internal/task"
	"github.com/zee-editor/zee/internal/ui/picker"
	"github.com/zee-editor/zee/internal/ui/render"
)

// tickInterval drives the periodic tick of the merged event source.
const tickInterval = 250 * time.Millisecond

// Run executes the main loop until quit. Commands run to completion
// between two polls; the loop suspends only while waiting for the
// merged queue and while handing the frame to the terminal.
func (app *Application) Run() error {
	// Pump terminal events onto the merged queue.
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			app.queue <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for !app.quit {
		app.ensureCursorVisible(false)
		app.draw()

		select {
		case ev := <-app.queue:
			app.handle(ev)
		case <-ticker.C:
			// The tick exists so delayed work has a heartbeat; nothing
			// to do here right now.
		}
		// Drain whatever else is ready before redrawing.
		for len(app.queue) > 0 && !app.quit {
			app.handle(<-app.queue)
		}
	}
	return ErrQuit
}

func (app *Application) handle(ev any) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		app.handleKey(convertKey(e))
	case *tcell.EventResize:
		app.screen.Sync()
	case task.Result:
		app.handleResult(e)
	case walkBatch:
		app.handleWalkBatch(e)
	}
}

func (app *Application) handleKey(k key.Event) {
	if k.Key == key.KeyNone {
		return
	}
	// The status message self-clears on the next keystroke.
	app.setStatus("", false)

	if app.picker != nil {
		app.handlePickerKey(k)
		return
	}
	if app.treeViewer {
		if app.handleTreeViewerKey(k) {
			return
		}
	}

	res := app.keys.Feed(k)
	switch res.State {
	case bindings.InPrefix:
		app.setStatus(key.FormatSequence(res.Pending)+"-", false)
	case bindings.Resolved:
		app.runCommand(res.Command)
	case bindings.Unbound:
		if len(res.Unbound) == 1 && res.Unbound[0].IsPlainRune() {
			ctx := app.editorContext()
			app.executeEffects(editor.InsertChar(ctx, res.Unbound[0].Rune))
			return
		}
		app.setStatus(key.FormatSequence(res.Unbound)+" is undefined", true)
	}
}

func (app *Application) runCommand(name string) {
	ctx := app.editorContext()
	effects, err := editor.Execute(name, ctx)
	if err != nil {
		switch {
		case errors.Is(err, history.ErrAtRoot):
			app.setStatus("AtRoot", false)
		case errors.Is(err, history.ErrAtLeaf):
			app.setStatus("AtLeaf", false)
		default:
			app.setStatus(err.Error(), true)
		}
		return
	}
	app.executeEffects(effects)
}

// handleTreeViewerKey routes arrows to the edit tree. Returns false
// when the key should fall through to normal dispatch; the viewer
// stays open in that case.
func (app *Application) handleTreeViewerKey(k key.Event) bool {
	buf := app.focusedBuffer()
	var dir history.Direction
	switch {
	case k.Key == key.KeyUp:
		dir = history.Up
	case k.Key == key.KeyDown:
		dir = history.Down
	case k.Key == key.KeyLeft:
		dir = history.Left
	case k.Key == key.KeyRight:
		dir = history.Right
	case k.Key == key.KeyEscape, k == key.Ctrl('g'):
		app.treeViewer = false
		return true
	default:
		// Anything else falls through to normal dispatch with the
		// viewer still showing; C-x u toggles it away.
		return false
	}

	old := buf.Text()
	edit, applied, err := buf.NavigateTree(dir)
	if err != nil {
		if errors.Is(err, history.ErrAtRoot) {
			app.setStatus("AtRoot", false)
		} else if errors.Is(err, history.ErrAtLeaf) {
			app.setStatus("AtLeaf", false)
		}
		return true
	}
	if applied {
		buf.Parse.ApplyEdit(syntax.MakeTreeEdit(old, edit))
		app.scheduleParse(buf)
	}
	return true
}

func (app *Application) handlePickerKey(k key.Event) {
	p := app.picker
	switch {
	case k == key.Ctrl('g'), k.Key == key.KeyEscape:
		app.closePicker()
	case k.Key == key.KeyEnter:
		app.acceptPicker()
	case k.Key == key.KeyUp, k == key.Ctrl('p'):
		p.MoveSelection(-1)
	case k.Key == key.KeyDown, k == key.Ctrl('n'):
		p.MoveSelection(1)
	case k.Key == key.KeyTab:
		p.ExpandSelection()
	case k == key.Ctrl('l'):
		if p.AscendDirectory() && p.Kind() == picker.KindFiles {
			app.listPickerDirectory()
		}
	case k.Key == key.KeyBackspace:
		q := p.Query()
		if q != "" {
			runes := []rune(q)
			p.SetQuery(string(runes[:len(runes)-1]))
		}
	case k.IsPlainRune():
		p.SetQuery(p.Query() + string(k.Rune))
		if p.Kind() == picker.KindFiles && k.Rune == '/' {
			app.listPickerDirectory()
		}
	}
}

func (app *Application) closePicker() {
	app.picker = nil
	app.pool.Cancel(task.JobID{Kind: task.KindWalk, Key: "picker-walk"})
}

func (app *Application) acceptPicker() {
	p := app.picker
	item, ok := p.Selected()
	if !ok {
		// A file picker with no match opens the typed path.
		if p.Kind() == picker.KindFiles && p.Query() != "" {
			app.openPickedFile(p.Query())
		}
		app.closePicker()
		return
	}

	switch p.Kind() {
	case picker.KindFiles, picker.KindRepository:
		// Entering a directory descends instead of opening it.
		if strings.HasSuffix(item.Text, string(filepath.Separator)) {
			p.SetQuery(item.Text)
			app.listPickerDirectory()
			return
		}
		app.openPickedFile(item.Text)
	case picker.KindBuffers:
		if id, ok := item.Data.(buffer.ID); ok {
			leaf := app.windows.Focused()
			leaf.Buffer = id
			leaf.TopLine = 0
			leaf.ScrollCol = 0
		}
	case picker.KindKillBuffers:
		if id, ok := item.Data.(buffer.ID); ok {
			app.killBuffer(id)
		}
	case picker.KindThemes:
		if idx, ok := item.Data.(int); ok {
			app.theme = idx
		}
	}
	app.closePicker()
}

// openPickedFile loads the selected path through a read job; the
// buffer appears when readDone arrives.
func (app *Application) openPickedFile(path string) {
	app.pool.Submit(task.JobID{Kind: task.KindRead, Key: path},
		func(*task.Context) (any, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return readDone{path: path, content: string(data)}, nil
		})
}

// handleResult applies a finished job on the main loop. Results never
// reorder with commands that already ran; stale parses are dropped
// here.
func (app *Application) handleResult(r task.Result) {
	if r.Err != nil {
		app.logger.Errorf("job %v: %v", r.ID, r.Err)
		app.setStatus(r.Err.Error(), true)
		return
	}
	switch v := r.Value.(type) {
	case parseDone:
		buf, ok := app.buffers[v.bufferID]
		if !ok {
			return
		}
		if !buf.Parse.Accept(v.tree, v.spans, v.version, buf.Version()) {
			// Superseded by a newer edit: parse again from the
			// current snapshot.
			app.scheduleParse(buf)
		}
	case readDone:
		buf := app.addBuffer(v.path, v.content)
		leaf := app.windows.Focused()
		leaf.Buffer = buf.ID()
		leaf.TopLine = 0
		leaf.ScrollCol = 0
	case writeDone:
		if buf, ok := app.buffers[v.bufferID]; ok {
			buf.MarkSaved()
			app.setStatus(fmt.Sprintf("wrote %s", v.path), false)
		}
	case walkBatch:
		app.handleWalkBatch(v)
	}
}

func (app *Application) handleWalkBatch(b walkBatch) {
	if app.picker == nil {
		return
	}
	if len(b.paths) > 0 {
		candidates := make([]picker.Candidate, len(b.paths))
		for i, p := range b.paths {
			candidates[i] = picker.Candidate{Text: p}
		}
		app.picker.Add(candidates...)
	}
	if b.done {
		app.picker.Finish()
	}
}

func (app *Application) draw() {
	width, height := app.screen.Size()
	frame := render.Frame{
		Placements:  app.windows.Layout(width, height-1),
		Buffers:     app.buffers,
		Theme:       app.themes[app.theme],
		TabWidth:    app.tabWidth(),
		Status:      app.status,
		StatusError: app.statusError,
		Picker:      app.picker,
		TreeViewer:  app.treeViewer,
	}
	if app.picker != nil {
		frame.PickerKind = pickerKindName(app.picker.Kind())
	}
	app.renderer.Draw(frame)
}

func pickerKindName(k picker.Kind) string {
	switch k {
	case picker.KindFiles:
		return "open"
	case picker.KindRepository:
		return "find"
	case picker.KindBuffers:
		return "buffer"
	case picker.KindKillBuffers:
		return "kill"
	case picker.KindThemes:
		return "theme"
	default:
		return "pick"
	}
}
