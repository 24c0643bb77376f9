// Package app owns all mutable editor state and runs the cooperative
// main loop: keyboard and resize events, job results and the periodic
// tick arrive on one merged queue, and commands run to completion
// between two polls.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/zee-editor/zee/internal/config"
	"github.com/zee-editor/zee/internal/editor"
	"github.com/zee-editor/zee/internal/engine/buffer"
	"github.com/zee-editor/zee/internal/engine/rope"
	"github.com/zee-editor/zee/internal/input/bindings"
	"github.com/zee-editor/zee/internal/syntax"
	"github.com/zee-editor/zee/internal/task"
	"github.com/zee-editor/zee/internal/ui/picker"
	"github.com/zee-editor/zee/internal/ui/render"
	"github.com/zee-editor/zee/internal/ui/theme"
	"github.com/zee-editor/zee/internal/ui/window"
)

// ErrQuit signals a normal exit from the main loop.
var ErrQuit = errors.New("quit")

// Options configures the application.
type Options struct {
	Files     []string
	ConfigDir string
	Config    *config.Config
	Logger    *Logger
}

// Application is the editor: every field is owned by the main
// goroutine; workers only ever see immutable snapshots.
type Application struct {
	screen   tcell.Screen
	renderer *render.Renderer
	logger   *Logger

	buffers  map[buffer.ID]*buffer.Buffer
	order    []buffer.ID
	nextID   buffer.ID
	scratch  buffer.ID
	windows  *window.Tree
	killRing *editor.KillRing

	modes  []*syntax.Mode
	themes []*theme.Theme
	theme  int

	keys *bindings.Bindings

	pool  *task.Pool
	queue chan any

	picker     *picker.Picker
	treeViewer bool

	status      string
	statusError bool

	configDir string
	quit      bool
}

// New builds the application from options. The terminal screen is
// created by the caller so tests can inject a simulation screen.
func New(opts Options, screen tcell.Screen) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger()
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	modes := cfg.SyntaxModes()
	if os.Getenv(config.EnvDisableGrammarBuild) == "" {
		for _, err := range config.BuildGrammars(modes) {
			logger.Warnf("grammar: %v", err)
		}
	}

	themes := theme.Builtin()
	if userThemes, errs := theme.LoadUserThemes(filepath.Join(opts.ConfigDir, "themes")); len(userThemes) > 0 || len(errs) > 0 {
		themes = append(themes, userThemes...)
		for _, err := range errs {
			logger.Warnf("theme: %v", err)
		}
	}

	queue := make(chan any, 256)
	results := make(chan task.Result, 64)

	app := &Application{
		screen:    screen,
		renderer:  render.New(screen),
		logger:    logger,
		buffers:   make(map[buffer.ID]*buffer.Buffer),
		killRing:  editor.NewKillRing(32),
		modes:     modes,
		themes:    themes,
		theme:     themeIndex(cfg, themes),
		keys:      bindings.Default(),
		pool:      task.NewPool(task.DefaultWorkers(), results),
		queue:     queue,
		configDir: opts.ConfigDir,
	}

	// Forward job results onto the merged queue.
	go func() {
		for r := range results {
			queue <- r
		}
	}()

	// The scratch buffer always exists.
	scratch := buffer.NewScratch(app.allocID())
	app.buffers[scratch.ID()] = scratch
	app.order = append(app.order, scratch.ID())
	app.scratch = scratch.ID()

	// Opening N files creates N buffers and one window on the first.
	first := scratch.ID()
	for i, path := range opts.Files {
		buf, err := app.openFile(path)
		if err != nil {
			logger.Errorf("open %s: %v", path, err)
			app.setStatus(fmt.Sprintf("could not open %s: %v", path, err), true)
			continue
		}
		if i == 0 {
			first = buf.ID()
		}
	}
	app.windows = window.New(first)

	return app, nil
}

func themeIndex(cfg *config.Config, themes []*theme.Theme) int {
	if cfg.Theme != "" {
		for i, t := range themes {
			if t.Name == cfg.Theme {
				return i
			}
		}
	}
	if cfg.ThemeIndex >= 0 && cfg.ThemeIndex < len(themes) {
		return cfg.ThemeIndex
	}
	return 0
}

func (app *Application) allocID() buffer.ID {
	app.nextID++
	return app.nextID
}

// openFile reads a file into a new buffer. A missing file opens an
// empty buffer that will create the file on save.
func (app *Application) openFile(path string) (*buffer.Buffer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	// Re-focus an already open buffer instead of duplicating it.
	for _, id := range app.order {
		if b := app.buffers[id]; b.Path() == abs {
			return b, nil
		}
	}

	content := ""
	if data, err := os.ReadFile(abs); err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return app.addBuffer(abs, content), nil
}

// addBuffer creates a buffer for already-loaded content, assigns a
// mode and schedules the initial parse.
func (app *Application) addBuffer(path, content string) *buffer.Buffer {
	buf := buffer.New(app.allocID(), path, filepath.Base(path), content)
	firstLine := buf.Text().Line(0)
	buf.Mode = syntax.SelectMode(app.modes, path, strings.TrimSuffix(firstLine, "\n"))
	app.buffers[buf.ID()] = buf
	app.order = append(app.order, buf.ID())
	app.scheduleParse(buf)
	return buf
}

// focusedBuffer returns the buffer shown in the focused window.
func (app *Application) focusedBuffer() *buffer.Buffer {
	return app.buffers[app.windows.Focused().Buffer]
}

// killBuffer closes a buffer: windows showing it fall back to the
// scratch buffer. The scratch buffer itself cannot be killed.
func (app *Application) killBuffer(id buffer.ID) {
	if id == app.scratch {
		return
	}
	app.windows.ReplaceBuffer(id, app.scratch)
	delete(app.buffers, id)
	for i, o := range app.order {
		if o == id {
			app.order = append(app.order[:i], app.order[i+1:]...)
			break
		}
	}
}

func (app *Application) setStatus(msg string, isError bool) {
	app.status = msg
	app.statusError = isError
}

// editorContext assembles the command context for the focused buffer.
func (app *Application) editorContext() *editor.Context {
	_, height := app.screen.Size()
	page := height - 3
	if page < 1 {
		page = 1
	}
	ctx := &editor.Context{
		Buffer:    app.focusedBuffer(),
		KillRing:  app.killRing,
		TabWidth:  app.tabWidth(),
		PageLines: page,
	}
	return ctx
}

func (app *Application) tabWidth() int {
	if b := app.focusedBuffer(); b != nil && b.Mode != nil && b.Mode.Indentation.Width > 0 {
		return b.Mode.Indentation.Width
	}
	return 4
}

// ensureCursorVisible scrolls the focused viewport so the cursor stays
// on screen; center forces the cursor line to the middle.
func (app *Application) ensureCursorVisible(center bool) {
	width, height := app.screen.Size()
	placements := app.windows.Layout(width, height-1)
	for _, p := range placements {
		if !p.Focused {
			continue
		}
		buf := app.buffers[p.Leaf.Buffer]
		if buf == nil {
			return
		}
		text := buf.Text()
		line := text.CharToLine(buf.Cursor.Point())
		textHeight := p.H - 1
		if textHeight < 1 {
			return
		}

		if center {
			p.Leaf.TopLine = line - textHeight/2
		} else if line < p.Leaf.TopLine {
			p.Leaf.TopLine = line
		} else if line >= p.Leaf.TopLine+textHeight {
			p.Leaf.TopLine = line - textHeight + 1
		}
		if p.Leaf.TopLine < 0 {
			p.Leaf.TopLine = 0
		}

		lineStart := text.LineToChar(line)
		col := rope.Width(app.tabWidth(), text.Slice(lineStart, buf.Cursor.Point()))
		if col < p.Leaf.ScrollCol {
			p.Leaf.ScrollCol = col
		} else if p.W > 0 && col >= p.Leaf.ScrollCol+p.W {
			p.Leaf.ScrollCol = col - p.W + 1
		}
		return
	}
}

// Shutdown releases the worker pool and the log file. The screen is
// owned by the caller.
func (app *Application) Shutdown() {
	app.pool.Shutdown()
	app.logger.Close()
}
