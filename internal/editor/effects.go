package editor

import (
	"github.com/zee-editor/zee/internal/engine/buffer"
	"github.com/zee-editor/zee/internal/syntax"
	"github.com/zee-editor/zee/internal/ui/picker"
)

// Effect is a side effect a command asks the application to perform.
type Effect interface{ effect() }

// ParseEffect schedules an incremental parse for a mutated buffer.
// The TreeEdit is applied synchronously to the stale spans before the
// job runs.
type ParseEffect struct {
	Buffer *buffer.Buffer
	Edit   syntax.TreeEdit
}

// SaveEffect schedules a disk write of the buffer.
type SaveEffect struct {
	Buffer *buffer.Buffer
}

// SetClipboardEffect pushes text to the system clipboard.
type SetClipboardEffect struct {
	Text string
}

// OpenPickerEffect opens an interactive picker.
type OpenPickerEffect struct {
	Kind picker.Kind
}

// WindowOp is a window-tree manipulation.
type WindowOp int

const (
	WindowSplitBelow WindowOp = iota
	WindowSplitRight
	WindowClose
	WindowFullscreen
	WindowFocusNext
	WindowFocusPrevious
	WindowCenterCursor
)

// WindowEffect manipulates the window tree or viewport.
type WindowEffect struct {
	Op WindowOp
}

// CycleThemeEffect switches to the next theme.
type CycleThemeEffect struct{}

// ToggleTreeViewerEffect shows or hides the edit-tree viewer.
type ToggleTreeViewerEffect struct{}

// QuitEffect exits the editor.
type QuitEffect struct{}

func (ParseEffect) effect()            {}
func (SaveEffect) effect()             {}
func (SetClipboardEffect) effect()     {}
func (OpenPickerEffect) effect()       {}
func (WindowEffect) effect()           {}
func (CycleThemeEffect) effect()       {}
func (ToggleTreeViewerEffect) effect() {}
func (QuitEffect) effect()             {}
