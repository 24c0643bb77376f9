package app

import (
	"github.com/zee-editor/zee/internal/engine/buffer"
	"github.com/zee-editor/zee/internal/syntax"
)

// Job result payloads. Workers wrap one of these in a task.Result and
// post it onto the merged queue; the main loop unwraps it between
// keystrokes.

// parseDone carries a finished parse. The version guards against
// staleness: the result is dropped unless it matches the buffer's
// live edit version.
type parseDone struct {
	bufferID buffer.ID
	version  uint64
	tree     *syntax.Tree
	spans    []syntax.Span
}

// readDone carries a loaded file for a new buffer.
type readDone struct {
	path    string
	content string
}

// writeDone reports a completed save.
type writeDone struct {
	bufferID buffer.ID
	path     string
}

// walkBatch streams discovered paths from the repository walker into
// the open picker.
type walkBatch struct {
	paths []string
	done  bool
}
