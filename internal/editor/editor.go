// Package editor implements the command set. Commands transform the
// focused buffer and return effects; everything that touches the
// outside world (jobs, clipboard, windows, quitting) is an effect the
// application loop executes afterwards.
package editor

import (
	"fmt"

	"github.com/zee-editor/zee/internal/engine/buffer"
)

// Context is what a command sees: the focused buffer plus the pieces
// of editor state commands are allowed to reach.
type Context struct {
	Buffer    *buffer.Buffer
	KillRing  *KillRing
	TabWidth  int
	PageLines int // viewport height for page motions
}

// Command transforms the context and yields effects. A failing command
// leaves the state untouched.
type Command func(ctx *Context) ([]Effect, error)

var registry = map[string]Command{}

// Register adds a named command. Called from init.
func Register(name string, cmd Command) {
	registry[name] = cmd
}

// Lookup finds a command by name.
func Lookup(name string) (Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

// Execute runs a named command. Any registry command seals the
// coalescing window first: only plain self-insertion extends it.
func Execute(name string, ctx *Context) ([]Effect, error) {
	cmd, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("no such command: %s", name)
	}
	if ctx.Buffer != nil {
		ctx.Buffer.History.Seal()
	}
	return cmd(ctx)
}

// Commands returns the registered command names.
func Commands() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
