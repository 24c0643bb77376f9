package bindings

import (
	"testing"

	"github.com/zee-editor/zee/internal/input/key"
)

func TestSingleKeyResolves(t *testing.T) {
	b := New()
	b.Add("move-up", key.Ctrl('p'))

	res := b.Feed(key.Ctrl('p'))
	if res.State != Resolved || res.Command != "move-up" {
		t.Fatalf("res = %+v", res)
	}
	if b.InPrefix() {
		t.Fatal("prefix must be clear after resolution")
	}
}

func TestChordResolution(t *testing.T) {
	b := New()
	b.Add("save-buffer", key.Ctrl('x'), key.Ctrl('s'))

	res := b.Feed(key.Ctrl('x'))
	if res.State != InPrefix {
		t.Fatalf("state = %v", res.State)
	}
	if len(res.Pending) != 1 {
		t.Fatalf("pending = %v", res.Pending)
	}

	res = b.Feed(key.Ctrl('s'))
	if res.State != Resolved || res.Command != "save-buffer" {
		t.Fatalf("res = %+v", res)
	}
}

func TestUnmatchedInsidePrefixResets(t *testing.T) {
	b := New()
	b.Add("save-buffer", key.Ctrl('x'), key.Ctrl('s'))

	b.Feed(key.Ctrl('x'))
	res := b.Feed(key.Char('z'))
	if res.State != Unbound {
		t.Fatalf("state = %v", res.State)
	}
	if len(res.Unbound) != 2 {
		t.Fatalf("unbound chord = %v", res.Unbound)
	}
	if b.InPrefix() {
		t.Fatal("dispatcher must be idle after an unbound chord")
	}
}

func TestPlainRuneUnboundWhenIdle(t *testing.T) {
	b := New()
	b.Add("save-buffer", key.Ctrl('x'), key.Ctrl('s'))

	res := b.Feed(key.Char('a'))
	if res.State != Unbound || len(res.Unbound) != 1 {
		t.Fatalf("res = %+v", res)
	}
	// The app self-inserts such keys; the dispatcher only reports them.
	if !res.Unbound[0].IsPlainRune() {
		t.Fatal("plain rune not recognized")
	}
}

func TestEndsWithFiresInsidePrefix(t *testing.T) {
	b := New()
	b.Add("save-buffer", key.Ctrl('x'), key.Ctrl('s'))
	b.AddEndsWith("cancel", key.Ctrl('g'))

	b.Feed(key.Ctrl('x'))
	res := b.Feed(key.Ctrl('g'))
	if res.State != Resolved || res.Command != "cancel" {
		t.Fatalf("res = %+v", res)
	}
	if b.InPrefix() {
		t.Fatal("prefix must clear on cancel")
	}
}

func TestSharedPrefix(t *testing.T) {
	b := New()
	b.Add("split-below", key.Ctrl('x'), key.Char('2'))
	b.Add("split-right", key.Ctrl('x'), key.Char('3'))

	b.Feed(key.Ctrl('x'))
	res := b.Feed(key.Char('3'))
	if res.Command != "split-right" {
		t.Fatalf("command = %q", res.Command)
	}
}

func TestDefaultTable(t *testing.T) {
	b := Default()

	res := b.Feed(key.Ctrl('x'))
	if res.State != InPrefix {
		t.Fatalf("C-x state = %v", res.State)
	}
	res = b.Feed(key.Ctrl('f'))
	if res.Command != "find-file" {
		t.Fatalf("C-x C-f = %q", res.Command)
	}

	res = b.Feed(key.Ctrl('y'))
	if res.Command != "paste-clipboard" {
		t.Fatalf("C-y = %q", res.Command)
	}

	res = b.Feed(key.Special(key.KeyBackspace))
	if res.Command != "delete-backward" {
		t.Fatalf("Backspace = %q", res.Command)
	}
}

func TestFormatSequence(t *testing.T) {
	got := key.FormatSequence([]key.Event{key.Ctrl('x'), key.Char('u')})
	if got != "C-x u" {
		t.Fatalf("formatted = %q", got)
	}
}
