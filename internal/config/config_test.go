package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zee-editor/zee/internal/syntax"
)

func TestDefaultParses(t *testing.T) {
	cfg := Default()
	if cfg.Theme == "" {
		t.Error("default theme empty")
	}
	if len(cfg.Modes) == 0 {
		t.Fatal("default config has no modes")
	}
	for _, m := range cfg.Modes {
		if len(m.Patterns) == 0 {
			t.Errorf("mode %s has no patterns", m.Name)
		}
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("theme = \"x\"\nshiny_new_field = 3\n"), "test")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestParseRejectsBadPattern(t *testing.T) {
	bad := `
[[modes]]
name = "broken"
patterns = [{ suffix = ".x", name = "both" }]
`
	if _, err := Parse([]byte(bad), "test"); !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestParseRejectsBadIndentUnit(t *testing.T) {
	bad := `
[[modes]]
name = "broken"
patterns = [{ suffix = ".x" }]
indentation = { width = 3, unit = "elephants" }
`
	if _, err := Parse([]byte(bad), "test"); !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestLoadMissingFileGivesDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Modes) == 0 {
		t.Fatal("expected default modes")
	}
}

func TestSyntaxModesConversion(t *testing.T) {
	src := `
[[modes]]
name = "go"
patterns = [{ suffix = ".go" }]
comment = { token = "//" }
indentation = { width = 4, unit = "tab" }
grammar = { id = "go" }
trim_trailing_whitespace = true
`
	cfg, err := Parse([]byte(src), "test")
	if err != nil {
		t.Fatal(err)
	}
	modes := cfg.SyntaxModes()
	if len(modes) != 1 {
		t.Fatalf("modes = %d", len(modes))
	}
	m := modes[0]
	if m.CommentToken != "//" || m.GrammarID != "go" || !m.TrimTrailingWhitespace {
		t.Fatalf("mode = %+v", m)
	}
	if m.Indentation.Unit != syntax.IndentTab {
		t.Fatal("indent unit lost")
	}
}

func TestDirEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/zee-test-config")
	dir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/zee-test-config" {
		t.Fatalf("dir = %q", dir)
	}
}

func TestWriteDefaultRefusesClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	if err := WriteDefault(path); err == nil {
		t.Fatal("second write must refuse")
	}

	// The written file round-trips through the parser.
	if _, err := Load(path); err != nil {
		t.Fatal(err)
	}
}

func TestBuildGrammars(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	modes := Default().SyntaxModes()
	errs := BuildGrammars(modes)
	if len(errs) != 0 {
		t.Fatalf("errs = %v", errs)
	}
	for _, m := range modes {
		if m.GrammarID != "" && m.Grammar() == nil {
			t.Errorf("mode %s grammar unresolved", m.Name)
		}
	}
}
