package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinThemes(t *testing.T) {
	themes := Builtin()
	if len(themes) < 2 {
		t.Fatal("need at least two themes to cycle")
	}
	for _, th := range themes {
		if th.Name == "" || th.Background == "" || th.Foreground == "" {
			t.Errorf("incomplete theme %+v", th)
		}
		if th.Selection == "" || th.LineHighlight == "" {
			t.Errorf("theme %s missing derived colors", th.Name)
		}
	}
}

func TestStyleForScopeFallback(t *testing.T) {
	th := &Theme{
		Foreground: "#ffffff",
		Highlights: map[string]Style{
			"constant": {Fg: "#ff00ff"},
			"keyword":  {Fg: "#ff0000"},
		},
	}
	// Exact miss walks up the dotted scope.
	s, ok := th.StyleFor("constant.numeric")
	if !ok || s.Fg != "#ff00ff" {
		t.Fatalf("style = %+v, ok = %v", s, ok)
	}
	// Total miss yields the default foreground.
	s, ok = th.StyleFor("nonexistent.scope")
	if ok || s.Fg != "#ffffff" {
		t.Fatalf("style = %+v, ok = %v", s, ok)
	}
}

func TestNormalizeDerivesColors(t *testing.T) {
	th := &Theme{Background: "#000000", Foreground: "#ffffff"}
	th.Normalize()
	if th.Selection == "" || th.LineHighlight == "" || th.StatusBg == "" {
		t.Fatalf("derived colors missing: %+v", th)
	}
	if th.Selection == th.Background {
		t.Fatal("selection must differ from background")
	}
}

func TestLoadUserThemes(t *testing.T) {
	dir := t.TempDir()
	good := `{
  "name": "custom",
  "background": "#101010",
  "foreground": "#e0e0e0",
  "highlights": {
    "keyword": {"fg": "#ff0000", "bold": true}
  }
}`
	if err := os.WriteFile(filepath.Join(dir, "custom.json"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	themes, errs := LoadUserThemes(dir)
	if len(themes) != 1 {
		t.Fatalf("themes = %d", len(themes))
	}
	if len(errs) != 1 {
		t.Fatalf("errs = %v", errs)
	}
	th := themes[0]
	if th.Name != "custom" {
		t.Fatalf("name = %q", th.Name)
	}
	s, ok := th.StyleFor("keyword")
	if !ok || s.Fg != "#ff0000" || !s.Bold {
		t.Fatalf("keyword style = %+v", s)
	}
	if th.Selection == "" {
		t.Fatal("user theme not normalized")
	}
}

func TestLoadUserThemesMissingDir(t *testing.T) {
	themes, errs := LoadUserThemes(filepath.Join(t.TempDir(), "absent"))
	if themes != nil || errs != nil {
		t.Fatalf("themes=%v errs=%v", themes, errs)
	}
}
