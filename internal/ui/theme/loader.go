package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// LoadUserThemes reads *.json theme files from a directory. A theme
// file looks like:
//
//	{
//	  "name": "mytheme",
//	  "background": "#101010",
//	  "foreground": "#e0e0e0",
//	  "highlights": {
//	    "keyword": {"fg": "#ff0000", "bold": true},
//	    "comment": {"fg": "#808080", "italic": true}
//	  }
//	}
//
// Broken files are reported and skipped; a missing directory is not
// an error.
func LoadUserThemes(dir string) ([]*Theme, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{err}
	}

	var themes []*Theme
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		t, err := parseTheme(data, e.Name())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		themes = append(themes, t)
	}
	return themes, errs
}

func parseTheme(data []byte, source string) (*Theme, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("theme %s: invalid JSON", source)
	}
	root := gjson.ParseBytes(data)

	name := root.Get("name").String()
	if name == "" {
		name = strings.TrimSuffix(source, ".json")
	}
	t := &Theme{
		Name:          name,
		Background:    root.Get("background").String(),
		Foreground:    root.Get("foreground").String(),
		Selection:     root.Get("selection").String(),
		LineHighlight: root.Get("line_highlight").String(),
		Highlights:    make(map[string]Style),
	}
	if t.Background == "" || t.Foreground == "" {
		return nil, fmt.Errorf("theme %s: background and foreground are required", source)
	}

	root.Get("highlights").ForEach(func(key, value gjson.Result) bool {
		t.Highlights[key.String()] = Style{
			Fg:        value.Get("fg").String(),
			Bg:        value.Get("bg").String(),
			Bold:      value.Get("bold").Bool(),
			Italic:    value.Get("italic").Bool(),
			Underline: value.Get("underline").Bool(),
		}
		return true
	})

	t.Normalize()
	return t, nil
}
