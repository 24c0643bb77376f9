// Package theme maps highlight names to terminal styles. Themes are
// an ordered list: built-ins first, then user themes from the config
// directory; the change-theme command cycles through them.
package theme

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Style is one named color style. Colors are hex strings; empty means
// the terminal default.
type Style struct {
	Fg        string
	Bg        string
	Bold      bool
	Italic    bool
	Underline bool
}

// Theme is a full color scheme keyed by the highlight names the
// grammars emit.
type Theme struct {
	Name          string
	Background    string
	Foreground    string
	Selection     string
	LineHighlight string
	StatusFg      string
	StatusBg      string
	Highlights    map[string]Style
}

// StyleFor resolves a highlight name, walking up dotted scopes:
// "constant.numeric" falls back to "constant" before giving up.
func (t *Theme) StyleFor(name string) (Style, bool) {
	for name != "" {
		if s, ok := t.Highlights[name]; ok {
			return s, true
		}
		dot := strings.LastIndexByte(name, '.')
		if dot < 0 {
			break
		}
		name = name[:dot]
	}
	return Style{Fg: t.Foreground}, false
}

// Normalize fills in derived colors a theme omitted: the selection is
// the background nudged toward the foreground, the line highlight a
// fainter version of the same blend.
func (t *Theme) Normalize() {
	bg, bgErr := colorful.Hex(t.Background)
	fg, fgErr := colorful.Hex(t.Foreground)
	if bgErr != nil || fgErr != nil {
		return
	}
	if t.Selection == "" {
		t.Selection = bg.BlendLab(fg, 0.25).Clamped().Hex()
	}
	if t.LineHighlight == "" {
		t.LineHighlight = bg.BlendLab(fg, 0.08).Clamped().Hex()
	}
	if t.StatusBg == "" {
		t.StatusBg = bg.BlendLab(fg, 0.15).Clamped().Hex()
	}
	if t.StatusFg == "" {
		t.StatusFg = t.Foreground
	}
}

// Builtin returns the compiled-in themes, in cycling order.
func Builtin() []*Theme {
	themes := []*Theme{
		{
			Name:       "gruvbox",
			Background: "#282828",
			Foreground: "#ebdbb2",
			Highlights: map[string]Style{
				"keyword":          {Fg: "#fb4934"},
				"string":           {Fg: "#b8bb26"},
				"comment":          {Fg: "#928374", Italic: true},
				"constant":         {Fg: "#d3869b"},
				"constant.numeric": {Fg: "#d3869b"},
				"type":             {Fg: "#fabd2f"},
				"function":         {Fg: "#8ec07c"},
				"attribute":        {Fg: "#fe8019"},
				"variable":         {Fg: "#83a598"},
				"markup.heading":   {Fg: "#fabd2f", Bold: true},
				"markup.bold":      {Bold: true},
				"markup.italic":    {Italic: true},
				"markup.raw":       {Fg: "#b8bb26"},
				"markup.quote":     {Fg: "#928374", Italic: true},
				"markup.list":      {Fg: "#fe8019"},
				"markup.link.url":  {Fg: "#83a598", Underline: true},
			},
		},
		{
			Name:       "zenburn",
			Background: "#3f3f3f",
			Foreground: "#dcdccc",
			Highlights: map[string]Style{
				"keyword":          {Fg: "#f0dfaf", Bold: true},
				"string":           {Fg: "#cc9393"},
				"comment":          {Fg: "#7f9f7f", Italic: true},
				"constant":         {Fg: "#dca3a3"},
				"constant.numeric": {Fg: "#8cd0d3"},
				"type":             {Fg: "#dfdfbf"},
				"function":         {Fg: "#efef8f"},
				"attribute":        {Fg: "#dfaf8f"},
				"variable":         {Fg: "#dcdccc"},
				"markup.heading":   {Fg: "#f0dfaf", Bold: true},
				"markup.bold":      {Bold: true},
				"markup.italic":    {Italic: true},
				"markup.raw":       {Fg: "#cc9393"},
			},
		},
		{
			Name:       "solarized-dark",
			Background: "#002b36",
			Foreground: "#839496",
			Highlights: map[string]Style{
				"keyword":          {Fg: "#859900"},
				"string":           {Fg: "#2aa198"},
				"comment":          {Fg: "#586e75", Italic: true},
				"constant":         {Fg: "#6c71c4"},
				"constant.numeric": {Fg: "#d33682"},
				"type":             {Fg: "#b58900"},
				"function":         {Fg: "#268bd2"},
				"attribute":        {Fg: "#cb4b16"},
				"variable":         {Fg: "#839496"},
				"markup.heading":   {Fg: "#b58900", Bold: true},
				"markup.bold":      {Bold: true},
				"markup.italic":    {Italic: true},
				"markup.raw":       {Fg: "#2aa198"},
			},
		},
		{
			Name:       "dracula",
			Background: "#282a36",
			Foreground: "#f8f8f2",
			Highlights: map[string]Style{
				"keyword":          {Fg: "#ff79c6"},
				"string":           {Fg: "#f1fa8c"},
				"comment":          {Fg: "#6272a4", Italic: true},
				"constant":         {Fg: "#bd93f9"},
				"constant.numeric": {Fg: "#bd93f9"},
				"type":             {Fg: "#8be9fd"},
				"function":         {Fg: "#50fa7b"},
				"attribute":        {Fg: "#ffb86c"},
				"variable":         {Fg: "#f8f8f2"},
				"markup.heading":   {Fg: "#bd93f9", Bold: true},
				"markup.bold":      {Bold: true},
				"markup.italic":    {Italic: true},
				"markup.raw":       {Fg: "#f1fa8c"},
			},
		},
	}
	for _, t := range themes {
		t.Normalize()
	}
	return themes
}
