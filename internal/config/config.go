// Package config loads the editor configuration: the theme choice and
// the mode table. Unknown fields are rejected so typos surface as
// parse errors instead of silently doing nothing.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/zee-editor/zee/internal/syntax"
)

// FileName is the configuration file inside the config directory.
const FileName = "config.toml"

// EnvConfigDir overrides the per-OS config directory.
const EnvConfigDir = "ZEE_CONFIG_DIR"

// EnvDisableGrammarBuild suppresses grammar resolution at startup.
const EnvDisableGrammarBuild = "ZEE_DISABLE_GRAMMAR_BUILD"

// ErrParse wraps every configuration syntax or schema error. Fatal at
// startup and under --init.
var ErrParse = errors.New("could not parse configuration")

// Config is the root of the configuration file.
type Config struct {
	// Theme selects a theme by name; ThemeIndex by position. The name
	// wins when both are set.
	Theme      string `toml:"theme"`
	ThemeIndex int    `toml:"theme_index"`

	Modes []ModeConfig `toml:"modes"`
}

// ModeConfig describes one language mode.
type ModeConfig struct {
	Name                   string          `toml:"name"`
	Scope                  string          `toml:"scope"`
	InjectionRegex         string          `toml:"injection_regex"`
	Patterns               []PatternConfig `toml:"patterns"`
	Shebangs               []string        `toml:"shebangs"`
	Comment                *CommentConfig  `toml:"comment"`
	Indentation            IndentConfig    `toml:"indentation"`
	Grammar                *GrammarConfig  `toml:"grammar"`
	TrimTrailingWhitespace bool            `toml:"trim_trailing_whitespace"`
}

// PatternConfig matches filenames; exactly one field may be set.
type PatternConfig struct {
	Suffix string `toml:"suffix"`
	Name   string `toml:"name"`
}

// CommentConfig carries the line comment token.
type CommentConfig struct {
	Token string `toml:"token"`
}

// IndentConfig is a mode's indentation: width plus "space" or "tab".
type IndentConfig struct {
	Width int    `toml:"width"`
	Unit  string `toml:"unit"`
}

// GrammarConfig names the grammar a mode highlights with, and where
// its sources come from.
type GrammarConfig struct {
	ID     string        `toml:"id"`
	Source *SourceConfig `toml:"source"`
}

// SourceConfig is a git grammar source.
type SourceConfig struct {
	Git  string `toml:"git"`
	Rev  string `toml:"rev"`
	Path string `toml:"path"`
}

// Dir resolves the configuration directory: $ZEE_CONFIG_DIR if set,
// otherwise the per-OS user config directory plus "zee".
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "zee"), nil
}

// GrammarDir is where compiled grammars live.
func GrammarDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "grammars"), nil
}

// Load reads the config file at path. A missing file yields the
// default configuration; a malformed one is an ErrParse.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates configuration bytes.
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, source, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, source, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for _, m := range c.Modes {
		if m.Name == "" {
			return errors.New("mode with empty name")
		}
		for _, p := range m.Patterns {
			if (p.Suffix == "") == (p.Name == "") {
				return fmt.Errorf("mode %s: pattern must set exactly one of suffix or name", m.Name)
			}
		}
		switch m.Indentation.Unit {
		case "", "space", "tab":
		default:
			return fmt.Errorf("mode %s: indentation unit must be space or tab", m.Name)
		}
		if m.Grammar != nil && m.Grammar.ID == "" {
			return fmt.Errorf("mode %s: grammar without id", m.Name)
		}
	}
	return nil
}

// SyntaxModes converts the mode table into syntax.Mode values, in
// declaration order.
func (c *Config) SyntaxModes() []*syntax.Mode {
	out := make([]*syntax.Mode, 0, len(c.Modes))
	for _, m := range c.Modes {
		mode := &syntax.Mode{
			Name:                   m.Name,
			Scope:                  m.Scope,
			InjectionRegex:         m.InjectionRegex,
			Shebangs:               m.Shebangs,
			TrimTrailingWhitespace: m.TrimTrailingWhitespace,
			Indentation: syntax.Indentation{
				Width: m.Indentation.Width,
				Unit:  indentUnit(m.Indentation.Unit),
			},
		}
		if m.Comment != nil {
			mode.CommentToken = m.Comment.Token
		}
		if m.Grammar != nil {
			mode.GrammarID = m.Grammar.ID
		}
		for _, p := range m.Patterns {
			mode.Patterns = append(mode.Patterns, syntax.Pattern{Suffix: p.Suffix, Name: p.Name})
		}
		out = append(out, mode)
	}
	return out
}

func indentUnit(s string) syntax.IndentUnit {
	if s == "tab" {
		return syntax.IndentTab
	}
	return syntax.IndentSpace
}

// WriteDefault writes the packaged default configuration, creating the
// config directory. Used by --init; refuses to clobber an existing
// file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigTOML), 0o644)
}

// BuildGrammars resolves every configured grammar, creating the
// grammar directory on the way. Missing grammars are reported, not
// fatal.
func BuildGrammars(modes []*syntax.Mode) []error {
	if dir, err := GrammarDir(); err == nil {
		_ = os.MkdirAll(dir, 0o755)
	}
	return syntax.ResolveGrammars(modes)
}

