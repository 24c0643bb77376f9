package config

// defaultConfigTOML is the packaged configuration written by --init
// and used when no config file exists.
const defaultConfigTOML = `# zee configuration

theme = "gruvbox"

[[modes]]
name = "go"
scope = "source.go"
injection_regex = "go"
patterns = [{ suffix = ".go" }]
comment = { token = "//" }
indentation = { width = 4, unit = "tab" }
grammar = { id = "go", source = { git = "https://github.com/tree-sitter/tree-sitter-go", rev = "v0.23.4" } }

[[modes]]
name = "rust"
scope = "source.rust"
injection_regex = "rust"
patterns = [{ suffix = ".rs" }]
comment = { token = "//" }
indentation = { width = 4, unit = "space" }
grammar = { id = "rust", source = { git = "https://github.com/tree-sitter/tree-sitter-rust", rev = "v0.23.2" } }

[[modes]]
name = "python"
scope = "source.python"
injection_regex = "python"
patterns = [{ suffix = ".py" }]
shebangs = ["python", "python3"]
comment = { token = "#" }
indentation = { width = 4, unit = "space" }
trim_trailing_whitespace = true
grammar = { id = "python", source = { git = "https://github.com/tree-sitter/tree-sitter-python", rev = "v0.23.6" } }

[[modes]]
name = "javascript"
scope = "source.js"
injection_regex = "^(js|javascript)$"
patterns = [{ suffix = ".js" }, { suffix = ".mjs" }, { suffix = ".ts" }]
shebangs = ["node"]
comment = { token = "//" }
indentation = { width = 2, unit = "space" }
grammar = { id = "javascript", source = { git = "https://github.com/tree-sitter/tree-sitter-javascript", rev = "v0.23.1" } }

[[modes]]
name = "c"
scope = "source.c"
injection_regex = "^(c|h)$"
patterns = [{ suffix = ".c" }, { suffix = ".h" }]
comment = { token = "//" }
indentation = { width = 4, unit = "space" }
grammar = { id = "c", source = { git = "https://github.com/tree-sitter/tree-sitter-c", rev = "v0.23.4" } }

[[modes]]
name = "markdown"
scope = "text.markdown"
injection_regex = "md|markdown"
patterns = [{ suffix = ".md" }, { suffix = ".markdown" }]
indentation = { width = 2, unit = "space" }
grammar = { id = "markdown", source = { git = "https://github.com/tree-sitter-grammars/tree-sitter-markdown", rev = "v0.3.2", path = "tree-sitter-markdown" } }

[[modes]]
name = "toml"
scope = "source.toml"
injection_regex = "toml"
patterns = [{ suffix = ".toml" }, { name = "Cargo.lock" }]
comment = { token = "#" }
indentation = { width = 2, unit = "space" }
grammar = { id = "toml", source = { git = "https://github.com/tree-sitter-grammars/tree-sitter-toml", rev = "v0.7.0" } }

[[modes]]
name = "json"
scope = "source.json"
injection_regex = "json"
patterns = [{ suffix = ".json" }]
indentation = { width = 2, unit = "space" }
grammar = { id = "json", source = { git = "https://github.com/tree-sitter/tree-sitter-json", rev = "v0.24.8" } }
`

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg, err := Parse([]byte(defaultConfigTOML), "<default>")
	if err != nil {
		// The packaged default must always parse.
		panic(err)
	}
	return cfg
}
