package syntax

// Built-in grammars, registered at startup and resolved by id from the
// mode configuration. Highlight names follow the conventional query
// capture names: keyword, string, comment, constant.numeric, type,
// function, attribute, markup.*.

func init() {
	Register(goGrammar())
	Register(rustGrammar())
	Register(pythonGrammar())
	Register(javascriptGrammar())
	Register(markdownGrammar())
	Register(tomlGrammar())
	Register(jsonGrammar())
	Register(cGrammar())
}

func goGrammar() *LexGrammar {
	g := NewLexGrammar("go")
	g.AddMultiLine("/*", "*/", "comment")
	g.AddMultiLine("`", "`", "string")
	g.AddRule(`//.*$`, "comment")
	g.AddRule(`"(?:[^"\\]|\\.)*"`, "string")
	g.AddRule(`'(?:[^'\\]|\\.)'`, "string")
	g.AddRule(`\b0[xX][0-9a-fA-F]+\b`, "constant.numeric")
	g.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?\b`, "constant.numeric")
	g.AddKeywords("keyword",
		"if", "else", "for", "range", "switch", "case", "default",
		"break", "continue", "return", "goto", "fallthrough", "select",
		"func", "var", "const", "type", "struct", "interface", "map", "chan",
		"package", "import", "defer", "go")
	g.AddKeywords("constant", "true", "false", "nil", "iota")
	g.AddKeywords("type",
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64", "complex64", "complex128",
		"bool", "byte", "rune", "string", "error", "any")
	g.AddKeywords("function",
		"make", "new", "len", "cap", "append", "copy", "delete",
		"close", "panic", "recover", "print", "println", "min", "max", "clear")
	return g
}

func rustGrammar() *LexGrammar {
	g := NewLexGrammar("rust")
	g.AddMultiLine("/*", "*/", "comment")
	g.AddRule(`//.*$`, "comment")
	g.AddRule(`"(?:[^"\\]|\\.)*"`, "string")
	g.AddRule(`'(?:[^'\\]|\\.)'`, "string")
	g.AddRule(`#!?\[[^\]]*\]`, "attribute")
	g.AddRule(`\b0[xX][0-9a-fA-F_]+\b`, "constant.numeric")
	g.AddRule(`\b\d[\d_]*\.?[\d_]*(?:[eE][+-]?[\d_]+)?(?:f32|f64|i\d+|u\d+|isize|usize)?\b`, "constant.numeric")
	g.AddKeywords("keyword",
		"if", "else", "match", "for", "while", "loop", "break", "continue",
		"return", "yield", "fn", "let", "mut", "const", "static", "struct",
		"enum", "trait", "impl", "type", "mod", "use", "crate", "super",
		"self", "Self", "pub", "where", "as", "async", "await", "dyn",
		"move", "ref", "unsafe", "extern")
	g.AddKeywords("constant", "true", "false", "None", "Some", "Ok", "Err")
	g.AddKeywords("type",
		"i8", "i16", "i32", "i64", "i128", "isize",
		"u8", "u16", "u32", "u64", "u128", "usize",
		"f32", "f64", "bool", "char", "str", "String",
		"Vec", "Box", "Option", "Result")
	return g
}

func pythonGrammar() *LexGrammar {
	g := NewLexGrammar("python")
	g.AddMultiLine(`"""`, `"""`, "string")
	g.AddMultiLine(`'''`, `'''`, "string")
	g.AddRule(`#.*$`, "comment")
	g.AddRule(`"(?:[^"\\]|\\.)*"`, "string")
	g.AddRule(`'(?:[^'\\]|\\.)*'`, "string")
	g.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?j?\b`, "constant.numeric")
	g.AddRule(`@\w+`, "attribute")
	g.AddKeywords("keyword",
		"if", "elif", "else", "for", "while", "break", "continue",
		"return", "try", "except", "finally", "raise", "with", "as",
		"match", "case", "def", "class", "lambda", "async", "await",
		"import", "from", "global", "nonlocal", "pass", "yield",
		"assert", "del", "in", "is", "not", "and", "or")
	g.AddKeywords("constant", "True", "False", "None")
	return g
}

func javascriptGrammar() *LexGrammar {
	g := NewLexGrammar("javascript")
	g.AddMultiLine("/*", "*/", "comment")
	g.AddMultiLine("`", "`", "string")
	g.AddRule(`//.*$`, "comment")
	g.AddRule(`"(?:[^"\\]|\\.)*"`, "string")
	g.AddRule(`'(?:[^'\\]|\\.)*'`, "string")
	g.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?\b`, "constant.numeric")
	g.AddKeywords("keyword",
		"if", "else", "for", "while", "do", "switch", "case", "default",
		"break", "continue", "return", "throw", "try", "catch", "finally",
		"function", "var", "let", "const", "class", "extends", "async",
		"await", "import", "export", "from", "as", "new", "delete",
		"typeof", "instanceof", "in", "of", "this", "super", "static",
		"get", "set", "yield")
	g.AddKeywords("constant", "true", "false", "null", "undefined", "NaN", "Infinity")
	return g
}

func markdownGrammar() *LexGrammar {
	g := NewLexGrammar("markdown")
	g.AddRule(`^#{1,6}\s+.*$`, "markup.heading")
	g.AddRule(`\*\*[^*]+\*\*`, "markup.bold")
	g.AddRule(`\*[^*]+\*`, "markup.italic")
	g.AddRule("`[^`]+`", "markup.raw")
	g.AddRule(`^>\s+.*$`, "markup.quote")
	g.AddRule(`^\s*[-*+]\s+`, "markup.list")
	g.AddRule(`\[[^\]]+\]\([^)]+\)`, "markup.link.url")
	return g
}

func tomlGrammar() *LexGrammar {
	g := NewLexGrammar("toml")
	g.AddRule(`#.*$`, "comment")
	g.AddRule(`^\s*\[[^\]]*\]`, "type")
	g.AddRule(`"(?:[^"\\]|\\.)*"`, "string")
	g.AddRule(`'[^']*'`, "string")
	g.AddRule(`\b\d+\.?\d*\b`, "constant.numeric")
	g.AddKeywords("constant", "true", "false")
	return g
}

func jsonGrammar() *LexGrammar {
	g := NewLexGrammar("json")
	g.AddRule(`"(?:[^"\\]|\\.)*"\s*:`, "variable")
	g.AddRule(`"(?:[^"\\]|\\.)*"`, "string")
	g.AddRule(`-?\b\d+\.?\d*(?:[eE][+-]?\d+)?\b`, "constant.numeric")
	g.AddKeywords("constant", "true", "false", "null")
	return g
}

func cGrammar() *LexGrammar {
	g := NewLexGrammar("c")
	g.AddMultiLine("/*", "*/", "comment")
	g.AddRule(`//.*$`, "comment")
	g.AddRule(`"(?:[^"\\]|\\.)*"`, "string")
	g.AddRule(`'(?:[^'\\]|\\.)'`, "string")
	g.AddRule(`^\s*#\s*\w+`, "attribute")
	g.AddRule(`\b0[xX][0-9a-fA-F]+\b`, "constant.numeric")
	g.AddRule(`\b\d+\.?\d*[uUlLfF]*\b`, "constant.numeric")
	g.AddKeywords("keyword",
		"if", "else", "for", "while", "do", "switch", "case", "default",
		"break", "continue", "return", "goto", "typedef", "struct",
		"union", "enum", "static", "extern", "const", "volatile",
		"inline", "sizeof")
	g.AddKeywords("type",
		"void", "char", "short", "int", "long", "float", "double",
		"signed", "unsigned", "size_t", "int8_t", "int16_t", "int32_t",
		"int64_t", "uint8_t", "uint16_t", "uint32_t", "uint64_t", "bool")
	return g
}
