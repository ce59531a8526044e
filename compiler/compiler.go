// Package compiler implements the Pulse DSL toolchain: a lexer, a
// recursive-descent parser, and a transformer that lowers the resulting
// AST to target code over the runtime API (pulse, computed, effect,
// batch, el, when, list, mount, component, ClientOnly, ServerOnly).
package compiler

// Options mirrors the external compile(source, { filename, sourceMap?,
// extractCssSink? }) interface.
type Options struct {
	Filename       string
	SourceMap      bool
	ExtractCSSSink ExtractCSSSink
}

// Result is what Compile returns on success.
type Result struct {
	Code string
	CSS  string
	Map  *SourceMap
}

// Compile lexes, parses, and transforms source in one call. Errors are
// always a *pulseerr.Error (LexerError, ParserError, or TransformError)
// carrying file/line/column and, via WithSource, a renderable snippet.
func Compile(source string, opts Options) (*Result, error) {
	lexer := NewLexer(source, opts.Filename)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}

	parser := NewParser(tokens, opts.Filename, source)
	program, err := parser.ParseProgram()
	if err != nil {
		return nil, err
	}

	code, css, sm, err := Transform(program, TransformOptions{
		Filename:       opts.Filename,
		ExtractCSSSink: opts.ExtractCSSSink,
	})
	if err != nil {
		return nil, err
	}
	if !opts.SourceMap {
		sm = nil
	}

	return &Result{Code: code, CSS: css, Map: sm}, nil
}
