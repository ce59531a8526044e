package compiler

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"
)

// Lexer turns Pulse DSL source into a Token stream, rune at a time, in the
// manner of the standard library's text/scanner: it tracks absolute
// offset plus 1-based line/column as it goes rather than recomputing
// them afterward.
type Lexer struct {
	src    string
	file   string
	offset int
	line   int
	column int
}

// NewLexer constructs a Lexer over src. file is used only to annotate
// errors.
func NewLexer(src, file string) *Lexer {
	return &Lexer{src: src, file: file, line: 1, column: 1}
}

func (l *Lexer) errorf(format string, args ...any) *pulseerr.Error {
	return pulseerr.Newf(pulseerr.LexerError, format, args...).At(l.file, l.line, l.column).WithSource(l.src)
}

// Tokenize runs the lexer to completion, returning every token including
// a trailing EOF, or the first error encountered.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) peekRune() (rune, int) {
	if l.offset >= len(l.src) {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(l.src[l.offset:])
	return r, size
}

func (l *Lexer) peekAt(ahead int) (rune, int) {
	off := l.offset
	for i := 0; i < ahead; i++ {
		_, size := utf8.DecodeRuneInString(l.src[off:])
		if size == 0 {
			return 0, 0
		}
		off += size
	}
	if off >= len(l.src) {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(l.src[off:])
	return r, size
}

func (l *Lexer) advance() rune {
	r, size := l.peekRune()
	if size == 0 {
		return 0
	}
	l.offset += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// skipInlineSpace skips spaces and tabs but not newlines, since newlines
// are significant tokens.
func (l *Lexer) skipInlineSpace() {
	for {
		r, size := l.peekRune()
		if size == 0 || r == '\n' || !unicode.IsSpace(r) {
			return
		}
		l.advance()
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipInlineSpace()

	startLine, startCol, startOff := l.line, l.column, l.offset
	r, size := l.peekRune()
	if size == 0 {
		return Token{Kind: EOF, Line: startLine, Column: startCol, Offset: startOff}, nil
	}

	switch {
	case r == '\n':
		l.advance()
		return Token{Kind: Newline, Text: "\n", Line: startLine, Column: startCol, Offset: startOff}, nil

	case r == '/' && peekIs(l, 1, '/'):
		return l.lexLineComment(startLine, startCol, startOff), nil

	case r == '/' && peekIs(l, 1, '*'):
		return l.lexBlockComment(startLine, startCol, startOff)

	case r == '\'' || r == '"':
		return l.lexQuoted(r, startLine, startCol, startOff)

	case r == '`':
		return l.lexTemplate(startLine, startCol, startOff)

	case unicode.IsDigit(r):
		return l.lexNumber(startLine, startCol, startOff), nil

	case r == '@' && isIdentStart(peekAfter(l, 1)):
		return l.lexDirective(startLine, startCol, startOff), nil

	case isIdentStart(r):
		return l.lexIdent(startLine, startCol, startOff), nil

	case isOperatorStart(r):
		if op, ok := l.matchOperator(); ok {
			return Token{Kind: Operator, Text: op, Line: startLine, Column: startCol, Offset: startOff}, nil
		}
		fallthrough

	case punctChars[r]:
		l.advance()
		return Token{Kind: Punct, Text: string(r), Line: startLine, Column: startCol, Offset: startOff}, nil

	default:
		l.advance()
		return Token{}, l.errorf("unexpected character %q", r)
	}
}

func peekIs(l *Lexer, ahead int, want rune) bool {
	r, size := l.peekAt(ahead)
	return size > 0 && r == want
}

func peekAfter(l *Lexer, ahead int) rune {
	r, _ := l.peekAt(ahead)
	return r
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '?':
		return true
	default:
		return false
	}
}

func (l *Lexer) matchOperator() (string, bool) {
	rest := l.src[l.offset:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			for range op {
				l.advance()
			}
			return op, true
		}
	}
	// A lone '=' is punctuation (assignment inside attrs), not an operator.
	return "", false
}

func (l *Lexer) lexLineComment(line, col, off int) Token {
	l.advance() // '/'
	l.advance() // '/'
	var b strings.Builder
	for {
		r, size := l.peekRune()
		if size == 0 || r == '\n' {
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	return Token{Kind: Comment, Text: b.String(), Line: line, Column: col, Offset: off}
}

func (l *Lexer) lexBlockComment(line, col, off int) (Token, error) {
	l.advance() // '/'
	l.advance() // '*'
	var b strings.Builder
	for {
		r, size := l.peekRune()
		if size == 0 {
			return Token{}, l.errorf("unterminated block comment")
		}
		if r == '*' && peekIs(l, 1, '/') {
			l.advance()
			l.advance()
			return Token{Kind: Comment, Text: b.String(), Line: line, Column: col, Offset: off}, nil
		}
		b.WriteRune(r)
		l.advance()
	}
}

func (l *Lexer) lexQuoted(quote rune, line, col, off int) (Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for {
		r, size := l.peekRune()
		if size == 0 {
			return Token{}, l.errorf("unterminated string literal")
		}
		if r == '\\' {
			l.advance()
			esc, escSize := l.peekRune()
			if escSize == 0 {
				return Token{}, l.errorf("unterminated string literal")
			}
			b.WriteRune(unescape(esc))
			l.advance()
			continue
		}
		if r == quote {
			l.advance()
			return Token{Kind: String, Text: b.String(), Line: line, Column: col, Offset: off}, nil
		}
		b.WriteRune(r)
		l.advance()
	}
}

// lexTemplate captures the raw backtick-delimited text including literal
// `{expr}` interpolation markers; the parser is responsible for splitting
// it into literal/interpolation segments, since doing so here would mean
// re-lexing the expression text twice.
func (l *Lexer) lexTemplate(line, col, off int) (Token, error) {
	l.advance() // '`'
	var b strings.Builder
	depth := 0
	for {
		r, size := l.peekRune()
		if size == 0 {
			return Token{}, l.errorf("unterminated template string")
		}
		if r == '\\' {
			l.advance()
			esc, escSize := l.peekRune()
			if escSize == 0 {
				return Token{}, l.errorf("unterminated template string")
			}
			b.WriteRune(unescape(esc))
			l.advance()
			continue
		}
		if r == '{' {
			depth++
		} else if r == '}' && depth > 0 {
			depth--
		} else if r == '`' && depth == 0 {
			l.advance()
			return Token{Kind: TemplateStr, Text: b.String(), Line: line, Column: col, Offset: off}, nil
		}
		b.WriteRune(r)
		l.advance()
	}
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

func (l *Lexer) lexNumber(line, col, off int) Token {
	var b strings.Builder
	seenDot := false
	for {
		r, size := l.peekRune()
		if size == 0 {
			break
		}
		if unicode.IsDigit(r) {
			b.WriteRune(r)
			l.advance()
			continue
		}
		if r == '.' && !seenDot && unicode.IsDigit(peekAfter(l, 1)) {
			seenDot = true
			b.WriteRune(r)
			l.advance()
			continue
		}
		break
	}
	return Token{Kind: Number, Text: b.String(), Line: line, Column: col, Offset: off}
}

func (l *Lexer) lexIdent(line, col, off int) Token {
	var b strings.Builder
	for {
		r, size := l.peekRune()
		if size == 0 || !isIdentPart(r) {
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	return Token{Kind: Ident, Text: b.String(), Line: line, Column: col, Offset: off}
}

func (l *Lexer) lexDirective(line, col, off int) Token {
	l.advance() // '@'
	var b strings.Builder
	b.WriteByte('@')
	for {
		r, size := l.peekRune()
		if size == 0 || !isIdentPart(r) {
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	return Token{Kind: Directive, Text: b.String(), Line: line, Column: col, Offset: off}
}
