package compiler

import "fmt"

// Kind identifies a lexical token category.
type Kind int

const (
	EOF Kind = iota
	Ident
	String       // 'single' or "double" quoted, no interpolation
	TemplateStr  // `backtick` quoted, may contain {expr} interpolations
	Number
	Punct        // { } ( ) [ ] . # @ , : ; =
	Operator     // ++ -- + - * / % == === != !== < > <= >= && || ?? ??= ?. (single = is Punct)
	Directive    // @client @server @click @input ... (the @name, not its arguments)
	Newline
	Comment
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case String:
		return "String"
	case TemplateStr:
		return "TemplateStr"
	case Number:
		return "Number"
	case Punct:
		return "Punct"
	case Operator:
		return "Operator"
	case Directive:
		return "Directive"
	case Newline:
		return "Newline"
	case Comment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Token is a single lexical unit with its source position. Offset is the
// absolute byte offset of the first rune; Line and Column are 1-based.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
	Offset int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Line, t.Column)
}

var punctChars = map[rune]bool{
	'{': true, '}': true, '(': true, ')': true, '[': true, ']': true,
	'.': true, '#': true, '@': true, ',': true, ':': true, ';': true, '=': true,
}

var operators = []string{
	// longest-match-first
	"??=", "===", "!==", "?.",
	"++", "--", "==", "!=", "<=", ">=", "&&", "||", "??",
	"+", "-", "*", "/", "%", "<", ">",
}
