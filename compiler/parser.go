package compiler

import (
	"strings"

	"github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"
)

// Parser builds a Program AST from a token stream. It is hand-written
// recursive descent, the same shape the standard library's own parsers
// (go/parser, text/template/parse) use: one lookahead token, explicit
// expect/accept helpers, no backtracking.
type Parser struct {
	file   string
	src    string
	toks   []Token
	pos    int
}

// NewParser filters comments out of toks (they carry no grammar meaning)
// and collapses runs of blank-line newlines into a single boundary
// marker, since only "was there a line break here" matters to the
// grammar, not how many.
func NewParser(toks []Token, file, src string) *Parser {
	filtered := make([]Token, 0, len(toks))
	prevNewline := false
	for _, t := range toks {
		if t.Kind == Comment {
			continue
		}
		if t.Kind == Newline {
			if prevNewline {
				continue
			}
			prevNewline = true
		} else {
			prevNewline = false
		}
		filtered = append(filtered, t)
	}
	return &Parser{file: file, src: src, toks: filtered}
}

func (p *Parser) cur() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) errorf(t Token, format string, args ...any) *pulseerr.Error {
	return pulseerr.Newf(pulseerr.ParserError, format, args...).At(p.file, t.Line, t.Column).WithSource(p.src)
}

func (p *Parser) advance() Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) skipNewlines() {
	for p.cur().Kind == Newline {
		p.advance()
	}
}

func (p *Parser) isPunct(s string) bool {
	t := p.cur()
	return t.Kind == Punct && t.Text == s
}

func (p *Parser) isOperator(s string) bool {
	t := p.cur()
	return t.Kind == Operator && t.Text == s
}

func (p *Parser) isIdent(s string) bool {
	t := p.cur()
	return t.Kind == Ident && t.Text == s
}

func (p *Parser) expectPunct(s string) (Token, error) {
	if !p.isPunct(s) {
		return Token{}, p.errorf(p.cur(), "expected %q, got %s", s, p.cur())
	}
	return p.advance(), nil
}

func (p *Parser) expectKind(k Kind) (Token, error) {
	if p.cur().Kind != k {
		return Token{}, p.errorf(p.cur(), "expected %s, got %s", k, p.cur())
	}
	return p.advance(), nil
}

// ParseProgram parses a whole source file.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{}
	if len(p.toks) > 0 {
		prog.Pos = posOf(p.toks[0])
	}

	p.skipNewlines()

	if p.cur().Kind == String {
		norm := strings.ToLower(strings.TrimSpace(p.cur().Text))
		if norm == "use client" || norm == "use server" {
			prog.Directive = norm
			p.advance()
		}
	}

	sawPage, sawRoute := false, false
	for {
		p.skipNewlines()
		t := p.cur()
		switch {
		case t.Kind == EOF:
			if prog.View == nil {
				return nil, p.errorf(t, "program has no view block")
			}
			return prog, nil

		case t.Kind == Ident && t.Text == "import":
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			prog.Imports = append(prog.Imports, imp)

		case t.Kind == Directive && t.Text == "@page":
			if sawPage {
				return nil, p.errorf(t, "duplicate @page directive")
			}
			sawPage = true
			p.advance()
			name, err := p.expectKind(Ident)
			if err != nil {
				return nil, err
			}
			prog.Page = name.Text

		case t.Kind == Directive && t.Text == "@route":
			if sawRoute {
				return nil, p.errorf(t, "duplicate @route directive")
			}
			sawRoute = true
			p.advance()
			route, err := p.expectKind(String)
			if err != nil {
				return nil, err
			}
			prog.Route = route.Text

		case t.Kind == Ident && t.Text == "props":
			block, err := p.parsePropsBlock()
			if err != nil {
				return nil, err
			}
			prog.Props = block

		case t.Kind == Ident && t.Text == "state":
			block, err := p.parseStateBlock()
			if err != nil {
				return nil, err
			}
			prog.State = block

		case t.Kind == Ident && t.Text == "actions":
			block, err := p.parseActionsBlock()
			if err != nil {
				return nil, err
			}
			prog.Actions = block

		case t.Kind == Ident && t.Text == "view":
			if prog.View != nil {
				return nil, p.errorf(t, "duplicate view block")
			}
			block, err := p.parseViewBlock()
			if err != nil {
				return nil, err
			}
			prog.View = block

		case t.Kind == Ident && t.Text == "style":
			block, err := p.parseStyleBlock()
			if err != nil {
				return nil, err
			}
			prog.Style = block

		default:
			return nil, p.errorf(t, "unexpected token %s at top level", t)
		}
	}
}

func (p *Parser) parseImport() (*Import, error) {
	start := p.advance() // "import"
	name, err := p.expectKind(Ident)
	if err != nil {
		return nil, err
	}
	if !p.isIdent("from") {
		return nil, p.errorf(p.cur(), "expected 'from' in import, got %s", p.cur())
	}
	p.advance()
	path, err := p.expectKind(String)
	if err != nil {
		return nil, err
	}
	return &Import{Pos: posOf(start), Name: name.Text, Path: path.Text}, nil
}

// parseBraceBody reads raw source text between a balanced `{ … }` pair,
// starting at the current "{" token and tracking nested braces by
// re-scanning the original source from the opening brace's offset. Used
// for blocks whose contents are target-language expressions the DSL does
// not itself parse (action bodies, style rules).
func (p *Parser) parseBraceBody() (string, Pos, error) {
	open, err := p.expectPunct("{")
	if err != nil {
		return "", Pos{}, err
	}
	depth := 1
	startOff := open.Offset + len(open.Text)
	i := startOff
	for i < len(p.src) && depth > 0 {
		switch p.src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				body := p.src[startOff:i]
				p.syncPastOffset(i + 1)
				return body, posOf(open), nil
			}
		}
		i++
	}
	return "", Pos{}, p.errorf(open, "unterminated block")
}

// syncPastOffset advances the token cursor until the next token begins
// at or after off, used after consuming raw text outside the normal
// token-by-token grammar.
func (p *Parser) syncPastOffset(off int) {
	for p.pos < len(p.toks) && p.toks[p.pos].Offset < off {
		p.pos++
	}
}

func (p *Parser) parsePropsBlock() (*PropsBlock, error) {
	start := p.advance() // "props"
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	block := &PropsBlock{Pos: posOf(start)}
	for {
		p.skipEntrySeparators()
		if p.isPunct("}") {
			p.advance()
			return block, nil
		}
		name, err := p.expectKind(Ident)
		if err != nil {
			return nil, err
		}
		entry := PropEntry{Pos: posOf(name), Name: name.Text}
		if p.isPunct(":") {
			p.advance()
			entry.Default = p.readExprUntilSeparator()
		}
		for _, e := range block.Entries {
			if e.Name == entry.Name {
				return nil, p.errorf(name, "duplicate prop key %q", entry.Name)
			}
		}
		block.Entries = append(block.Entries, entry)
	}
}

func (p *Parser) parseStateBlock() (*StateBlock, error) {
	start := p.advance() // "state"
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	block := &StateBlock{Pos: posOf(start)}
	for {
		p.skipEntrySeparators()
		if p.isPunct("}") {
			p.advance()
			return block, nil
		}
		name, err := p.expectKind(Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		init := p.readExprUntilSeparator()
		for _, e := range block.Entries {
			if e.Name == name.Text {
				return nil, p.errorf(name, "duplicate state key %q", name.Text)
			}
		}
		block.Entries = append(block.Entries, StateEntry{Pos: posOf(name), Name: name.Text, Init: init})
	}
}

func (p *Parser) parseActionsBlock() (*ActionsBlock, error) {
	start := p.advance() // "actions"
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	block := &ActionsBlock{Pos: posOf(start)}
	for {
		p.skipEntrySeparators()
		if p.isPunct("}") {
			p.advance()
			return block, nil
		}
		name, err := p.expectKind(Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct("("); err != nil {
			return nil, err
		}
		args := p.readUntilPunct(")")
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		body, _, err := p.parseBraceBody()
		if err != nil {
			return nil, err
		}
		full := args
		if full != "" {
			full = "(" + full + ") => {" + body + "}"
		} else {
			full = "() => {" + body + "}"
		}
		block.Entries = append(block.Entries, ActionEntry{Pos: posOf(name), Name: name.Text, Body: full})
	}
}

func (p *Parser) parseStyleBlock() (*StyleBlock, error) {
	start := p.advance() // "style"
	body, _, err := p.parseBraceBody()
	if err != nil {
		return nil, err
	}
	return &StyleBlock{Pos: posOf(start), CSS: strings.TrimSpace(body)}, nil
}

func (p *Parser) parseViewBlock() (*ViewBlock, error) {
	start := p.advance() // "view"
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	root, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &ViewBlock{Pos: posOf(start), Root: root}, nil
}

// skipEntrySeparators consumes newlines and commas between block entries.
func (p *Parser) skipEntrySeparators() {
	for p.cur().Kind == Newline || p.isPunct(",") {
		p.advance()
	}
}

// readExprUntilSeparator captures raw source text for a default/init
// expression, stopping at a top-level comma, newline, or closing brace.
// Expressions are not themselves parsed by the DSL grammar — they pass
// through to the target language verbatim — so this is a lexical
// capture, not a parse.
func (p *Parser) readExprUntilSeparator() string {
	startTok := p.cur()
	if startTok.Kind == EOF {
		return ""
	}
	startOff := startTok.Offset
	depth := 0
	end := startOff
	for p.pos < len(p.toks) {
		t := p.cur()
		if depth == 0 && (t.Kind == Newline || (t.Kind == Punct && (t.Text == "," || t.Text == "}"))) {
			break
		}
		switch {
		case t.Kind == Punct && (t.Text == "(" || t.Text == "["):
			depth++
		case t.Kind == Punct && (t.Text == ")" || t.Text == "]"):
			depth--
		}
		end = t.Offset + len(rawTokenText(t))
		p.advance()
	}
	return strings.TrimSpace(p.src[startOff:end])
}

// readUntilPunct captures raw source text up to (not including) the next
// closer token at nesting depth zero, tracking "(" / "[" so a nested
// call or index expression's own closing punctuation doesn't get
// mistaken for the caller's.
func (p *Parser) readUntilPunct(closer string) string {
	startOff := p.cur().Offset
	end := startOff
	depth := 0
	for {
		if depth == 0 && p.isPunct(closer) {
			break
		}
		if p.cur().Kind == EOF {
			break
		}
		t := p.advance()
		if t.Kind == Punct && (t.Text == "(" || t.Text == "[") {
			depth++
		} else if t.Kind == Punct && (t.Text == ")" || t.Text == "]") {
			depth--
		}
		end = t.Offset + len(rawTokenText(t))
	}
	return strings.TrimSpace(p.src[startOff:end])
}

func rawTokenText(t Token) string {
	switch t.Kind {
	case String:
		return `"` + t.Text + `"`
	case TemplateStr:
		return "`" + t.Text + "`"
	case Newline:
		return "\n"
	default:
		return t.Text
	}
}

// parseElement parses `selector [attr]* @directive* { children }` or the
// `tag "text"` single-text-child shorthand.
func (p *Parser) parseElement() (Node, error) {
	start := p.cur()

	tag := "div"
	var classes []string
	id := ""

	if p.cur().Kind == Ident {
		tag = p.advance().Text
	}
	for p.isPunct(".") {
		p.advance()
		name, err := p.expectKind(Ident)
		if err != nil {
			return nil, err
		}
		classes = append(classes, name.Text)
	}
	if p.isPunct("#") {
		p.advance()
		name, err := p.expectKind(Ident)
		if err != nil {
			return nil, err
		}
		id = name.Text
	}

	var attrs []Attr
	for p.isPunct("[") {
		attr, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}

	var events []EventBinding
	var ifDir *IfDirective
	var forDir *ForDirective
	var clientDir *ClientDirective
	var serverDir *ServerDirective
	for p.cur().Kind == Directive {
		d := p.advance()
		var args string
		if p.isPunct("(") {
			p.advance()
			args = p.readUntilPunct(")")
			if _, err := p.expectPunct(")"); err != nil {
				return nil, err
			}
		}
		switch d.Text {
		case "@if":
			ifDir = &IfDirective{Pos: posOf(d), Cond: args}
		case "@for":
			item, expr, err := splitForClause(args)
			if err != nil {
				return nil, p.errorf(d, "%v", err)
			}
			forDir = &ForDirective{Pos: posOf(d), Item: item, Expr: expr}
		case "@client":
			clientDir = &ClientDirective{Pos: posOf(d)}
		case "@server":
			serverDir = &ServerDirective{Pos: posOf(d)}
		default:
			events = append(events, EventBinding{Pos: posOf(d), Event: strings.TrimPrefix(d.Text, "@"), Expr: args})
		}
	}

	el := &Element{Pos: posOf(start), Tag: tag, Classes: classes, ID: id, Attrs: attrs, Events: events}

	switch {
	case p.cur().Kind == String || p.cur().Kind == TemplateStr:
		tok := p.advance()
		text, err := p.textNodeFromToken(tok)
		if err != nil {
			return nil, err
		}
		el.Children = []Node{text}
	case p.isPunct("{"):
		p.advance()
		p.skipNewlines()
		for !p.isPunct("}") {
			child, err := p.parseChild()
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
			p.skipNewlines()
		}
		p.advance() // "}"
	}

	var result Node = el
	if forDir != nil {
		forDir.Body = result
		result = forDir
	}
	if ifDir != nil {
		ifDir.Then = result
		p.skipNewlines()
		if p.cur().Kind == Directive && p.cur().Text == "@else" {
			p.advance()
			elseNode, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			ifDir.Else = elseNode
		}
		result = ifDir
	}
	if clientDir != nil {
		clientDir.Body = result
		p.skipNewlines()
		if p.cur().Kind == Directive && p.cur().Text == "@fallback" {
			p.advance()
			fallback, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			clientDir.Fallback = fallback
		}
		result = clientDir
	}
	if serverDir != nil {
		serverDir.Body = result
		result = serverDir
	}
	return result, nil
}

func splitForClause(args string) (item, expr string, err error) {
	parts := strings.SplitN(args, " in ", 2)
	if len(parts) != 2 {
		return "", "", pulseerr.New(pulseerr.ParserError, "@for expects 'item in expr'")
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

func (p *Parser) parseChild() (Node, error) {
	if p.cur().Kind == String || p.cur().Kind == TemplateStr {
		tok := p.advance()
		return p.textNodeFromToken(tok)
	}
	return p.parseElement()
}

func (p *Parser) parseAttr() (Attr, error) {
	open, err := p.expectPunct("[")
	if err != nil {
		return Attr{}, err
	}
	name, err := p.expectKind(Ident)
	if err != nil {
		return Attr{}, err
	}
	attr := Attr{Pos: posOf(open), Name: name.Text}
	if p.isPunct("=") {
		p.advance()
		switch p.cur().Kind {
		case String, TemplateStr:
			tok := p.advance()
			text, terr := p.textNodeFromToken(tok)
			if terr != nil {
				return Attr{}, terr
			}
			attr.Segments = text.Segments
		case Number, Ident:
			tok := p.advance()
			attr.Segments = []TextSegment{{Expr: &Interpolation{Pos: posOf(tok), Expr: tok.Text}}}
		default:
			return Attr{}, p.errorf(p.cur(), "expected attribute value, got %s", p.cur())
		}
	} else {
		attr.Bool = true
	}
	if _, err := p.expectPunct("]"); err != nil {
		return Attr{}, err
	}
	return attr, nil
}

// textNodeFromToken splits a String/TemplateStr token's captured text on
// balanced `{expr}` interpolation markers.
func (p *Parser) textNodeFromToken(tok Token) (*TextNode, error) {
	text := tok.Text
	node := &TextNode{Pos: posOf(tok)}
	var lit strings.Builder
	i := 0
	for i < len(text) {
		if text[i] == '{' {
			depth := 1
			j := i + 1
			for j < len(text) && depth > 0 {
				switch text[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}
			if depth != 0 {
				return nil, p.errorf(tok, "unterminated interpolation in text")
			}
			if lit.Len() > 0 {
				node.Segments = append(node.Segments, TextSegment{Literal: lit.String()})
				lit.Reset()
			}
			expr := text[i+1 : j-1]
			node.Segments = append(node.Segments, TextSegment{Expr: &Interpolation{Pos: posOf(tok), Expr: expr}})
			i = j
			continue
		}
		lit.WriteByte(text[i])
		i++
	}
	if lit.Len() > 0 || len(node.Segments) == 0 {
		node.Segments = append(node.Segments, TextSegment{Literal: lit.String()})
	}
	return node, nil
}
