package compiler

// Pos is a source location carried by every AST node, used both for
// error reporting and for the transformer's source-map emission.
type Pos struct {
	Line   int
	Column int
	Offset int
}

func posOf(t Token) Pos {
	return Pos{Line: t.Line, Column: t.Column, Offset: t.Offset}
}

// Program is the root AST node for a single .pulse source file.
type Program struct {
	Pos
	Directive   string // "use client" / "use server" / "" if absent
	Imports     []*Import
	Page        string // name following @page, "" if absent
	Route       string // path following @route, "" if absent
	Props       *PropsBlock
	State       *StateBlock
	Actions     *ActionsBlock
	View        *ViewBlock
	Style       *StyleBlock
}

// Import is an ESM-style `import Name from './Path.pulse'`.
type Import struct {
	Pos
	Name string
	Path string
}

// PropsBlock lists prop names and their default-value expression text
// (empty when no default was given).
type PropsBlock struct {
	Pos
	Entries []PropEntry
}

type PropEntry struct {
	Pos
	Name    string
	Default string
}

// StateBlock lists state keys and their initializer expression text.
type StateBlock struct {
	Pos
	Entries []StateEntry
}

type StateEntry struct {
	Pos
	Name string
	Init string
}

// ActionsBlock lists named action functions verbatim as raw body text;
// the transformer splices them through unmodified since their bodies are
// already target-language expressions/statements, not DSL syntax.
type ActionsBlock struct {
	Pos
	Entries []ActionEntry
}

type ActionEntry struct {
	Pos
	Name string
	Body string
}

// ViewBlock wraps the single root element returned by the component's
// render function.
type ViewBlock struct {
	Pos
	Root Node
}

// StyleBlock carries the raw CSS text of a `style { … }` block, scoped at
// transform time to the component's generated class.
type StyleBlock struct {
	Pos
	CSS string
}

// Node is any node that can appear inside a view tree.
type Node interface {
	node()
	position() Pos
}

// Element is `selector [attr=val]* @directive* { children }` or the
// single-text-child shorthand `tag "text"`.
type Element struct {
	Pos
	Tag      string
	Classes  []string
	ID       string
	Attrs    []Attr
	Events   []EventBinding
	Children []Node
}

func (*Element) node()          {}
func (e *Element) position() Pos { return e.Pos }

// Attr is a static or interpolated attribute value. Bool is true for a
// bare attribute (`[disabled]`), in which case Segments is empty.
// Otherwise Segments holds the same literal/interpolation split a
// TextNode uses, so `[title="Hi {name}"]` and a text child interpolate
// identically.
type Attr struct {
	Pos
	Name     string
	Bool     bool
	Segments []TextSegment
}

// TextNode is a literal or interpolated text child. Segments alternate
// between literal runs and Interpolation nodes in source order; Literal
// segments carry their text directly, interpolation segments carry nil
// Literal and a non-nil Expr.
type TextNode struct {
	Pos
	Segments []TextSegment
}

func (*TextNode) node()          {}
func (t *TextNode) position() Pos { return t.Pos }

type TextSegment struct {
	Literal string
	Expr    *Interpolation
}

// Interpolation is a `{expr}` hole; Expr is the raw expression source
// text, left unparsed (the DSL does not define its own expression
// grammar — expressions pass through to the target language verbatim,
// only identifier resolution is checked).
type Interpolation struct {
	Pos
	Expr string
}

func (*Interpolation) node()          {}
func (i *Interpolation) position() Pos { return i.Pos }

// IfDirective is `@if(expr)` / the implied-else pairing consumed by the
// transformer as a `when(cond, then, else?)` call.
type IfDirective struct {
	Pos
	Cond string
	Then Node
	Else Node // nil if no paired @else
}

func (*IfDirective) node()          {}
func (d *IfDirective) position() Pos { return d.Pos }

// ForDirective is `@for(item in expr)`, consumed as a `list(...)` call.
type ForDirective struct {
	Pos
	Item string
	Expr string
	Body Node
}

func (*ForDirective) node()          {}
func (d *ForDirective) position() Pos { return d.Pos }

// EventBinding is `@click(expr)` and similar `@<event>(expr)` forms: any
// element-attached directive that isn't one of the control directives
// (@if, @for, @client, @server, @else, @fallback) is treated as one.
type EventBinding struct {
	Pos
	Event string
	Expr  string
}

// ClientDirective / ServerDirective wrap a subtree rendered only in the
// matching selective-rendering mode.
type ClientDirective struct {
	Pos
	Body     Node
	Fallback Node // nil if no fallback given
}

func (*ClientDirective) node()          {}
func (d *ClientDirective) position() Pos { return d.Pos }

type ServerDirective struct {
	Pos
	Body Node
}

func (*ServerDirective) node()          {}
func (d *ServerDirective) position() Pos { return d.Pos }
