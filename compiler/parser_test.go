package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"
)

func parseSource(t *testing.T, src string) *Program {
	t.Helper()
	toks, err := NewLexer(src, "t.pulse").Tokenize()
	require.NoError(t, err)
	prog, err := NewParser(toks, "t.pulse", src).ParseProgram()
	require.NoError(t, err)
	return prog
}

func TestParserMinimalView(t *testing.T) {
	prog := parseSource(t, `view { div "hello" }`)
	require.NotNil(t, prog.View)
	el, ok := prog.View.Root.(*Element)
	require.True(t, ok)
	require.Equal(t, "div", el.Tag)
	require.Len(t, el.Children, 1)
	text, ok := el.Children[0].(*TextNode)
	require.True(t, ok)
	require.Equal(t, "hello", text.Segments[0].Literal)
}

func TestParserSelectorShorthand(t *testing.T) {
	prog := parseSource(t, `view { div.card.active#main { } }`)
	el := prog.View.Root.(*Element)
	require.Equal(t, "div", el.Tag)
	require.Equal(t, []string{"card", "active"}, el.Classes)
	require.Equal(t, "main", el.ID)
}

func TestParserDefaultTagIsDiv(t *testing.T) {
	prog := parseSource(t, `view { .wrapper { } }`)
	el := prog.View.Root.(*Element)
	require.Equal(t, "div", el.Tag)
	require.Equal(t, []string{"wrapper"}, el.Classes)
}

func TestParserAttrsWithAndWithoutValue(t *testing.T) {
	prog := parseSource(t, `view { input[type=text][disabled] { } }`)
	el := prog.View.Root.(*Element)
	require.Len(t, el.Attrs, 2)
	require.Equal(t, "type", el.Attrs[0].Name)
	require.False(t, el.Attrs[0].Bool)
	require.Len(t, el.Attrs[0].Segments, 1)
	require.Equal(t, "text", el.Attrs[0].Segments[0].Expr.Expr)
	require.Equal(t, "disabled", el.Attrs[1].Name)
	require.True(t, el.Attrs[1].Bool)
	require.Empty(t, el.Attrs[1].Segments)
}

func TestParserEventDirective(t *testing.T) {
	prog := parseSource(t, `view { button @click(count++) { } }`)
	el := prog.View.Root.(*Element)
	require.Len(t, el.Events, 1)
	require.Equal(t, "click", el.Events[0].Event)
	require.Equal(t, "count++", el.Events[0].Expr)
}

func TestParserIfElseDirective(t *testing.T) {
	prog := parseSource(t, `view { div @if(loggedIn) { } @else span { } }`)
	ifDir, ok := prog.View.Root.(*IfDirective)
	require.True(t, ok)
	require.Equal(t, "loggedIn", ifDir.Cond)
	require.NotNil(t, ifDir.Else)
	_, ok = ifDir.Else.(*Element)
	require.True(t, ok)
}

func TestParserForDirective(t *testing.T) {
	prog := parseSource(t, `view { li @for(item in items) { } }`)
	forDir, ok := prog.View.Root.(*ForDirective)
	require.True(t, ok)
	require.Equal(t, "item", forDir.Item)
	require.Equal(t, "items", forDir.Expr)
}

func TestParserClientServerDirectives(t *testing.T) {
	prog := parseSource(t, `view { div @client { } @fallback span { } }`)
	clientDir, ok := prog.View.Root.(*ClientDirective)
	require.True(t, ok)
	require.NotNil(t, clientDir.Fallback)
}

func TestParserTextInterpolation(t *testing.T) {
	prog := parseSource(t, `view { h1 "Hello {name}!" } `)
	el := prog.View.Root.(*Element)
	text := el.Children[0].(*TextNode)
	require.Len(t, text.Segments, 3)
	require.Equal(t, "Hello ", text.Segments[0].Literal)
	require.Equal(t, "name", text.Segments[1].Expr.Expr)
	require.Equal(t, "!", text.Segments[2].Literal)
}

func TestParserPropsStateActionsBlocks(t *testing.T) {
	prog := parseSource(t, `
props {
  label: "Count"
}
state {
  count: 0
}
actions {
  increment() {
    count++
  }
}
view { div "{label}: {count}" }
`)
	require.Len(t, prog.Props.Entries, 1)
	require.Equal(t, "label", prog.Props.Entries[0].Name)
	require.Equal(t, `"Count"`, prog.Props.Entries[0].Default)

	require.Len(t, prog.State.Entries, 1)
	require.Equal(t, "count", prog.State.Entries[0].Name)
	require.Equal(t, "0", prog.State.Entries[0].Init)

	require.Len(t, prog.Actions.Entries, 1)
	require.Equal(t, "increment", prog.Actions.Entries[0].Name)
	require.Contains(t, prog.Actions.Entries[0].Body, "count++")
}

func TestParserSourceDirectiveMustBeFirst(t *testing.T) {
	prog := parseSource(t, "'use client'\nview { div { } }")
	require.Equal(t, "use client", prog.Directive)
}

func TestParserPageAndRoute(t *testing.T) {
	prog := parseSource(t, `
@page Dashboard
@route "/dashboard"
view { div { } }
`)
	require.Equal(t, "Dashboard", prog.Page)
	require.Equal(t, "/dashboard", prog.Route)
}

func TestParserImport(t *testing.T) {
	prog := parseSource(t, `
import Header from './Header.pulse'
view { div { } }
`)
	require.Len(t, prog.Imports, 1)
	require.Equal(t, "Header", prog.Imports[0].Name)
	require.Equal(t, "./Header.pulse", prog.Imports[0].Path)
}

func TestParserDuplicatePageIsRejected(t *testing.T) {
	toks, err := NewLexer("@page A\n@page B\nview { div { } }", "t.pulse").Tokenize()
	require.NoError(t, err)
	_, err = NewParser(toks, "t.pulse", "").ParseProgram()
	require.Error(t, err)
	var pe *pulseerr.Error
	require.ErrorAs(t, err, &pe)
	require.Equal(t, pulseerr.ParserError, pe.Code)
}

func TestParserDuplicateStateKeyIsRejected(t *testing.T) {
	toks, err := NewLexer("state { count: 0\ncount: 1 }\nview { div { } }", "t.pulse").Tokenize()
	require.NoError(t, err)
	_, err = NewParser(toks, "t.pulse", "").ParseProgram()
	require.Error(t, err)
}

func TestParserStyleBlockCapturesRawCSS(t *testing.T) {
	prog := parseSource(t, "style {\n.card { color: red; }\n}\nview { div { } }")
	require.Contains(t, prog.Style.CSS, "color: red")
}
