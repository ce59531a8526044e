package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"
)

const counterSource = `'use client'
@page Counter

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

view {
  div.counter {
    span "{label}: {count}"
    button @click(increment()) "+"
  }
}

style {
  .counter { display: flex; }
}
`

func TestCompileEndToEnd(t *testing.T) {
	res, err := Compile(counterSource, Options{Filename: "counter.pulse", SourceMap: true})
	require.NoError(t, err)

	require.Contains(t, res.Code, "export const Counter = component((ctx) => {")
	require.Contains(t, res.Code, `const count = pulse(0);`)
	require.Contains(t, res.Code, `const label = ctx.props.label !== undefined ? ctx.props.label : ("Count");`)
	require.Contains(t, res.Code, "count++")
	require.Contains(t, res.Code, `Counter.__directive = "use client";`)
	require.Contains(t, res.Code, `Counter.__componentId = "Counter";`)
	require.Contains(t, res.Code, `el("div.counter"`)
	require.Contains(t, res.Code, "onClick: (event) => { increment() }")

	require.Contains(t, res.CSS, ".pulse-counter .counter")
	require.NotEmpty(t, res.Map.Mappings)
}

func TestCompileExtractsCSSWhenSinkProvided(t *testing.T) {
	var gotFile, gotCSS string
	_, err := Compile(counterSource, Options{
		Filename: "counter.pulse",
		ExtractCSSSink: func(filename, css string) {
			gotFile, gotCSS = filename, css
		},
	})
	require.NoError(t, err)
	require.Equal(t, "counter.pulse", gotFile)
	require.Contains(t, gotCSS, "display: flex")
}

func TestCompileOmitsSourceMapWhenNotRequested(t *testing.T) {
	res, err := Compile(counterSource, Options{Filename: "counter.pulse"})
	require.NoError(t, err)
	require.Nil(t, res.Map)
}

func TestCompileUnresolvedIdentifierIsTransformError(t *testing.T) {
	src := `
view {
  div "{missingName}"
}
`
	_, err := Compile(src, Options{Filename: "bad.pulse"})
	require.Error(t, err)
	var pe *pulseerr.Error
	require.ErrorAs(t, err, &pe)
	require.Equal(t, pulseerr.TransformError, pe.Code)
	require.Contains(t, pe.Message, "missingName")
}

func TestCompilePropagatesParserErrors(t *testing.T) {
	_, err := Compile(`view { div [ }`, Options{Filename: "bad.pulse"})
	require.Error(t, err)
	var pe *pulseerr.Error
	require.ErrorAs(t, err, &pe)
	require.Equal(t, pulseerr.ParserError, pe.Code)
}

func TestCompileForLoopRendersListCall(t *testing.T) {
	src := `
state {
  items: []
}
view {
  ul {
    li @for(item in items) "{item}"
  }
}
`
	res, err := Compile(src, Options{Filename: "list.pulse"})
	require.NoError(t, err)
	require.Contains(t, res.Code, "list(() => (items)")
}

func TestCompileClientServerDirectives(t *testing.T) {
	src := `
view {
  div {
    span @client "client only"
    span @server "server only"
  }
}
`
	res, err := Compile(src, Options{Filename: "selective.pulse"})
	require.NoError(t, err)
	require.Contains(t, res.Code, "ClientOnly(() =>")
	require.Contains(t, res.Code, "ServerOnly(() =>")
}
