// Package pulseerr defines the structured error taxonomy shared by the
// compiler and runtime halves of Pulse.
package pulseerr

import (
	"fmt"
	"strings"
)

// Code identifies a stable error category that tests and tooling may
// depend on.
type Code string

const (
	LexerError    Code = "LEXER_ERROR"
	ParserError   Code = "PARSER_ERROR"
	TransformError Code = "TRANSFORM_ERROR"

	ReactivityError     Code = "REACTIVITY_ERROR"
	CircularDependency  Code = "CIRCULAR_DEPENDENCY"
	ComputedSetError    Code = "COMPUTED_SET"

	DOMError       Code = "DOM_ERROR"
	MountNotFound  Code = "MOUNT_NOT_FOUND"

	RouterError Code = "ROUTER_ERROR"
	StoreError  Code = "STORE_ERROR"
)

// Error is the single structured error type used across Pulse. It carries
// enough context to render a source snippet for compile-time errors and a
// stable Code for runtime errors that tooling may switch on.
type Error struct {
	Code       Code
	Message    string
	File       string
	Line       int // 1-based; 0 means "not applicable"
	Column     int // 1-based; 0 means "not applicable"
	Suggestion string

	// Source, when set, is the full source text the error occurred in; it
	// is used by Snippet to render two lines of context above/below with a
	// caret under the offending column.
	Source string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.File != "" {
		fmt.Fprintf(&b, " (%s", e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
		}
		b.WriteString(")")
	}
	return b.String()
}

// New builds an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// At attaches a source position to the error and returns it for chaining.
func (e *Error) At(file string, line, column int) *Error {
	e.File = file
	e.Line = line
	e.Column = column
	return e
}

// WithSuggestion attaches a human-readable fix suggestion.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithSource attaches the full source text for snippet rendering.
func (e *Error) WithSource(src string) *Error {
	e.Source = src
	return e
}

// Snippet renders a source excerpt: two lines of context above and below
// the offending line, with a caret under the offending column, followed by
// the suggestion when present. Returns "" when no Line/Source is set.
func (e *Error) Snippet() string {
	if e.Line <= 0 || e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	idx := e.Line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	var b strings.Builder
	start := idx - 2
	if start < 0 {
		start = 0
	}
	end := idx + 2
	if end >= len(lines) {
		end = len(lines) - 1
	}
	for i := start; i <= end; i++ {
		fmt.Fprintf(&b, "%4d | %s\n", i+1, lines[i])
		if i == idx {
			col := e.Column
			if col < 1 {
				col = 1
			}
			b.WriteString("     | ")
			b.WriteString(strings.Repeat(" ", col-1))
			b.WriteString("^\n")
		}
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "suggestion: %s\n", e.Suggestion)
	}
	return b.String()
}
