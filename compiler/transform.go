package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"
)

// Transformer walks a Program and emits target code over the runtime
// API named in the generated-code contract: pulse, computed, effect,
// batch, el, when, list, mount, component, ClientOnly, ServerOnly.
type Transformer struct {
	file string

	scope map[string]bool // names resolvable inside view/style: state, props, actions, imports

	buf     strings.Builder
	genLine int
	genCol  int
	sm      *SourceMap
}

// ExtractCSSSink receives a component's scoped CSS instead of having it
// emitted inline, mirroring the compile option of the same name.
type ExtractCSSSink func(filename, cssText string)

// TransformOptions mirrors the external compile() options that affect
// codegen.
type TransformOptions struct {
	Filename       string
	ExtractCSSSink ExtractCSSSink
}

// Transform produces target code, optionally-inline CSS, and a source
// map for prog.
func Transform(prog *Program, opts TransformOptions) (code, css string, sm *SourceMap, err error) {
	t := &Transformer{
		file:  opts.Filename,
		scope: map[string]bool{},
		sm:    &SourceMap{File: opts.Filename},
	}
	t.genLine, t.genCol = 1, 1

	for _, imp := range prog.Imports {
		t.scope[imp.Name] = true
	}
	if prog.Props != nil {
		for _, e := range prog.Props.Entries {
			t.scope[e.Name] = true
		}
	}
	if prog.State != nil {
		for _, e := range prog.State.Entries {
			t.scope[e.Name] = true
		}
	}
	if prog.Actions != nil {
		for _, e := range prog.Actions.Entries {
			t.scope[e.Name] = true
		}
	}

	if err := t.checkIdentifiers(prog); err != nil {
		return "", "", nil, err
	}

	t.emitImports()
	t.emitLn("")

	compName := prog.Page
	if compName == "" {
		compName = "Component"
	}

	t.emitLn(fmt.Sprintf("export const %s = component((ctx) => {", compName))
	t.writeBody(prog)
	t.emitLn("});")

	if prog.Directive != "" {
		t.emitLn(fmt.Sprintf("%s.__directive = %s;", compName, strconv.Quote(prog.Directive)))
	}
	if prog.Page != "" {
		t.emitLn(fmt.Sprintf("%s.__componentId = %s;", compName, strconv.Quote(prog.Page)))
	}

	var scopedCSS string
	if prog.Style != nil {
		scopeClass := "pulse-" + strings.ToLower(compName)
		scopedCSS = scopeCSS(prog.Style.CSS, scopeClass)
		if opts.ExtractCSSSink != nil {
			opts.ExtractCSSSink(opts.Filename, scopedCSS)
		} else {
			css = scopedCSS
		}
	}

	return t.buf.String(), css, t.sm, nil
}

func (t *Transformer) emitImports() {
	t.emitLn("import { pulse, computed, effect, batch, el, when, list, mount, component, ClientOnly, ServerOnly } from 'pulse/runtime';")
}

func (t *Transformer) writeBody(prog *Program) {
	if len(prog.Imports) > 0 {
		for _, imp := range prog.Imports {
			t.mark(imp.Pos, "Import")
			t.emitLn(fmt.Sprintf("  // import %s from %s", imp.Name, strconv.Quote(imp.Path)))
		}
	}
	if prog.Props != nil {
		for _, e := range prog.Props.Entries {
			t.mark(e.Pos, "Prop")
			def := e.Default
			if def == "" {
				def = "undefined"
			}
			t.emitLn(fmt.Sprintf("  const %s = ctx.props.%s !== undefined ? ctx.props.%s : (%s);", e.Name, e.Name, e.Name, def))
		}
	}
	if prog.State != nil {
		for _, e := range prog.State.Entries {
			t.mark(e.Pos, "State")
			t.emitLn(fmt.Sprintf("  const %s = pulse(%s);", e.Name, e.Init))
		}
	}
	if prog.Actions != nil {
		for _, e := range prog.Actions.Entries {
			t.mark(e.Pos, "Action")
			t.emitLn(fmt.Sprintf("  const %s = %s;", e.Name, e.Body))
		}
	}
	t.mark(prog.View.Pos, "View")
	viewExpr := t.emitNode(prog.View.Root)
	t.emitLn(fmt.Sprintf("  return %s;", viewExpr))
}

// mark records a mapping from the current generation cursor back to pos.
func (t *Transformer) mark(pos Pos, name string) {
	t.sm.Mappings = append(t.sm.Mappings, Mapping{
		GeneratedLine:   t.genLine,
		GeneratedColumn: t.genCol,
		SourceLine:      pos.Line,
		SourceColumn:    pos.Column,
		SourceFile:      t.file,
		Name:            name,
	})
}

func (t *Transformer) emitLn(s string) {
	t.buf.WriteString(s)
	t.buf.WriteByte('\n')
	t.genLine++
	t.genCol = 1
}

// emitNode returns a target-language expression string for a view node;
// it does not itself write a line, since node expressions are almost
// always nested inside a parent call.
func (t *Transformer) emitNode(n Node) string {
	switch v := n.(type) {
	case *Element:
		return t.emitElement(v)
	case *TextNode:
		return t.emitText(v)
	case *IfDirective:
		t.mark(v.Pos, "If")
		thenExpr := t.emitNode(v.Then)
		elseExpr := "null"
		if v.Else != nil {
			elseExpr = fmt.Sprintf("() => (%s)", t.emitNode(v.Else))
		}
		return fmt.Sprintf("when(() => (%s), () => (%s), %s)", v.Cond, thenExpr, elseExpr)
	case *ForDirective:
		t.mark(v.Pos, "For")
		bodyExpr := t.emitNode(v.Body)
		return fmt.Sprintf("list(() => (%s), (%s, __index) => (%s), (%s, __index) => %s)", v.Expr, v.Item, bodyExpr, v.Item, v.Item)
	case *ClientDirective:
		t.mark(v.Pos, "Client")
		bodyExpr := t.emitNode(v.Body)
		if v.Fallback != nil {
			return fmt.Sprintf("ClientOnly(() => (%s), () => (%s))", bodyExpr, t.emitNode(v.Fallback))
		}
		return fmt.Sprintf("ClientOnly(() => (%s))", bodyExpr)
	case *ServerDirective:
		t.mark(v.Pos, "Server")
		return fmt.Sprintf("ServerOnly(() => (%s))", t.emitNode(v.Body))
	default:
		return "null"
	}
}

func (t *Transformer) emitElement(e *Element) string {
	t.mark(e.Pos, fmt.Sprintf("Element<%s>", e.Tag))

	var sel strings.Builder
	sel.WriteString(e.Tag)
	for _, c := range e.Classes {
		sel.WriteByte('.')
		sel.WriteString(c)
	}
	if e.ID != "" {
		sel.WriteByte('#')
		sel.WriteString(e.ID)
	}

	attrPairs := make([]string, 0, len(e.Attrs)+len(e.Events))
	for _, a := range e.Attrs {
		if a.Bool {
			attrPairs = append(attrPairs, fmt.Sprintf("%s: true", jsKey(a.Name)))
			continue
		}
		expr, static := segmentsToJSExpr(a.Segments)
		if static {
			attrPairs = append(attrPairs, fmt.Sprintf("%s: %s", jsKey(a.Name), expr))
		} else {
			attrPairs = append(attrPairs, fmt.Sprintf("%s: () => (%s)", jsKey(a.Name), expr))
		}
	}
	for _, ev := range e.Events {
		attrPairs = append(attrPairs, fmt.Sprintf("%s: (event) => { %s }", jsKey("on"+capitalize(ev.Event)), ev.Expr))
	}
	attrsExpr := "null"
	if len(attrPairs) > 0 {
		attrsExpr = "{ " + strings.Join(attrPairs, ", ") + " }"
	}

	children := make([]string, 0, len(e.Children))
	for _, c := range e.Children {
		children = append(children, t.emitNode(c))
	}

	parts := []string{strconv.Quote(sel.String()), attrsExpr}
	parts = append(parts, children...)
	return fmt.Sprintf("el(%s)", strings.Join(parts, ", "))
}

func (t *Transformer) emitText(n *TextNode) string {
	t.mark(n.Pos, "Text")
	expr, static := segmentsToJSExpr(n.Segments)
	if static {
		return expr
	}
	return fmt.Sprintf("() => (%s)", expr)
}

// segmentsToJSExpr renders a literal/interpolation segment list (shared
// by text children and attribute values) to a target-language string
// expression. static is true when there is no interpolation at all, in
// which case expr is a plain quoted string literal the caller can splice
// in directly instead of wrapping it in a reactive accessor.
func segmentsToJSExpr(segs []TextSegment) (expr string, static bool) {
	if len(segs) == 1 && segs[0].Expr == nil {
		return strconv.Quote(segs[0].Literal), true
	}
	if len(segs) == 1 && segs[0].Expr != nil && segs[0].Literal == "" {
		return segs[0].Expr.Expr, false
	}
	var b strings.Builder
	b.WriteByte('`')
	for _, seg := range segs {
		if seg.Expr != nil {
			b.WriteString("${")
			b.WriteString(seg.Expr.Expr)
			b.WriteString("}")
			continue
		}
		b.WriteString(escapeTemplateLiteral(seg.Literal))
	}
	b.WriteByte('`')
	return b.String(), false
}

func escapeTemplateLiteral(s string) string {
	r := strings.NewReplacer("`", "\\`", "$", "\\$")
	return r.Replace(s)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var jsIdentRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func jsKey(name string) string {
	if jsIdentRe.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}

// scopeCSS prefixes every top-level selector with scopeClass so a
// component's styles don't leak. It is a line-oriented rewrite, not a
// full CSS parse: good enough for flat selector lists, which is all the
// DSL's style blocks are expected to contain.
func scopeCSS(css, scopeClass string) string {
	var out strings.Builder
	lines := strings.Split(css, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "@"):
			out.WriteString(line)
		case strings.Contains(trimmed, "{"):
			idx := strings.Index(trimmed, "{")
			selectors := strings.Split(trimmed[:idx], ",")
			for i, s := range selectors {
				selectors[i] = "." + scopeClass + " " + strings.TrimSpace(s)
			}
			out.WriteString(strings.Join(selectors, ", "))
			out.WriteString(" " + trimmed[idx:])
		default:
			out.WriteString(line)
		}
		out.WriteByte('\n')
	}
	return out.String()
}

// checkIdentifiers resolves every identifier referenced in the view's
// interpolations, event handlers and @if/@for expressions against
// state/props/actions/imports, producing a structured TransformError for
// anything unresolved. The style block is not inspected.
func (t *Transformer) checkIdentifiers(prog *Program) error {
	var walkNode func(n Node) error
	walkNode = func(n Node) error {
		switch v := n.(type) {
		case *Element:
			for _, a := range v.Attrs {
				for _, seg := range a.Segments {
					if seg.Expr != nil {
						if err := t.checkExpr(seg.Expr.Expr, seg.Expr.Pos); err != nil {
							return err
						}
					}
				}
			}
			for _, ev := range v.Events {
				if err := t.checkExpr(ev.Expr, ev.Pos); err != nil {
					return err
				}
			}
			for _, c := range v.Children {
				if err := walkNode(c); err != nil {
					return err
				}
			}
		case *TextNode:
			for _, seg := range v.Segments {
				if seg.Expr != nil {
					if err := t.checkExpr(seg.Expr.Expr, seg.Expr.Pos); err != nil {
						return err
					}
				}
			}
		case *IfDirective:
			if err := t.checkExpr(v.Cond, v.Pos); err != nil {
				return err
			}
			if err := walkNode(v.Then); err != nil {
				return err
			}
			if v.Else != nil {
				return walkNode(v.Else)
			}
		case *ForDirective:
			if err := t.checkExpr(v.Expr, v.Pos); err != nil {
				return err
			}
			inner := t.scope[v.Item]
			t.scope[v.Item] = true
			err := walkNode(v.Body)
			if !inner {
				delete(t.scope, v.Item)
			}
			return err
		case *ClientDirective:
			if err := walkNode(v.Body); err != nil {
				return err
			}
			if v.Fallback != nil {
				return walkNode(v.Fallback)
			}
		case *ServerDirective:
			return walkNode(v.Body)
		}
		return nil
	}
	if prog.View != nil {
		if err := walkNode(prog.View.Root); err != nil {
			return err
		}
	}
	return nil
}

var builtinGlobals = map[string]bool{
	"true": true, "false": true, "null": true, "undefined": true,
	"Math": true, "console": true, "Date": true, "JSON": true,
	"String": true, "Number": true, "Boolean": true, "Array": true, "Object": true,
}

var leadingIdentRe = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)

// checkExpr extracts identifiers from expr and verifies each resolves to
// something in scope. Only a name directly after a '.' (a property
// access) is skipped; object-literal keys and words inside string
// literals are checked like any other identifier.
func (t *Transformer) checkExpr(expr string, pos Pos) error {
	matches := leadingIdentRe.FindAllStringIndex(expr, -1)
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 && expr[start-1] == '.' {
			continue // property access, not a free identifier
		}
		word := expr[start:end]
		if builtinGlobals[word] {
			continue
		}
		if isReservedWord(word) {
			continue
		}
		if !t.scope[word] {
			return pulseerr.Newf(pulseerr.TransformError,
				"unresolved identifier %q (not a state/props/actions/import name)", word).
				At(t.file, pos.Line, pos.Column)
		}
	}
	return nil
}

var reservedWords = map[string]bool{}

func init() {
	for _, w := range []string{
		"if", "else", "in", "of", "function", "return", "typeof", "new",
		"this", "let", "const", "var",
	} {
		reservedWords[w] = true
	}
}

func isReservedWord(w string) bool {
	return reservedWords[w]
}
