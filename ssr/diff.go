package ssr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
)

// MismatchType classifies a single hydration-mismatch report entry. The
// values match the external JSON shape exactly.
type MismatchType string

const (
	MismatchTag       MismatchType = "tag"
	MismatchText      MismatchType = "text"
	MismatchAttribute MismatchType = "attribute"
	MismatchChildren  MismatchType = "children"
	MismatchExtra     MismatchType = "extra"
	MismatchMissing   MismatchType = "missing"
)

// Mismatch is one reported difference between a server-rendered and a
// client-rendered tree for the same component.
type Mismatch struct {
	Type       MismatchType `json:"type"`
	Path       string       `json:"path"`
	Expected   string       `json:"expected"`
	Actual     string       `json:"actual"`
	Suggestion string       `json:"suggestion"`
}

// MarshalReport encodes a mismatch list to the external JSON report
// shape, using go-json-experiment/json rather than encoding/json: this
// is the one place a hydration report crosses a process boundary
// (dev server to browser console, or CI tooling), so the stricter
// struct-tag and duplicate-key handling is worth the non-stdlib codec.
func MarshalReport(mismatches []Mismatch) ([]byte, error) {
	if mismatches == nil {
		mismatches = []Mismatch{}
	}
	return json.Marshal(mismatches)
}

// DiffNodes walks a server-rendered and a client-rendered tree in
// parallel and reports every structural or content difference found.
// Comment nodes are excluded from child comparisons on both sides:
// they are internal markers (when/list boundaries, ClientOnly/
// ServerOnly placeholders), not hydration-relevant content.
func DiffNodes(serverTW domkit.TreeWalker, server domkit.Node, clientTW domkit.TreeWalker, client domkit.Node) []Mismatch {
	return diffAt(serverTW, server, clientTW, client, nodeLabel(serverTW, server))
}

func diffAt(stw domkit.TreeWalker, s domkit.Node, ctw domkit.TreeWalker, c domkit.Node, path string) []Mismatch {
	sKind, cKind := stw.Kind(s), ctw.Kind(c)

	if sKind == domkit.KindText && cKind == domkit.KindText {
		st, ct := strings.TrimSpace(stw.Text(s)), strings.TrimSpace(ctw.Text(c))
		if st == ct {
			return nil
		}
		return []Mismatch{{
			Type:       MismatchText,
			Path:       path,
			Expected:   truncate(st),
			Actual:     truncate(ct),
			Suggestion: getSuggestion(MismatchText, st, ct),
		}}
	}

	if sKind != cKind || (sKind == domkit.KindElement && stw.Tag(s) != ctw.Tag(c)) {
		sLabel, cLabel := nodeLabel(stw, s), nodeLabel(ctw, c)
		return []Mismatch{{
			Type:       MismatchTag,
			Path:       path,
			Expected:   sLabel,
			Actual:     cLabel,
			Suggestion: getSuggestion(MismatchTag, sLabel, cLabel),
		}}
	}

	if sKind != domkit.KindElement {
		return nil
	}

	var out []Mismatch
	out = append(out, diffAttrs(stw, s, ctw, c, path)...)
	out = append(out, diffChildren(stw, s, ctw, c, path)...)
	return out
}

func diffAttrs(stw domkit.TreeWalker, s domkit.Node, ctw domkit.TreeWalker, c domkit.Node, path string) []Mismatch {
	sAttrs := effectiveAttrs(stw, s)
	cAttrs := effectiveAttrs(ctw, c)

	var out []Mismatch
	for name := range unionKeys(sAttrs, cAttrs) {
		sv, cv := sAttrs[name], cAttrs[name]
		if sv == cv {
			continue
		}
		out = append(out, Mismatch{
			Type:       MismatchAttribute,
			Path:       path + "[" + name + "]",
			Expected:   sv,
			Actual:     cv,
			Suggestion: getSuggestion(MismatchAttribute, sv, cv),
		})
	}
	return out
}

func effectiveAttrs(tw domkit.TreeWalker, n domkit.Node) map[string]string {
	merged := tw.Attrs(n)
	out := make(map[string]string, len(merged)+2)
	for k, v := range merged {
		out[k] = v
	}
	if classes := tw.Classes(n); len(classes) > 0 {
		out["class"] = strings.Join(classes, " ")
	}
	if styles := tw.Styles(n); len(styles) > 0 {
		out["style"] = styleString(styles)
	}
	return out
}

func unionKeys(a, b map[string]string) map[string]bool {
	out := make(map[string]bool, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

func diffChildren(stw domkit.TreeWalker, s domkit.Node, ctw domkit.TreeWalker, c domkit.Node, path string) []Mismatch {
	sChildren := nonCommentChildren(stw, s)
	cChildren := nonCommentChildren(ctw, c)

	var out []Mismatch
	n := len(sChildren)
	if len(cChildren) < n {
		n = len(cChildren)
	}
	for i := 0; i < n; i++ {
		childPath := path + "/" + childLabel(stw, sChildren[i], i)
		out = append(out, diffAt(stw, sChildren[i], ctw, cChildren[i], childPath)...)
	}

	if len(sChildren) != len(cChildren) {
		delta := len(cChildren) - len(sChildren)
		typ := MismatchExtra
		if delta < 0 {
			typ = MismatchMissing
			delta = -delta
		}
		out = append(out, Mismatch{
			Type:       typ,
			Path:       path,
			Expected:   strconv.Itoa(len(sChildren)),
			Actual:     strconv.Itoa(len(cChildren)),
			Suggestion: fmt.Sprintf("child count differs by %d", delta),
		})
	}
	return out
}

func nonCommentChildren(tw domkit.TreeWalker, n domkit.Node) []domkit.Node {
	var out []domkit.Node
	for _, c := range tw.Children(n) {
		if tw.Kind(c) == domkit.KindComment {
			continue
		}
		out = append(out, c)
	}
	return out
}

func childLabel(tw domkit.TreeWalker, n domkit.Node, index int) string {
	var tag string
	switch tw.Kind(n) {
	case domkit.KindText:
		tag = "#text"
	case domkit.KindFragment:
		tag = "#fragment"
	default:
		tag = tw.Tag(n)
	}
	return fmt.Sprintf("%s:nth-child(%d)%s", tag, index+1, refinements(tw, n))
}

func refinements(tw domkit.TreeWalker, n domkit.Node) string {
	if tw.Kind(n) != domkit.KindElement {
		return ""
	}
	var b strings.Builder
	if id := tw.Attrs(n)["id"]; id != "" {
		b.WriteString("#" + id)
	}
	for _, class := range tw.Classes(n) {
		b.WriteString("." + class)
	}
	return b.String()
}

func nodeLabel(tw domkit.TreeWalker, n domkit.Node) string {
	switch tw.Kind(n) {
	case domkit.KindText:
		return "#text"
	case domkit.KindComment:
		return "#comment"
	case domkit.KindFragment:
		return "#fragment"
	default:
		return tw.Tag(n) + refinements(tw, n)
	}
}

// truncate shortens s to ~80 characters with a trailing ellipsis, so a
// report doesn't embed an entire long text node verbatim.
func truncate(s string) string {
	const max = 80
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

var timestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

// getSuggestion recognizes timestamp-like text/attribute mismatches —
// the most common cause of spurious hydration diffs — and recommends
// wrapping the offending node in ClientOnly/ServerOnly instead of
// rendering it identically on both sides.
func getSuggestion(t MismatchType, expected, actual string) string {
	if (t == MismatchText || t == MismatchAttribute) && timestampRe.MatchString(expected) && timestampRe.MatchString(actual) {
		return "value looks like a timestamp that differs between renders; wrap this node in ClientOnly(...) or ServerOnly(...) instead of rendering it on both sides"
	}
	return ""
}
