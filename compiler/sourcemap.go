package compiler

// Mapping ties one span of generated output back to the source span that
// produced it. The transformer records one per AST node it emits code
// for, so tooling can jump from a runtime error in generated code back to
// the .pulse line that caused it.
type Mapping struct {
	GeneratedLine   int
	GeneratedColumn int
	SourceLine      int
	SourceColumn    int
	SourceFile      string
	Name            string // the enclosing construct, e.g. "Element<div>", "Interpolation"
}

// SourceMap is an ordered set of generated->source position mappings.
// It intentionally does not implement the V3 source-map VLQ encoding;
// nothing downstream consumes Pulse's own source maps through a browser
// devtools pipeline yet, and an ordered mapping list round-trips through
// the diff/test helpers that matter here without the VLQ indirection.
type SourceMap struct {
	File     string
	Mappings []Mapping
}

// Lookup returns the mapping whose GeneratedLine/GeneratedColumn is closest to
// (but not after) the given generated position, or false if none exist
// before it.
func (m *SourceMap) Lookup(genLine, genCol int) (Mapping, bool) {
	var best Mapping
	found := false
	for _, mp := range m.Mappings {
		if mp.GeneratedLine > genLine {
			continue
		}
		if mp.GeneratedLine == genLine && mp.GeneratedColumn > genCol {
			continue
		}
		if !found || mp.GeneratedLine > best.GeneratedLine ||
			(mp.GeneratedLine == best.GeneratedLine && mp.GeneratedColumn > best.GeneratedColumn) {
			best = mp
			found = true
		}
	}
	return best, found
}
