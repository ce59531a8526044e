package domkit

// NodeKind classifies the value a TreeWalker.Kind call returns.
type NodeKind int

const (
	KindElement NodeKind = iota
	KindText
	KindComment
	KindFragment
)

// TreeWalker is an optional capability an Adapter may implement to allow
// read-only structural enumeration of its tree. The mutation-oriented
// methods on Adapter address one node at a time (GetNextSibling,
// GetParentNode) and have no "list all children" operation, which is
// enough for the builder's reconciliation but not for walking a whole
// tree at once. A real browser adapter has no need for this — the
// browser itself is the DOM, introspected via the page, not replayed
// into another representation — but the mock adapter implements it so
// SSR rendering and hydration-mismatch diffing can enumerate a built
// tree without reaching into adapter-private node types.
type TreeWalker interface {
	Kind(n Node) NodeKind
	Tag(n Node) string
	Text(n Node) string
	Classes(n Node) []string
	Attrs(n Node) map[string]string
	Styles(n Node) map[string]string
	Children(n Node) []Node
}
