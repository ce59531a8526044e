package builder

import (
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"
)

// When wraps a conditional subtree between marker comments. On each change of cond it removes the
// current branch's subtree and inserts the other, invoking a factory
// only when its branch becomes active — grounded on the teacher's
// showBinder (comps/helpers.go), generalized from toggling visibility
// via a CSS class to tearing the branch down and rebuilding it, which
// is what lets a branch's own effects/components actually dispose.
func When(cond func() bool, thenFactory func() *Node, elseFactory ...func() *Node) *Node {
	var elseFn func() *Node
	if len(elseFactory) > 0 {
		elseFn = elseFactory[0]
	}

	a := domkit.Get()
	start := a.CreateComment("when-start")
	end := a.CreateComment("when-end")
	frag := a.CreateDocumentFragment()
	a.AppendChild(frag, start)
	a.AppendChild(frag, end)

	n := &Node{Handle: frag}
	var active *Node
	var lastCond bool
	first := true

	dispose := reactivity.CreateEffect(func() reactivity.CleanupFunc {
		c := cond()
		if !first && c == lastCond {
			return nil
		}
		first = false
		lastCond = c

		if active != nil {
			a.RemoveNode(active.Handle)
			active.Dispose()
			active = nil
		}

		var factory func() *Node
		if c {
			factory = thenFactory
		} else {
			factory = elseFn
		}
		if factory != nil {
			active = factory()
			a.InsertBefore(a.GetParentNode(start), active.Handle, end)
		}
		return nil
	})
	n.own(func() { dispose() })
	n.own(func() {
		if active != nil {
			active.Dispose()
		}
	})

	return n
}
