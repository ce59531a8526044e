package builder

import (
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"
)

// Show toggles a single, always-mounted node's visibility via the
// "display" style property rather than tearing it down, for subtrees
// whose state should survive being hidden (form inputs mid-edit, a
// paused animation). Grounded on the teacher's showBinder
// (comps/helpers.go Show/attachShowBindersIn), which likewise flips a
// CSS property instead of unmounting.
func Show(cond func() bool, node *Node) *Node {
	a := domkit.Get()
	dispose := reactivity.CreateEffect(func() reactivity.CleanupFunc {
		if cond() {
			a.SetStyle(node.Handle, "display", "")
		} else {
			a.SetStyle(node.Handle, "display", "none")
		}
		return nil
	})
	node.own(func() { dispose() })
	return node
}
