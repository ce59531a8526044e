package builder

import (
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"
)

// Mount attaches node under the first element matched by selector
// against the current adapter's document body, and returns an unmount
// function that removes it and disposes its effects/listeners.
// Returns a pulseerr.MountNotFound error if selector matches nothing.
func Mount(selector string, node *Node) (unmount func(), err error) {
	a := domkit.Get()
	target := a.QuerySelector(a.GetBody(), selector)
	if target == nil {
		return nil, pulseerr.New(pulseerr.MountNotFound, "mount target not found: "+selector)
	}

	a.AppendChild(target, node.Handle)
	return func() {
		a.RemoveNode(node.Handle)
		node.Dispose()
	}, nil
}
