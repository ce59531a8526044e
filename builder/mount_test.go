package builder

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit/mockdom"
	"github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"
)

func TestMountAttachesUnderSelectorAndUnmountRemoves(t *testing.T) {
	withMock(t, func(a *mockdom.Adapter) {
		root := a.CreateElement("div")
		a.SetAttribute(root, "id", "app")
		a.AppendChild(a.GetBody(), root)

		n := El("span", nil)
		unmount, err := Mount("#app", n)
		require.NoError(t, err)
		require.Equal(t, root, a.GetParentNode(n.Handle))

		unmount()
		require.Nil(t, a.GetParentNode(n.Handle))
	})
}

func TestMountMissingSelectorReturnsMountNotFound(t *testing.T) {
	withMock(t, func(a *mockdom.Adapter) {
		n := El("span", nil)
		_, err := Mount("#nope", n)
		require.Error(t, err)
		var pe *pulseerr.Error
		require.ErrorAs(t, err, &pe)
		require.Equal(t, pulseerr.MountNotFound, pe.Code)
	})
}
