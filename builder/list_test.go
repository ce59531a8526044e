package builder

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit/mockdom"
	"github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"
)

func TestListRendersInitialItemsInOrder(t *testing.T) {
	withMock(t, func(a *mockdom.Adapter) {
		items := reactivity.CreateSignal([]string{"a", "b", "c"})
		ul := El("ul", nil, List(
			func() []string { return items.Get() },
			func(item string, i int) string { return item },
			func(item string, index func() int) *Node { return Text(item) },
		))
		require.Equal(t, "abc", a.GetTextContent(ul.Handle))
	})
}

func TestListKeyedReorderMovesWithoutRebuilding(t *testing.T) {
	withMock(t, func(a *mockdom.Adapter) {
		items := reactivity.CreateSignal([]string{"1", "2", "3"})
		built := map[string]*Node{}
		ul := El("ul", nil, List(
			func() []string { return items.Get() },
			func(item string, i int) string { return item },
			func(item string, index func() int) *Node {
				n := Text(item)
				built[item] = n
				return n
			},
		))
		require.Equal(t, "123", a.GetTextContent(ul.Handle))

		firstHandleFor1 := built["1"].Handle
		items.Set([]string{"3", "1", "2"})

		require.Equal(t, "312", a.GetTextContent(ul.Handle))
		require.Equal(t, firstHandleFor1, built["1"].Handle, "reordering must reuse the existing node, not rebuild it")
	})
}

func TestListAddsAndRemovesByKeyWithoutRerenderingSurvivors(t *testing.T) {
	withMock(t, func(a *mockdom.Adapter) {
		items := reactivity.CreateSignal([]string{"a", "b"})
		renderCount := map[string]int{}
		ul := El("ul", nil, List(
			func() []string { return items.Get() },
			func(item string, i int) string { return item },
			func(item string, index func() int) *Node {
				renderCount[item]++
				return Text(item)
			},
		))
		require.Equal(t, 1, renderCount["a"])
		require.Equal(t, 1, renderCount["b"])
		require.Equal(t, "ab", a.GetTextContent(ul.Handle))

		items.Set([]string{"b", "c"})
		require.Equal(t, 1, renderCount["b"], "existing key must not re-render")
		require.Equal(t, 1, renderCount["c"])
		require.Equal(t, "bc", a.GetTextContent(ul.Handle), "removed key 'a' must be gone from the DOM")
	})
}

func TestListRenderFnIndexIsReactiveAcrossReorders(t *testing.T) {
	withMock(t, func(a *mockdom.Adapter) {
		items := reactivity.CreateSignal([]string{"1", "2", "3"})
		indexReads := map[string]func() int{}
		List(
			func() []string { return items.Get() },
			func(item string, i int) string { return item },
			func(item string, index func() int) *Node {
				indexReads[item] = index
				return Text(item)
			},
		)

		require.Equal(t, 0, indexReads["1"]())
		require.Equal(t, 1, indexReads["2"]())
		require.Equal(t, 2, indexReads["3"]())

		items.Set([]string{"3", "1", "2"})

		require.Equal(t, 0, indexReads["3"]())
		require.Equal(t, 1, indexReads["1"]())
		require.Equal(t, 2, indexReads["2"]())
	})
}

func TestListRenderFnIndexUpdatesTriggerEffects(t *testing.T) {
	withMock(t, func(a *mockdom.Adapter) {
		items := reactivity.CreateSignal([]string{"a", "b"})
		var observedIndexForB int
		List(
			func() []string { return items.Get() },
			func(item string, i int) string { return item },
			func(item string, index func() int) *Node {
				if item == "b" {
					reactivity.CreateEffect(func() reactivity.CleanupFunc {
						observedIndexForB = index()
						return nil
					})
				}
				return Text(item)
			},
		)
		require.Equal(t, 1, observedIndexForB)

		items.Set([]string{"b", "a"})
		require.Equal(t, 0, observedIndexForB, "effect reading the reactive index must rerun after a move")
	})
}

func TestListDrivenByArrayMutatorHelpers(t *testing.T) {
	withMock(t, func(a *mockdom.Adapter) {
		items := reactivity.CreateSignal([]string{"a", "b"})
		ul := El("ul", nil, List(
			func() []string { return items.Get() },
			func(item string, i int) string { return item },
			func(item string, index func() int) *Node { return Text(item) },
		))
		require.Equal(t, "ab", a.GetTextContent(ul.Handle))

		reactivity.Push(items, "c")
		require.Equal(t, "abc", a.GetTextContent(ul.Handle))

		reactivity.SetAt(items, 0, "z")
		require.Equal(t, "zbc", a.GetTextContent(ul.Handle))

		reactivity.ReverseSlice(items)
		require.Equal(t, "cbz", a.GetTextContent(ul.Handle))
	})
}
