package builder

import (
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"
)

// itemRecord is a keyed list entry: the node it rendered to plus the key
// that identifies it across re-renders, grounded on the teacher's
// childRecord (comps/helpers.go) but kept node-identity-stable across
// reorders instead of always rebuilding.
type itemRecord struct {
	key   string
	node  *Node
	index reactivity.Signal[int]
}

// List renders a keyed, reactively-updated sequence. items is re-read inside a tracking effect; keyFn derives
// a stable identity per element; renderFn builds a Node for a key seen
// for the first time, given a reactive index accessor that keeps
// reporting this item's current position even after later reorders
// move it without rebuilding it. On every change, existing keys keep
// their Node (and therefore DOM identity and any internal component
// state); new keys are rendered; removed keys are torn down; and the
// DOM order is patched with the minimum number of moves via a
// longest-increasing-subsequence pass, exactly as Vue/Inferno-style
// keyed diffs do.
func List[T any](items func() []T, keyFn func(item T, index int) string, renderFn func(item T, index func() int) *Node) *Node {
	a := domkit.Get()
	start := a.CreateComment("list-start")
	end := a.CreateComment("list-end")

	frag := a.CreateDocumentFragment()
	a.AppendChild(frag, start)
	a.AppendChild(frag, end)

	n := &Node{Handle: frag}

	records := make(map[string]*itemRecord)
	var order []string

	dispose := reactivity.CreateEffect(func() reactivity.CleanupFunc {
		current := items()
		newKeys := make([]string, len(current))
		for i, item := range current {
			newKeys[i] = keyFn(item, i)
		}
		reconcileList(a, start, end, current, newKeys, records, &order, renderFn)
		return nil
	})
	n.own(func() { dispose() })
	n.own(func() {
		for _, rec := range records {
			rec.node.Dispose()
		}
	})

	return n
}

func reconcileList[T any](
	a domkit.Adapter,
	start, end domkit.Node,
	current []T,
	newKeys []string,
	records map[string]*itemRecord,
	order *[]string,
	renderFn func(item T, index func() int) *Node,
) {
	newKeySet := make(map[string]bool, len(newKeys))
	for _, k := range newKeys {
		newKeySet[k] = true
	}

	// Tear down records whose key disappeared.
	for key, rec := range records {
		if !newKeySet[key] {
			a.RemoveNode(rec.node.Handle)
			rec.node.Dispose()
			delete(records, key)
		}
	}

	oldPosition := make(map[string]int, len(*order))
	for i, k := range *order {
		oldPosition[k] = i
	}

	// sources[i] is the old-array position of newKeys[i]'s record, or -1
	// if it is a brand new key this pass.
	sources := make([]int, len(newKeys))
	for i, key := range newKeys {
		if pos, ok := oldPosition[key]; ok {
			sources[i] = pos
		} else {
			sources[i] = -1
			idx := reactivity.CreateSignal(i)
			records[key] = &itemRecord{key: key, index: idx, node: renderFn(current[i], idx.Get)}
		}
	}

	// Every record's index signal reflects its final position this
	// pass, whether or not the record itself moved, so a kept-but-moved
	// item's renderFn-captured index updates in place instead of going
	// stale.
	for i, key := range newKeys {
		records[key].index.Set(i)
	}

	fixed := fixedIndices(sources)

	next := end
	for i := len(newKeys) - 1; i >= 0; i-- {
		rec := records[newKeys[i]]
		if fixed[i] {
			next = rec.node.Handle
			continue
		}
		a.InsertBefore(a.GetParentNode(start), rec.node.Handle, next)
		next = rec.node.Handle
	}

	*order = newKeys
}

// fixedIndices returns, for each index in sources, whether that item is
// already in a position consistent with the longest increasing
// subsequence of prior positions and therefore needs no DOM move. A -1
// entry (a brand new item) is never fixed.
func fixedIndices(sources []int) []bool {
	fixed := make([]bool, len(sources))
	filteredValues := make([]int, 0, len(sources))
	filteredToOriginal := make([]int, 0, len(sources))
	for i, v := range sources {
		if v >= 0 {
			filteredValues = append(filteredValues, v)
			filteredToOriginal = append(filteredToOriginal, i)
		}
	}
	for _, idx := range longestIncreasingSubsequence(filteredValues) {
		fixed[filteredToOriginal[idx]] = true
	}
	return fixed
}

// longestIncreasingSubsequence returns the indices (into nums) forming
// one strictly increasing subsequence of maximum length, via patience
// sorting with predecessor backtracking (O(n log n)).
func longestIncreasingSubsequence(nums []int) []int {
	n := len(nums)
	if n == 0 {
		return nil
	}
	tails := make([]int, 0, n)
	prev := make([]int, n)
	for i := range prev {
		prev[i] = -1
	}
	for i, v := range nums {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if nums[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}
	length := len(tails)
	result := make([]int, length)
	k := tails[length-1]
	for i := length - 1; i >= 0; i-- {
		result[i] = k
		k = prev[k]
	}
	return result
}
