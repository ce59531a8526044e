package reactivity

import "sort"

// CreateState exposes a reactive view over obj the way a "state proxy"
// describes: for a struct, that's exactly CreateStore's
// path-addressed Select; CreateState is a thin, more memorable name for
// the common case of the whole object being what the view closes over.
func CreateState[T any](initial T) (Store[T], func(...any)) {
	return CreateStore(initial)
}

// The following are the "array mutators" that must trigger
// reactivity exactly once per call (and, transitively, once per Batch
// when several are called together — Batch coalesces the resulting
// effect runs regardless of how many signals changed inside it).

// Push appends items and notifies once.
func Push[T any](s Signal[[]T], items ...T) {
	s.Update(func(cur []T) []T {
		out := make([]T, len(cur), len(cur)+len(items))
		copy(out, cur)
		return append(out, items...)
	})
}

// Pop removes and returns the last element, if any.
func Pop[T any](s Signal[[]T]) (T, bool) {
	var popped T
	ok := false
	s.Update(func(cur []T) []T {
		if len(cur) == 0 {
			return cur
		}
		ok = true
		popped = cur[len(cur)-1]
		out := make([]T, len(cur)-1)
		copy(out, cur[:len(cur)-1])
		return out
	})
	return popped, ok
}

// Splice mimics JS Array.prototype.splice: removes deleteCount elements
// starting at start and inserts items in their place, returning the
// removed elements.
func Splice[T any](s Signal[[]T], start, deleteCount int, items ...T) []T {
	var removed []T
	s.Update(func(cur []T) []T {
		if start < 0 {
			start = 0
		}
		if start > len(cur) {
			start = len(cur)
		}
		end := start + deleteCount
		if end > len(cur) {
			end = len(cur)
		}
		removed = append([]T{}, cur[start:end]...)
		out := make([]T, 0, len(cur)-(end-start)+len(items))
		out = append(out, cur[:start]...)
		out = append(out, items...)
		out = append(out, cur[end:]...)
		return out
	})
	return removed
}

// SortFunc sorts in place (on a copy) using less, and notifies once.
func SortFunc[T any](s Signal[[]T], less func(a, b T) bool) {
	s.Update(func(cur []T) []T {
		out := append([]T(nil), cur...)
		sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
		return out
	})
}

// ReverseSlice reverses the slice and notifies once.
func ReverseSlice[T any](s Signal[[]T]) {
	s.Update(func(cur []T) []T {
		out := make([]T, len(cur))
		for i, v := range cur {
			out[len(cur)-1-i] = v
		}
		return out
	})
}

// SetAt assigns element i and notifies once.
func SetAt[T any](s Signal[[]T], i int, v T) {
	s.Update(func(cur []T) []T {
		if i < 0 || i >= len(cur) {
			return cur
		}
		out := append([]T(nil), cur...)
		out[i] = v
		return out
	})
}

// SetLength grows (zero-filling) or truncates the slice and notifies once.
func SetLength[T any](s Signal[[]T], n int) {
	s.Update(func(cur []T) []T {
		if n < 0 {
			n = 0
		}
		if n == len(cur) {
			return cur
		}
		out := make([]T, n)
		copy(out, cur)
		return out
	})
}
