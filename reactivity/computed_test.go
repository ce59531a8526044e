package reactivity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterAndBatch(t *testing.T) {
	c := CreateSignal(0)
	d := CreateComputed(func() int { return c.Get() * 2 })
	runs := 0
	CreateEffect(func() CleanupFunc {
		d.Get()
		runs++
		return nil
	})

	Batch(func() {
		c.Set(1)
		c.Set(2)
		c.Set(3)
	})

	require.Equal(t, 6, d.Peek())
	require.Equal(t, 2, runs)
}

func TestComputedIsLazyUntilObserved(t *testing.T) {
	s := CreateSignal(1)
	calls := 0
	c := CreateComputed(func() int {
		calls++
		return s.Get() * 10
	})
	require.Equal(t, 0, calls, "compute must not run before first observation")

	require.Equal(t, 10, c.Get())
	require.Equal(t, 1, calls)

	s.Set(2)
	require.Equal(t, 1, calls, "must stay dirty, not eagerly recompute, until next read")
	require.Equal(t, 20, c.Get())
	require.Equal(t, 2, calls)
}

func TestComputedRecomputesAtMostOncePerFlush(t *testing.T) {
	a := CreateSignal(1)
	b := CreateSignal(1)
	calls := 0
	c := CreateComputed(func() int {
		calls++
		return a.Get() + b.Get()
	})
	effectRuns := 0
	CreateEffect(func() CleanupFunc {
		c.Get()
		effectRuns++
		return nil
	})
	require.Equal(t, 1, calls)
	require.Equal(t, 1, effectRuns)

	Batch(func() {
		a.Set(2)
		b.Set(2)
	})
	require.Equal(t, 2, calls, "glitch-free: one recompute regardless of how many upstreams changed")
	require.Equal(t, 2, effectRuns)
}

func TestEagerComputedRecomputesAtMostOncePerFlush(t *testing.T) {
	a := CreateSignal(1)
	b := CreateSignal(1)
	calls := 0
	c := CreateComputed(func() int {
		calls++
		return a.Get() + b.Get()
	}, WithEager[int]())
	require.Equal(t, 1, calls, "eager computed computes immediately at creation")

	Batch(func() {
		a.Set(2)
		b.Set(2)
	})
	require.Equal(t, 2, calls)
}

func TestComputedPanicPropagatesAndStaysDirty(t *testing.T) {
	s := CreateSignal(0)
	c := CreateComputed(func() int {
		if s.Get() == 0 {
			panic("zero!")
		}
		return s.Get()
	})

	require.Panics(t, func() { c.Get() })

	s.Set(5)
	require.Equal(t, 5, c.Get())
}
