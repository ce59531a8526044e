package reactivity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEffectRunsImmediatelyAndOnChange(t *testing.T) {
	s := CreateSignal(1)
	runs := 0
	CreateEffect(func() CleanupFunc {
		s.Get()
		runs++
		return nil
	})
	require.Equal(t, 1, runs)
	s.Set(2)
	require.Equal(t, 2, runs)
}

func TestEffectCleanupRunsBeforeRerunAndOnDispose(t *testing.T) {
	s := CreateSignal(0)
	var cleanups int
	dispose := CreateEffect(func() CleanupFunc {
		s.Get()
		return func() { cleanups++ }
	})
	require.Equal(t, 0, cleanups)

	s.Set(1)
	require.Equal(t, 1, cleanups, "cleanup fires before the re-run")

	s.Set(2)
	require.Equal(t, 2, cleanups)

	dispose()
	require.Equal(t, 3, cleanups, "cleanup fires once more at disposal")

	dispose()
	require.Equal(t, 3, cleanups, "disposal is idempotent")
}

func TestOnCleanupRegistrationsFireInReverseOrder(t *testing.T) {
	s := CreateSignal(0)
	var order []int
	CreateEffect(func() CleanupFunc {
		s.Get()
		OnCleanup(func() { order = append(order, 1) })
		OnCleanup(func() { order = append(order, 2) })
		OnCleanup(func() { order = append(order, 3) })
		return nil
	})
	s.Set(1)
	require.Equal(t, []int{3, 2, 1}, order)
}

func TestEffectDependenciesRebuildEachRun(t *testing.T) {
	cond := CreateSignal(true)
	a := CreateSignal("a")
	b := CreateSignal("b")
	runs := 0
	CreateEffect(func() CleanupFunc {
		if cond.Get() {
			a.Get()
		} else {
			b.Get()
		}
		runs++
		return nil
	})
	require.Equal(t, 1, runs)

	cond.Set(false) // now depends on b, not a
	require.Equal(t, 2, runs)

	a.Set("a2") // stale dependency, must not trigger a rerun
	require.Equal(t, 2, runs)

	b.Set("b2")
	require.Equal(t, 3, runs)
}

func TestEffectOnErrorReceivesPanicAndFlushContinues(t *testing.T) {
	s := CreateSignal(0)
	other := CreateSignal(0)
	var caught error
	CreateEffect(func() CleanupFunc {
		s.Get()
		panic("boom")
	}, WithOnError(func(err error) { caught = err }))

	otherRuns := 0
	CreateEffect(func() CleanupFunc {
		other.Get()
		otherRuns++
		return nil
	})

	Batch(func() {
		s.Set(1)
		other.Set(1)
	})

	require.Error(t, caught)
	require.Equal(t, 2, otherRuns, "an error in one effect must not stop the rest of the flush")
}

func TestUntrackSuspendsDependencyRegistration(t *testing.T) {
	tracked := CreateSignal(1)
	untracked := CreateSignal(1)
	runs := 0
	CreateEffect(func() CleanupFunc {
		tracked.Get()
		Untrack(func() {
			untracked.Get()
		})
		runs++
		return nil
	})
	require.Equal(t, 1, runs)

	untracked.Set(2)
	require.Equal(t, 1, runs, "untracked read must not extend the dependency set")

	tracked.Set(2)
	require.Equal(t, 2, runs)
}
