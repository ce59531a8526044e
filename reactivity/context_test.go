package reactivity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentContextIsNilOutsideWithContext(t *testing.T) {
	require.Nil(t, CurrentContext())
}

func TestWithContextInstallsAndRestoresCurrentContext(t *testing.T) {
	ctx := CreateContext("test")
	require.Equal(t, "test", ctx.Name())

	var observed *Context
	WithContext(ctx, func() {
		observed = CurrentContext()
	})

	require.Same(t, ctx, observed)
	require.Nil(t, CurrentContext())
}

func TestWithContextRestoresPreviousOnPanic(t *testing.T) {
	outer := CreateContext("outer")
	inner := CreateContext("inner")

	func() {
		defer func() { recover() }()
		WithContext(outer, func() {
			WithContext(inner, func() {
				panic("boom")
			})
		})
	}()

	require.Nil(t, CurrentContext())
}

func TestContextOwnRunsDisposersInReverseOrderOnReset(t *testing.T) {
	ctx := CreateContext("test")
	var order []int
	ctx.Own(func() { order = append(order, 1) })
	ctx.Own(func() { order = append(order, 2) })
	ctx.Own(func() { order = append(order, 3) })

	ctx.Reset()

	require.Equal(t, []int{3, 2, 1}, order)
}

func TestContextResetIsIdempotent(t *testing.T) {
	ctx := CreateContext("test")
	calls := 0
	ctx.Own(func() { calls++ })

	ctx.Reset()
	ctx.Reset()

	require.Equal(t, 1, calls)
}

func TestContextOwnAfterResetDisposesImmediately(t *testing.T) {
	ctx := CreateContext("test")
	ctx.Reset()

	disposed := false
	ctx.Own(func() { disposed = true })

	require.True(t, disposed)
}

func TestWithContextIsolatesSignalOwnershipPerReset(t *testing.T) {
	outer := CreateContext("outer")
	var disposed bool

	WithContext(outer, func() {
		s := CreateSignal(0)
		d := s.Subscribe(func(int) {})
		outer.Own(d)
		s.Set(1)
	})

	outer.Own(func() { disposed = true })
	outer.Reset()
	require.True(t, disposed)
}
