package reactivity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit/mockdom"
)

func withMockAdapter(t *testing.T) *mockdom.Adapter {
	t.Helper()
	a := mockdom.New()
	domkit.Set(a)
	t.Cleanup(domkit.Reset)
	return a
}

func TestCreateResourceFetchesOnMicrotaskNotImmediately(t *testing.T) {
	a := withMockAdapter(t)
	source := CreateSignal("a")
	fetched := false

	res := CreateResource(source, func(s string) (string, error) {
		fetched = true
		return s + "!", nil
	})

	require.False(t, fetched, "fetcher must not run synchronously off the effect")
	require.True(t, res.Loading())

	a.FlushMicrotasks()

	require.True(t, fetched)
	require.False(t, res.Loading())
	require.Equal(t, "a!", res.Data())
	require.NoError(t, res.Error())
}

func TestCreateResourceDropsStaleEpochResult(t *testing.T) {
	a := withMockAdapter(t)
	source := CreateSignal("first")
	var seen []string

	res := CreateResource(source, func(s string) (string, error) {
		seen = append(seen, s)
		return s, nil
	})

	source.Set("second")

	a.FlushMicrotasks()

	require.Equal(t, []string{"second"}, seen, "only the latest generation's fetcher should ever run")
	require.Equal(t, "second", res.Data())
	require.False(t, res.Loading())
}

func TestCreateResourceSurfacesFetchError(t *testing.T) {
	a := withMockAdapter(t)
	source := CreateSignal(1)
	boom := errors.New("boom")

	res := CreateResource(source, func(int) (string, error) {
		return "", boom
	})

	a.FlushMicrotasks()

	require.Equal(t, boom, res.Error())
	require.False(t, res.Loading())
	require.Equal(t, "", res.Data())
}

func TestCreateResourceWithoutAdapterStaysLoadingForever(t *testing.T) {
	domkit.Reset()
	source := CreateSignal(1)

	res := CreateResource(source, func(int) (int, error) {
		t.Fatal("fetcher must never run without an installed adapter")
		return 0, nil
	})

	require.True(t, res.Loading())
}
