package domkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeURLRejectsScriptSchemes(t *testing.T) {
	cases := []string{
		"javascript:alert(1)",
		"  JavaScript:alert(1)",
		"vbscript:msgbox(1)",
		"data:text/html,<script>alert(1)</script>",
	}
	for _, c := range cases {
		require.Equal(t, "about:blank", SanitizeURL(c), c)
	}
}

func TestSanitizeURLAllowsOrdinaryTargets(t *testing.T) {
	cases := []string{
		"https://example.com/a?b=c",
		"http://example.com",
		"mailto:a@example.com",
		"tel:+15551234567",
		"/relative/path",
		"relative/path",
		"#fragment",
	}
	for _, c := range cases {
		require.Equal(t, c, SanitizeURL(c), c)
	}
}

func TestIsURLAttribute(t *testing.T) {
	require.True(t, IsURLAttribute("href"))
	require.True(t, IsURLAttribute("SRC"))
	require.False(t, IsURLAttribute("class"))
}

type fakeAdapter struct{ Adapter }

func TestWithAdapterRestoresOnPanic(t *testing.T) {
	Reset()
	first := &fakeAdapter{}
	Set(first)

	func() {
		defer func() { recover() }()
		WithAdapter(&fakeAdapter{}, func() {
			panic("boom")
		})
	}()

	require.Same(t, first, Get())
	Reset()
}

func TestWithAdapterNests(t *testing.T) {
	Reset()
	defer Reset()
	outer := &fakeAdapter{}
	inner := &fakeAdapter{}
	Set(outer)

	WithAdapter(inner, func() {
		require.Same(t, inner, Get())
	})
	require.Same(t, outer, Get())
}
