package builder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSelectorDefaultsToDiv(t *testing.T) {
	p := parseSelector("")
	require.Equal(t, "div", p.Tag)
}

func TestParseSelectorTagClassesIDAttrs(t *testing.T) {
	p := parseSelector(`button.btn.btn-primary#submit[type=submit][disabled]`)
	require.Equal(t, "button", p.Tag)
	require.Equal(t, "submit", p.ID)
	require.Equal(t, []string{"btn", "btn-primary"}, p.Classes)
	require.Equal(t, "submit", p.Attrs["type"])
	require.Equal(t, "", p.Attrs["disabled"])
	require.Contains(t, p.Attrs, "disabled")
}

func TestParseSelectorClassOnly(t *testing.T) {
	p := parseSelector(".card")
	require.Equal(t, "div", p.Tag)
	require.Equal(t, []string{"card"}, p.Classes)
}

func TestSelectorCacheHitRate(t *testing.T) {
	ResetSelectorCache()
	globalSelectorCache.get("div.a")
	globalSelectorCache.get("div.a")
	globalSelectorCache.get("div.b")

	stats := SelectorCacheStats()
	require.Equal(t, uint64(1), stats.Hits)
	require.Equal(t, uint64(2), stats.Misses)
	require.InDelta(t, 1.0/3.0, stats.HitRate(), 0.0001)
}

func TestSelectorCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newSelectorCache(2)
	c.get("a")
	c.get("b")
	c.get("a") // touch a, making b the LRU entry
	c.get("c") // evicts b

	require.Contains(t, c.index, "a")
	require.Contains(t, c.index, "c")
	require.NotContains(t, c.index, "b")
}
