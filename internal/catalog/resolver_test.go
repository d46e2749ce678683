package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	return []Entry{
		{CanonicalName: "土豆", Aliases: []string{"马铃薯"}, PurchaseURL: "https://store.example/potato"},
		{CanonicalName: "猪肉", Aliases: []string{"猪肉丝", "五花肉"}, PurchaseURL: "https://store.example/pork"},
		{CanonicalName: "盐", PurchaseURL: "https://store.example/salt"},
	}
}

func newTestResolver() *Resolver {
	return NewResolver(testEntries(), DefaultMinRatio, "")
}

func TestResolveExact(t *testing.T) {
	links := newTestResolver().ResolveLinks([]string{"土豆"})
	require.Len(t, links, 1)
	assert.Equal(t, TierExact, links[0].Tier)
	assert.Equal(t, "https://store.example/potato", links[0].URL)
}

func TestResolveAlias(t *testing.T) {
	links := newTestResolver().ResolveLinks([]string{"马铃薯"})
	require.Len(t, links, 1)
	assert.Equal(t, TierAlias, links[0].Tier)
	assert.Equal(t, "https://store.example/potato", links[0].URL)
}

func TestResolveFuzzySubstring(t *testing.T) {
	// 土豆丝 contains the canonical 土豆 but equals nothing, so the
	// match is fuzzy (ratio 2/3), not exact
	links := newTestResolver().ResolveLinks([]string{"土豆丝"})
	require.Len(t, links, 1)
	assert.Equal(t, TierFuzzy, links[0].Tier)
	assert.Equal(t, "https://store.example/potato", links[0].URL)
}

func TestResolveFallback(t *testing.T) {
	links := newTestResolver().ResolveLinks([]string{"火星蔬菜"})
	require.Len(t, links, 1)
	assert.Equal(t, TierFallback, links[0].Tier)
	assert.Contains(t, links[0].URL, "%E7%81%AB%E6%98%9F%E8%94%AC%E8%8F%9C")
	assert.Equal(t, "火星蔬菜", links[0].IngredientName)
}

func TestResolveFallbackBelowRatio(t *testing.T) {
	// 盐 is a single rune inside a 4-rune name: ratio 0.25 < 0.5 must
	// not count as fuzzy
	links := newTestResolver().ResolveLinks([]string{"低钠精盐水"})
	require.Len(t, links, 1)
	assert.Equal(t, TierFallback, links[0].Tier)
}

func TestResolveQualifierStripped(t *testing.T) {
	links := newTestResolver().ResolveLinks([]string{"新鲜土豆"})
	require.Len(t, links, 1)
	assert.Equal(t, TierExact, links[0].Tier)
	// fallback readability aside, matched names keep the original text
	assert.Equal(t, "新鲜土豆", links[0].IngredientName)
}

func TestResolveDedupKeepsFirstOccurrenceOrder(t *testing.T) {
	links := newTestResolver().ResolveLinks([]string{"盐", "土豆", "盐", "新鲜 盐"})
	require.Len(t, links, 2)
	assert.Equal(t, "盐", links[0].IngredientName)
	assert.Equal(t, "土豆", links[1].IngredientName)
}

func TestResolveDeterministic(t *testing.T) {
	names := []string{"土豆丝", "马铃薯", "火星蔬菜", "猪肉"}
	first := newTestResolver().ResolveLinks(names)
	second := newTestResolver().ResolveLinks(names)
	assert.Equal(t, first, second)
}

func TestResolveAliasOverlapDeclarationOrder(t *testing.T) {
	entries := []Entry{
		{CanonicalName: "青椒", Aliases: []string{"辣椒"}, PurchaseURL: "https://store.example/green"},
		{CanonicalName: "红椒", Aliases: []string{"辣椒"}, PurchaseURL: "https://store.example/red"},
	}
	links := NewResolver(entries, DefaultMinRatio, "").ResolveLinks([]string{"辣椒"})
	require.Len(t, links, 1)
	assert.Equal(t, TierAlias, links[0].Tier)
	assert.Equal(t, "https://store.example/green", links[0].URL)
}

func TestResolveFuzzyTieBrokenByDeclarationOrder(t *testing.T) {
	entries := []Entry{
		{CanonicalName: "白菜", PurchaseURL: "https://store.example/first"},
		{CanonicalName: "白菜心", Aliases: []string{"白菜"}, PurchaseURL: "https://store.example/second"},
	}
	links := NewResolver(entries, DefaultMinRatio, "").ResolveLinks([]string{"小白菜"})
	require.Len(t, links, 1)
	assert.Equal(t, TierFuzzy, links[0].Tier)
	assert.Equal(t, "https://store.example/first", links[0].URL)
}

func TestResolveCustomSearchURL(t *testing.T) {
	r := NewResolver(nil, DefaultMinRatio, "https://search.example/q?kw=%s")
	links := r.ResolveLinks([]string{"香菜"})
	require.Len(t, links, 1)
	assert.True(t, strings.HasPrefix(links[0].URL, "https://search.example/q?kw="))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"  土豆  ", "土豆"},
		{"新鲜土豆", "土豆"},
		{"切片 五花肉", "五花肉"},
		{"ＴＯＦＵ", "tofu"},
		{"Fresh  Basil", "fresh basil"},
		{"新鲜", "新鲜"}, // a bare qualifier must not normalize to nothing
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.expected {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestOverlapRatio(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"土豆丝", "土豆", 2.0 / 3.0},
		{"土豆", "土豆丝", 2.0 / 3.0},
		{"土豆", "土豆", 1},
		{"白菜", "萝卜", 0},
		{"", "土豆", 0},
	}
	for _, tt := range tests {
		if got := overlapRatio(tt.a, tt.b); got != tt.expected {
			t.Errorf("overlapRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}
