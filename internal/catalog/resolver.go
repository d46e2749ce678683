package catalog

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Tier ranks how confidently an ingredient name was matched to the
// catalog: exact > alias > fuzzy > fallback-search.
type Tier string

const (
	TierExact    Tier = "exact"
	TierAlias    Tier = "alias"
	TierFuzzy    Tier = "fuzzy"
	TierFallback Tier = "fallback-search"
)

// PurchaseLink is one resolved ingredient with its purchase path.
type PurchaseLink struct {
	IngredientName string `json:"ingredient_name"`
	URL            string `json:"url"`
	Tier           Tier   `json:"match_tier"`
}

const (
	// DefaultMinRatio is the minimum overlap ratio a fuzzy candidate
	// must reach before the resolver falls back to a search link.
	DefaultMinRatio = 0.5

	// DefaultSearchURL embeds the original ingredient text as the
	// search keyword when nothing in the catalog matches.
	DefaultSearchURL = "https://xiaoxiang.meituan.com/search?keyword=%s"
)

// qualifiers are descriptive prefixes that do not change which item is
// purchased; they are stripped before matching but the fallback search
// keeps the original text for readability.
var qualifiers = []string{"新鲜", "有机", "冷冻", "切片", "切丝", "切块", "切段", "去皮", "洗净"}

type Resolver struct {
	entries   []Entry
	minRatio  float64
	searchURL string
}

func NewResolver(entries []Entry, minRatio float64, searchURL string) *Resolver {
	if minRatio <= 0 {
		minRatio = DefaultMinRatio
	}
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	return &Resolver{
		entries:   entries,
		minRatio:  minRatio,
		searchURL: searchURL,
	}
}

// ResolveLinks maps ingredient names to purchase links, one link per
// unique name (first-occurrence order). Resolution never fails: a name
// nothing matches degrades to a fallback search link, since having some
// purchase path outranks precision.
func (r *Resolver) ResolveLinks(names []string) []PurchaseLink {
	links := make([]PurchaseLink, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := normalize(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		links = append(links, r.resolve(name, key))
	}
	return links
}

func (r *Resolver) resolve(original, normalized string) PurchaseLink {
	for _, e := range r.entries {
		if normalize(e.CanonicalName) == normalized {
			return PurchaseLink{IngredientName: original, URL: e.PurchaseURL, Tier: TierExact}
		}
	}

	for _, e := range r.entries {
		for _, alias := range e.Aliases {
			if normalize(alias) == normalized {
				return PurchaseLink{IngredientName: original, URL: e.PurchaseURL, Tier: TierAlias}
			}
		}
	}

	var best *Entry
	bestScore := 0.0
	for i := range r.entries {
		e := &r.entries[i]
		candidates := append([]string{e.CanonicalName}, e.Aliases...)
		for _, candidate := range candidates {
			score := overlapRatio(normalized, normalize(candidate))
			// strict comparison keeps declaration order on ties
			if score >= r.minRatio && score > bestScore {
				best = e
				bestScore = score
			}
		}
	}
	if best != nil {
		return PurchaseLink{IngredientName: original, URL: best.PurchaseURL, Tier: TierFuzzy}
	}

	return PurchaseLink{
		IngredientName: original,
		URL:            fmt.Sprintf(r.searchURL, url.QueryEscape(original)),
		Tier:           TierFallback,
	}
}

// overlapRatio scores two normalized names by substring containment in
// either direction: length of the contained string over the longer one.
// Unrelated names score zero.
func overlapRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	shorter, longer := a, b
	if la > lb {
		shorter, longer = b, a
		la, lb = lb, la
	}
	if !strings.Contains(longer, shorter) {
		return 0
	}
	return float64(la) / float64(lb)
}

// normalize folds full-width characters, lowercases ASCII, collapses
// whitespace and strips descriptive qualifiers so that "新鲜 土豆" and
// "土豆" compare equal.
func normalize(s string) string {
	s = width.Fold.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	stripped := s
	for _, q := range qualifiers {
		stripped = strings.ReplaceAll(stripped, q, "")
	}
	stripped = strings.TrimSpace(stripped)
	if stripped == "" {
		return s
	}
	return stripped
}
