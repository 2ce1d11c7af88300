package catalog

import (
	"sort"
	"strings"
)

// Sort modes accepted by Filter.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest" // default
)

// Default inclusive price bounds (minor units) when the caller sets none.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 50000
)

// Criteria describes one run of the filter/sort pipeline.
// A zero PriceMax means "unset" and falls back to DefaultPriceMax; PriceMin's
// zero value coincides with its default lower bound.
type Criteria struct {
	Term      string   // free-text category/brand/name filter
	PriceMin  int64    // inclusive lower bound, minor units
	PriceMax  int64    // inclusive upper bound, minor units
	Brands    []string // empty means no brand filtering
	SortOrder string   // SortPriceAsc | SortPriceDesc | SortNewest
}

// synonym terms expanded before matching category tags.
var termSynonyms = map[string][]string{
	"newdrops":       {"new", "launch"},
	"limitededition": {"limited"},
}

// Filter applies the fixed pipeline to the full product list: term filter,
// price range, brand set, then a stable sort. The input slice is never
// mutated; the result is a fresh slice holding the surviving items.
func Filter(list []Sneaker, c Criteria) []Sneaker {
	// each bound defaults independently, so a min-only query still gets the
	// upper default instead of an impossible [min, 0] window
	min, max := c.PriceMin, c.PriceMax
	if min < DefaultPriceMin {
		min = DefaultPriceMin
	}
	if max == 0 {
		max = DefaultPriceMax
	}

	brandSet := make(map[string]struct{}, len(c.Brands))
	for _, b := range c.Brands {
		brandSet[b] = struct{}{}
	}

	result := make([]Sneaker, 0, len(list))
	for _, sn := range list {
		if c.Term != "" && !matchesTerm(sn, c.Term) {
			continue
		}
		if sn.PriceCents < min || sn.PriceCents > max {
			continue
		}
		if len(brandSet) > 0 {
			if _, ok := brandSet[sn.Brand]; !ok {
				continue
			}
		}
		result = append(result, sn)
	}

	switch c.SortOrder {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PriceCents < result[j].PriceCents
		})
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PriceCents > result[j].PriceCents
		})
	default: // SortNewest
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	return result
}

// matchesTerm checks the free-text term against category tags (with synonym
// expansion), the whitespace-stripped brand name, and a substring of
// name+description. Any one match passes.
func matchesTerm(sn Sneaker, term string) bool {
	normalized := strings.ReplaceAll(strings.ToLower(term), " ", "")

	terms := []string{normalized}
	if syn, ok := termSynonyms[normalized]; ok {
		terms = syn
	}

	for _, cat := range sn.Category {
		lc := strings.ToLower(cat)
		for _, t := range terms {
			if lc == t {
				return true
			}
		}
	}

	brand := strings.ToLower(strings.Join(strings.Fields(sn.Brand), ""))
	if brand == normalized {
		return true
	}

	haystack := strings.ToLower(sn.Name + " " + sn.Description)
	return strings.Contains(haystack, normalized)
}
