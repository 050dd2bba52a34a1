// internal/market/search.go
//
// Two searches live here: the plain store search on the search screen and
// the multi-term "smart shopping" search that prices a whole shopping list
// across the market.

package market

import (
	"sort"
	"strings"

	"github.com/cheongnyamri/market/internal/catalog"
)

// SearchMatch is one product hit for a smart-search term, annotated with the
// store it belongs to.
type SearchMatch struct {
	Product   catalog.Product
	StoreID   catalog.StoreID
	StoreName string
	Rating    float64
}

// TermResult groups the matches for one search term. Terms with zero matches
// still appear so the UI can say "no results for X".
type TermResult struct {
	Term    string
	Matches []SearchMatch
}

// ParseSearchTerms splits a comma-separated shopping list into search terms.
// Each term is trimmed and reduced to its first whitespace-delimited token,
// so "대파 1개" searches for "대파".
func ParseSearchTerms(input string) []string {
	var terms []string
	for _, raw := range strings.Split(input, ",") {
		fields := strings.Fields(raw)
		if len(fields) > 0 {
			terms = append(terms, fields[0])
		}
	}
	return terms
}

// SmartSearch scans every product of every store for a case-insensitive
// substring match per term. Matches are sorted by ascending price, keeping
// catalog order between equal prices.
func SmartSearch(terms []string, stores []catalog.Store) []TermResult {
	results := make([]TermResult, 0, len(terms))
	for _, term := range terms {
		needle := strings.ToLower(term)
		var matches []SearchMatch
		for _, store := range stores {
			for _, product := range store.Products {
				if strings.Contains(strings.ToLower(product.Name), needle) {
					matches = append(matches, SearchMatch{
						Product:   product,
						StoreID:   store.ID,
						StoreName: store.Name,
						Rating:    store.Rating,
					})
				}
			}
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Product.Price < matches[j].Product.Price
		})
		results = append(results, TermResult{Term: term, Matches: matches})
	}
	return results
}

// SearchStores filters stores whose name, product list, or description
// contains the query, ignoring case and all whitespace. An empty query
// returns every store.
func SearchStores(query string, stores []catalog.Store) []catalog.Store {
	needle := collapse(query)
	if needle == "" {
		out := make([]catalog.Store, len(stores))
		copy(out, stores)
		return out
	}
	var out []catalog.Store
	for _, store := range stores {
		var names strings.Builder
		for _, p := range store.Products {
			names.WriteString(p.Name)
		}
		if strings.Contains(collapse(store.Name), needle) ||
			strings.Contains(collapse(names.String()), needle) ||
			strings.Contains(collapse(store.Description), needle) {
			out = append(out, store)
		}
	}
	return out
}

func collapse(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
