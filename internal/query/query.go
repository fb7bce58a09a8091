// Package query derives the displayed subset and order of a product
// collection from search, filter and sort criteria. Apply is a pure function
// over a snapshot: it never mutates its input and is idempotent.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/OussamaERrafif/storefront/internal/domain"
)

const (
	SortByName  = "name"
	SortByPrice = "price"
)

// Apply filters products by a case-insensitive substring match on the name
// and, when categoryID is positive, by category, then orders the result.
// Sorting is stable so equal keys keep their original relative order; an
// unknown sort key leaves the filtered order untouched.
func Apply(products []domain.Product, search string, categoryID int64, sortKey string) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if categoryID > 0 && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
	}

	switch sortKey {
	case SortByName:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.Cmp(out[j].Price) < 0
		})
	}
	return out
}
