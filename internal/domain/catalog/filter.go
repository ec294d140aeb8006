// Package catalog selects and orders the products a shopper sees.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/your-org/giftflare-backend/internal/domain/product"
)

// ErrInvalidPriceRange is returned for price range values outside the vocabulary
var ErrInvalidPriceRange = errors.New("invalid price range")

// AllCategories disables the category filter
const AllCategories = "all"

// SortKey selects the ordering of filtered products
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	// SortPopularity has no popularity signal behind it. The resulting order
	// is unspecified; today it is the catalog order.
	SortPopularity SortKey = "popularity"
)

// ParseSortKey maps a request value onto a sort key. "popular" is accepted
// as an alias of popularity and anything unknown sorts by newest.
func ParseSortKey(value string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortPopularity, "popular":
		return SortPopularity
	default:
		return SortNewest
	}
}

// PriceRange is an inclusive price window. The zero value matches every
// price; a limited range with Unbounded set has no upper bound.
type PriceRange struct {
	Min       int64
	Max       int64
	Unbounded bool
	Limited   bool
}

// AnyPrice matches every product
var AnyPrice = PriceRange{}

// ParsePriceRange parses "all", "min-max" and "min+"
func ParsePriceRange(value string) (PriceRange, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "all" {
		return AnyPrice, nil
	}

	if strings.HasSuffix(value, "+") {
		lower, err := strconv.ParseInt(strings.TrimSuffix(value, "+"), 10, 64)
		if err != nil || lower < 0 {
			return PriceRange{}, fmt.Errorf("%w: %q", ErrInvalidPriceRange, value)
		}
		return PriceRange{Min: lower, Unbounded: true, Limited: true}, nil
	}

	bounds := strings.SplitN(value, "-", 2)
	if len(bounds) != 2 {
		return PriceRange{}, fmt.Errorf("%w: %q", ErrInvalidPriceRange, value)
	}
	lower, errLower := strconv.ParseInt(bounds[0], 10, 64)
	upper, errUpper := strconv.ParseInt(bounds[1], 10, 64)
	if errLower != nil || errUpper != nil || lower < 0 || upper < lower {
		return PriceRange{}, fmt.Errorf("%w: %q", ErrInvalidPriceRange, value)
	}

	return PriceRange{Min: lower, Max: upper, Limited: true}, nil
}

// Contains reports whether price falls inside the range
func (r PriceRange) Contains(price int64) bool {
	if !r.Limited {
		return true
	}
	if price < r.Min {
		return false
	}
	return r.Unbounded || price <= r.Max
}

// Criteria are the shopper's filter and sort choices
type Criteria struct {
	Query    string
	Category string
	Price    PriceRange
	Sort     SortKey
}

// DefaultCriteria shows every approved product, newest first
func DefaultCriteria() Criteria {
	return Criteria{
		Category: AllCategories,
		Price:    AnyPrice,
		Sort:     SortNewest,
	}
}

// Filter returns the approved products matching criteria in the requested
// order. The input slice is left untouched.
func Filter(products []product.Product, criteria Criteria) []product.Product {
	query := strings.ToLower(criteria.Query)

	filtered := make([]product.Product, 0, len(products))
	for _, p := range products {
		if !p.IsApproved() {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if criteria.Category != "" && criteria.Category != AllCategories && p.Category != criteria.Category {
			continue
		}
		if !criteria.Price.Contains(p.Price) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch criteria.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case SortPopularity:
		// no signal, keep catalog order
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	return filtered
}

// CountVisible returns how many products pass the approval precondition
func CountVisible(products []product.Product) int {
	count := 0
	for _, p := range products {
		if p.IsApproved() {
			count++
		}
	}
	return count
}

func matchesQuery(p product.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.SellerName), query)
}
