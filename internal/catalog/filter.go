package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceRange is inclusive on both ends.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// Criteria selects products from the loaded catalog.
type Criteria struct {
	Query    string
	Category string
	Price    PriceRange
}

// Filter keeps the products matching every criterion, preserving source order.
func Filter(products []Product, criteria Criteria) []Product {
	query := strings.ToLower(criteria.Query)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchesQuery(p, query) {
			continue
		}
		if criteria.Category != CategoryAll && p.Category != criteria.Category {
			continue
		}
		if !criteria.Price.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p Product, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Title), lowered) ||
		strings.Contains(strings.ToLower(p.Description), lowered)
}

// Categories lists distinct categories in first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// MaxPrice is the highest price rounded up to a whole unit; zero for an empty catalog.
func MaxPrice(products []Product) decimal.Decimal {
	highest := decimal.Zero
	for _, p := range products {
		if p.Price.GreaterThan(highest) {
			highest = p.Price
		}
	}
	return highest.Ceil()
}

// DefaultCriteria is the reset state of the filters: everything in the catalog matches.
func DefaultCriteria(products []Product) Criteria {
	return Criteria{
		Category: CategoryAll,
		Price:    PriceRange{Min: decimal.Zero, Max: MaxPrice(products)},
	}
}
