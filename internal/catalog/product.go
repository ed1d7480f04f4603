package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryAll is the sentinel category that matches every product.
const CategoryAll = "all"

// Product is one read-only catalog record as served by the catalog source.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image,omitempty"`
	Rating      Rating          `json:"rating"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// HasImage reports whether the source supplied an image reference.
func (p Product) HasImage() bool {
	return strings.TrimSpace(p.Image) != ""
}

func (p Product) valid() bool {
	return p.ID > 0 && !p.Price.IsNegative()
}

func (r Rating) normalized() Rating {
	switch {
	case r.Rate < 0:
		r.Rate = 0
	case r.Rate > 5:
		r.Rate = 5
	}
	if r.Count < 0 {
		r.Count = 0
	}
	return r
}
