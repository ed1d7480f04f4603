package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/luxe-storefront/api/responses"
	"github.com/angelmondragon/luxe-storefront/api/validators"
	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

const maxQueryLength = 200

type productCatalog interface {
	Snapshot() catalog.Snapshot
	Find(id int) (catalog.Product, bool)
	Search(criteria catalog.Criteria) []catalog.Product
}

type productListMeta struct {
	Total      int             `json:"total"`
	Matched    int             `json:"matched"`
	Loading    bool            `json:"loading"`
	Categories []string        `json:"categories"`
	MaxPrice   decimal.Decimal `json:"max_price"`
	Criteria   criteriaEcho    `json:"criteria"`
}

type criteriaEcho struct {
	Query    string          `json:"q"`
	Category string          `json:"category"`
	MinPrice decimal.Decimal `json:"min_price"`
	MaxPrice decimal.Decimal `json:"max_price"`
}

// ListProducts filters the loaded catalog. Missing parameters fall back to the reset filter
// state: empty query, every category, and [0, max price].
func ListProducts(cat productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		snapshot := cat.Snapshot()
		criteria := catalog.DefaultCriteria(snapshot.Products)
		query, err := validators.ParseQueryText(r, "q", maxQueryLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		criteria.Query = query
		category, err := validators.ParseQueryText(r, "category", maxQueryLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if category != "" {
			criteria.Category = category
		}

		minPrice, ok, err := validators.ParseQueryDecimal(r, "min_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if ok {
			criteria.Price.Min = minPrice
		}
		maxPrice, ok, err := validators.ParseQueryDecimal(r, "max_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if ok {
			criteria.Price.Max = maxPrice
		}

		products := cat.Search(criteria)
		responses.WriteSuccessMeta(w, products, productListMeta{
			Total:      len(snapshot.Products),
			Matched:    len(products),
			Loading:    snapshot.Loading,
			Categories: snapshot.Categories,
			MaxPrice:   snapshot.MaxPrice,
			Criteria: criteriaEcho{
				Query:    criteria.Query,
				Category: criteria.Category,
				MinPrice: criteria.Price.Min,
				MaxPrice: criteria.Price.Max,
			},
		})
	}
}

func GetProduct(cat productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := cat.Find(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}
