package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/luxe-storefront/internal/notifications"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

const (
	loadFailedTitle       = "Failed to load products"
	loadFailedDescription = "Please try again later."
)

type fetchRecorder interface {
	ObserveCatalogFetch(duration time.Duration, products int, err error)
}

// Snapshot is a consistent view of the loaded catalog.
type Snapshot struct {
	Loading    bool
	Products   []Product
	Categories []string
	MaxPrice   decimal.Decimal
	LoadedAt   time.Time
}

// Params wires the catalog dependencies. Source is required.
type Params struct {
	Source    Source
	Publisher notifications.Publisher
	Metrics   fetchRecorder
	Logger    *logger.Logger
}

// Catalog holds the product list fetched from the source and answers filter queries over it.
// It starts in the loading state until the first Load completes.
type Catalog struct {
	source    Source
	publisher notifications.Publisher
	metrics   fetchRecorder
	logg      *logger.Logger
	now       func() time.Time

	loadMu sync.Mutex

	mu       sync.RWMutex
	loading  bool
	products []Product
	byID     map[int]int
	loadedAt time.Time
}

func New(params Params) (*Catalog, error) {
	if params.Source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	return &Catalog{
		source:    params.Source,
		publisher: params.Publisher,
		metrics:   params.Metrics,
		logg:      params.Logger,
		now:       time.Now,
		loading:   true,
		byID:      map[int]int{},
	}, nil
}

// Load fetches the product list once. A failed fetch is logged and surfaced as a single
// destructive notification, and the catalog is left empty; the error is not returned.
// Overlapping calls run one after another.
func (c *Catalog) Load(ctx context.Context) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	start := c.now()
	products, err := c.source.ListProducts(ctx)
	elapsed := c.now().Sub(start)
	if c.metrics != nil {
		c.metrics.ObserveCatalogFetch(elapsed, len(products), err)
	}

	if err != nil {
		products = nil
	}

	byID := make(map[int]int, len(products))
	for i, p := range products {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = i
		}
	}

	c.mu.Lock()
	c.products = products
	c.byID = byID
	c.loading = false
	c.loadedAt = c.now().UTC()
	c.mu.Unlock()

	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "catalog.load.failed", err)
		}
		if c.publisher != nil {
			c.publisher.Publish(ctx, notifications.Notification{
				Variant:     notifications.VariantDestructive,
				Title:       loadFailedTitle,
				Description: loadFailedDescription,
			})
		}
		return
	}

	if c.logg != nil {
		logCtx := c.logg.WithFields(ctx, map[string]any{
			"products":    len(products),
			"duration_ms": elapsed.Milliseconds(),
		})
		c.logg.Info(logCtx, "catalog.load.complete")
	}
}

// Snapshot returns a copy of the current catalog state.
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	products := make([]Product, len(c.products))
	copy(products, c.products)
	return Snapshot{
		Loading:    c.loading,
		Products:   products,
		Categories: Categories(products),
		MaxPrice:   MaxPrice(products),
		LoadedAt:   c.loadedAt,
	}
}

// Loading reports whether a fetch is in flight or none has completed yet.
func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Find looks up a product by id in the loaded catalog.
func (c *Catalog) Find(id int) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Search applies Filter to the loaded products.
func (c *Catalog) Search(criteria Criteria) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Filter(c.products, criteria)
}
