package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics exports cart, catalog and checkout activity.
type StorefrontMetrics struct {
	cartItems      prometheus.Gauge
	cartSubtotal   prometheus.Gauge
	cartMutations  *prometheus.CounterVec
	checkouts      prometheus.Counter
	catalogFetches *prometheus.CounterVec
	catalogLatency prometheus.Histogram
	catalogSize    prometheus.Gauge
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	m := &StorefrontMetrics{
		cartItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_cart_items",
			Help: "Total quantity across all cart lines.",
		}),
		cartSubtotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_cart_subtotal",
			Help: "Current cart subtotal in catalog currency units.",
		}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Applied cart mutations by operation.",
		}, []string{"op"}),
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_checkouts_total",
			Help: "Completed (mocked) checkouts.",
		}),
		catalogFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_catalog_fetches_total",
			Help: "Catalog source fetches by outcome.",
		}, []string{"outcome"}),
		catalogLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_catalog_fetch_duration_seconds",
			Help:    "Duration of catalog source fetches in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_catalog_products",
			Help: "Products held by the loaded catalog.",
		}),
	}
	reg.MustRegister(m.cartItems, m.cartSubtotal, m.cartMutations, m.checkouts, m.catalogFetches, m.catalogLatency, m.catalogSize)
	return m
}

// SetCart records the latest cart aggregates.
func (m *StorefrontMetrics) SetCart(totalItems int, subtotal float64) {
	if m == nil || m.cartItems == nil {
		return
	}
	m.cartItems.Set(float64(totalItems))
	m.cartSubtotal.Set(subtotal)
}

// IncCartMutation counts an applied cart operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckout counts a completed checkout.
func (m *StorefrontMetrics) IncCheckout() {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.Inc()
}

// ObserveCatalogFetch records the outcome and duration of a catalog load.
func (m *StorefrontMetrics) ObserveCatalogFetch(duration time.Duration, products int, err error) {
	if m == nil || m.catalogFetches == nil {
		return
	}
	m.catalogLatency.Observe(duration.Seconds())
	if err != nil {
		m.catalogFetches.WithLabelValues("failure").Inc()
		m.catalogSize.Set(0)
		return
	}
	m.catalogFetches.WithLabelValues("success").Inc()
	m.catalogSize.Set(float64(products))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
