package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/luxe-storefront/api/controllers"
	"github.com/angelmondragon/luxe-storefront/api/middleware"
	"github.com/angelmondragon/luxe-storefront/api/responses"
	"github.com/angelmondragon/luxe-storefront/internal/cart"
	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	"github.com/angelmondragon/luxe-storefront/internal/checkout"
	"github.com/angelmondragon/luxe-storefront/internal/notifications"
	"github.com/angelmondragon/luxe-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
	pkgredis "github.com/angelmondragon/luxe-storefront/pkg/redis"
)

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type catalogService interface {
	Load(ctx context.Context)
	Snapshot() catalog.Snapshot
	Find(id int) (catalog.Product, bool)
	Search(criteria catalog.Criteria) []catalog.Product
	Loading() bool
}

type notificationDrainer interface {
	Drain() []notifications.Notification
}

// RedisDeps are the redis-backed surfaces. Leave it nil when redis is not configured.
type RedisDeps interface {
	pkgredis.IdempotencyStore
	pinger
	rateLimiter
}

type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Catalog         *catalog.Catalog
	Cart            cart.Service
	Checkout        checkout.Service
	Notifications   *notifications.Feed
	Redis           RedisDeps
	MetricsGatherer prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	// Interface values stay nil when a dependency is absent so handlers and middleware see nil,
	// not a typed nil pointer.
	var (
		products  catalogService
		feed      notificationDrainer
		rateStore rateLimiter
		idemStore pkgredis.IdempotencyStore
		redisPing pinger
	)
	if deps.Catalog != nil {
		products = deps.Catalog
	}
	if deps.Notifications != nil {
		feed = deps.Notifications
	}
	if deps.Redis != nil {
		rateStore = deps.Redis
		idemStore = deps.Redis
		redisPing = deps.Redis
	}

	writePolicy := middleware.NewRateLimitPolicy("writes", cfg.RateLimit.Window, cfg.RateLimit.Max)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, products, redisPing))
	})

	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(writePolicy, rateStore, logg))

		r.Get("/products", controllers.ListProducts(products, logg))
		r.Get("/products/{productId}", controllers.GetProduct(products, logg))
		r.Post("/catalog/load", controllers.LoadCatalog(products, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/items/{productId}", controllers.UpdateCartItem(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.With(middleware.Idempotency(idemStore, middleware.DefaultIdempotencyTTL, logg)).
			Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Get("/notifications", controllers.DrainNotifications(feed, logg))
	})

	return r
}
