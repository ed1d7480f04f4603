package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/luxe-storefront/api/responses"
	"github.com/angelmondragon/luxe-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

const (
	envHeader           = "X-Storefront-Env"
	readyCheckTimeout   = 2 * time.Second
	statusOk            = "ok"
	statusLoading       = "loading"
	statusUnavailable   = "unavailable"
	statusNotConfigured = "not_configured"
)

type loadingReporter interface {
	Loading() bool
}

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the first catalog load has finished and, when configured,
// redis answers a ping. A nil redis pinger is reported as not configured.
func HealthReady(cfg *config.Config, logg *logger.Logger, catalog loadingReporter, redis pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{
			"catalog": statusOk,
			"redis":   statusNotConfigured,
		}
		ready := true

		if catalog != nil && catalog.Loading() {
			checks["catalog"] = statusLoading
			ready = false
		}

		if redis != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
			err := redis.Ping(ctx)
			cancel()
			if err != nil {
				checks["redis"] = statusUnavailable
				ready = false
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "health.redis.unavailable")
				}
			} else {
				checks["redis"] = statusOk
			}
		}

		if !ready {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
