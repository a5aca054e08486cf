package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/ratewindow/internal/analytics"
	"github.com/serroba/ratewindow/internal/handlers"
	"github.com/serroba/ratewindow/internal/health"
	"github.com/serroba/ratewindow/internal/messaging"
	"github.com/serroba/ratewindow/internal/middleware"
	"github.com/serroba/ratewindow/internal/ratelimit"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the API with the rate limiter
// middleware installed in front of every route.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		limiter := do.MustInvoke[*ratelimit.RateLimiter](i)
		recordStore := do.MustInvoke[ratelimit.Store](i)

		api := humachi.New(router, huma.DefaultConfig("Rate Limiter", "1.0.0"))

		var publish messaging.Publish[analytics.RequestDeniedEvent]
		if options.Analytics {
			publish = do.MustInvoke[messaging.Publish[analytics.RequestDeniedEvent]](i)
		}

		api.UseMiddleware(middleware.ReportingRateLimiter(api, limiter, recordStore, logger, publish))

		handlers.RegisterRoutes(api, handlers.NewHandler())

		switch options.StoreBackend {
		case "redis":
			client := do.MustInvoke[*redis.Client](i)
			health.RegisterRoutes(api, health.NewHandler(health.NewRedisChecker(client)))
		case "postgres":
			// pgxpool.Pool satisfies Checker directly.
			pool := do.MustInvoke[*pgxpool.Pool](i)
			health.RegisterRoutes(api, health.NewHandler(pool))
		}

		return api, nil
	})
}
