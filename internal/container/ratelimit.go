package container

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/ratewindow/internal/ratelimit"
	"github.com/serroba/ratewindow/internal/store"
)

// RateLimitPackage provides the configured rate limiter and its record
// store backend.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.RateLimiter, error) {
		options := do.MustInvoke[*Options](i)

		limiter := ratelimit.New(options.Prefix)

		for _, spec := range strings.Split(options.Limits, ",") {
			rule, err := ratelimit.ParseRule(spec)
			if err != nil {
				return nil, err
			}

			limiter.AddLimit(rule.Window, rule.Max)
		}

		return limiter, nil
	})

	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		options := do.MustInvoke[*Options](i)

		switch options.StoreBackend {
		case "redis":
			client := do.MustInvoke[*redis.Client](i)

			return store.NewRedisStore(client), nil
		case "postgres":
			pool, err := do.Invoke[*pgxpool.Pool](i)
			if err != nil {
				return nil, err
			}

			pgStore := store.NewPostgresStore(pool)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := pgStore.CreateSchema(ctx); err != nil {
				return nil, fmt.Errorf("create postgres schema: %w", err)
			}

			return pgStore, nil
		case "memory":
			return store.NewMemoryStore(), nil
		default:
			return nil, fmt.Errorf("unknown store backend %q", options.StoreBackend)
		}
	})
}
