package middleware

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/ratewindow/internal/analytics"
	"github.com/serroba/ratewindow/internal/messaging"
	"github.com/serroba/ratewindow/internal/ratelimit"
	"go.uber.org/zap"
)

// timeNow supplies the evaluation instant in whole seconds; overridable
// in tests.
var timeNow = func() int64 { return time.Now().Unix() }

// RateLimiter returns a Huma middleware enforcing the limiter's rules per
// client IP. Each request runs the two-phase protocol: a read-only check
// before the handler, and on allow, the ticket is redeemed after the
// handler ran so only requests that actually reached it are recorded.
// Server errors (5xx) are not recorded against the client.
func RateLimiter(
	api huma.API,
	limiter *ratelimit.RateLimiter,
	store ratelimit.Store,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return ReportingRateLimiter(api, limiter, store, logger, nil)
}

// ReportingRateLimiter is RateLimiter with deny events published for
// offline analysis. A nil publish function disables reporting.
func ReportingRateLimiter(
	api huma.API,
	limiter *ratelimit.RateLimiter,
	store ratelimit.Store,
	logger *zap.Logger,
	publish messaging.Publish[analytics.RequestDeniedEvent],
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		identifier := clientIP(ctx)

		permit, err := limiter.CheckStore(ctx.Context(), store, identifier, timeNow())
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("identifier", identifier),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !permit.Allowed {
			logger.Warn("rate limit exceeded",
				zap.String("identifier", identifier),
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.URL().Path),
			)

			if publish != nil {
				reportDenied(ctx, identifier, publish, logger)
			}

			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")

			return
		}

		next(ctx)

		if permit.Ticket == nil || ctx.Status() >= http.StatusInternalServerError {
			return
		}

		if err := permit.Ticket.Redeem(ctx.Context(), store); err != nil {
			// The request already ran; losing the count only makes the
			// limiter more permissive, so log and move on.
			logger.Error("failed to record admitted request",
				zap.String("key", permit.Ticket.Key()),
				zap.Error(err),
			)
		}
	}
}

func reportDenied(
	ctx huma.Context,
	identifier string,
	publish messaging.Publish[analytics.RequestDeniedEvent],
	logger *zap.Logger,
) {
	event := &analytics.RequestDeniedEvent{
		ID:         uuid.NewString(),
		Identifier: identifier,
		Method:     ctx.Method(),
		Path:       ctx.URL().Path,
		UserAgent:  ctx.Header("User-Agent"),
		DeniedAt:   time.Now().UTC(),
	}

	if err := publish(event); err != nil {
		logger.Error("failed to publish deny event", zap.Error(err))
	}
}
