package store

import (
	"context"

	"github.com/serroba/ratewindow/internal/analytics"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of analytics.Store that logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveDenied(_ context.Context, event *analytics.RequestDeniedEvent) error {
	n.logger.Info("request denied event received",
		zap.String("id", event.ID),
		zap.String("identifier", event.Identifier),
		zap.String("method", event.Method),
		zap.String("path", event.Path),
		zap.Time("deniedAt", event.DeniedAt),
	)

	return nil
}
