package analytics

import "context"

// Store defines the interface for persisting analytics events.
type Store interface {
	SaveDenied(ctx context.Context, event *RequestDeniedEvent) error
}
