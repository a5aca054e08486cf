package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Store defines the durable key-value storage the limiter reads and
// writes window records through.
type Store interface {
	// Get returns the payload stored under key, or nil when the key is
	// absent. An absent key is not an error; the limiter treats it as an
	// empty window record.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores payload under key with the given time-to-live, replacing
	// any previous value as a single atomic write.
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// fetchStamp loads and decodes the window record under key, returning an
// empty Stamp when the store has nothing for it.
func fetchStamp(ctx context.Context, store Store, key string) (*Stamp, error) {
	payload, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: get %q: %w", ErrStore, key, err)
	}

	if payload == nil {
		return NewStamp(nil), nil
	}

	return DecodeStamp(payload)
}
