package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Ticket is a single-use capability to record one admitted event. It is
// issued by an allowing check and holds no reference to the record it was
// evaluated against; redemption re-reads current state from the store. An
// unredeemed Ticket is inert and needs no cleanup.
type Ticket struct {
	key     string
	instant int64
	max     time.Duration
	used    atomic.Bool
}

// Key returns the fully-qualified storage key the ticket is bound to.
func (t *Ticket) Key() string {
	return t.key
}

// Instant returns the whole-second timestamp of the check that issued the
// ticket.
func (t *Ticket) Instant() int64 {
	return t.instant
}

// Redeem consumes the ticket and durably records its event: it re-fetches
// the window record, trims entries older than the longest rule window,
// increments the count at the ticket's instant, and writes the record
// back with a TTL one second past that window so idle identifiers are
// reclaimed by the store.
//
// The ticket is consumed even when the fetch or write fails; a failed
// redemption leaves stored state untouched and cannot be retried through
// the same ticket.
func (t *Ticket) Redeem(ctx context.Context, store Store) error {
	if !t.used.CompareAndSwap(false, true) {
		return ErrTicketUsed
	}

	stamp, err := fetchStamp(ctx, store, t.key)
	if err != nil {
		return err
	}

	cutoff := t.instant - int64(t.max/time.Second)
	stamp.Trim(cutoff)
	stamp.Increment(t.instant)

	payload, err := EncodeStamp(stamp)
	if err != nil {
		return err
	}

	if err := store.Put(ctx, t.key, payload, t.max+time.Second); err != nil {
		return fmt.Errorf("%w: put %q: %w", ErrStore, t.key, err)
	}

	return nil
}
