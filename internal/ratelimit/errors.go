package ratelimit

import "errors"

var (
	// ErrStore wraps failures of the underlying key-value store. The
	// check or redeem that hit it has no observable side effect.
	ErrStore = errors.New("rate limit store operation failed")

	// ErrCorruptRecord is returned when stored bytes cannot be parsed as
	// a window record. There is no silent fallback to an empty record.
	ErrCorruptRecord = errors.New("corrupt window record")

	// ErrTicketUsed is returned when a Ticket is redeemed more than once.
	ErrTicketUsed = errors.New("ticket already redeemed")
)
