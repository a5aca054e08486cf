// Package ratelimit implements a storage-backed sliding-window rate
// limiter with a two-phase check/commit protocol.
//
// A RateLimiter holds a set of rules ("at most N events per window") and
// evaluates them against a per-identifier Stamp, a sparse time series of
// event counts fetched from a durable key-value Store. Checking is
// read-only; when a check allows the event, the caller receives a Ticket
// that can later be redeemed to durably record that the event happened.
// A Ticket that is never redeemed has no effect on stored state.
//
// Consistency model: the limiter is best-effort. Checks and redemptions
// for the same identifier are not coordinated, so a check may read a
// snapshot that is stale by the time its Ticket is redeemed, and two
// concurrent redemptions can both read the same pre-increment record and
// each write back independently, losing one update. The limiter may
// therefore undercount under contention. This is the intended trade-off
// for a low-latency edge limiter; do not rely on it for exact admission
// control.
package ratelimit
