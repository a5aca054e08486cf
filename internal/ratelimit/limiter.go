package ratelimit

import (
	"context"
	"sort"
	"time"
)

// Rule is one sliding-window constraint: at most Max events within any
// trailing Window.
type Rule struct {
	Window time.Duration
	Max    uint64
}

// Permit is the outcome of a check. On Allow, Ticket carries the
// capability to record the event; it is nil on Deny and when no rules are
// configured (nothing to persist in that case).
type Permit struct {
	Allowed bool
	Ticket  *Ticket
}

// RateLimiter evaluates a set of sliding-window rules against per-identifier
// window records stored under a shared namespace prefix. Rules must be
// added before the first check; the limiter is not safe for concurrent
// mutation, only for concurrent checks.
type RateLimiter struct {
	prefix string
	rules  []Rule
}

// New creates a rate limiter with no rules. The prefix namespaces storage
// keys so multiple limiters can share one store.
func New(prefix string) *RateLimiter {
	return &RateLimiter{prefix: prefix}
}

// AddLimit adds the rule "at most max events per window". Adding a rule
// with a window that is already configured replaces its threshold. Rules
// are kept in ascending window order.
func (l *RateLimiter) AddLimit(window time.Duration, max uint64) {
	i := sort.Search(len(l.rules), func(i int) bool {
		return l.rules[i].Window >= window
	})

	if i < len(l.rules) && l.rules[i].Window == window {
		l.rules[i].Max = max

		return
	}

	l.rules = append(l.rules, Rule{})
	copy(l.rules[i+1:], l.rules[i:])
	l.rules[i] = Rule{Window: window, Max: max}
}

// Rules returns the configured rules in ascending window order.
func (l *RateLimiter) Rules() []Rule {
	rules := make([]Rule, len(l.rules))
	copy(rules, l.rules)

	return rules
}

// Check evaluates the stamp against every rule at the instant now (whole
// seconds since epoch). The first violated rule denies; remaining rules
// are not evaluated. On Allow the second return value is the longest rule
// window, zero when no rules are configured. Check never issues a Ticket;
// use CheckStore for the full two-phase protocol.
func (l *RateLimiter) Check(stamp *Stamp, now int64) (Permit, time.Duration) {
	var max time.Duration

	for _, rule := range l.rules {
		start := now - int64(rule.Window/time.Second)

		if stamp.Sum(start, now) >= rule.Max {
			return Permit{Allowed: false}, 0
		}

		max = rule.Window
	}

	return Permit{Allowed: true}, max
}

// CheckStore fetches the identifier's window record from the store and
// runs Check against it. On Allow with at least one rule configured, the
// returned Permit carries a Ticket bound to the storage key, the instant
// now, and the longest rule window. CheckStore performs no write.
func (l *RateLimiter) CheckStore(ctx context.Context, store Store, identifier string, now int64) (Permit, error) {
	key := l.prefix + "/" + identifier

	stamp, err := fetchStamp(ctx, store, key)
	if err != nil {
		return Permit{}, err
	}

	permit, max := l.Check(stamp, now)
	if permit.Allowed && len(l.rules) > 0 {
		permit.Ticket = &Ticket{key: key, instant: now, max: max}
	}

	return permit, nil
}
