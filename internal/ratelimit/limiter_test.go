package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serroba/ratewindow/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Run("allows an empty stamp", func(t *testing.T) {
		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(5*time.Second, 2)

		permit, max := limiter.Check(ratelimit.NewStamp(nil), 1710528366)

		assert.True(t, permit.Allowed)
		assert.Equal(t, 5*time.Second, max)
	})

	t.Run("allows activity under the threshold", func(t *testing.T) {
		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(5*time.Second, 2)

		stamp := ratelimit.NewStamp(map[int64]uint64{1710528362: 1})

		permit, _ := limiter.Check(stamp, 1710528366)

		assert.True(t, permit.Allowed)
	})

	t.Run("denies when the window sum reaches the threshold", func(t *testing.T) {
		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(5*time.Second, 2)

		stamp := ratelimit.NewStamp(map[int64]uint64{
			1710528364: 1,
			1710528363: 1,
		})

		permit, _ := limiter.Check(stamp, 1710528366)

		assert.False(t, permit.Allowed)
	})

	t.Run("ignores events outside the window", func(t *testing.T) {
		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(5*time.Second, 2)

		// Both events are older than now-5s.
		stamp := ratelimit.NewStamp(map[int64]uint64{
			1710528350: 1,
			1710528355: 1,
		})

		permit, _ := limiter.Check(stamp, 1710528366)

		assert.True(t, permit.Allowed)
	})

	t.Run("any violated rule denies regardless of declaration order", func(t *testing.T) {
		stamp := ratelimit.NewStamp(map[int64]uint64{
			1710528320: 5,
			1710528340: 5,
		})

		// Nothing in the last 5s, ten events in the last 60s: the short
		// rule passes, the long one is violated.
		for _, specs := range [][]ratelimit.Rule{
			{{Window: 5 * time.Second, Max: 2}, {Window: time.Minute, Max: 10}},
			{{Window: time.Minute, Max: 10}, {Window: 5 * time.Second, Max: 2}},
		} {
			limiter := ratelimit.New("ratelimit")
			for _, rule := range specs {
				limiter.AddLimit(rule.Window, rule.Max)
			}

			permit, _ := limiter.Check(stamp, 1710528366)

			assert.False(t, permit.Allowed)
		}
	})

	t.Run("reports the longest window on allow", func(t *testing.T) {
		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(time.Minute, 100)
		limiter.AddLimit(5*time.Second, 2)

		_, max := limiter.Check(ratelimit.NewStamp(nil), 1710528366)

		assert.Equal(t, time.Minute, max)
	})

	t.Run("allows with zero window when no rules are configured", func(t *testing.T) {
		limiter := ratelimit.New("ratelimit")

		permit, max := limiter.Check(ratelimit.NewStamp(nil), 1710528366)

		assert.True(t, permit.Allowed)
		assert.Zero(t, max)
	})

	t.Run("re-adding a window replaces its threshold", func(t *testing.T) {
		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(5*time.Second, 2)
		limiter.AddLimit(5*time.Second, 10)

		require.Len(t, limiter.Rules(), 1)
		assert.Equal(t, uint64(10), limiter.Rules()[0].Max)
	})
}

func TestCheckStore(t *testing.T) {
	t.Run("treats a missing key as an empty record", func(t *testing.T) {
		store := newFakeStore()
		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(5*time.Second, 2)

		permit, err := limiter.CheckStore(context.Background(), store, "192.0.2.1", 1710528366)

		require.NoError(t, err)
		assert.True(t, permit.Allowed)
		require.NotNil(t, permit.Ticket)
		assert.Equal(t, "ratelimit/192.0.2.1", permit.Ticket.Key())
		assert.Equal(t, int64(1710528366), permit.Ticket.Instant())
	})

	t.Run("performs no write", func(t *testing.T) {
		store := newFakeStore()
		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(5*time.Second, 2)

		_, err := limiter.CheckStore(context.Background(), store, "192.0.2.1", 1710528366)

		require.NoError(t, err)
		assert.Equal(t, 1, store.getCalls)
		assert.Zero(t, store.putCalls)
	})

	t.Run("denies based on the stored record", func(t *testing.T) {
		store := newFakeStore()
		store.data["ratelimit/192.0.2.1"] = []byte(`{"1710528364":1,"1710528363":1}`)

		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(5*time.Second, 2)

		permit, err := limiter.CheckStore(context.Background(), store, "192.0.2.1", 1710528366)

		require.NoError(t, err)
		assert.False(t, permit.Allowed)
		assert.Nil(t, permit.Ticket)
	})

	t.Run("issues no ticket when no rules are configured", func(t *testing.T) {
		store := newFakeStore()
		limiter := ratelimit.New("ratelimit")

		permit, err := limiter.CheckStore(context.Background(), store, "192.0.2.1", 1710528366)

		require.NoError(t, err)
		assert.True(t, permit.Allowed)
		assert.Nil(t, permit.Ticket)
	})

	t.Run("surfaces store failures", func(t *testing.T) {
		store := newFakeStore()
		store.getErr = errors.New("connection refused")

		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(5*time.Second, 2)

		_, err := limiter.CheckStore(context.Background(), store, "192.0.2.1", 1710528366)

		assert.ErrorIs(t, err, ratelimit.ErrStore)
	})

	t.Run("surfaces corrupt records instead of assuming empty", func(t *testing.T) {
		store := newFakeStore()
		store.data["ratelimit/192.0.2.1"] = []byte("not json")

		limiter := ratelimit.New("ratelimit")
		limiter.AddLimit(5*time.Second, 2)

		_, err := limiter.CheckStore(context.Background(), store, "192.0.2.1", 1710528366)

		assert.ErrorIs(t, err, ratelimit.ErrCorruptRecord)
	})
}
