package ratelimit_test

import (
	"math"
	"testing"

	"github.com/serroba/ratewindow/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestStampSum(t *testing.T) {
	t.Run("empty stamp sums to zero", func(t *testing.T) {
		stamp := ratelimit.NewStamp(nil)

		assert.Zero(t, stamp.Sum(0, math.MaxInt64))
	})

	t.Run("range bounds are inclusive", func(t *testing.T) {
		stamp := ratelimit.NewStamp(map[int64]uint64{
			100: 1,
			101: 2,
			102: 4,
			103: 8,
		})

		assert.Equal(t, uint64(6), stamp.Sum(101, 102))
		assert.Equal(t, uint64(15), stamp.Sum(100, 103))
	})

	t.Run("ignores entries outside the range", func(t *testing.T) {
		stamp := ratelimit.NewStamp(map[int64]uint64{
			50:  7,
			100: 1,
			200: 9,
		})

		assert.Equal(t, uint64(1), stamp.Sum(60, 150))
	})

	t.Run("saturates instead of wrapping", func(t *testing.T) {
		stamp := ratelimit.NewStamp(map[int64]uint64{
			10: math.MaxUint64,
			11: 5,
		})

		assert.Equal(t, uint64(math.MaxUint64), stamp.Sum(10, 11))
	})
}

func TestStampTrim(t *testing.T) {
	t.Run("discards entries strictly before the cutoff", func(t *testing.T) {
		stamp := ratelimit.NewStamp(map[int64]uint64{
			1710550615: 3,
			1710550614: 4,
			1710550613: 7,
			1710550612: 1,
			1710550611: 9,
		})

		stamp.Trim(1710550613)

		assert.Equal(t, map[int64]uint64{
			1710550615: 3,
			1710550614: 4,
			1710550613: 7,
		}, stamp.Counts())
	})

	t.Run("is idempotent", func(t *testing.T) {
		stamp := ratelimit.NewStamp(map[int64]uint64{
			10: 1,
			20: 2,
			30: 3,
		})

		stamp.Trim(20)
		once := stamp.Counts()

		stamp.Trim(20)

		assert.Equal(t, once, stamp.Counts())
	})

	t.Run("can empty the stamp", func(t *testing.T) {
		stamp := ratelimit.NewStamp(map[int64]uint64{10: 1})

		stamp.Trim(11)

		assert.Zero(t, stamp.Len())
	})
}

func TestStampIncrement(t *testing.T) {
	t.Run("creates missing entries", func(t *testing.T) {
		stamp := ratelimit.NewStamp(nil)

		stamp.Increment(42)

		assert.Equal(t, map[int64]uint64{42: 1}, stamp.Counts())
	})

	t.Run("adds to existing entries", func(t *testing.T) {
		stamp := ratelimit.NewStamp(map[int64]uint64{42: 2})

		stamp.Increment(42)

		assert.Equal(t, map[int64]uint64{42: 3}, stamp.Counts())
	})

	t.Run("keeps entries ordered when inserting in the middle", func(t *testing.T) {
		stamp := ratelimit.NewStamp(map[int64]uint64{10: 1, 30: 1})

		stamp.Increment(20)

		assert.Equal(t, uint64(3), stamp.Sum(10, 30))
		assert.Equal(t, uint64(1), stamp.Sum(20, 20))
	})

	t.Run("saturates at the maximum count", func(t *testing.T) {
		stamp := ratelimit.NewStamp(map[int64]uint64{42: math.MaxUint64})

		stamp.Increment(42)

		assert.Equal(t, map[int64]uint64{42: math.MaxUint64}, stamp.Counts())
	})
}
