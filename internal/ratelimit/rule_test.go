package ratelimit_test

import (
	"testing"
	"time"

	"github.com/serroba/ratewindow/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	t.Run("parses max/window specs", func(t *testing.T) {
		rule, err := ratelimit.ParseRule("5/1m")

		require.NoError(t, err)
		assert.Equal(t, ratelimit.Rule{Window: time.Minute, Max: 5}, rule)
	})

	t.Run("allows whitespace around parts", func(t *testing.T) {
		rule, err := ratelimit.ParseRule("100 / 24h")

		require.NoError(t, err)
		assert.Equal(t, ratelimit.Rule{Window: 24 * time.Hour, Max: 100}, rule)
	})

	t.Run("rejects missing separator", func(t *testing.T) {
		_, err := ratelimit.ParseRule("5")

		assert.Error(t, err)
	})

	t.Run("rejects non-numeric max", func(t *testing.T) {
		_, err := ratelimit.ParseRule("five/1m")

		assert.Error(t, err)
	})

	t.Run("rejects sub-second windows", func(t *testing.T) {
		_, err := ratelimit.ParseRule("5/100ms")

		assert.Error(t, err)
	})
}
