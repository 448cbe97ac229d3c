package libs_test

import (
	"testing"
	"time"

	"github.com/libshub/libs-client/pkg/libs"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()
	t.Run("admits up to max then rejects", func(t *testing.T) {
		t.Parallel()

		limiter := libs.NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("caller"), "request %d should be admitted", i+1)
		}

		assert.False(t, limiter.Allow("caller"), "request over the limit should be rejected")
	})

	t.Run("callers are isolated", func(t *testing.T) {
		t.Parallel()

		limiter := libs.NewRateLimiter(1, time.Minute)

		assert.True(t, limiter.Allow("alice"))
		assert.False(t, limiter.Allow("alice"))
		assert.True(t, limiter.Allow("bob"))
	})

	t.Run("re-admits after the window passes", func(t *testing.T) {
		t.Parallel()

		limiter := libs.NewRateLimiter(2, 50*time.Millisecond)

		assert.True(t, limiter.Allow("caller"))
		assert.True(t, limiter.Allow("caller"))
		assert.False(t, limiter.Allow("caller"))

		time.Sleep(60 * time.Millisecond)

		assert.True(t, limiter.Allow("caller"))
	})

	t.Run("rejections record nothing against the window", func(t *testing.T) {
		t.Parallel()

		limiter := libs.NewRateLimiter(1, time.Minute)

		assert.True(t, limiter.Allow("caller"))

		for i := 0; i < 5; i++ {
			assert.False(t, limiter.Allow("caller"))
		}

		stats := limiter.Stats("caller")
		assert.Equal(t, 1, stats.Requests)
		assert.Equal(t, int64(5), stats.Blocked)
	})
}

func TestRateLimiter_RetryAfter(t *testing.T) {
	t.Parallel()
	t.Run("zero when not limited", func(t *testing.T) {
		t.Parallel()

		limiter := libs.NewRateLimiter(2, time.Minute)
		limiter.Allow("caller")

		assert.Equal(t, time.Duration(0), limiter.RetryAfter("caller"))
	})

	t.Run("zero for unknown caller", func(t *testing.T) {
		t.Parallel()

		limiter := libs.NewRateLimiter(2, time.Minute)

		assert.Equal(t, time.Duration(0), limiter.RetryAfter("nobody"))
	})

	t.Run("positive hint while limited", func(t *testing.T) {
		t.Parallel()

		limiter := libs.NewRateLimiter(1, time.Minute)
		limiter.Allow("caller")

		retryAfter := limiter.RetryAfter("caller")
		assert.Greater(t, retryAfter, time.Duration(0))
		assert.LessOrEqual(t, retryAfter, time.Minute)
	})
}

func TestRateLimiter_Stats(t *testing.T) {
	t.Parallel()
	t.Run("per caller", func(t *testing.T) {
		t.Parallel()

		limiter := libs.NewRateLimiter(2, time.Minute)
		limiter.Allow("caller")
		limiter.Allow("caller")
		limiter.Allow("caller")

		stats := limiter.Stats("caller")
		assert.Equal(t, "caller", stats.CallerID)
		assert.Equal(t, 2, stats.Requests)
		assert.Equal(t, int64(1), stats.Blocked)
	})

	t.Run("unknown caller reports zeroes", func(t *testing.T) {
		t.Parallel()

		limiter := libs.NewRateLimiter(2, time.Minute)

		stats := limiter.Stats("nobody")
		assert.Equal(t, 0, stats.Requests)
		assert.Equal(t, int64(0), stats.Blocked)
	})

	t.Run("aggregate across callers", func(t *testing.T) {
		t.Parallel()

		limiter := libs.NewRateLimiter(1, time.Minute)
		limiter.Allow("alice")
		limiter.Allow("alice")
		limiter.Allow("bob")

		stats := limiter.TotalStats()
		assert.Equal(t, 2, stats.TotalCallers)
		assert.Equal(t, 2, stats.Requests)
		assert.Equal(t, int64(1), stats.Blocked)
	})
}
