package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karibbean/cart-service/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	t.Run("FirstAttemptSucceeds", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.Config{MaxAttempts: 3}, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("SucceedsAfterFailures", func(t *testing.T) {
		var calls int
		cfg := retry.Config{
			MaxAttempts: 3,
			Backoff:     retry.LinearBackoff(time.Millisecond),
		}
		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		wantErr := errors.New("permanent")
		var calls int
		cfg := retry.Config{
			MaxAttempts: 3,
			Backoff:     retry.LinearBackoff(time.Millisecond),
		}
		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return wantErr
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("ZeroConfigRunsOnce", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.Config{}, func() error {
			calls++
			return errors.New("boom")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("ShouldRetryStopsEarly", func(t *testing.T) {
		fatal := errors.New("fatal")
		var calls int
		cfg := retry.Config{
			MaxAttempts: 5,
			Backoff:     retry.LinearBackoff(time.Millisecond),
			ShouldRetry: func(err error) bool { return !errors.Is(err, fatal) },
		}
		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return fatal
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		var calls int
		err := retry.Do(ctx, retry.Config{MaxAttempts: 3}, func() error {
			calls++
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, calls)
	})

	t.Run("ContextEndsDuringBackoff", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 5*time.Millisecond)
		defer cancel()

		fnErr := errors.New("slow dependency")
		cfg := retry.Config{
			MaxAttempts: 3,
			Backoff:     retry.LinearBackoff(time.Second),
		}
		err := retry.Do(ctx, cfg, func() error { return fnErr })
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.ErrorIs(t, err, fnErr)
	})
}
