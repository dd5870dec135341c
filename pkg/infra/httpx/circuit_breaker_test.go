package httpx_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modshield/modshield/pkg/infra/httpx"
)

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	cb := httpx.NewCircuitBreaker("test", time.Second, 3)

	calls := 0
	err := cb.Execute(func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCircuitBreaker_WrapsFailure(t *testing.T) {
	cb := httpx.NewCircuitBreaker("upstream", time.Second, 3)

	err := cb.Execute(func() error { return errors.New("boom") })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "breaker (upstream)")
	assert.Contains(t, err.Error(), "boom")
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := httpx.NewCircuitBreaker("upstream", time.Minute, 2)

	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error { return errors.New("boom") })
	}

	calls := 0
	err := cb.Execute(func() error {
		calls++
		return nil
	})

	require.Error(t, err, "breaker should be open")
	assert.Equal(t, 0, calls, "open breaker must not invoke the call")
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := httpx.NewCircuitBreaker("upstream", time.Minute, 2)

	_ = cb.Execute(func() error { return errors.New("boom") })
	require.NoError(t, cb.Execute(func() error { return nil }))
	_ = cb.Execute(func() error { return errors.New("boom") })

	// Two non-consecutive failures: still closed.
	err := cb.Execute(func() error { return nil })
	require.NoError(t, err)
}
