package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func failing() error { return errBoom }
func succeeding() error { return nil }

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(failing), errBoom)
	}
	assert.Equal(t, CBOpen, cb.State())

	// fast-fail while open: fn must not run
	ran := false
	err := cb.Execute(func() error { ran = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, ran)
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 2,
		OpenTimeout:      10 * time.Millisecond,
	})

	require.ErrorIs(t, cb.Execute(failing), errBoom)
	assert.Equal(t, CBOpen, cb.State())

	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(succeeding))
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(succeeding))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerHalfOpenProbeFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		OpenTimeout:      10 * time.Millisecond,
	})

	require.ErrorIs(t, cb.Execute(failing), errBoom)
	time.Sleep(15 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.ErrorIs(t, cb.Execute(failing), errBoom)
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreakerClosedResetsFailureCountOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	require.ErrorIs(t, cb.Execute(failing), errBoom)
	require.NoError(t, cb.Execute(succeeding))
	require.ErrorIs(t, cb.Execute(failing), errBoom)
	// one failure, reset, one failure — still below threshold
	assert.Equal(t, CBClosed, cb.State())
}
