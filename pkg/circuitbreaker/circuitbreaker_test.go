package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func failing(context.Context) error { return errBoom }
func succeeding(context.Context) error { return nil }

func TestOpensAfterThreshold(t *testing.T) {
	cb := New("test", WithFailureThreshold(3))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, failing), errBoom)
	}
	assert.Equal(t, StateOpen, cb.State())

	// Requests are rejected without invoking the operation.
	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New("test", WithFailureThreshold(3))
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, failing))
	require.Error(t, cb.Execute(ctx, failing))
	require.NoError(t, cb.Execute(ctx, succeeding))
	require.Error(t, cb.Execute(ctx, failing))
	require.Error(t, cb.Execute(ctx, failing))

	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithSuccessThreshold(2),
		WithTimeout(10*time.Millisecond),
		WithMaxHalfOpenRequests(2),
	)
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, failing))
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	require.NoError(t, cb.Execute(ctx, succeeding))
	require.NoError(t, cb.Execute(ctx, succeeding))
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithTimeout(10*time.Millisecond),
	)
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, failing))
	time.Sleep(20 * time.Millisecond)

	require.ErrorIs(t, cb.Execute(ctx, failing), errBoom)
	assert.Equal(t, StateOpen, cb.State())
}

func TestExecuteWithFallback(t *testing.T) {
	cb := New("test", WithFailureThreshold(1))
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, failing))
	require.Equal(t, StateOpen, cb.State())

	var fellBack bool
	err := cb.ExecuteWithFallback(ctx, failing, func(error) error {
		fellBack = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, fellBack)
}

func TestOnStateChange(t *testing.T) {
	type transition struct{ from, to State }
	var transitions []transition

	cb := New("test",
		WithFailureThreshold(1),
		WithOnStateChange(func(_ string, from, to State) {
			transitions = append(transitions, transition{from, to})
		}),
	)

	require.Error(t, cb.Execute(context.Background(), failing))
	require.Len(t, transitions, 1)
	assert.Equal(t, StateClosed, transitions[0].from)
	assert.Equal(t, StateOpen, transitions[0].to)
}

func TestReset(t *testing.T) {
	cb := New("test", WithFailureThreshold(1))

	require.Error(t, cb.Execute(context.Background(), failing))
	require.True(t, cb.IsOpen())

	cb.Reset()
	assert.True(t, cb.IsClosed())
	assert.NoError(t, cb.Execute(context.Background(), succeeding))
}

func TestIsFailureFilter(t *testing.T) {
	benign := errors.New("benign")
	cb := New("test",
		WithFailureThreshold(1),
		WithIsFailure(func(err error) bool { return !errors.Is(err, benign) }),
	)
	ctx := context.Background()

	require.ErrorIs(t, cb.Execute(ctx, func(context.Context) error { return benign }), benign)
	assert.Equal(t, StateClosed, cb.State(), "filtered errors do not trip the breaker")
}
