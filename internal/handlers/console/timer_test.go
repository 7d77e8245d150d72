package console

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownZeroDuration(t *testing.T) {
	var ticks []time.Duration
	err := Countdown(context.Background(), 0, time.Second, func(d time.Duration) {
		ticks = append(ticks, d)
	})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{0}, ticks)
}

func TestCountdownRunsToZero(t *testing.T) {
	var ticks []time.Duration
	err := Countdown(context.Background(), 30*time.Millisecond, 10*time.Millisecond, func(d time.Duration) {
		ticks = append(ticks, d)
	})
	require.NoError(t, err)
	require.NotEmpty(t, ticks)
	assert.Equal(t, 30*time.Millisecond, ticks[0])
	assert.Equal(t, time.Duration(0), ticks[len(ticks)-1])
}

func TestCountdownCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Countdown(ctx, time.Minute, time.Second, func(time.Duration) { calls++ })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
