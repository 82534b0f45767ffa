package query

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreadPollerRefreshesCount(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	var backend atomic.Int32
	backend.Store(3)

	var seen atomic.Int32
	poller, err := StartUnreadPoller(c, 30*time.Millisecond, func(ctx context.Context) (int, error) {
		return int(backend.Load()), nil
	}, func(count int) {
		seen.Store(int32(count))
	})
	require.NoError(t, err)
	defer poller.Stop()

	assert.Eventually(t, func() bool {
		return seen.Load() == 3
	}, 2*time.Second, 10*time.Millisecond)

	// Each tick bypasses the staleness window: a backend change shows up even
	// though the cached entry is still fresh.
	backend.Store(5)
	assert.Eventually(t, func() bool {
		return seen.Load() == 5
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPollerStopRemovesJob(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	var ticks atomic.Int32
	poller, err := StartUnreadPoller(c, 20*time.Millisecond, func(ctx context.Context) (int, error) {
		ticks.Add(1)
		return 0, nil
	}, nil)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return ticks.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, poller.Stop())

	settled := ticks.Load()
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, ticks.Load(), settled+1)
}
