package query

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCachesWithinStaleWindow(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	var calls int32
	fn := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "payload", nil
	}

	v, err := Fetch(context.Background(), c, ResourceKey("r1"), fn)
	require.NoError(t, err)
	assert.Equal(t, "payload", v)

	v, err = Fetch(context.Background(), c, ResourceKey("r1"), fn)
	require.NoError(t, err)
	assert.Equal(t, "payload", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchRefetchesWhenStale(t *testing.T) {
	c := NewClient(WithStaleTime(10 * time.Millisecond))
	var calls int32
	fn := func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	v, err := Fetch(context.Background(), c, UnreadCountKey(), fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	time.Sleep(20 * time.Millisecond)
	v, err = Fetch(context.Background(), c, UnreadCountKey(), fn)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestFetchKeysAreIndependent(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	var calls int32
	fn := func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	a, err := Fetch(context.Background(), c, ResourceKey("r1"), fn)
	require.NoError(t, err)
	b, err := Fetch(context.Background(), c, ResourceKey("r2"), fn)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFetchDeduplicatesConcurrentCalls(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	var calls int32
	release := make(chan struct{})
	fn := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, MyBookingsKey(nil), fn)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestFetchRetriesExactlyOnce(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	var calls int32
	fn := func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", errors.New("transient")
		}
		return "recovered", nil
	}

	v, err := Fetch(context.Background(), c, ResourceKey("flaky"), fn)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchFailsAfterSecondError(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	var calls int32
	fn := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", errors.New("down")
	}

	_, err := Fetch(context.Background(), c, ResourceKey("dead"), fn)
	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	// A failure leaves nothing cached.
	store := c.store.(*MemoryStore)
	assert.Equal(t, 0, store.Len())
}

func TestFetchNoRetryWhenContextCancelled(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	var calls int32
	fn := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		cancel()
		return "", ctx.Err()
	}

	_, err := Fetch(ctx, c, ResourceKey("r1"), fn)
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestJoinerWalksAwayOnCancel(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	release := make(chan struct{})
	fn := func(ctx context.Context) (string, error) {
		<-release
		return "late", nil
	}

	started := make(chan struct{})
	go func() {
		close(started)
		v, err := Fetch(context.Background(), c, ResourceKey("slow"), fn)
		assert.NoError(t, err)
		assert.Equal(t, "late", v)
	}()
	<-started
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Fetch(ctx, c, ResourceKey("slow"), fn)
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	// The owner's result still lands in the cache.
	assert.Eventually(t, func() bool {
		v, err := Fetch(context.Background(), c, ResourceKey("slow"), func(ctx context.Context) (string, error) {
			return "refetched", nil
		})
		return err == nil && v == "late"
	}, time.Second, 10*time.Millisecond)
}

func TestMutateNeverRetries(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	var calls int32
	_, err := Mutate(context.Background(), c, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", errors.New("boom")
	}, Effect{})
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMutateInvalidatesAndWritesThrough(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	ctx := context.Background()

	_, err := Fetch(ctx, c, MyBookingsKey(nil), func(ctx context.Context) (string, error) {
		return "old list", nil
	})
	require.NoError(t, err)
	_, err = Fetch(ctx, c, MyBookingsKey(url.Values{"status": {"pending"}}), func(ctx context.Context) (string, error) {
		return "old filtered list", nil
	})
	require.NoError(t, err)

	key := BookingKey("b9")
	v, err := Mutate(ctx, c, func(ctx context.Context) (string, error) {
		return "canonical booking", nil
	}, Effect{
		Invalidate:   []Prefix{ListPrefix("bookings", "my")},
		WriteThrough: &key,
	})
	require.NoError(t, err)
	assert.Equal(t, "canonical booking", v)

	// Every filtering of the list is gone.
	var refetched int32
	_, err = Fetch(ctx, c, MyBookingsKey(nil), func(ctx context.Context) (string, error) {
		atomic.AddInt32(&refetched, 1)
		return "new list", nil
	})
	require.NoError(t, err)
	_, err = Fetch(ctx, c, MyBookingsKey(url.Values{"status": {"pending"}}), func(ctx context.Context) (string, error) {
		atomic.AddInt32(&refetched, 1)
		return "new filtered list", nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&refetched))

	// The detail slot was written through, no fetch needed.
	detail, err := Fetch(ctx, c, key, func(ctx context.Context) (string, error) {
		t.Fatal("detail should have been served from write-through")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "canonical booking", detail)
}

func TestHardTTLEvicts(t *testing.T) {
	c := NewClient(WithStaleTime(5*time.Millisecond), WithHardTTL(10*time.Millisecond))
	ctx := context.Background()

	_, err := Fetch(ctx, c, ResourceKey("r1"), func(ctx context.Context) (string, error) {
		return "v1", nil
	})
	require.NoError(t, err)

	store := c.store.(*MemoryStore)
	assert.Equal(t, 1, store.Len())

	time.Sleep(20 * time.Millisecond)
	_, ok := c.lookup(ctx, ResourceKey("r1").String())
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestRemoveDropsSingleSlot(t *testing.T) {
	c := NewClient(WithStaleTime(time.Minute))
	ctx := context.Background()

	_, err := Fetch(ctx, c, ResourceKey("r1"), func(ctx context.Context) (string, error) { return "a", nil })
	require.NoError(t, err)
	_, err = Fetch(ctx, c, ResourceKey("r2"), func(ctx context.Context) (string, error) { return "b", nil })
	require.NoError(t, err)

	c.Remove(ctx, ResourceKey("r1"))
	store := c.store.(*MemoryStore)
	assert.Equal(t, 1, store.Len())
}

func TestKeyEncoding(t *testing.T) {
	params := url.Values{"type": {"computer_lab"}, "capacity": {"30"}}
	key := ResourceListKey(params)
	assert.Equal(t, "resources|list|capacity=30&type=computer_lab", key.String())

	// Same params, different insertion order, same key.
	other := url.Values{}
	other.Set("capacity", "30")
	other.Set("type", "computer_lab")
	assert.Equal(t, key.String(), ResourceListKey(other).String())

	assert.Equal(t, Prefix("resources|list|"), ListPrefix("resources", "list"))
}
