package query

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/kaushalkahapola/smart-campus/src/config"
)

// Client coordinates reads and mutations against the backing store:
// stale-while-invalid reads, single-flight de-duplication, one automatic
// retry for reads, list invalidation plus write-through for mutations.
type Client struct {
	store     Store
	staleTime time.Duration
	hardTTL   time.Duration

	mu       sync.Mutex
	inflight map[string]*call
}

// call is one in-flight fetch shared by every concurrent reader of a key.
type call struct {
	done chan struct{}
	data []byte
	err  error
}

type Option func(*Client)

func WithStore(s Store) Option {
	return func(c *Client) { c.store = s }
}

func WithStaleTime(d time.Duration) Option {
	return func(c *Client) { c.staleTime = d }
}

func WithHardTTL(d time.Duration) Option {
	return func(c *Client) { c.hardTTL = d }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		staleTime: config.GetStaleTime(),
		inflight:  make(map[string]*call),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = NewMemoryStore()
	}
	if c.hardTTL == 0 {
		c.hardTTL = 2 * c.staleTime
	}
	return c
}

// Fetch serves key from cache when the entry is younger than the staleness
// window, otherwise runs fn (retrying once on failure) and caches the result.
// Concurrent fetches of the same key share one call; a caller whose context
// ends while waiting walks away and the shared result is still cached.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	k := key.String()

	if data, ok := c.lookup(ctx, k); ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		// Undecodable entry, drop it and refetch.
		_ = c.store.Delete(ctx, k)
	}

	c.mu.Lock()
	if cl, ok := c.inflight[k]; ok {
		c.mu.Unlock()
		select {
		case <-cl.done:
			if cl.err != nil {
				return zero, cl.err
			}
			var v T
			if err := json.Unmarshal(cl.data, &v); err != nil {
				return zero, err
			}
			return v, nil
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
	cl := &call{done: make(chan struct{})}
	c.inflight[k] = cl
	c.mu.Unlock()

	v, err := fn(ctx)
	if err != nil && ctx.Err() == nil {
		v, err = fn(ctx)
	}
	var data []byte
	if err == nil {
		data, err = json.Marshal(v)
	}
	cl.data, cl.err = data, err

	c.mu.Lock()
	delete(c.inflight, k)
	c.mu.Unlock()
	close(cl.done)

	if err != nil {
		return zero, err
	}
	if serr := c.store.Set(ctx, k, Entry{Data: data, FetchedAt: time.Now()}); serr != nil {
		log.Printf("[query] failed to cache %s: %s\n", k, serr.Error())
	}
	return v, nil
}

// Effect describes what a mutation does to the cache: which list prefixes go
// stale and which entity slot receives the result directly.
type Effect struct {
	Invalidate   []Prefix
	WriteThrough *Key
}

// Mutate runs fn exactly once (mutations are never retried), then applies the
// cache effect. The returned value is the backend's canonical entity.
func Mutate[T any](ctx context.Context, c *Client, fn func(ctx context.Context) (T, error), effect Effect) (T, error) {
	var zero T
	v, err := fn(ctx)
	if err != nil {
		return zero, err
	}
	for _, p := range effect.Invalidate {
		if derr := c.store.DeletePrefix(ctx, string(p)); derr != nil {
			log.Printf("[query] failed to invalidate %s: %s\n", p, derr.Error())
		}
	}
	if effect.WriteThrough != nil {
		if data, merr := json.Marshal(v); merr == nil {
			if serr := c.store.Set(ctx, effect.WriteThrough.String(), Entry{Data: data, FetchedAt: time.Now()}); serr != nil {
				log.Printf("[query] write-through failed for %s: %s\n", effect.WriteThrough.String(), serr.Error())
			}
		}
	}
	return v, nil
}

func (c *Client) Invalidate(ctx context.Context, prefixes ...Prefix) {
	for _, p := range prefixes {
		if err := c.store.DeletePrefix(ctx, string(p)); err != nil {
			log.Printf("[query] failed to invalidate %s: %s\n", p, err.Error())
		}
	}
}

// Remove drops a single cache slot, e.g. the entity entry of a deleted record.
func (c *Client) Remove(ctx context.Context, key Key) {
	if err := c.store.Delete(ctx, key.String()); err != nil {
		log.Printf("[query] failed to remove %s: %s\n", key.String(), err.Error())
	}
}

// lookup returns a fresh cached payload. Entries past the hard TTL are
// evicted on sight; entries past the staleness window are misses but stay
// stored until a refetch replaces them.
func (c *Client) lookup(ctx context.Context, key string) ([]byte, bool) {
	e, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Printf("[query] cache read failed for %s: %s\n", key, err.Error())
		return nil, false
	}
	if !ok {
		return nil, false
	}
	age := time.Since(e.FetchedAt)
	if age > c.hardTTL {
		_ = c.store.Delete(ctx, key)
		return nil, false
	}
	if age > c.staleTime {
		return nil, false
	}
	return e.Data, true
}
