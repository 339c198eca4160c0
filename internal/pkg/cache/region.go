package cache

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/region"
	"golang.org/x/sync/singleflight"
)

// DefaultRegionTTL is how long a loaded region snapshot is served before reloading.
const DefaultRegionTTL = 24 * time.Hour

const regionsKey = "regions"

// RegionCache is an in-memory region.ReferenceCache with a fixed time-to-live.
// Snapshots are sorted by region id and must be treated as read-only by callers.
type RegionCache struct {
	repo    region.RegionRepository
	ttl     time.Duration
	now     func() time.Time
	onError func(error)

	mu         sync.RWMutex
	snapshot   []region.Region
	loaded     bool
	expiresAt  time.Time
	generation uint64

	group singleflight.Group
}

type Option func(*RegionCache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *RegionCache) {
		c.now = now
	}
}

// WithErrorHandler receives store errors that were absorbed by stale-serve.
func WithErrorHandler(fn func(error)) Option {
	return func(c *RegionCache) {
		c.onError = fn
	}
}

func NewRegionCache(repo region.RegionRepository, ttl time.Duration, opts ...Option) *RegionCache {
	if ttl <= 0 {
		ttl = DefaultRegionTTL
	}
	c := &RegionCache{
		repo:    repo,
		ttl:     ttl,
		now:     time.Now,
		onError: func(error) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetAll implements region.ReferenceCache.
func (c *RegionCache) GetAll(ctx context.Context) []region.Region {
	if snapshot, ok := c.fresh(); ok {
		return snapshot
	}

	// Concurrent misses share one load. It runs detached from the first caller's
	// cancellation; the repository bounds it with the store timeout.
	loadCtx := context.WithoutCancel(ctx)
	v, _, _ := c.group.Do(regionsKey, func() (interface{}, error) {
		return c.reload(loadCtx), nil
	})
	return v.([]region.Region)
}

// Invalidate implements region.ReferenceCache.
func (c *RegionCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	c.loaded = false
	c.expiresAt = time.Time{}
	c.generation++
	c.group.Forget(regionsKey)
}

func (c *RegionCache) fresh() ([]region.Region, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.loaded && c.now().Before(c.expiresAt) {
		return c.snapshot, true
	}
	return nil, false
}

func (c *RegionCache) reload(ctx context.Context) []region.Region {
	if snapshot, ok := c.fresh(); ok {
		return snapshot
	}

	c.mu.RLock()
	generation := c.generation
	c.mu.RUnlock()

	regions, err := c.repo.ListAll(ctx)
	if err != nil {
		c.onError(err)

		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.loaded {
			return c.snapshot
		}
		return []region.Region{}
	}

	sorted := make([]region.Region, len(regions))
	copy(sorted, regions)
	slices.SortStableFunc(sorted, func(a, b region.Region) int {
		return cmp.Compare(a.ID, b.ID)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	// An Invalidate that raced this load wins; the result is still returned to this caller.
	if c.generation == generation {
		c.snapshot = sorted
		c.loaded = true
		c.expiresAt = c.now().Add(c.ttl)
	}
	return sorted
}
