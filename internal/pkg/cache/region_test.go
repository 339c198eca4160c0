package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegionRepo struct {
	mu      sync.Mutex
	regions []region.Region
	err     error
	calls   atomic.Int32
}

func (f *fakeRegionRepo) ListAll(ctx context.Context) ([]region.Region, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]region.Region, len(f.regions))
	copy(out, f.regions)
	return out, nil
}

func (f *fakeRegionRepo) set(regions []region.Region, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regions = regions
	f.err = err
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testRegions = []region.Region{
	{ID: 2, Name: "Kota Bandung", Latitude: -6.91, Longitude: 107.61},
	{ID: 1, Name: "Kota Jakarta Pusat", Latitude: -6.20, Longitude: 106.82},
}

func newTestCache(repo *fakeRegionRepo, opts ...Option) (*RegionCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewRegionCache(repo, 24*time.Hour, opts...), clock
}

func TestRegionCache_GetAll_LoadsOnceWithinTTL(t *testing.T) {
	repo := &fakeRegionRepo{regions: testRegions}
	c, clock := newTestCache(repo)
	ctx := context.Background()

	first := c.GetAll(ctx)
	clock.Advance(23 * time.Hour)
	second := c.GetAll(ctx)

	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestRegionCache_GetAll_SortedByID(t *testing.T) {
	repo := &fakeRegionRepo{regions: testRegions}
	c, _ := newTestCache(repo)

	got := c.GetAll(context.Background())

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestRegionCache_GetAll_ReloadsAfterTTL(t *testing.T) {
	repo := &fakeRegionRepo{regions: testRegions}
	c, clock := newTestCache(repo)
	ctx := context.Background()

	c.GetAll(ctx)
	repo.set(testRegions[:1], nil)
	clock.Advance(24 * time.Hour)

	got := c.GetAll(ctx)

	assert.Len(t, got, 1)
	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestRegionCache_GetAll_ServesStaleOnStoreError(t *testing.T) {
	repo := &fakeRegionRepo{regions: testRegions}
	var absorbed []error
	c, clock := newTestCache(repo, WithErrorHandler(func(err error) {
		absorbed = append(absorbed, err)
	}))
	ctx := context.Background()

	c.GetAll(ctx)
	storeErr := errors.New("connection refused")
	repo.set(nil, storeErr)
	clock.Advance(25 * time.Hour)

	got := c.GetAll(ctx)

	assert.Len(t, got, 2)
	require.Len(t, absorbed, 1)
	assert.ErrorIs(t, absorbed[0], storeErr)
}

func TestRegionCache_GetAll_EmptyWhenNothingCachedAndStoreFails(t *testing.T) {
	repo := &fakeRegionRepo{err: errors.New("timeout")}
	c, _ := newTestCache(repo)

	got := c.GetAll(context.Background())

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRegionCache_GetAll_RetriesAfterFailedLoad(t *testing.T) {
	repo := &fakeRegionRepo{err: errors.New("timeout")}
	c, _ := newTestCache(repo)
	ctx := context.Background()

	assert.Empty(t, c.GetAll(ctx))

	repo.set(testRegions, nil)
	assert.Len(t, c.GetAll(ctx), 2)
	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestRegionCache_Invalidate_ForcesReload(t *testing.T) {
	repo := &fakeRegionRepo{regions: testRegions}
	c, _ := newTestCache(repo)
	ctx := context.Background()

	c.GetAll(ctx)
	repo.set(append(testRegions, region.Region{ID: 3, Name: "Kota Bogor", Latitude: -6.59, Longitude: 106.79}), nil)
	c.Invalidate()

	got := c.GetAll(ctx)

	assert.Len(t, got, 3)
	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestRegionCache_Invalidate_DropsStaleFallback(t *testing.T) {
	repo := &fakeRegionRepo{regions: testRegions}
	c, _ := newTestCache(repo)
	ctx := context.Background()

	c.GetAll(ctx)
	repo.set(nil, errors.New("down"))
	c.Invalidate()

	assert.Empty(t, c.GetAll(ctx))
}

func TestRegionCache_GetAll_ConcurrentMisses(t *testing.T) {
	repo := &fakeRegionRepo{regions: testRegions}
	c, _ := newTestCache(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([][]region.Region, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.GetAll(ctx)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Len(t, got, 2)
	}
	assert.LessOrEqual(t, repo.calls.Load(), int32(len(results)))
	assert.GreaterOrEqual(t, repo.calls.Load(), int32(1))
}

func TestNewRegionCache_DefaultTTL(t *testing.T) {
	c := NewRegionCache(&fakeRegionRepo{}, 0)
	assert.Equal(t, DefaultRegionTTL, c.ttl)
}

func TestRegionCache_GetAll_IgnoresCallerCancellation(t *testing.T) {
	repo := &fakeRegionRepo{regions: testRegions}
	var reported []error
	c, _ := newTestCache(repo, WithErrorHandler(func(err error) { reported = append(reported, err) }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := c.GetAll(ctx)
	require.Len(t, got, 2)
	assert.Empty(t, reported)

	// The loaded snapshot is cached for later callers.
	c.GetAll(context.Background())
	assert.Equal(t, int32(1), repo.calls.Load())
}
