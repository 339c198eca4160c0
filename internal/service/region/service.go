package region

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/region"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/geo"
)

// distanceTolerance is the slack, in km, under which two candidate distances count as a tie.
const distanceTolerance = 1e-9

type ResolverImpl struct {
	cache region.ReferenceCache
}

func NewResolver(cache region.ReferenceCache) region.Resolver {
	return &ResolverImpl{cache: cache}
}

// ResolveOne implements region.Resolver.
func (r *ResolverImpl) ResolveOne(ctx context.Context, p region.Point) (*region.Match, error) {
	regions := r.cache.GetAll(ctx)
	if len(regions) == 0 {
		return nil, region.ErrResolutionUnavailable
	}
	return nearest(regions, p), nil
}

// ResolveBatch implements region.Resolver.
func (r *ResolverImpl) ResolveBatch(ctx context.Context, points []region.Point) ([]*region.Match, error) {
	matches := make([]*region.Match, len(points))
	if len(points) == 0 {
		return matches, nil
	}

	// One snapshot for the whole batch.
	regions := r.cache.GetAll(ctx)
	if len(regions) == 0 {
		return matches, region.ErrResolutionUnavailable
	}

	for i, p := range points {
		matches[i] = nearest(regions, p)
	}
	return matches, nil
}

// nearest scans regions in order; on ties the earlier entry (lowest id in a cache snapshot) wins.
func nearest(regions []region.Region, p region.Point) *region.Match {
	best := 0
	bestDistance := geo.HaversineKm(p.Latitude, p.Longitude, regions[0].Latitude, regions[0].Longitude)

	for i := 1; i < len(regions); i++ {
		d := geo.HaversineKm(p.Latitude, p.Longitude, regions[i].Latitude, regions[i].Longitude)
		if d < bestDistance-distanceTolerance {
			best = i
			bestDistance = d
		}
	}

	return &region.Match{Region: regions[best], DistanceKm: bestDistance}
}
