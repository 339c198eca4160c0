package cron

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/region"
)

type RegionJobs struct {
	cache region.ReferenceCache
}

func NewRegionJobs(cache region.ReferenceCache) *RegionJobs {
	return &RegionJobs{cache: cache}
}

// WarmCache loads the region snapshot ahead of requests. Within the TTL it is a no-op,
// after expiry it performs the reload so no request pays for it.
func (j *RegionJobs) WarmCache(ctx context.Context) error {
	if len(j.cache.GetAll(ctx)) == 0 {
		return region.ErrResolutionUnavailable
	}
	return nil
}
