package region

import "context"

// RegionRepository reads the region reference set from the persistent store.
type RegionRepository interface {
	// ListAll returns every region ordered by id.
	ListAll(ctx context.Context) ([]Region, error)
}
