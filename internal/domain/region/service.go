package region

import "context"

// ReferenceCache serves the full region set without hitting the store on every request.
type ReferenceCache interface {
	// GetAll never fails: on store errors it serves the last snapshot, or an empty list when none exists.
	GetAll(ctx context.Context) []Region

	// Invalidate evicts the cached snapshot so the next GetAll reloads from the store.
	Invalidate()
}

// Resolver maps coordinates to the closest region by great-circle distance.
type Resolver interface {
	// ResolveOne returns ErrResolutionUnavailable when the reference set is empty.
	ResolveOne(ctx context.Context, p Point) (*Match, error)

	// ResolveBatch loads the reference set once and resolves every point against that snapshot.
	// The result has one entry per input point, in order.
	ResolveBatch(ctx context.Context, points []Point) ([]*Match, error)
}
