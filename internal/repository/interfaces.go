package repository

import "context"

// HitRepository is the append/query contract over the hit log. The log is
// append-only; no update or delete operations exist.
type HitRepository interface {
	// Create inserts a hit and assigns its ID. IDs are strictly increasing
	// and never reused, including under concurrent writers.
	Create(ctx context.Context, hit *Hit) error
	// List returns hits matching the filter, most recent first (id
	// descending), honoring the filter's limit/page window.
	List(ctx context.Context, filter HitFilter) ([]*Hit, error)
	// Count returns the total number of stored hits.
	Count(ctx context.Context) (int64, error)
}

// Store aggregates the repositories backed by one database handle.
type Store interface {
	Hits() HitRepository
}
