// Package service holds the application services between HTTP handlers and
// repositories.
package service

import (
	"context"

	"github.com/creamcroissant/pixelbeacon/internal/repository"
)

// HitService manages the hit log.
type HitService interface {
	Record(ctx context.Context, hit *repository.Hit) error
	Query(ctx context.Context, filter repository.HitFilter) ([]HitView, error)
	Count(ctx context.Context) (int64, error)
}

type hitService struct {
	hits repository.HitRepository
}

func NewHitService(store repository.Store) HitService {
	return &hitService{hits: store.Hits()}
}

func (s *hitService) Record(ctx context.Context, hit *repository.Hit) error {
	return s.hits.Create(ctx, hit)
}

// Query lists matching hits and shapes them for external consumption. The
// store's id-descending order is preserved; an empty result is not an error.
func (s *hitService) Query(ctx context.Context, filter repository.HitFilter) ([]HitView, error) {
	hits, err := s.hits.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]HitView, 0, len(hits))
	for _, hit := range hits {
		views = append(views, shapeHit(hit))
	}
	return views, nil
}

func (s *hitService) Count(ctx context.Context) (int64, error) {
	return s.hits.Count(ctx)
}
