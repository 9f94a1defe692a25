package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/pixelbeacon/internal/service"
)

type stubHits struct {
	service.HitService
	count int64
	err   error
}

func (s *stubHits) Count(ctx context.Context) (int64, error) {
	return s.count, s.err
}

func TestHitSnapshotJob_Run(t *testing.T) {
	snapshot := NewHitSnapshotJob(&stubHits{count: 7}, nil)
	require.NoError(t, snapshot.Run(context.Background()))
	assert.Equal(t, "hits.snapshot", snapshot.Name())
}

func TestHitSnapshotJob_PropagatesError(t *testing.T) {
	snapshot := NewHitSnapshotJob(&stubHits{err: errors.New("boom")}, nil)
	err := snapshot.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestHitSnapshotJob_MissingDependencies(t *testing.T) {
	snapshot := &HitSnapshotJob{}
	assert.Error(t, snapshot.Run(context.Background()))
}
