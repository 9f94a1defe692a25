package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/creamcroissant/pixelbeacon/internal/service"
)

var hitsStored = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "pixelbeacon",
	Name:      "hits_stored",
	Help:      "Number of hit records in the store at the last snapshot.",
})

// HitSnapshotJob periodically counts the stored hits, logs the figure and
// exports it as a gauge. Read-only: the hit log stays append-only.
type HitSnapshotJob struct {
	Hits   service.HitService
	Logger *slog.Logger
}

// NewHitSnapshotJob creates a new HitSnapshotJob.
func NewHitSnapshotJob(hits service.HitService, logger *slog.Logger) *HitSnapshotJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &HitSnapshotJob{
		Hits:   hits,
		Logger: logger,
	}
}

// Name implements Runnable interface.
func (j *HitSnapshotJob) Name() string {
	return "hits.snapshot"
}

// Run implements Runnable interface.
func (j *HitSnapshotJob) Run(ctx context.Context) error {
	if j == nil || j.Hits == nil {
		return fmt.Errorf("hit snapshot job dependencies not configured")
	}

	count, err := j.Hits.Count(ctx)
	if err != nil {
		return fmt.Errorf("hit snapshot job: %w", err)
	}

	hitsStored.Set(float64(count))
	j.Logger.Info("hit snapshot", "stored_hits", count)
	return nil
}
