package workers

import (
	"context"
	"time"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/store"
)

// DevicePurgeJob physically removes the local store's expired tombstones.
// Tombstones stay around for the retention window so slow secondary
// devices can still pull the deletion.
type DevicePurgeJob struct {
	local     store.LocalStore
	retention time.Duration
	interval  time.Duration
	logger    *logger.Logger
}

// NewDevicePurgeJob sweeps every interval, purging tombstones older than
// retention.
func NewDevicePurgeJob(local store.LocalStore, retention, interval time.Duration, logger *logger.Logger) *DevicePurgeJob {
	return &DevicePurgeJob{local: local, retention: retention, interval: interval, logger: logger}
}

func (j *DevicePurgeJob) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (j *DevicePurgeJob) sweep(ctx context.Context) {
	purged, err := j.local.PurgeExpired(ctx, time.Now().Add(-j.retention))
	if err != nil {
		j.logger.Err(err).Msg("local tombstone sweep failed")
		return
	}
	if purged > 0 {
		j.logger.Info().Int64("purged", purged).Msg("local tombstones purged")
	}
}
