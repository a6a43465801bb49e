package workers

import (
	"context"
	"time"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/service"
)

// ServerPurgeJob sweeps the remote store's expired tombstones.
type ServerPurgeJob struct {
	sync      service.SyncService
	retention time.Duration
	interval  time.Duration
	logger    *logger.Logger
}

// NewServerPurgeJob sweeps every interval with the given retention window.
func NewServerPurgeJob(sync service.SyncService, retention, interval time.Duration, logger *logger.Logger) *ServerPurgeJob {
	return &ServerPurgeJob{sync: sync, retention: retention, interval: interval, logger: logger}
}

func (j *ServerPurgeJob) Run(ctx context.Context) {
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

func (j *ServerPurgeJob) sweep(ctx context.Context) {
	purged, err := j.sync.PurgeExpiredTombstones(ctx, j.retention)
	if err != nil {
		j.logger.Err(err).Msg("tombstone sweep failed")
		return
	}
	if purged > 0 {
		j.logger.Info().Int64("purged", purged).Msg("tombstones purged")
	}
}
