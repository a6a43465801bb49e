// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/noteleaf/noteleaf/internal/device"
	"github.com/noteleaf/noteleaf/internal/logger"
)

// SyncRunner is the slice of the sync engine the job drives.
type SyncRunner interface {
	SyncPass(ctx context.Context) error
}

// SyncJob drives the sync engine: a periodic tick plus an on-mutation
// trigger, both collapsing into the engine's single-flight pass. A trigger
// that arrives while a pass is running is simply absorbed by the running
// pass.
type SyncJob struct {
	engine   SyncRunner
	interval time.Duration
	trigger  chan struct{}
	logger   *logger.Logger
}

// NewSyncJob builds a sync job ticking every interval.
func NewSyncJob(engine SyncRunner, interval time.Duration, logger *logger.Logger) *SyncJob {
	return &SyncJob{
		engine:   engine,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		logger:   logger,
	}
}

// Trigger requests an immediate sync pass, typically after a user
// mutation. Never blocks; coalesces with an already-pending trigger.
func (j *SyncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

// Run executes passes until ctx is cancelled.
func (j *SyncJob) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.pass(ctx)
		case <-j.trigger:
			j.pass(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (j *SyncJob) pass(ctx context.Context) {
	err := j.engine.SyncPass(ctx)
	switch {
	case err == nil:
	case errors.Is(err, device.ErrSyncInFlight):
		// перекрывающиеся триггеры схлопываются в идущий проход
	default:
		j.logger.Err(err).Msg("sync pass failed")
	}
}
