// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/noteleaf/noteleaf/internal/device"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/mock"
)

// mockWorker считает запуски и завершается по отмене контекста
type mockWorker struct {
	runs atomic.Int32
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runs.Add(1)
	<-ctx.Done()
}

func TestWorkers_RunAllAndStopOnCancel(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewWorkers(w1, w2, w3).Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1 && w3.runs.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after cancel")
	}
}

func TestWorkers_RunEmpty(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// пустой набор завершается сразу и без паники
	NewWorkers().Run(ctx)
}

// ── SyncJob ─────────────────────────────────────────────────────────────────

type countingEngine struct {
	passes atomic.Int32
	result error
}

func (e *countingEngine) SyncPass(context.Context) error {
	e.passes.Add(1)
	return e.result
}

func TestSyncJob_TriggerRunsImmediatePass(t *testing.T) {
	engine := &countingEngine{}
	job := NewSyncJob(engine, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go job.Run(ctx)

	job.Trigger()

	require.Eventually(t, func() bool { return engine.passes.Load() == 1 },
		2*time.Second, 5*time.Millisecond)
}

func TestSyncJob_PeriodicTick(t *testing.T) {
	engine := &countingEngine{}
	job := NewSyncJob(engine, 20*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go job.Run(ctx)

	require.Eventually(t, func() bool { return engine.passes.Load() >= 2 },
		2*time.Second, 5*time.Millisecond)
}

func TestSyncJob_TriggersCoalesce(t *testing.T) {
	engine := &countingEngine{}
	job := NewSyncJob(engine, time.Hour, logger.Nop())

	// десять триггеров до запуска цикла схлопываются в один
	for i := 0; i < 10; i++ {
		job.Trigger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go job.Run(ctx)

	require.Eventually(t, func() bool { return engine.passes.Load() >= 1 },
		2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), engine.passes.Load())
}

func TestSyncJob_InFlightPassIsNotAnError(t *testing.T) {
	engine := &countingEngine{result: device.ErrSyncInFlight}
	job := NewSyncJob(engine, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go job.Run(ctx)

	job.Trigger()

	require.Eventually(t, func() bool { return engine.passes.Load() == 1 },
		2*time.Second, 5*time.Millisecond)
}

// ── Purge sweeps ────────────────────────────────────────────────────────────

func TestDevicePurgeJob_SweepsExpiredTombstones(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mock.NewMockLocalStore(ctrl)

	retention := 24 * time.Hour
	swept := make(chan struct{}, 1)

	local.EXPECT().PurgeExpired(gomock.Any(), gomock.Cond(func(cutoff time.Time) bool {
		want := time.Now().Add(-retention)
		return cutoff.Sub(want).Abs() < time.Minute
	})).DoAndReturn(func(context.Context, time.Time) (int64, error) {
		select {
		case swept <- struct{}{}:
		default:
		}
		return 3, nil
	}).MinTimes(1)

	job := NewDevicePurgeJob(local, retention, 20*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go job.Run(ctx)

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep never ran")
	}
}

func TestServerPurgeJob_SweepsExpiredTombstones(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncSvc := mock.NewMockSyncService(ctrl)

	swept := make(chan struct{}, 1)
	syncSvc.EXPECT().PurgeExpiredTombstones(gomock.Any(), 24*time.Hour).
		DoAndReturn(func(context.Context, time.Duration) (int64, error) {
			select {
			case swept <- struct{}{}:
			default:
			}
			return 5, nil
		}).MinTimes(1)

	job := NewServerPurgeJob(syncSvc, 24*time.Hour, 20*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go job.Run(ctx)

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep never ran")
	}
}
