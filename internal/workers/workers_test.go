// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/limiter"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run(context.Context) {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

func TestWorkers_Run_Order(t *testing.T) {
	order := []int{}

	// orderWorker records its index into the shared order slice
	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := &Workers{workers: []Worker{
		newOrderWorker(1),
		newOrderWorker(2),
		newOrderWorker(3),
	}}
	ws.Run(context.Background())

	expected := []int{1, 2, 3}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

func TestWorkers_Run_CalledOnce(t *testing.T) {
	w := &mockWorker{}
	ws := &Workers{workers: []Worker{w}}

	ws.Run(context.Background())

	if w.runCount != 1 {
		t.Errorf("expected Run to be called exactly once, got %d", w.runCount)
	}
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &mockWorker{}
	ws := &Workers{workers: []Worker{w}}

	ws.Run(context.Background())
	ws.Run(context.Background())
	ws.Run(context.Background())

	if w.runCount != 3 {
		t.Errorf("expected runCount=3 after 3 calls, got %d", w.runCount)
	}
}

// orderWorker is a helper that appends its ID to a shared slice on Run.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run(context.Context) {
	*o.order = append(*o.order, o.id)
}

func TestNewWorkers_SweepsOnlyMemoryCounters(t *testing.T) {
	cfg := config.Workers{SweepInterval: time.Minute}

	ws := NewWorkers(cfg, limiter.NewMemoryCounter(limiter.DefaultMaxKeys), logger.Nop())
	require.Len(t, ws.workers, 1)
	assert.IsType(t, &counterSweeper{}, ws.workers[0])

	ctrl := gomock.NewController(t)
	ws = NewWorkers(cfg, mock.NewMockCounter(ctrl), logger.Nop())
	assert.Empty(t, ws.workers)
}

func TestCounterSweeper_SweepsUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	sweeper := mock.NewMockSweeper(ctrl)

	swept := make(chan struct{}, 10)
	sweeper.EXPECT().Sweep().DoAndReturn(func() int {
		select {
		case swept <- struct{}{}:
		default:
		}
		return 1
	}).MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	newCounterSweeper(sweeper, 5*time.Millisecond, logger.Nop()).Run(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-swept:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not run")
		}
	}
	cancel()
}

func TestCounterSweeper_NonPositiveIntervalDoesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	sweeper := mock.NewMockSweeper(ctrl)

	// no EXPECT: any Sweep call fails the test
	newCounterSweeper(sweeper, 0, logger.Nop()).Run(context.Background())
}
