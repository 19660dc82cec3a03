package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/vadim/social-pulse/internal/domain/check/entity"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingRunner struct {
	runs atomic.Int32
}

func (r *countingRunner) RunChecks(ctx context.Context) (*entity.Report, error) {
	r.runs.Add(1)
	return &entity.Report{ID: "r", Passed: true}, nil
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, 20*time.Millisecond, slog.New(slog.DiscardHandler))

	assert.False(t, s.Running())
	s.Start(context.Background())
	s.Start(context.Background()) // second start is a no-op
	assert.True(t, s.Running())

	assert.Eventually(t, func() bool { return runner.runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()
	assert.False(t, s.Running())

	after := runner.runs.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, runner.runs.Load(), "no runs after Stop")
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, time.Hour, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return runner.runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	s.Stop()
}
