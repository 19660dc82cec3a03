package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/vadim/social-pulse/internal/domain/check/entity"
)

// CheckRunner runs the API contract checks
type CheckRunner interface {
	RunChecks(ctx context.Context) (*entity.Report, error)
}

// Scheduler runs the check suite periodically
type Scheduler struct {
	runner   CheckRunner
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	cancel   context.CancelFunc // cancels an in-flight run on Stop
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// New creates a new check scheduler
func New(runner CheckRunner, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.logger.Info("check scheduler started", "interval", s.interval)

	s.wg.Add(1)
	go s.run(ctx)
}

// Running reports whether the scheduler has been started and not stopped
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stop stops the scheduler and waits for an in-flight run to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("check scheduler stopped")
}

// run is the main scheduler loop
func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start
	s.process(ctx)

	for {
		select {
		case <-ticker.C:
			s.process(ctx)
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// process runs the check suite once
func (s *Scheduler) process(ctx context.Context) {
	s.logger.Debug("running scheduled checks")

	report, err := s.runner.RunChecks(ctx)
	if errors.Is(err, entity.ErrRunInProgress) {
		s.logger.Debug("skipping scheduled checks, run already in progress")
		return
	}
	if err != nil {
		s.logger.Error("failed to run scheduled checks", "error", err)
		return
	}

	if !report.Passed {
		s.logger.Warn("scheduled checks failed", "report_id", report.ID, "failed", len(report.Failed()))
	}
}
