package policy

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/vadim/social-pulse/internal/domain/check/entity"
)

// SuiteRunner runs the API contract checks
type SuiteRunner interface {
	Run(ctx context.Context) *entity.Report
}

// ReportStore persists check reports
type ReportStore interface {
	Save(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	List(ctx context.Context, limit int) ([]entity.Report, error)
}

// Policy orchestrates check runs and their history.
// Only one run may be in flight at a time.
type Policy struct {
	suite   SuiteRunner
	reports ReportStore
	logger  *slog.Logger
	running atomic.Bool
}

// New creates a new check policy
func New(suite SuiteRunner, reports ReportStore, logger *slog.Logger) *Policy {
	return &Policy{
		suite:   suite,
		reports: reports,
		logger:  logger,
	}
}

// RunChecks runs the suite and stores the report.
// A storage failure is logged; the report is still returned.
func (p *Policy) RunChecks(ctx context.Context) (*entity.Report, error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, entity.ErrRunInProgress
	}
	defer p.running.Store(false)

	report := p.suite.Run(ctx)

	if err := p.reports.Save(ctx, report); err != nil {
		p.logger.Error("failed to save check report", "report_id", report.ID, "error", err)
	}

	return report, nil
}

// HistoryInput represents input for listing reports
type HistoryInput struct {
	Limit int
}

// History returns the most recent reports
func (p *Policy) History(ctx context.Context, in HistoryInput) ([]entity.Report, error) {
	if in.Limit <= 0 {
		in.Limit = 20
	}
	return p.reports.List(ctx, in.Limit)
}

// Report returns a single report
func (p *Policy) Report(ctx context.Context, id string) (*entity.Report, error) {
	return p.reports.GetByID(ctx, id)
}
