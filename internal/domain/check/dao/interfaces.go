package dao

import (
	"context"

	"github.com/vadim/social-pulse/internal/domain/check/entity"
)

// ReportRepository defines the interface for check report storage
type ReportRepository interface {
	// Migrate creates the schema if it does not exist
	Migrate(ctx context.Context) error
	// Ping checks that the store is reachable
	Ping(ctx context.Context) error
	// Close releases the underlying connections
	Close() error
	// Save stores a finished report
	Save(ctx context.Context, report *entity.Report) error
	// GetByID retrieves a report, entity.ErrReportNotFound if missing
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	// List returns the most recent reports, newest first
	List(ctx context.Context, limit int) ([]entity.Report, error)
}
