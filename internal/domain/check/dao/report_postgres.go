package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/social-pulse/internal/domain/check/entity"
)

// ReportPostgres implements ReportRepository for PostgreSQL
type ReportPostgres struct {
	pool *pgxpool.Pool
}

// NewReportPostgres creates a new PostgreSQL report repository
func NewReportPostgres(pool *pgxpool.Pool) *ReportPostgres {
	return &ReportPostgres{pool: pool}
}

// Ping checks database connectivity
func (r *ReportPostgres) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close releases the connection pool
func (r *ReportPostgres) Close() error {
	r.pool.Close()
	return nil
}

// Migrate creates the check_reports table
func (r *ReportPostgres) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS check_reports (
			id          UUID PRIMARY KEY,
			started_at  TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL,
			passed      BOOLEAN NOT NULL,
			results     JSONB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_check_reports_started_at ON check_reports (started_at DESC);
	`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("migrating check_reports: %w", err)
	}
	return nil
}

// Save inserts a report
func (r *ReportPostgres) Save(ctx context.Context, report *entity.Report) error {
	results, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	query := `
		INSERT INTO check_reports (id, started_at, finished_at, passed, results)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = r.pool.Exec(ctx, query,
		report.ID,
		report.StartedAt,
		report.FinishedAt,
		report.Passed,
		results,
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}

	return nil
}

// GetByID retrieves a report by ID
func (r *ReportPostgres) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	query := `
		SELECT id::text, started_at, finished_at, passed, results
		FROM check_reports
		WHERE id::text = $1
	`

	report, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	return report, nil
}

// List returns the most recent reports
func (r *ReportPostgres) List(ctx context.Context, limit int) ([]entity.Report, error) {
	query := `
		SELECT id::text, started_at, finished_at, passed, results
		FROM check_reports
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	reports := make([]entity.Report, 0, limit)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return reports, nil
}

func scanReport(row pgx.Row) (*entity.Report, error) {
	var report entity.Report
	var results []byte

	err := row.Scan(
		&report.ID,
		&report.StartedAt,
		&report.FinishedAt,
		&report.Passed,
		&results,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	if err := json.Unmarshal(results, &report.Results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}

	return &report, nil
}
