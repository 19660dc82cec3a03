package dao

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vadim/social-pulse/internal/domain/check/entity"
)

// fixed width so that text ordering matches time ordering
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// ReportSQLite implements ReportRepository on an embedded SQLite file.
// Used when no PostgreSQL DSN is configured.
type ReportSQLite struct {
	db *sql.DB
}

// OpenReportSQLite opens (creating if needed) the SQLite database at path.
// ":memory:" keeps everything in memory.
func OpenReportSQLite(path string) (*ReportSQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	return &ReportSQLite{db: db}, nil
}

// Close closes the database
func (r *ReportSQLite) Close() error {
	return r.db.Close()
}

// Ping checks database connectivity
func (r *ReportSQLite) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Migrate creates the check_reports table
func (r *ReportSQLite) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS check_reports (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		passed BOOLEAN NOT NULL,
		results TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_check_reports_started_at ON check_reports(started_at);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrating check_reports: %w", err)
	}
	return nil
}

// Save inserts a report
func (r *ReportSQLite) Save(ctx context.Context, report *entity.Report) error {
	results, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO check_reports (id, started_at, finished_at, passed, results)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, report.ID, report.StartedAt.UTC().Format(sqliteTimeLayout),
		report.FinishedAt.UTC().Format(sqliteTimeLayout), report.Passed, string(results))
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}

	return nil
}

// GetByID retrieves a report by ID
func (r *ReportSQLite) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, passed, results
		FROM check_reports
		WHERE id = ?
	`, id)

	report, err := scanSQLiteReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	return report, nil
}

// List returns the most recent reports
func (r *ReportSQLite) List(ctx context.Context, limit int) ([]entity.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, passed, results
		FROM check_reports
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	reports := make([]entity.Report, 0, limit)
	for rows.Next() {
		report, err := scanSQLiteReport(rows)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteReport(row scanner) (*entity.Report, error) {
	var report entity.Report
	var startedAt, finishedAt, results string

	if err := row.Scan(&report.ID, &startedAt, &finishedAt, &report.Passed, &results); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	var err error
	if report.StartedAt, err = time.Parse(sqliteTimeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if report.FinishedAt, err = time.Parse(sqliteTimeLayout, finishedAt); err != nil {
		return nil, fmt.Errorf("parsing finished_at: %w", err)
	}
	if err := json.Unmarshal([]byte(results), &report.Results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}

	return &report, nil
}
