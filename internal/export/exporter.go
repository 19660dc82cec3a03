// Package export publishes periodic dashboard snapshots to object storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vadim/social-pulse/internal/domain/social/entity"
	"github.com/vadim/social-pulse/internal/domain/social/policy"
	"github.com/vadim/social-pulse/internal/storage"
)

// SnapshotSource provides the ranked views included in a snapshot
type SnapshotSource interface {
	TopUsers(ctx context.Context, in policy.TopUsersInput) ([]entity.User, error)
	TrendingPosts(ctx context.Context) ([]entity.Post, error)
	Feed(ctx context.Context) ([]entity.Post, error)
}

// Uploader stores a snapshot object
type Uploader interface {
	Upload(ctx context.Context, in storage.UploadInput) (*storage.UploadOutput, error)
}

// Snapshot is the exported document
type Snapshot struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	TopUsers      []entity.User `json:"top_users"`
	TrendingPosts []entity.Post `json:"trending_posts"`
	Feed          []entity.Post `json:"feed"`
}

// Exporter builds snapshots and uploads them on a cron schedule
type Exporter struct {
	source        SnapshotSource
	uploader      Uploader
	logger        *slog.Logger
	topUsersLimit int
	jobTimeout    time.Duration
	cron          *cron.Cron
}

// Config holds exporter settings
type Config struct {
	TopUsersLimit int
	JobTimeout    time.Duration
}

// New creates a new exporter
func New(source SnapshotSource, uploader Uploader, cfg Config, logger *slog.Logger) *Exporter {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 2 * time.Minute
	}

	return &Exporter{
		source:        source,
		uploader:      uploader,
		logger:        logger,
		topUsersLimit: cfg.TopUsersLimit,
		jobTimeout:    cfg.JobTimeout,
		cron:          cron.New(cron.WithLocation(time.UTC)),
	}
}

// Export builds one snapshot and uploads it
func (e *Exporter) Export(ctx context.Context) (*storage.UploadOutput, error) {
	topUsers, err := e.source.TopUsers(ctx, policy.TopUsersInput{Limit: e.topUsersLimit})
	if err != nil {
		return nil, fmt.Errorf("ranking users: %w", err)
	}

	trending, err := e.source.TrendingPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("ranking posts: %w", err)
	}

	feed, err := e.source.Feed(ctx)
	if err != nil {
		return nil, fmt.Errorf("building feed: %w", err)
	}

	body, err := json.Marshal(Snapshot{
		GeneratedAt:   time.Now().UTC(),
		TopUsers:      topUsers,
		TrendingPosts: trending,
		Feed:          feed,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	out, err := e.uploader.Upload(ctx, storage.UploadInput{
		Reader:      bytes.NewReader(body),
		ContentType: "application/json",
		Size:        int64(len(body)),
		Filename:    "snapshot.json",
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("snapshot exported", "key", out.Key, "size", out.Size)
	return out, nil
}

// Start schedules Export with a standard 5-field cron spec, e.g. "0 * * * *"
func (e *Exporter) Start(schedule string) error {
	_, err := e.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.jobTimeout)
		defer cancel()

		start := time.Now()
		if _, err := e.Export(ctx); err != nil {
			e.logger.Error("snapshot export failed", "error", err)
			return
		}
		e.logger.Debug("snapshot export completed", "duration", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("scheduling export %q: %w", schedule, err)
	}

	e.cron.Start()
	e.logger.Info("snapshot exporter started", "schedule", schedule)
	return nil
}

// Stop stops scheduling and waits for a running export to finish
func (e *Exporter) Stop() {
	<-e.cron.Stop().Done()
	e.logger.Info("snapshot exporter stopped")
}
