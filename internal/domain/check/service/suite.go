package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vadim/social-pulse/internal/domain/check/entity"
	socialentity "github.com/vadim/social-pulse/internal/domain/social/entity"
	"github.com/vadim/social-pulse/internal/domain/social/validator"
)

// RawFetcher fetches an upstream resource without imposing a schema
type RawFetcher interface {
	GetRaw(ctx context.Context, path string) (map[string]any, error)
}

// Aggregator provides the combined views checked by the suite
type Aggregator interface {
	AllPosts(ctx context.Context) ([]socialentity.Post, error)
	PostsWithCommentCounts(ctx context.Context) ([]socialentity.Post, error)
}

// Check names
const (
	CheckUsers         = "users"
	CheckUserPosts     = "user_posts"
	CheckPostComments  = "post_comments"
	CheckAllPosts      = "all_posts"
	CheckTrendingPosts = "trending_posts"
	checkNumbersPrefix = "numbers_"
)

// Suite runs the API contract checks.
// The posts check only runs once the users check passed with at least one
// user, and the comments check only once the posts check passed with at least one post.
type Suite struct {
	raw         RawFetcher
	aggregator  Aggregator
	numberKinds []socialentity.NumberKind
	logger      *slog.Logger
}

// NewSuite creates a new check suite.
// Number series checks run for every kind in numberKinds.
func NewSuite(raw RawFetcher, aggregator Aggregator, numberKinds []socialentity.NumberKind, logger *slog.Logger) *Suite {
	return &Suite{
		raw:         raw,
		aggregator:  aggregator,
		numberKinds: numberKinds,
		logger:      logger,
	}
}

// Run executes every check and returns the report
func (s *Suite) Run(ctx context.Context) *entity.Report {
	report := &entity.Report{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	users := Run(ctx, CheckUsers, s.field("/users", "users", map[string]any{}), validator.Users)
	report.Results = append(report.Results, users)

	if userID, ok := firstUserID(users); ok {
		posts := Run(ctx, CheckUserPosts,
			s.field("/users/"+url.PathEscape(userID)+"/posts", "posts", []any{}),
			validator.Each(validator.Post))
		report.Results = append(report.Results, posts)

		if postID, ok := firstPostID(posts); ok {
			comments := Run(ctx, CheckPostComments,
				s.field(fmt.Sprintf("/posts/%d/comments", postID), "comments", []any{}),
				validator.Each(validator.Comment))
			report.Results = append(report.Results, comments)
		}
	}

	report.Results = append(report.Results,
		Run(ctx, CheckAllPosts, func(ctx context.Context) (any, error) {
			return s.aggregator.AllPosts(ctx)
		}, validator.Each(validator.Post)),
		Run(ctx, CheckTrendingPosts, func(ctx context.Context) (any, error) {
			return s.aggregator.PostsWithCommentCounts(ctx)
		}, validator.Each(validator.PostWithCommentCount)),
	)

	for _, kind := range s.numberKinds {
		path, err := kind.Path()
		if err != nil {
			continue
		}
		report.Results = append(report.Results,
			Run(ctx, checkNumbersPrefix+kind.Name(), s.field(path, "numbers", []any{}), validator.Numbers))
	}

	report.FinishedAt = time.Now().UTC()
	report.Passed = len(report.Failed()) == 0

	s.logger.Info("check suite finished",
		"report_id", report.ID,
		"passed", report.Passed,
		"checks", len(report.Results),
		"failed", len(report.Failed()),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)

	return report
}

// field returns an operation yielding one top-level field of a raw resource,
// falling back to empty when the field is absent or null
func (s *Suite) field(path, key string, empty any) Operation {
	return func(ctx context.Context) (any, error) {
		body, err := s.raw.GetRaw(ctx, path)
		if err != nil {
			return nil, err
		}
		v, ok := body[key]
		if !ok || v == nil {
			return empty, nil
		}
		return v, nil
	}
}

// firstUserID picks the lowest user id of a passing users check
func firstUserID(res entity.Result) (string, bool) {
	if !res.Success {
		return "", false
	}
	users, ok := res.Data.(map[string]any)
	if !ok || len(users) == 0 {
		return "", false
	}

	ids := slices.Collect(maps.Keys(users))
	socialentity.SortUserIDs(ids)

	return ids[0], true
}

// firstPostID returns the id of the first post of a passing posts check
func firstPostID(res entity.Result) (int, bool) {
	if !res.Success {
		return 0, false
	}
	posts, ok := res.Data.([]any)
	if !ok || len(posts) == 0 {
		return 0, false
	}
	post, ok := posts[0].(map[string]any)
	if !ok {
		return 0, false
	}
	id, ok := post["id"].(float64)
	if !ok {
		return 0, false
	}
	return int(id), true
}
