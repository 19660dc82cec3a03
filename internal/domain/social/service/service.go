package service

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vadim/social-pulse/internal/domain/social/entity"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// SocialClient defines the upstream operations the aggregator composes
type SocialClient interface {
	GetUsers(ctx context.Context) (map[string]string, error)
	GetUserPosts(ctx context.Context, userID string) ([]entity.Post, error)
	GetPostComments(ctx context.Context, postID int) ([]entity.Comment, error)
	GetNumbers(ctx context.Context, kind entity.NumberKind) ([]int, error)
}

// Service builds enriched views over users, posts and comments.
// A failed per-user or per-post fetch only loses that item's contribution;
// a failed users fetch fails the whole call.
type Service struct {
	client      SocialClient
	logger      *slog.Logger
	concurrency int // 0 dispatches every fetch of a fan-out at once
	now         func() time.Time
}

// Option configures the Service
type Option func(*Service)

// WithConcurrency caps the number of in-flight upstream requests per fan-out.
// By default there is no cap.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithClock overrides the clock used for missing post timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a new aggregation service
func New(client SocialClient, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		client: client,
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AllPosts returns the posts of every known user, each tagged with its author
// name. Batches are concatenated in completion order; within a batch the
// upstream order is kept. Posts without a timestamp get the batch completion time.
func (s *Service) AllPosts(ctx context.Context) ([]entity.Post, error) {
	users, err := s.client.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	ids := sortedUserIDs(users)
	batches := make(chan []entity.Post, len(ids))

	g := s.group()

	for _, id := range ids {
		g.Go(func() error {
			posts, err := s.client.GetUserPosts(ctx, id)
			if err != nil {
				s.logger.Warn("fetching posts for user failed", "user_id", id, "error", err)
				batches <- nil
				return nil
			}

			stamp := s.now().UTC().Format(timestampLayout)
			enriched := make([]entity.Post, len(posts))
			for i, p := range posts {
				p.UserName = users[id]
				if p.Timestamp == "" {
					p.Timestamp = stamp
				}
				enriched[i] = p
			}
			batches <- enriched
			return nil
		})
	}

	_ = g.Wait()
	close(batches)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := make([]entity.Post, 0, len(ids))
	for batch := range batches {
		all = append(all, batch...)
	}

	return all, nil
}

// PostsWithCommentCounts returns AllPosts with CommentCount set to the number
// of comments fetched for each post. A failed comment fetch counts as zero.
func (s *Service) PostsWithCommentCounts(ctx context.Context) ([]entity.Post, error) {
	posts, err := s.AllPosts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Post, len(posts))

	g := s.group()

	for i, p := range posts {
		g.Go(func() error {
			count := 0
			comments, err := s.client.GetPostComments(ctx, p.ID)
			if err != nil {
				s.logger.Warn("fetching comments for post failed", "post_id", p.ID, "error", err)
			} else {
				count = len(comments)
			}

			p.CommentCount = entity.IntPtr(count)
			out[i] = p
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// UsersWithPostCounts returns every known user with PostCount set to the
// number of posts fetched for them. A failed posts fetch counts as zero.
// Users are ordered by id.
func (s *Service) UsersWithPostCounts(ctx context.Context) ([]entity.User, error) {
	users, err := s.client.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	ids := sortedUserIDs(users)
	out := make([]entity.User, len(ids))

	g := s.group()

	for i, id := range ids {
		g.Go(func() error {
			count := 0
			posts, err := s.client.GetUserPosts(ctx, id)
			if err != nil {
				s.logger.Warn("counting posts for user failed", "user_id", id, "error", err)
			} else {
				count = len(posts)
			}

			out[i] = entity.User{ID: id, Name: users[id], PostCount: entity.IntPtr(count)}
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Numbers fetches a number series and computes its average
func (s *Service) Numbers(ctx context.Context, kind entity.NumberKind) (*entity.NumberSeries, error) {
	nums, err := s.client.GetNumbers(ctx, kind)
	if err != nil {
		return nil, err
	}

	return &entity.NumberSeries{
		Kind:    kind,
		Numbers: nums,
		Average: entity.Average(nums),
	}, nil
}

// group returns an errgroup for one fan-out, capped only when a concurrency
// limit is configured
func (s *Service) group() *errgroup.Group {
	g := new(errgroup.Group)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	return g
}

func sortedUserIDs(users map[string]string) []string {
	ids := slices.Collect(maps.Keys(users))
	entity.SortUserIDs(ids)
	return ids
}
