package policy

import (
	"context"

	"github.com/vadim/social-pulse/internal/domain/social/entity"
	"github.com/vadim/social-pulse/internal/domain/social/ranking"
)

// SocialService defines the aggregation operations the policy ranks over
type SocialService interface {
	AllPosts(ctx context.Context) ([]entity.Post, error)
	PostsWithCommentCounts(ctx context.Context) ([]entity.Post, error)
	UsersWithPostCounts(ctx context.Context) ([]entity.User, error)
	Numbers(ctx context.Context, kind entity.NumberKind) (*entity.NumberSeries, error)
}

// Policy orchestrates the dashboard views
type Policy struct {
	svc SocialService
}

// New creates a new social policy
func New(svc SocialService) *Policy {
	return &Policy{svc: svc}
}

// TopUsersInput represents input for ranking users
type TopUsersInput struct {
	Limit int // defaults to ranking.DefaultTopUsersLimit when <= 0
}

// TopUsers returns the users with the most posts
func (p *Policy) TopUsers(ctx context.Context, in TopUsersInput) ([]entity.User, error) {
	users, err := p.svc.UsersWithPostCounts(ctx)
	if err != nil {
		return nil, err
	}

	return ranking.TopUsers(users, in.Limit), nil
}

// Users returns every user with its post count, ordered by id
func (p *Policy) Users(ctx context.Context) ([]entity.User, error) {
	return p.svc.UsersWithPostCounts(ctx)
}

// Posts returns every post in aggregation order
func (p *Policy) Posts(ctx context.Context) ([]entity.Post, error) {
	return p.svc.AllPosts(ctx)
}

// TrendingPosts returns posts ordered by comment count
func (p *Policy) TrendingPosts(ctx context.Context) ([]entity.Post, error) {
	posts, err := p.svc.PostsWithCommentCounts(ctx)
	if err != nil {
		return nil, err
	}

	return ranking.Trending(posts), nil
}

// Feed returns posts newest first
func (p *Policy) Feed(ctx context.Context) ([]entity.Post, error) {
	posts, err := p.svc.AllPosts(ctx)
	if err != nil {
		return nil, err
	}

	return ranking.Feed(posts), nil
}

// Numbers returns a number series with its average
func (p *Policy) Numbers(ctx context.Context, kind entity.NumberKind) (*entity.NumberSeries, error) {
	if _, err := kind.Path(); err != nil {
		return nil, err
	}

	return p.svc.Numbers(ctx, kind)
}
