package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	socialentity "github.com/vadim/social-pulse/internal/domain/social/entity"
)

type fakeRaw struct {
	bodies map[string]map[string]any
	errs   map[string]error
	paths  []string
}

func (f *fakeRaw) GetRaw(ctx context.Context, path string) (map[string]any, error) {
	f.paths = append(f.paths, path)
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	if body, ok := f.bodies[path]; ok {
		return body, nil
	}
	return map[string]any{}, nil
}

type fakeAggregator struct {
	posts   []socialentity.Post
	counted []socialentity.Post
	err     error
}

func (f *fakeAggregator) AllPosts(ctx context.Context) ([]socialentity.Post, error) {
	return f.posts, f.err
}

func (f *fakeAggregator) PostsWithCommentCounts(ctx context.Context) ([]socialentity.Post, error) {
	return f.counted, f.err
}

func healthyRaw() *fakeRaw {
	return &fakeRaw{bodies: map[string]map[string]any{
		"/users": {"users": map[string]any{"2": "Bob", "1": "Alice"}},
		"/users/1/posts": {"posts": []any{
			map[string]any{"id": float64(10), "userId": float64(1), "content": "hi"},
		}},
		"/posts/10/comments": {"comments": []any{
			map[string]any{"id": float64(100), "postId": float64(10), "content": "nice"},
		}},
		"/primes": {"numbers": []any{float64(2), float64(3)}},
	}}
}

func healthyAggregator() *fakeAggregator {
	return &fakeAggregator{
		posts:   []socialentity.Post{{ID: 10, UserID: 1, Content: "hi", UserName: "Alice"}},
		counted: []socialentity.Post{{ID: 10, UserID: 1, Content: "hi", CommentCount: socialentity.IntPtr(1)}},
	}
}

func resultNames(t *testing.T, s *Suite) (map[string]bool, bool) {
	t.Helper()
	report := s.Run(context.Background())
	require.NotEmpty(t, report.ID)
	out := make(map[string]bool, len(report.Results))
	for _, r := range report.Results {
		out[r.Name] = r.Success
	}
	return out, report.Passed
}

func TestSuite_AllPass(t *testing.T) {
	raw := healthyRaw()
	s := NewSuite(raw, healthyAggregator(), []socialentity.NumberKind{socialentity.NumberKindPrime}, slog.New(slog.DiscardHandler))

	results, passed := resultNames(t, s)
	assert.True(t, passed)
	assert.Equal(t, map[string]bool{
		CheckUsers:         true,
		CheckUserPosts:     true,
		CheckPostComments:  true,
		CheckAllPosts:      true,
		CheckTrendingPosts: true,
		"numbers_prime":    true,
	}, results)
	assert.Contains(t, raw.paths, "/users/1/posts", "posts check uses the lowest user id")
}

func TestSuite_DependentChecksAreSkipped(t *testing.T) {
	raw := healthyRaw()
	raw.errs = map[string]error{"/users": errors.New("API error: 500 Internal Server Error")}
	s := NewSuite(raw, healthyAggregator(), nil, slog.New(slog.DiscardHandler))

	report := s.Run(context.Background())
	assert.False(t, report.Passed)
	require.Len(t, report.Results, 3)
	assert.Equal(t, CheckUsers, report.Results[0].Name)
	assert.Equal(t, "API error: 500 Internal Server Error", report.Results[0].Message)
	assert.Equal(t, CheckAllPosts, report.Results[1].Name)
	assert.Equal(t, CheckTrendingPosts, report.Results[2].Name)
	assert.Len(t, report.Failed(), 1)
}

func TestSuite_NoPostsSkipsComments(t *testing.T) {
	raw := healthyRaw()
	raw.bodies["/users/1/posts"] = map[string]any{}
	s := NewSuite(raw, healthyAggregator(), nil, slog.New(slog.DiscardHandler))

	results, passed := resultNames(t, s)
	assert.True(t, passed)
	assert.True(t, results[CheckUserPosts])
	_, ran := results[CheckPostComments]
	assert.False(t, ran)
}

func TestSuite_TrendingRequiresCommentCount(t *testing.T) {
	agg := healthyAggregator()
	agg.counted = []socialentity.Post{{ID: 10, UserID: 1, Content: "hi"}}
	s := NewSuite(healthyRaw(), agg, nil, slog.New(slog.DiscardHandler))

	results, passed := resultNames(t, s)
	assert.False(t, passed)
	assert.False(t, results[CheckTrendingPosts])
	assert.True(t, results[CheckAllPosts])
}

func TestSuite_NullFieldsCountAsEmpty(t *testing.T) {
	raw := healthyRaw()
	raw.bodies["/users/1/posts"] = map[string]any{"posts": nil}
	s := NewSuite(raw, healthyAggregator(), nil, slog.New(slog.DiscardHandler))

	results, passed := resultNames(t, s)
	assert.True(t, passed)
	assert.True(t, results[CheckUserPosts])
	_, ran := results[CheckPostComments]
	assert.False(t, ran)

	raw.bodies["/users"] = map[string]any{"users": nil}
	report := s.Run(context.Background())
	require.NotEmpty(t, report.Results)
	assert.True(t, report.Results[0].Success)
	assert.Equal(t, map[string]any{}, report.Results[0].Data)
	assert.NotContains(t, raw.paths, "/users//posts")
}
