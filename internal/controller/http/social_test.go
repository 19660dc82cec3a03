package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadim/social-pulse/internal/domain/social/entity"
	"github.com/vadim/social-pulse/internal/domain/social/policy"
	upstream "github.com/vadim/social-pulse/internal/httpx/upstream/social"
)

type stubSocialPolicy struct {
	limit int
	kind  entity.NumberKind
	err   error
}

func (s *stubSocialPolicy) TopUsers(ctx context.Context, in policy.TopUsersInput) ([]entity.User, error) {
	s.limit = in.Limit
	return []entity.User{{ID: "1", Name: "Alice", PostCount: entity.IntPtr(3)}}, s.err
}

func (s *stubSocialPolicy) Users(ctx context.Context) ([]entity.User, error) {
	return []entity.User{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}}, s.err
}

func (s *stubSocialPolicy) Posts(ctx context.Context) ([]entity.Post, error) {
	return []entity.Post{{ID: 1, UserID: 1, Content: "all"}}, s.err
}

func (s *stubSocialPolicy) TrendingPosts(ctx context.Context) ([]entity.Post, error) {
	return []entity.Post{{ID: 2, UserID: 1, Content: "trending", CommentCount: entity.IntPtr(4)}}, s.err
}

func (s *stubSocialPolicy) Feed(ctx context.Context) ([]entity.Post, error) {
	return []entity.Post{{ID: 3, UserID: 1, Content: "feed"}}, s.err
}

func (s *stubSocialPolicy) Numbers(ctx context.Context, kind entity.NumberKind) (*entity.NumberSeries, error) {
	s.kind = kind
	if s.err != nil {
		return nil, s.err
	}
	return &entity.NumberSeries{Kind: kind, Numbers: []int{1, 3}, Average: 2}, nil
}

func serveSocial(t *testing.T, p SocialPolicy, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	NewSocialHandler(p).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestSocialHandler_Routes(t *testing.T) {
	tests := []struct {
		target  string
		wantKey string
		wantID  float64
	}{
		{"/posts", "posts", 1},
		{"/posts/trending", "posts", 2},
		{"/posts/feed", "posts", 3},
		{"/users/top", "users", 0},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serveSocial(t, &stubSocialPolicy{}, http.MethodGet, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var body map[string][]map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotEmpty(t, body[tt.wantKey])
			if tt.wantKey == "posts" {
				assert.Equal(t, tt.wantID, body[tt.wantKey][0]["id"])
			}
		})
	}
}

func TestSocialHandler_TopUsersLimit(t *testing.T) {
	p := &stubSocialPolicy{}
	rec := serveSocial(t, p, http.MethodGet, "/users/top?limit=3")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, p.limit)

	rec = serveSocial(t, p, http.MethodGet, "/users/top?limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serveSocial(t, p, http.MethodGet, "/users/top?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSocialHandler_Numbers(t *testing.T) {
	p := &stubSocialPolicy{}
	rec := serveSocial(t, p, http.MethodGet, "/numbers/prime")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.NumberKindPrime, p.kind)
	assert.JSONEq(t, `{"kind":"p","numbers":[1,3],"average":2}`, rec.Body.String())

	rec = serveSocial(t, p, http.MethodGet, "/numbers/odd")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSocialHandler_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"timeout", &upstream.TimeoutError{Path: "/users", Timeout: time.Second}, http.StatusGatewayTimeout},
		{"request deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"request deadline during fetch", &upstream.NetworkError{Path: "/users", Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"api error", &upstream.APIError{StatusCode: 503, Status: "Service Unavailable"}, http.StatusBadGateway},
		{"network", fmt.Errorf("wrapped: %w", &upstream.NetworkError{Path: "/users", Err: errors.New("refused")}), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveSocial(t, &stubSocialPolicy{err: tt.err}, http.MethodGet, "/users")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
