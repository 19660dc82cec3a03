package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/social-pulse/internal/domain/social/entity"
	"github.com/vadim/social-pulse/internal/domain/social/policy"
	"github.com/vadim/social-pulse/internal/httpx/response"
	upstream "github.com/vadim/social-pulse/internal/httpx/upstream/social"
)

// SocialPolicy defines the interface for dashboard views
type SocialPolicy interface {
	TopUsers(ctx context.Context, in policy.TopUsersInput) ([]entity.User, error)
	Users(ctx context.Context) ([]entity.User, error)
	Posts(ctx context.Context) ([]entity.Post, error)
	TrendingPosts(ctx context.Context) ([]entity.Post, error)
	Feed(ctx context.Context) ([]entity.Post, error)
	Numbers(ctx context.Context, kind entity.NumberKind) (*entity.NumberSeries, error)
}

// SocialHandler handles HTTP requests for users, posts and numbers
type SocialHandler struct {
	policy SocialPolicy
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(p SocialPolicy) *SocialHandler {
	return &SocialHandler{policy: p}
}

// RegisterRoutes registers social routes
func (h *SocialHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers())
		r.Get("/top", h.TopUsers())
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.ListPosts())
		r.Get("/trending", h.TrendingPosts())
		r.Get("/feed", h.Feed())
	})

	r.Get("/numbers/{kind}", h.Numbers())
}

// UsersResponse represents a list of users
type UsersResponse struct {
	Users []entity.User `json:"users"`
}

// PostsResponse represents a list of posts
type PostsResponse struct {
	Posts []entity.Post `json:"posts"`
}

// ListUsers handles GET /users
func (h *SocialHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.policy.Users(r.Context())
		if err != nil {
			handleSocialError(w, err)
			return
		}

		response.OK(w, UsersResponse{Users: users})
	}
}

// TopUsers handles GET /users/top
func (h *SocialHandler) TopUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			parsed, err := strconv.Atoi(l)
			if err != nil || parsed <= 0 {
				response.BadRequest(w, entity.ErrInvalidLimit.Error())
				return
			}
			limit = parsed
		}

		users, err := h.policy.TopUsers(r.Context(), policy.TopUsersInput{Limit: limit})
		if err != nil {
			handleSocialError(w, err)
			return
		}

		response.OK(w, UsersResponse{Users: users})
	}
}

// ListPosts handles GET /posts
func (h *SocialHandler) ListPosts() http.HandlerFunc {
	return h.posts(h.policy.Posts)
}

// TrendingPosts handles GET /posts/trending
func (h *SocialHandler) TrendingPosts() http.HandlerFunc {
	return h.posts(h.policy.TrendingPosts)
}

// Feed handles GET /posts/feed
func (h *SocialHandler) Feed() http.HandlerFunc {
	return h.posts(h.policy.Feed)
}

func (h *SocialHandler) posts(fetch func(ctx context.Context) ([]entity.Post, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := fetch(r.Context())
		if err != nil {
			handleSocialError(w, err)
			return
		}

		response.OK(w, PostsResponse{Posts: posts})
	}
}

// Numbers handles GET /numbers/{kind}
func (h *SocialHandler) Numbers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := entity.ParseNumberKind(chi.URLParam(r, "kind"))
		if err != nil {
			handleSocialError(w, err)
			return
		}

		series, err := h.policy.Numbers(r.Context(), kind)
		if err != nil {
			handleSocialError(w, err)
			return
		}

		response.OK(w, series)
	}
}

func handleSocialError(w http.ResponseWriter, err error) {
	var (
		timeoutErr *upstream.TimeoutError
		apiErr     *upstream.APIError
		netErr     *upstream.NetworkError
	)

	switch {
	case errors.Is(err, entity.ErrUnknownNumberKind), errors.Is(err, entity.ErrInvalidLimit):
		response.BadRequest(w, err.Error())
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		response.GatewayTimeout(w, err.Error())
	case errors.As(err, &apiErr), errors.As(err, &netErr):
		response.BadGateway(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
