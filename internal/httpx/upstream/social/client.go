package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vadim/social-pulse/internal/domain/social/entity"
)

const (
	defaultBaseURL = "http://20.244.56.144/test"
	defaultTimeout = 5000 * time.Millisecond
)

// Client is a client for the social media test API
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption is a function that configures the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout sets the per-request deadline
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used to report failed requests
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new social API client
func New(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

type usersResponse struct {
	Users map[string]string `json:"users"`
}

// GetUsers retrieves the user id to display name mapping
// GET /users
func (c *Client) GetUsers(ctx context.Context) (map[string]string, error) {
	var out usersResponse
	if err := c.get(ctx, "/users", &out); err != nil {
		c.logger.Error("fetching users", "error", err)
		return nil, err
	}

	if out.Users == nil {
		return map[string]string{}, nil
	}
	return out.Users, nil
}

type postsResponse struct {
	Posts []entity.Post `json:"posts"`
}

// GetUserPosts retrieves the posts of a single user
// GET /users/{userId}/posts
func (c *Client) GetUserPosts(ctx context.Context, userID string) ([]entity.Post, error) {
	var out postsResponse
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/posts", &out); err != nil {
		c.logger.Error("fetching user posts", "user_id", userID, "error", err)
		return nil, err
	}

	if out.Posts == nil {
		return []entity.Post{}, nil
	}
	return out.Posts, nil
}

type commentsResponse struct {
	Comments []entity.Comment `json:"comments"`
}

// GetPostComments retrieves the comments of a single post
// GET /posts/{postId}/comments
func (c *Client) GetPostComments(ctx context.Context, postID int) ([]entity.Comment, error) {
	var out commentsResponse
	if err := c.get(ctx, fmt.Sprintf("/posts/%d/comments", postID), &out); err != nil {
		c.logger.Error("fetching post comments", "post_id", postID, "error", err)
		return nil, err
	}

	if out.Comments == nil {
		return []entity.Comment{}, nil
	}
	return out.Comments, nil
}

type numbersResponse struct {
	Numbers []int `json:"numbers"`
}

// GetNumbers retrieves a number series
// GET /primes | /fibo | /even | /rand
func (c *Client) GetNumbers(ctx context.Context, kind entity.NumberKind) ([]int, error) {
	path, err := kind.Path()
	if err != nil {
		return nil, err
	}

	var out numbersResponse
	if err := c.get(ctx, path, &out); err != nil {
		c.logger.Error("fetching numbers", "path", path, "error", err)
		return nil, err
	}

	if out.Numbers == nil {
		return []int{}, nil
	}
	return out.Numbers, nil
}

// GetRaw retrieves a resource and decodes its body without any schema.
// Used where the payload shape itself is under test.
func (c *Client) GetRaw(ctx context.Context, path string) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, path, &out); err != nil {
		c.logger.Error("fetching raw resource", "path", path, "error", err)
		return nil, err
	}

	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// get performs a GET bounded by the client timeout and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, callCtx, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(ctx, callCtx, path, fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Path:       path,
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &NetworkError{Path: path, Err: fmt.Errorf("decoding response: %w", err)}
	}

	return nil
}

// transportError classifies a failed round trip. Only the client's own
// deadline counts as a timeout; a cancelled or expired caller context is a
// NetworkError wrapping the caller's error.
func (c *Client) transportError(parent, callCtx context.Context, path string, err error) error {
	if parent.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Path: path, Timeout: c.timeout}
	}
	if parent.Err() != nil {
		return &NetworkError{Path: path, Err: parent.Err()}
	}
	return &NetworkError{Path: path, Err: err}
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
