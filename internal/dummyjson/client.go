package dummyjson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	types "github.com/frahmantamala/interview-dashboard/internal/core/datamodel/dummyjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the demo REST API. Each method is exactly one HTTP call:
// no auth header, no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type UsersQuery struct {
	Limit  int
	Skip   int
	Search string
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

func (c *Client) Login(ctx context.Context, username, password string) (*types.LoginResponse, error) {
	var resp types.LoginResponse
	req := types.LoginRequest{Username: username, Password: password}
	if err := c.post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("dummyjson.Login: %w", err)
	}
	return &resp, nil
}

// ListUsers pages through users, switching to the search endpoint when q.Search
// is non-blank. Zero limit or skip is left out of the query.
func (c *Client) ListUsers(ctx context.Context, q UsersQuery) (*types.UsersPage, error) {
	params := url.Values{}
	path := "/users"

	if search := strings.TrimSpace(q.Search); search != "" {
		path = "/users/search"
		params.Set("q", search)
	}
	if q.Limit != 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip != 0 {
		params.Set("skip", strconv.Itoa(q.Skip))
	}
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page types.UsersPage
	if err := c.get(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("dummyjson.ListUsers: %w", err)
	}
	return &page, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*types.User, error) {
	var user types.User
	if err := c.get(ctx, "/users/"+strconv.FormatInt(id, 10), &user); err != nil {
		return nil, fmt.Errorf("dummyjson.GetUser: %w", err)
	}
	return &user, nil
}

func (c *Client) TodosByUser(ctx context.Context, userID int64) (*types.TodosPage, error) {
	var page types.TodosPage
	if err := c.get(ctx, "/todos/user/"+strconv.FormatInt(userID, 10), &page); err != nil {
		return nil, fmt.Errorf("dummyjson.TodosByUser: %w", err)
	}
	return &page, nil
}

func (c *Client) PostsByUser(ctx context.Context, userID int64) (*types.PostsPage, error) {
	var page types.PostsPage
	if err := c.get(ctx, "/posts/user/"+strconv.FormatInt(userID, 10), &page); err != nil {
		return nil, fmt.Errorf("dummyjson.PostsByUser: %w", err)
	}
	return &page, nil
}

func (c *Client) AddPost(ctx context.Context, post types.NewPost) (*types.Post, error) {
	var created types.Post
	if err := c.post(ctx, "/posts/add", post, &created); err != nil {
		return nil, fmt.Errorf("dummyjson.AddPost: %w", err)
	}
	return &created, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("dummyjson: request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("dummyjson: response",
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
