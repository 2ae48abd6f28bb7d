// Package client talks to the task list HTTP API. Every call goes through a
// Retrier, so transient failures are retried before an error is returned.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"task-list/internal/domain"
	apperrors "task-list/internal/errors"
	"task-list/internal/logging"
)

const (
	// DefaultBaseURL is used when TL_API_URL is unset
	DefaultBaseURL = "http://localhost:3001"
	// EnvBaseURL names the environment variable holding the API base URL
	EnvBaseURL = "TL_API_URL"
)

// BaseURLFromEnv returns TL_API_URL, or DefaultBaseURL when it is unset
func BaseURLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		return v
	}
	return DefaultBaseURL
}

// StatusError is returned when the server answers with a non-2xx status
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: server responded %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: server responded %d", e.Op, e.StatusCode)
}

// Client is an HTTP client for the task list API
type Client struct {
	baseURL    string
	httpClient *http.Client
	retrier    *Retrier
	logger     *log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetrier replaces the retry policy
func WithRetrier(r *Retrier) Option {
	return func(c *Client) {
		if r != nil {
			c.retrier = r
		}
	}
}

// WithLogger sets the logger used for request failures
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retrier:    NewRetrier(DefaultMaxAttempts, DefaultBaseDelay),
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.retrier.WithLogger(c.logger)
	return c
}

// BaseURL returns the API root the client sends requests to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks fetches all tasks in position order
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	const op = "list tasks"
	return Retry(ctx, c.retrier, op, func(ctx context.Context) ([]domain.Task, error) {
		var tasks []domain.Task
		if err := c.do(ctx, op, http.MethodGet, "/tasks", nil, &tasks); err != nil {
			return nil, err
		}
		if tasks == nil {
			tasks = []domain.Task{}
		}
		return tasks, nil
	})
}

// CreateTask creates a task and returns the stored record
func (c *Client) CreateTask(ctx context.Context, title string) (*domain.Task, error) {
	const op = "create task"
	return Retry(ctx, c.retrier, op, func(ctx context.Context) (*domain.Task, error) {
		var task domain.Task
		body := map[string]string{"title": title}
		if err := c.do(ctx, op, http.MethodPost, "/tasks", body, &task); err != nil {
			return nil, err
		}
		return &task, nil
	})
}

// CompleteTask completes the task with the given id. A 404 is not retried
// and comes back as a not found error.
func (c *Client) CompleteTask(ctx context.Context, id int64) error {
	const op = "complete task"
	path := fmt.Sprintf("/tasks/%d/complete", id)
	return c.retrier.Do(ctx, op, func(ctx context.Context) error {
		err := c.do(ctx, op, http.MethodPatch, path, nil, nil)
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return Permanent(apperrors.NewNotFoundError("task", fmt.Sprintf("%d", id)))
		}
		return err
	})
}

// do performs a single request. Non-2xx statuses become *StatusError and
// transport failures become network errors.
func (c *Client) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewNetworkError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return ""
}
