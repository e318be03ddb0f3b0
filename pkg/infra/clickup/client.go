package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/domain/model"
)

// DefaultBaseURL is the ClickUp API v2 root
const DefaultBaseURL = "https://api.clickup.com/api/v2"

// maxErrorBody caps how much of an error response is kept for logging
const maxErrorBody = 1024

type client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

type config struct {
	baseURL string
	timeout time.Duration
}

// Option is a functional option for the ClickUp client
type Option func(*config)

// WithBaseURL overrides the API root
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// NewClient creates a ClickUp API client. Personal tokens are sent as-is in
// the Authorization header, which is what ClickUp expects.
func NewClient(token string, opts ...Option) interfaces.TaskTracker {
	cfg := &config{
		baseURL: DefaultBaseURL,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &client{
		token:      token,
		baseURL:    strings.TrimSuffix(cfg.baseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.timeout},
	}
}

type taskResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type commentRequest struct {
	CommentText string `json:"comment_text"`
}

type userResponse struct {
	User struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

// FindTask looks a task up by id. A 404 yields (nil, nil).
func (c *client) FindTask(ctx context.Context, taskID string) (*model.TaskMatch, error) {
	resp, err := c.do(ctx, http.MethodGet, "/task/"+url.PathEscape(taskID), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to request task", goerr.V("task_id", taskID))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var task taskResponse
		if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
			return nil, goerr.Wrap(err, "failed to decode task", goerr.V("task_id", taskID))
		}
		if task.ID == "" {
			task.ID = taskID
		}
		return &model.TaskMatch{ID: task.ID, Name: task.Name}, nil

	case http.StatusNotFound:
		return nil, nil

	default:
		return nil, goerr.New(fmt.Sprintf("task lookup failed, status code: %d", resp.StatusCode),
			goerr.V("task_id", taskID),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", readErrorBody(resp.Body)),
		)
	}
}

// PostComment adds text as a comment on the task. Only 200 counts as success.
func (c *client) PostComment(ctx context.Context, taskID, text string) error {
	body, err := json.Marshal(commentRequest{CommentText: text})
	if err != nil {
		return goerr.Wrap(err, "failed to encode comment")
	}

	resp, err := c.do(ctx, http.MethodPost, "/task/"+url.PathEscape(taskID)+"/comment", bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to post comment", goerr.V("task_id", taskID))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return goerr.New(fmt.Sprintf("comment rejected, status code: %d", resp.StatusCode),
			goerr.V("task_id", taskID),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", readErrorBody(resp.Body)),
		)
	}

	return nil
}

// CurrentUser returns the username bound to the token
func (c *client) CurrentUser(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to request user")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New(fmt.Sprintf("Status code: %d", resp.StatusCode),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", readErrorBody(resp.Body)),
		)
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", goerr.Wrap(err, "failed to decode user")
	}
	return user.User.Username, nil
}

func (c *client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "request failed", goerr.V("method", method), goerr.V("path", path))
	}
	return resp, nil
}

func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	return string(data)
}
