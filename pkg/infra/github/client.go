package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/domain/model"
)

type client struct {
	githubClient *github.Client
}

type config struct {
	baseURL string
	timeout time.Duration
}

// Option is a functional option for the GitHub client
type Option func(*config)

// WithBaseURL points the client at a different API root, e.g. GitHub Enterprise or a test server
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

// NewClient creates a new GitHub client authenticated with a personal access token
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	cfg := &config{
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	githubClient := github.NewClient(&http.Client{Timeout: cfg.timeout})
	if token != "" {
		githubClient = githubClient.WithAuthToken(token)
	}

	if cfg.baseURL != "" {
		baseURL := cfg.baseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub base URL", goerr.V("base_url", cfg.baseURL))
		}
		githubClient.BaseURL = u
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// GetCommit fetches one commit with its file diffs and statistics
func (c *client) GetCommit(ctx context.Context, repoFullName, sha string) (*model.CommitDetails, error) {
	owner, repo, ok := strings.Cut(repoFullName, "/")
	if !ok || owner == "" || repo == "" {
		return nil, goerr.New("repository must be in owner/name form", goerr.V("repository", repoFullName))
	}

	commit, _, err := c.githubClient.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get commit",
			goerr.V("repository", repoFullName),
			goerr.V("sha", sha),
		)
	}

	return toCommitDetails(commit), nil
}

// CurrentUser returns the login of the token owner
func (c *client) CurrentUser(ctx context.Context) (string, error) {
	user, _, err := c.githubClient.Users.Get(ctx, "")
	if err != nil {
		return "", goerr.Wrap(err, "failed to get authenticated user")
	}
	return user.GetLogin(), nil
}

func toCommitDetails(commit *github.RepositoryCommit) *model.CommitDetails {
	files := make([]model.FileChange, 0, len(commit.Files))
	for _, f := range commit.Files {
		files = append(files, model.FileChange{
			Filename:  f.GetFilename(),
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Patch:     f.Patch,
		})
	}

	author := commit.GetCommit().GetAuthor()
	var date string
	if ts := author.GetDate(); !ts.Time.IsZero() {
		date = ts.Time.Format(model.CommitDateFormat)
	}

	stats := commit.GetStats()

	return &model.CommitDetails{
		SHA:     model.ShortSHA(commit.GetSHA()),
		Message: commit.GetCommit().GetMessage(),
		Author:  author.GetName(),
		Date:    date,
		Files:   files,
		Stats: model.Stats{
			Additions: stats.GetAdditions(),
			Deletions: stats.GetDeletions(),
			Total:     stats.GetTotal(),
		},
	}
}
