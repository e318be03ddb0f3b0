package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/infra/github"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token   string `masq:"secret"`
	BaseURL string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used to read commit details",
			Destination: &c.Token,
			Sources:     cli.EnvVars("COURIER_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL (GitHub Enterprise)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("COURIER_GITHUB_BASE_URL"),
		},
	}
}

// NewClient creates the GitHub client
func (c *GitHub) NewClient(timeout time.Duration) (interfaces.GitHubClient, error) {
	opts := []github.Option{github.WithTimeout(timeout)}
	if c.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(c.BaseURL))
	}
	return github.NewClient(c.Token, opts...)
}
