package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/infra/clickup"
)

// ClickUp holds task tracker configuration
type ClickUp struct {
	Token   string `masq:"secret"`
	BaseURL string
}

// Flags returns CLI flags for ClickUp configuration
func (c *ClickUp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "clickup-token",
			Usage:       "ClickUp personal API token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("COURIER_CLICKUP_TOKEN", "CLICKUP_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "clickup-base-url",
			Usage:       "ClickUp API base URL",
			Value:       clickup.DefaultBaseURL,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("COURIER_CLICKUP_BASE_URL"),
		},
	}
}

// NewClient creates the ClickUp client
func (c *ClickUp) NewClient(timeout time.Duration) interfaces.TaskTracker {
	return clickup.NewClient(c.Token,
		clickup.WithBaseURL(c.BaseURL),
		clickup.WithTimeout(timeout),
	)
}
