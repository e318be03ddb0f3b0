package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/infra/slack"
)

// Slack holds the optional report mirror configuration
type Slack struct {
	Token     string `masq:"secret"`
	ChannelID string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token; reports are mirrored when set together with --slack-channel",
			Destination: &c.Token,
			Sources:     cli.EnvVars("COURIER_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID for mirrored reports",
			Destination: &c.ChannelID,
			Sources:     cli.EnvVars("COURIER_SLACK_CHANNEL"),
		},
	}
}

// NewNotifier returns nil when Slack is not configured
func (c *Slack) NewNotifier() interfaces.Notifier {
	if c.Token == "" || c.ChannelID == "" {
		return nil
	}
	return slack.NewNotifier(c.Token, c.ChannelID)
}
