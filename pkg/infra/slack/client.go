package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/domain/model"
)

type notifier struct {
	client    *slack.Client
	channelID string
}

type config struct {
	apiURL string
}

// Option is a functional option for the Slack notifier
type Option func(*config)

// WithAPIURL overrides the Slack API root, mainly for tests
func WithAPIURL(apiURL string) Option {
	return func(c *config) {
		c.apiURL = apiURL
	}
}

// NewNotifier creates a notifier posting reports to channelID with a bot token
func NewNotifier(token, channelID string, opts ...Option) interfaces.Notifier {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	var slackOpts []slack.Option
	if cfg.apiURL != "" {
		apiURL := cfg.apiURL
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		slackOpts = append(slackOpts, slack.OptionAPIURL(apiURL))
	}

	return &notifier{
		client:    slack.New(token, slackOpts...),
		channelID: channelID,
	}
}

// Notify posts the report as a message
func (n *notifier) Notify(ctx context.Context, details *model.CommitDetails, report string) error {
	fallback := fmt.Sprintf("Git push update: %s on %s by %s", details.SHA, details.Branch, details.Author)

	_, _, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, toMrkdwn(report), false, false), nil, nil),
		),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post message to Slack",
			goerr.V("channel", n.channelID),
			goerr.V("sha", details.SHA),
		)
	}

	return nil
}

// toMrkdwn converts the report's **bold** markers to Slack's *bold*
func toMrkdwn(report string) string {
	text := strings.ReplaceAll(report, "**", "*")
	// section block text is limited to 3000 characters
	if r := []rune(text); len(r) > 3000 {
		text = string(r[:2997]) + "..."
	}
	return text
}
