package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type sendConfig struct {
	URL     string
	Repo    string
	Ref     string
	SHA     string
	Message string
	Pusher  string
	Timeout time.Duration
}

func cmdSend() *cli.Command {
	var cfg sendConfig

	return &cli.Command{
		Name:  "send",
		Usage: "Post a simulated push event to a running courier server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "url",
				Usage:       "Webhook endpoint",
				Value:       "http://localhost:5000/webhook",
				Destination: &cfg.URL,
				Sources:     cli.EnvVars("COURIER_SEND_URL"),
			},
			&cli.StringFlag{
				Name:        "repo",
				Usage:       "Repository full name (owner/name)",
				Required:    true,
				Destination: &cfg.Repo,
				Sources:     cli.EnvVars("COURIER_SEND_REPO", "GITHUB_REPO"),
			},
			&cli.StringFlag{
				Name:        "ref",
				Usage:       "Pushed ref",
				Value:       "refs/heads/main",
				Destination: &cfg.Ref,
			},
			&cli.StringFlag{
				Name:        "sha",
				Usage:       "Commit sha, must exist in the repository",
				Required:    true,
				Destination: &cfg.SHA,
			},
			&cli.StringFlag{
				Name:        "message",
				Usage:       "Commit message, e.g. \"[86c6t8m47] fix login\"",
				Required:    true,
				Destination: &cfg.Message,
			},
			&cli.StringFlag{
				Name:        "pusher",
				Usage:       "Pusher name",
				Value:       "courier",
				Destination: &cfg.Pusher,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "Request timeout",
				Value:       2 * time.Minute,
				Destination: &cfg.Timeout,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return sendPush(ctx, os.Stdout, &cfg)
		},
	}
}

// newPushPayload builds the JSON body GitHub would deliver for a single commit push
func newPushPayload(cfg *sendConfig) map[string]any {
	return map[string]any{
		"ref":        cfg.Ref,
		"repository": map[string]any{"full_name": cfg.Repo},
		"pusher":     map[string]any{"name": cfg.Pusher},
		"commits": []map[string]any{
			{"id": cfg.SHA, "message": cfg.Message},
		},
	}
}

func sendPush(ctx context.Context, w io.Writer, cfg *sendConfig) error {
	body, err := json.Marshal(newPushPayload(cfg))
	if err != nil {
		return goerr.Wrap(err, "failed to marshal push payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("url", cfg.URL))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "push")
	req.Header.Set("X-GitHub-Delivery", uuid.NewString())

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send push event", goerr.V("url", cfg.URL))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read response", goerr.V("status", resp.StatusCode))
	}

	fmt.Fprintf(w, "Status: %d\n", resp.StatusCode)
	fmt.Fprintf(w, "Response: %s\n", bytes.TrimSpace(respBody))

	if resp.StatusCode != http.StatusOK {
		return goerr.New("webhook returned non-200 status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)))
	}
	return nil
}
