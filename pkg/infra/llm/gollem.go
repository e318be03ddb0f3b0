package llm

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/domain/model"
)

type gollemClient struct {
	llm     gollem.LLMClient
	timeout time.Duration
}

// NewGollem adapts a gollem client (e.g. Gemini on Vertex AI). Model, temperature
// and token limit are set when the gollem client is constructed and the request
// fields are not forwarded.
func NewGollem(llm gollem.LLMClient, timeout time.Duration) interfaces.LLMClient {
	return &gollemClient{
		llm:     llm,
		timeout: timeout,
	}
}

// Complete opens a one-shot session and returns the concatenated text parts
func (c *gollemClient) Complete(ctx context.Context, req *model.CompletionRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var opts []gollem.SessionOption
	if req.SystemPrompt != "" {
		opts = append(opts, gollem.WithSessionSystemPrompt(req.SystemPrompt))
	}

	session, err := c.llm.NewSession(ctx, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(req.UserPrompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate LLM content")
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("no response from LLM")
	}

	return strings.Join(resp.Texts, ""), nil
}
