package llm

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/domain/model"
)

type unavailableClient struct {
	cause error
}

// NewUnavailable returns a client whose every call fails with cause. It stands in
// for a provider that could not be constructed so the server still starts.
func NewUnavailable(cause error) interfaces.LLMClient {
	return &unavailableClient{cause: cause}
}

func (c *unavailableClient) Complete(ctx context.Context, req *model.CompletionRequest) (string, error) {
	return "", goerr.Wrap(c.cause, "LLM provider is unavailable")
}
