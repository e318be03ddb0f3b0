package interfaces

import (
	"context"

	"github.com/m-mizutani/courier/pkg/domain/model"
)

// LLMClient sends a single chat completion and returns the generated text
type LLMClient interface {
	Complete(ctx context.Context, req *model.CompletionRequest) (string, error)
}
