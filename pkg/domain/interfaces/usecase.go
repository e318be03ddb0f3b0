package interfaces

import (
	"context"

	"github.com/m-mizutani/courier/pkg/domain/model"
)

// WebhookUseCase processes push events
type WebhookUseCase interface {
	HandlePush(ctx context.Context, event *model.PushEvent) (*model.PushResult, error)
}

// DiagnosticsUseCase checks connectivity to every upstream API
type DiagnosticsUseCase interface {
	CheckConnections(ctx context.Context) *model.ConnectivityReport
}
