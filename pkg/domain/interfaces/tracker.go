package interfaces

import (
	"context"

	"github.com/m-mizutani/courier/pkg/domain/model"
)

// TaskTracker defines operations against the project-tracking system
type TaskTracker interface {
	// FindTask returns (nil, nil) when the task does not exist
	FindTask(ctx context.Context, taskID string) (*model.TaskMatch, error)

	// PostComment adds text as a comment on the task
	PostComment(ctx context.Context, taskID, text string) error

	// CurrentUser returns the username bound to the access token
	CurrentUser(ctx context.Context) (string, error)
}

// Notifier mirrors a commit report to a chat channel
type Notifier interface {
	Notify(ctx context.Context, details *model.CommitDetails, report string) error
}
