package interfaces

import (
	"context"

	"github.com/m-mizutani/courier/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// GetCommit fetches one commit with its file diffs and statistics
	GetCommit(ctx context.Context, repoFullName, sha string) (*model.CommitDetails, error)

	// CurrentUser returns the login of the authenticated user
	CurrentUser(ctx context.Context) (string, error)
}
