package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/courier/pkg/domain/model"
)

// MockGitHubClient is a mock implementation of GitHubClient
type MockGitHubClient struct {
	getCommitFunc   func(ctx context.Context, repo, sha string) (*model.CommitDetails, error)
	currentUserFunc func(ctx context.Context) (string, error)
	getCommitCalls  []string
}

func (m *MockGitHubClient) GetCommit(ctx context.Context, repo, sha string) (*model.CommitDetails, error) {
	m.getCommitCalls = append(m.getCommitCalls, sha)
	if m.getCommitFunc != nil {
		return m.getCommitFunc(ctx, repo, sha)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockGitHubClient) CurrentUser(ctx context.Context) (string, error) {
	if m.currentUserFunc != nil {
		return m.currentUserFunc(ctx)
	}
	return "", errors.New("mock not configured")
}

// MockLLMClient is a mock implementation of LLMClient
type MockLLMClient struct {
	completeFunc func(ctx context.Context, req *model.CompletionRequest) (string, error)
	requests     []*model.CompletionRequest
}

func (m *MockLLMClient) Complete(ctx context.Context, req *model.CompletionRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.completeFunc != nil {
		return m.completeFunc(ctx, req)
	}
	return "", errors.New("mock not configured")
}

// MockTracker is a mock implementation of TaskTracker
type MockTracker struct {
	findTaskFunc    func(ctx context.Context, taskID string) (*model.TaskMatch, error)
	postCommentFunc func(ctx context.Context, taskID, text string) error
	currentUserFunc func(ctx context.Context) (string, error)

	findCalls []string
	posts     []MockPost
}

type MockPost struct {
	TaskID string
	Text   string
}

func (m *MockTracker) FindTask(ctx context.Context, taskID string) (*model.TaskMatch, error) {
	m.findCalls = append(m.findCalls, taskID)
	if m.findTaskFunc != nil {
		return m.findTaskFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockTracker) PostComment(ctx context.Context, taskID, text string) error {
	m.posts = append(m.posts, MockPost{TaskID: taskID, Text: text})
	if m.postCommentFunc != nil {
		return m.postCommentFunc(ctx, taskID, text)
	}
	return nil
}

func (m *MockTracker) CurrentUser(ctx context.Context) (string, error) {
	if m.currentUserFunc != nil {
		return m.currentUserFunc(ctx)
	}
	return "", errors.New("mock not configured")
}

// MockNotifier records mirrored reports
type MockNotifier struct {
	mu      sync.Mutex
	reports []string
	err     error
}

func (m *MockNotifier) Notify(ctx context.Context, details *model.CommitDetails, report string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, report)
	return m.err
}

func strPtr(s string) *string {
	return &s
}

func sampleDetails() *model.CommitDetails {
	return &model.CommitDetails{
		SHA:     "65f52c2",
		Message: "[86c6t8m47] Dodao test 2",
		Author:  "Test User",
		Date:    "2025-01-15 10:30",
		Files: []model.FileChange{
			{Filename: "main.go", Status: "modified", Additions: 10, Deletions: 3, Patch: strPtr("@@ -1 +1 @@\n-a\n+b")},
			{Filename: "README.md", Status: "added", Additions: 2, Deletions: 0},
		},
		Stats: model.Stats{Additions: 12, Deletions: 3, Total: 15},
	}
}
