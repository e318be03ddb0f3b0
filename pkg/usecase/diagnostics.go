package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/domain/model"
)

const pingPrompt = "Reply only with the word 'works!'"

type diagnostics struct {
	githubClient interfaces.GitHubClient
	llm          interfaces.LLMClient
	llmModel     string
	tracker      interfaces.TaskTracker
}

// NewDiagnostics creates a use case that checks every upstream API
func NewDiagnostics(
	githubClient interfaces.GitHubClient,
	llm interfaces.LLMClient,
	llmModel string,
	tracker interfaces.TaskTracker,
) interfaces.DiagnosticsUseCase {
	return &diagnostics{
		githubClient: githubClient,
		llm:          llm,
		llmModel:     llmModel,
		tracker:      tracker,
	}
}

// CheckConnections calls each API once. Failures are reported in the result, never returned.
func (uc *diagnostics) CheckConnections(ctx context.Context) *model.ConnectivityReport {
	logger := ctxlog.From(ctx)
	report := &model.ConnectivityReport{
		GitHub:  "Not tested",
		LLM:     "Not tested",
		ClickUp: "Not tested",
	}

	if login, err := uc.githubClient.CurrentUser(ctx); err != nil {
		logger.Warn("GitHub connectivity check failed", "error", err)
		report.GitHub = "Error: " + truncateRunes(err.Error(), 100)
	} else {
		report.GitHub = "Logged in as: " + login
	}

	if text, err := uc.llm.Complete(ctx, &model.CompletionRequest{
		UserPrompt: pingPrompt,
		Model:      uc.llmModel,
	}); err != nil {
		logger.Warn("LLM connectivity check failed", "error", err)
		report.LLM = "Error: " + truncateRunes(err.Error(), 200)
	} else {
		report.LLM = "AI replied: " + truncateRunes(text, 50)
	}

	if name, err := uc.tracker.CurrentUser(ctx); err != nil {
		logger.Warn("ClickUp connectivity check failed", "error", err)
		report.ClickUp = "Error: " + truncateRunes(err.Error(), 100)
	} else {
		report.ClickUp = "Logged in as: " + name
	}

	return report
}
