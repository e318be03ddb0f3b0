package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/domain/model"
)

type webhookUseCase struct {
	githubClient interfaces.GitHubClient
	summarizer   *Summarizer
	extractor    *TaskIDExtractor
	tracker      interfaces.TaskTracker
	notifier     interfaces.Notifier
}

// WebhookOption is a functional option for the webhook use case
type WebhookOption func(*webhookUseCase)

// WithNotifier mirrors every formatted report to n as well
func WithNotifier(n interfaces.Notifier) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.notifier = n
	}
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(
	githubClient interfaces.GitHubClient,
	summarizer *Summarizer,
	extractor *TaskIDExtractor,
	tracker interfaces.TaskTracker,
	opts ...WebhookOption,
) interfaces.WebhookUseCase {
	uc := &webhookUseCase{
		githubClient: githubClient,
		summarizer:   summarizer,
		extractor:    extractor,
		tracker:      tracker,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// HandlePush runs fetch -> summarize -> format -> extract -> lookup -> post -> mirror
// for each commit in delivery order. A failing commit never blocks the next one.
// Replaying the same event posts the comments again.
func (uc *webhookUseCase) HandlePush(ctx context.Context, event *model.PushEvent) (*model.PushResult, error) {
	if event == nil {
		return nil, goerr.New("push event is nil")
	}

	logger := ctxlog.From(ctx).With(
		"delivery_id", event.DeliveryID,
		"repository", event.Repository,
		"branch", event.Branch,
	)
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Processing push event",
		"pusher", event.Pusher,
		"commit_count", len(event.Commits),
	)

	result := &model.PushResult{
		Processed: len(event.Commits),
		Outcomes:  make([]model.CommitOutcome, 0, len(event.Commits)),
	}

	for _, commit := range event.Commits {
		result.Outcomes = append(result.Outcomes, uc.processCommit(ctx, event, commit))
	}

	return result, nil
}

func (uc *webhookUseCase) processCommit(ctx context.Context, event *model.PushEvent, commit model.CommitRef) model.CommitOutcome {
	logger := ctxlog.From(ctx).With("sha", commit.ShortID())
	ctx = ctxlog.With(ctx, logger)

	outcome := model.CommitOutcome{SHA: commit.ShortID()}
	logger.Info("Processing commit", "message", truncateRunes(commit.Message, 50))

	details, err := uc.githubClient.GetCommit(ctx, event.Repository, commit.ID)
	if err != nil {
		logger.Error("Failed to fetch commit details, skipping commit", "error", err)
		outcome.SkipReason = model.SkipFetchFailed
		return outcome
	}
	details.Branch = event.Branch
	logger.Info("Fetched commit details", "file_count", len(details.Files))

	summary, err := uc.summarizer.Summarize(ctx, details)
	if err != nil {
		logger.Error("AI summary failed, posting degraded notice", "error", err)
		outcome.SummaryFailed = true
		summary = fmt.Sprintf("AI summary unavailable: %v", err)
	}

	report := FormatReport(details, summary)
	logger.Debug("Formatted report", "report", report)

	taskID, ok := uc.extractor.Extract(event.Branch, commit.Message)
	if !ok {
		logger.Info("Task ID not found in branch or commit message, comment will not be posted",
			"hint", "use branch feature/<taskid>-description or commit message [<taskid>] ...")
		outcome.SkipReason = model.SkipNoTaskID
		return outcome
	}
	outcome.TaskID = taskID
	logger = logger.With("task_id", taskID)

	task, err := uc.tracker.FindTask(ctx, taskID)
	if err != nil {
		logger.Warn("Task lookup failed, treating as not found", "error", err)
	}
	if task == nil {
		logger.Info("Task does not exist or is not accessible")
		outcome.SkipReason = model.SkipTaskNotFound
		return outcome
	}
	outcome.TaskName = task.Name

	if err := uc.tracker.PostComment(ctx, taskID, report); err != nil {
		logger.Error("Failed to post comment", "error", err)
		outcome.SkipReason = model.SkipPostFailed
		return outcome
	}

	outcome.Posted = true
	logger.Info("Posted update to task", "task_name", task.Name)

	if uc.notifier != nil {
		if err := uc.notifier.Notify(ctx, details, report); err != nil {
			logger.Warn("Failed to mirror report", "error", err)
		}
	}
	return outcome
}
