package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/domain/model"
)

//go:embed prompts/summary_system.md
var summarySystemPrompt string

//go:embed prompts/summary_user.md
var summaryUserPrompt string

// Prompt limits
const (
	maxListedFiles   = 10
	maxPatchedFiles  = 3
	maxPatchLength   = 500
	maxCodeChangeLen = 1000
)

// SummaryOptions tunes the completion call
type SummaryOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Language    string
}

// DefaultSummaryOptions returns the settings the bot has always used
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.3,
		MaxTokens:   800,
		Language:    "Serbian",
	}
}

// Summarizer asks an LLM to describe a commit for the team
type Summarizer struct {
	llm            interfaces.LLMClient
	opts           SummaryOptions
	systemTemplate *template.Template
	userTemplate   *template.Template
}

// NewSummarizer parses the embedded prompt templates
func NewSummarizer(llm interfaces.LLMClient, opts SummaryOptions) (*Summarizer, error) {
	systemTmpl, err := template.New("system").Parse(summarySystemPrompt)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse system prompt template")
	}
	userTmpl, err := template.New("user").Parse(summaryUserPrompt)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse user prompt template")
	}

	defaults := DefaultSummaryOptions()
	if opts.Model == "" {
		opts.Model = defaults.Model
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaults.MaxTokens
	}
	if opts.Language == "" {
		opts.Language = defaults.Language
	}

	return &Summarizer{
		llm:            llm,
		opts:           opts,
		systemTemplate: systemTmpl,
		userTemplate:   userTmpl,
	}, nil
}

// Summarize returns the model's text verbatim
func (s *Summarizer) Summarize(ctx context.Context, details *model.CommitDetails) (string, error) {
	systemPrompt, userPrompt, err := s.BuildPrompts(details)
	if err != nil {
		return "", err
	}

	ctxlog.From(ctx).Debug("Calling LLM for commit summary",
		"sha", details.SHA,
		"model", s.opts.Model,
		"prompt_length", len(userPrompt),
	)

	text, err := s.llm.Complete(ctx, &model.CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Model:        s.opts.Model,
		Temperature:  s.opts.Temperature,
		MaxTokens:    s.opts.MaxTokens,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to summarize commit", goerr.V("sha", details.SHA))
	}

	return text, nil
}

// BuildPrompts renders the system and user prompts for details
func (s *Summarizer) BuildPrompts(details *model.CommitDetails) (string, string, error) {
	var sys bytes.Buffer
	if err := s.systemTemplate.Execute(&sys, map[string]string{
		"Language": s.opts.Language,
	}); err != nil {
		return "", "", goerr.Wrap(err, "failed to execute system prompt template")
	}

	var user bytes.Buffer
	if err := s.userTemplate.Execute(&user, map[string]any{
		"Author":       details.Author,
		"Message":      details.Message,
		"Date":         details.Date,
		"SHA":          details.SHA,
		"Stats":        details.Stats,
		"FilesSummary": filesSummary(details.Files),
		"CodeChanges":  codeChanges(details.Files),
		"Language":     s.opts.Language,
	}); err != nil {
		return "", "", goerr.Wrap(err, "failed to execute user prompt template")
	}

	return strings.TrimSpace(sys.String()), user.String(), nil
}

func filesSummary(files []model.FileChange) string {
	if len(files) > maxListedFiles {
		files = files[:maxListedFiles]
	}

	lines := make([]string, 0, len(files))
	for _, f := range files {
		lines = append(lines, fmt.Sprintf("- %s (%s, +%d/-%d)", f.Filename, f.Status, f.Additions, f.Deletions))
	}
	return strings.Join(lines, "\n")
}

// codeChanges inlines small patches of the first files only
func codeChanges(files []model.FileChange) string {
	if len(files) > maxPatchedFiles {
		files = files[:maxPatchedFiles]
	}

	var sb strings.Builder
	for _, f := range files {
		if !f.HasPatch() || len([]rune(*f.Patch)) >= maxPatchLength {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(f.Filename)
		sb.WriteString(":\n")
		sb.WriteString(*f.Patch)
	}

	return truncateRunes(sb.String(), maxCodeChangeLen)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
