package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/courier/pkg/domain/model"
	"github.com/m-mizutani/courier/pkg/usecase"
)

func TestSummarizer_Summarize(t *testing.T) {
	ctx := context.Background()

	t.Run("returns model text verbatim and forwards options", func(t *testing.T) {
		llm := &MockLLMClient{
			completeFunc: func(ctx context.Context, req *model.CompletionRequest) (string, error) {
				return "  **Kratak opis:** test  ", nil
			},
		}

		s, err := usecase.NewSummarizer(llm, usecase.DefaultSummaryOptions())
		gt.NoError(t, err)

		text, err := s.Summarize(ctx, sampleDetails())
		gt.NoError(t, err)
		gt.Equal(t, text, "  **Kratak opis:** test  ")

		gt.Equal(t, len(llm.requests), 1)
		req := llm.requests[0]
		gt.Equal(t, req.Model, "llama-3.3-70b-versatile")
		gt.Equal(t, req.Temperature, float32(0.3))
		gt.Equal(t, req.MaxTokens, 800)
		gt.String(t, req.SystemPrompt).Contains("Serbian")
		gt.String(t, req.UserPrompt).Contains("- Author: Test User")
		gt.String(t, req.UserPrompt).Contains("- Message: [86c6t8m47] Dodao test 2")
		gt.String(t, req.UserPrompt).Contains("- SHA: 65f52c2")
		gt.String(t, req.UserPrompt).Contains("- Total changes: 15 lines")
		gt.String(t, req.UserPrompt).Contains("- main.go (modified, +10/-3)")
		gt.String(t, req.UserPrompt).Contains("main.go:\n@@ -1 +1 @@")
	})

	t.Run("returns error on LLM failure", func(t *testing.T) {
		llm := &MockLLMClient{
			completeFunc: func(ctx context.Context, req *model.CompletionRequest) (string, error) {
				return "", errors.New("rate limit reached")
			},
		}

		s, err := usecase.NewSummarizer(llm, usecase.DefaultSummaryOptions())
		gt.NoError(t, err)

		_, err = s.Summarize(ctx, sampleDetails())
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("rate limit reached")
	})

	t.Run("custom language reaches both prompts", func(t *testing.T) {
		llm := &MockLLMClient{
			completeFunc: func(ctx context.Context, req *model.CompletionRequest) (string, error) {
				return "ok", nil
			},
		}

		opts := usecase.DefaultSummaryOptions()
		opts.Language = "English"
		s, err := usecase.NewSummarizer(llm, opts)
		gt.NoError(t, err)

		_, err = s.Summarize(ctx, sampleDetails())
		gt.NoError(t, err)
		gt.String(t, llm.requests[0].SystemPrompt).Contains("in English")
		gt.String(t, llm.requests[0].UserPrompt).Contains("in English")
	})
}

func TestSummarizer_BuildPrompts_Limits(t *testing.T) {
	s, err := usecase.NewSummarizer(&MockLLMClient{}, usecase.DefaultSummaryOptions())
	gt.NoError(t, err)

	t.Run("lists at most 10 files", func(t *testing.T) {
		details := sampleDetails()
		details.Files = nil
		for i := 0; i < 15; i++ {
			details.Files = append(details.Files, model.FileChange{
				Filename: fmt.Sprintf("file%02d.go", i),
				Status:   "modified",
			})
		}

		_, user, err := s.BuildPrompts(details)
		gt.NoError(t, err)
		gt.String(t, user).Contains("- file09.go (modified, +0/-0)")
		gt.Value(t, strings.Contains(user, "file10.go")).Equal(false)
	})

	t.Run("inlines patches of the first 3 files only, skipping large ones", func(t *testing.T) {
		details := sampleDetails()
		details.Files = []model.FileChange{
			{Filename: "a.go", Status: "modified", Patch: strPtr("+patch-a")},
			{Filename: "big.go", Status: "modified", Patch: strPtr("+" + strings.Repeat("x", 600))},
			{Filename: "binary.png", Status: "added"},
			{Filename: "d.go", Status: "modified", Patch: strPtr("+patch-d")},
		}

		_, user, err := s.BuildPrompts(details)
		gt.NoError(t, err)
		gt.String(t, user).Contains("a.go:\n+patch-a")
		gt.Value(t, strings.Contains(user, "xxxxxxxxxx")).Equal(false)
		gt.Value(t, strings.Contains(user, "+patch-d")).Equal(false)
	})

	t.Run("truncates code changes to 1000 characters", func(t *testing.T) {
		details := sampleDetails()
		details.Files = []model.FileChange{
			{Filename: "a.go", Status: "modified", Patch: strPtr(strings.Repeat("a", 450))},
			{Filename: "b.go", Status: "modified", Patch: strPtr(strings.Repeat("b", 450))},
			{Filename: "c.go", Status: "modified", Patch: strPtr(strings.Repeat("c", 450))},
		}

		_, user, err := s.BuildPrompts(details)
		gt.NoError(t, err)

		gt.String(t, user).Contains(strings.Repeat("a", 450))
		gt.String(t, user).Contains(strings.Repeat("b", 450))
		// 3 separators of "\n\nX.go:\n" (8 chars) + a + b leave room for 76 c's
		gt.String(t, user).Contains(strings.Repeat("c", 76) + "\n")
		gt.Value(t, strings.Contains(user, strings.Repeat("c", 77))).Equal(false)
	})
}
