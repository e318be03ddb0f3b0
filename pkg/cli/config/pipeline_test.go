package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/courier/pkg/cli/config"
	"github.com/m-mizutani/courier/pkg/domain/model"
	"github.com/m-mizutani/courier/pkg/domain/types"
	"github.com/m-mizutani/courier/pkg/usecase"
)

func TestPipeline_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.toml")
	gt.NoError(t, os.WriteFile(path, []byte(`
language = "English"
task_id_patterns = ['#([a-z0-9]{9})\b']

[llm]
model = "llama-3.1-8b-instant"
temperature = 0.0
max_tokens = 400

[async]
workers = 2
queue_size = 8
`), 0600))

	p := &config.Pipeline{Path: path}
	file, err := p.Load()
	gt.NoError(t, err)

	opts := file.SummaryOptions()
	gt.Equal(t, opts.Language, "English")
	gt.Equal(t, opts.Model, "llama-3.1-8b-instant")
	gt.Equal(t, opts.Temperature, float32(0))
	gt.Equal(t, opts.MaxTokens, 400)

	gt.Equal(t, file.Patterns(), []string{`#([a-z0-9]{9})\b`})
	gt.Equal(t, file.Workers(), 2)
	gt.Equal(t, file.QueueSize(), 8)
}

func TestPipeline_Defaults(t *testing.T) {
	p := &config.Pipeline{}
	file, err := p.Load()
	gt.NoError(t, err)

	gt.Equal(t, file.SummaryOptions(), usecase.DefaultSummaryOptions())
	gt.Equal(t, file.Patterns(), types.DefaultTaskIDPatterns)
	gt.Equal(t, file.Workers(), 4)
	gt.Equal(t, file.QueueSize(), 64)
}

func TestPipeline_PartialOverride(t *testing.T) {
	file, err := config.ParsePipeline([]byte(`language = "German"`))
	gt.NoError(t, err)

	opts := file.SummaryOptions()
	gt.Equal(t, opts.Language, "German")
	gt.Equal(t, opts.Model, "llama-3.3-70b-versatile")
	gt.Equal(t, opts.Temperature, float32(0.3))
	gt.Equal(t, opts.MaxTokens, 800)
}

func TestPipeline_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		p := &config.Pipeline{Path: filepath.Join(t.TempDir(), "nope.toml")}
		_, err := p.Load()
		gt.Error(t, err)
	})

	t.Run("broken TOML", func(t *testing.T) {
		_, err := config.ParsePipeline([]byte(`language = `))
		gt.Error(t, err)
	})

	t.Run("negative queue size", func(t *testing.T) {
		_, err := config.ParsePipeline([]byte("[async]\nqueue_size = -1"))
		gt.Error(t, err)
	})
}

func TestLLM_NewClient(t *testing.T) {
	opts := usecase.DefaultSummaryOptions()

	t.Run("groq without key still builds a client", func(t *testing.T) {
		c := &config.LLM{Provider: config.ProviderGroq, GroqBaseURL: "http://localhost"}
		client, err := c.NewClient(t.Context(), opts, 0)
		gt.NoError(t, err)
		gt.NotNil(t, client)
	})

	t.Run("gemini without project fails on use, not on startup", func(t *testing.T) {
		c := &config.LLM{Provider: config.ProviderGemini}
		client, err := c.NewClient(t.Context(), opts, 0)
		gt.NoError(t, err)

		_, err = client.Complete(t.Context(), &model.CompletionRequest{UserPrompt: "x"})
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("gemini-project-id is not set")
	})

	t.Run("unknown provider", func(t *testing.T) {
		c := &config.LLM{Provider: "openai"}
		_, err := c.NewClient(t.Context(), opts, 0)
		gt.Error(t, err)
	})
}

func TestLLM_GeminiSettings(t *testing.T) {
	c := &config.LLM{Provider: config.ProviderGemini, GeminiModel: "gemini-2.5-flash"}

	t.Run("defaults", func(t *testing.T) {
		settings := c.GeminiSettings(usecase.DefaultSummaryOptions())
		gt.Equal(t, settings, config.GeminiSettings{
			Model:       "gemini-2.5-flash",
			Temperature: 0.3,
			MaxTokens:   800,
		})
	})

	t.Run("pipeline overrides", func(t *testing.T) {
		file, err := config.ParsePipeline([]byte("[llm]\ntemperature = 0.1\nmax_tokens = 300"))
		gt.NoError(t, err)

		settings := c.GeminiSettings(file.SummaryOptions())
		gt.Equal(t, settings.Temperature, float32(0.1))
		gt.Equal(t, settings.MaxTokens, int32(300))
	})
}

func TestSlack_NewNotifier(t *testing.T) {
	gt.Nil(t, (&config.Slack{Token: "xoxb"}).NewNotifier())
	gt.NotNil(t, (&config.Slack{Token: "xoxb", ChannelID: "C123"}).NewNotifier())
}
