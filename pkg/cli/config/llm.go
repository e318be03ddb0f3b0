package config

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/infra/llm"
	"github.com/m-mizutani/courier/pkg/usecase"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// LLM holds completion provider configuration
type LLM struct {
	Provider string

	GroqAPIKey  string `masq:"secret"`
	GroqBaseURL string

	GeminiProjectID string
	GeminiLocation  string
	GeminiModel     string
}

// Flags returns CLI flags for LLM configuration
func (c *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "Completion provider (groq, gemini)",
			Value:       ProviderGroq,
			Destination: &c.Provider,
			Sources:     cli.EnvVars("COURIER_LLM_PROVIDER"),
		},
		&cli.StringFlag{
			Name:        "groq-api-key",
			Usage:       "Groq API key",
			Destination: &c.GroqAPIKey,
			Sources:     cli.EnvVars("COURIER_GROQ_API_KEY", "GROQ_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "groq-base-url",
			Usage:       "OpenAI-compatible API base URL",
			Value:       llm.DefaultGroqBaseURL,
			Destination: &c.GroqBaseURL,
			Sources:     cli.EnvVars("COURIER_GROQ_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "gemini-project-id",
			Usage:       "Google Cloud Project ID for Gemini",
			Destination: &c.GeminiProjectID,
			Sources:     cli.EnvVars("COURIER_GEMINI_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Vertex AI location/region",
			Value:       "us-central1",
			Destination: &c.GeminiLocation,
			Sources:     cli.EnvVars("COURIER_GEMINI_LOCATION"),
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model to use",
			Value:       "gemini-2.5-flash",
			Destination: &c.GeminiModel,
			Sources:     cli.EnvVars("COURIER_GEMINI_MODEL"),
		},
	}
}

// GeminiSettings are the generation parameters fixed on the gemini client
type GeminiSettings struct {
	Model       string
	Temperature float32
	MaxTokens   int32
}

// GeminiSettings applies the summary temperature and token cap to the gemini model
func (c *LLM) GeminiSettings(opts usecase.SummaryOptions) GeminiSettings {
	return GeminiSettings{
		Model:       c.GeminiModel,
		Temperature: opts.Temperature,
		MaxTokens:   int32(opts.MaxTokens),
	}
}

// NewClient creates the completion client for the selected provider. Missing
// credentials do not fail here; the upstream rejects the calls and the summary
// falls back to the degraded notice.
func (c *LLM) NewClient(ctx context.Context, opts usecase.SummaryOptions, timeout time.Duration) (interfaces.LLMClient, error) {
	switch c.Provider {
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			ctxlog.From(ctx).Warn("groq-api-key is not set, summaries will fail")
		}
		return llm.NewOpenAI(c.GroqAPIKey,
			llm.WithBaseURL(c.GroqBaseURL),
			llm.WithTimeout(timeout),
		), nil

	case ProviderGemini:
		if c.GeminiProjectID == "" {
			err := goerr.New("gemini-project-id is not set")
			ctxlog.From(ctx).Warn("Gemini is not configured, summaries will fail", "error", err)
			return llm.NewUnavailable(err), nil
		}

		settings := c.GeminiSettings(opts)
		client, err := gemini.New(ctx, c.GeminiLocation, c.GeminiProjectID,
			gemini.WithModel(settings.Model),
			gemini.WithTemperature(settings.Temperature),
			gemini.WithMaxTokens(settings.MaxTokens),
		)
		if err != nil {
			err = goerr.Wrap(err, "failed to create gemini client",
				goerr.V("project_id", c.GeminiProjectID),
				goerr.V("location", c.GeminiLocation))
			ctxlog.From(ctx).Warn("Gemini client unavailable, summaries will fail", "error", err)
			return llm.NewUnavailable(err), nil
		}
		return llm.NewGollem(client, timeout), nil
	}

	return nil, goerr.New("unknown llm provider", goerr.V("provider", c.Provider))
}

// ModelName is the model reported by diagnostics for the selected provider
func (c *LLM) ModelName(pipelineModel string) string {
	if c.Provider == ProviderGemini {
		return c.GeminiModel
	}
	return pipelineModel
}
