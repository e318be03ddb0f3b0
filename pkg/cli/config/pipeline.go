package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/courier/pkg/domain/types"
	"github.com/m-mizutani/courier/pkg/usecase"
)

// Pipeline holds the path of the optional pipeline tuning file
type Pipeline struct {
	Path string
}

// PipelineFile is the TOML layout of the pipeline tuning file
type PipelineFile struct {
	Language       string        `toml:"language"`
	TaskIDPatterns []string      `toml:"task_id_patterns"`
	LLM            PipelineLLM   `toml:"llm"`
	Async          PipelineAsync `toml:"async"`
}

type PipelineLLM struct {
	Model       string   `toml:"model"`
	Temperature *float32 `toml:"temperature"`
	MaxTokens   int      `toml:"max_tokens"`
}

type PipelineAsync struct {
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
}

// Flags returns CLI flags for pipeline configuration
func (c *Pipeline) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "pipeline",
			Usage:       "Path to a TOML file tuning the summary and task ID patterns",
			Destination: &c.Path,
			Sources:     cli.EnvVars("COURIER_PIPELINE"),
		},
	}
}

// Load reads the pipeline file. Without a path the defaults are returned.
func (c *Pipeline) Load() (*PipelineFile, error) {
	if c.Path == "" {
		return &PipelineFile{}, nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read pipeline file", goerr.V("path", c.Path))
	}
	return ParsePipeline(raw)
}

// ParsePipeline decodes TOML pipeline settings
func ParsePipeline(raw []byte) (*PipelineFile, error) {
	var file PipelineFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse pipeline file")
	}
	if file.Async.Workers < 0 || file.Async.QueueSize < 0 {
		return nil, goerr.New("async workers and queue_size must not be negative",
			goerr.V("workers", file.Async.Workers),
			goerr.V("queue_size", file.Async.QueueSize))
	}
	return &file, nil
}

// SummaryOptions merges the file over the default summary settings
func (f *PipelineFile) SummaryOptions() usecase.SummaryOptions {
	opts := usecase.DefaultSummaryOptions()
	if f.Language != "" {
		opts.Language = f.Language
	}
	if f.LLM.Model != "" {
		opts.Model = f.LLM.Model
	}
	if f.LLM.Temperature != nil {
		opts.Temperature = *f.LLM.Temperature
	}
	if f.LLM.MaxTokens > 0 {
		opts.MaxTokens = f.LLM.MaxTokens
	}
	return opts
}

// Patterns returns the task ID patterns, falling back to the defaults
func (f *PipelineFile) Patterns() []string {
	if len(f.TaskIDPatterns) == 0 {
		return types.DefaultTaskIDPatterns
	}
	return f.TaskIDPatterns
}

// Workers returns the async worker count
func (f *PipelineFile) Workers() int {
	if f.Async.Workers == 0 {
		return 4
	}
	return f.Async.Workers
}

// QueueSize returns the async queue capacity
func (f *PipelineFile) QueueSize() int {
	if f.Async.QueueSize == 0 {
		return 64
	}
	return f.Async.QueueSize
}
