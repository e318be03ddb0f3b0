package usecase

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/courier/pkg/domain/types"
)

// TaskIDExtractor finds a tracker task identifier in a branch name or commit message
type TaskIDExtractor struct {
	patterns []*regexp.Regexp
}

// NewTaskIDExtractor compiles patterns case-insensitively, in order. Each
// pattern must have exactly one capture group. Empty patterns fall back to
// types.DefaultTaskIDPatterns.
func NewTaskIDExtractor(patterns []string) (*TaskIDExtractor, error) {
	if len(patterns) == 0 {
		patterns = types.DefaultTaskIDPatterns
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		expr := p
		if !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}

		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid task id pattern", goerr.V("pattern", p))
		}
		if re.NumSubexp() != 1 {
			return nil, goerr.New("task id pattern must have exactly one capture group",
				goerr.V("pattern", p),
				goerr.V("groups", re.NumSubexp()),
			)
		}
		compiled = append(compiled, re)
	}

	return &TaskIDExtractor{patterns: compiled}, nil
}

// Extract tries every pattern on branch first, then on message
func (x *TaskIDExtractor) Extract(branch, message string) (string, bool) {
	for _, source := range []string{branch, message} {
		for _, re := range x.patterns {
			if m := re.FindStringSubmatch(source); m != nil {
				return m[1], true
			}
		}
	}
	return "", false
}
