package types

// Version is overwritten at build time with -ldflags
var Version = "dev"

// ServiceName is reported by the health and root endpoints
const ServiceName = "courier"

// DefaultTaskIDPatterns is the canonical ordered list of task identifier
// patterns. Each has exactly one capture group and is matched
// case-insensitively.
var DefaultTaskIDPatterns = []string{
	// feature/86c6t8m47-short-description, feature/CU-86c6t8m47-...
	`/(?:CU-)?([a-z0-9]{9})-`,
	// [86c6t8m47] commit message, [CU-86c6t8m47] ...
	`\[(?:CU-)?([a-z0-9]{9})\]`,
}
