package usecase

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/courier/pkg/domain/model"
)

// FormatReport renders the comment posted to the task
func FormatReport(details *model.CommitDetails, summary string) string {
	branch := details.Branch
	if branch == "" {
		branch = "main"
	}

	var sb strings.Builder

	sb.WriteString("**Git Push Update**\n\n")
	sb.WriteString(fmt.Sprintf("**Branch:** `%s`\n", branch))
	sb.WriteString(fmt.Sprintf("**Commit:** `%s`\n", details.SHA))
	sb.WriteString(fmt.Sprintf("**Author:** %s\n", details.Author))
	sb.WriteString(fmt.Sprintf("**Time:** %s\n", details.Date))
	sb.WriteString("\n---\n\n")
	sb.WriteString(summary)
	sb.WriteString("\n\n---\n\n")
	sb.WriteString("📊 **Statistics:**\n")
	sb.WriteString(fmt.Sprintf("- ✅ Added: %d lines\n", details.Stats.Additions))
	sb.WriteString(fmt.Sprintf("- ❌ Deleted: %d lines\n", details.Stats.Deletions))
	sb.WriteString(fmt.Sprintf("- 📝 Total: %d lines\n", details.Stats.Total))
	sb.WriteString(fmt.Sprintf("- 📁 Files: %d\n", len(details.Files)))
	sb.WriteString(fmt.Sprintf("\n**Commit message:** _%s_\n", details.Message))

	return sb.String()
}
