package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/courier/pkg/usecase"
)

func TestFormatReport(t *testing.T) {
	details := sampleDetails()
	details.Branch = "feature/86c6t8m47-login"

	report := usecase.FormatReport(details, "AI SUMMARY TEXT")

	want := []string{
		"**Git Push Update**",
		"**Branch:** `feature/86c6t8m47-login`",
		"**Commit:** `65f52c2`",
		"**Author:** Test User",
		"**Time:** 2025-01-15 10:30",
		"---",
		"AI SUMMARY TEXT",
		"---",
		"**Statistics:**",
		"Added: 12 lines",
		"Deleted: 3 lines",
		"Total: 15 lines",
		"Files: 2",
		"**Commit message:** _[86c6t8m47] Dodao test 2_",
	}

	// every section must appear in this order
	pos := 0
	for _, w := range want {
		idx := strings.Index(report[pos:], w)
		if idx < 0 {
			t.Fatalf("section %q not found after offset %d in report:\n%s", w, pos, report)
		}
		pos += idx + len(w)
	}

	gt.Value(t, strings.HasSuffix(report, "_[86c6t8m47] Dodao test 2_\n")).Equal(true)
}

func TestFormatReport_DefaultBranch(t *testing.T) {
	report := usecase.FormatReport(sampleDetails(), "summary")
	gt.String(t, report).Contains("**Branch:** `main`")
}
