package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/courier/pkg/domain/model"
)

func cmdCheck() *cli.Command {
	var cfg serviceConfig

	return &cli.Command{
		Name:  "check",
		Usage: "Check connectivity to GitHub, the LLM provider and ClickUp",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			svc, err := cfg.build(ctx)
			if err != nil {
				return err
			}

			report := svc.diagnostics.CheckConnections(ctx)
			if failed := printReport(os.Stdout, report); failed > 0 {
				return goerr.New("connectivity check failed", goerr.V("failed", failed))
			}
			return nil
		},
	}
}

// printReport writes one colored line per upstream and returns the number of failures
func printReport(w io.Writer, report *model.ConnectivityReport) int {
	ok := color.New(color.FgGreen, color.Bold).SprintFunc()
	ng := color.New(color.FgRed, color.Bold).SprintFunc()

	failed := 0
	for _, row := range []struct {
		name   string
		result string
	}{
		{"github", report.GitHub},
		{"groq", report.LLM},
		{"clickup", report.ClickUp},
	} {
		mark := ok("OK")
		if strings.HasPrefix(row.result, "Error:") {
			mark = ng("NG")
			failed++
		}
		fmt.Fprintf(w, "[%s] %-8s %s\n", mark, row.name, row.result)
	}
	return failed
}
