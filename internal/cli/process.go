package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claimsdesk/fnol/internal/app"
	"github.com/claimsdesk/fnol/internal/config"
	"github.com/claimsdesk/fnol/internal/session"
)

// ErrProcessFailed is returned when the submission ends in the failed state.
var ErrProcessFailed = errors.New("processing failed")

func newProcessCmd(g *globals) *cobra.Command {
	var (
		outDir  string
		export  bool
		rawOnly bool
	)

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Submit one document and print the result",
		Long: `Process submits a single PDF/TXT document to the claims service, prints
the route, tone, missing mandatory fields and reasoning, and optionally
writes claim_output.json.

Example:
  fnol process claim1.pdf
  fnol process claim1.pdf --export --out ./exports
  fnol process claim1.txt --raw | jq .recommendedRoute`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.Apply(config.Overrides{ExportDir: outDir})
				export = true
			}
			if g.verbose {
				log.SetOutput(cmd.ErrOrStderr())
			} else {
				log.SetOutput(io.Discard)
			}

			client, err := app.NewClient(cfg)
			if err != nil {
				return err
			}
			report, err := app.ProcessFile(cmd.Context(), cfg, client, args[0], export)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report.State.Phase() == session.PhaseFailed {
				fmt.Fprintln(cmd.ErrOrStderr(), strings.TrimSpace(report.State.LastError))
				return ErrProcessFailed
			}
			if rawOnly {
				fmt.Fprintln(out, report.State.RawText)
			} else {
				printSummary(out, report.State)
			}
			if report.ExportPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "exported %s\n", report.ExportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "directory for claim_output.json (implies --export)")
	cmd.Flags().BoolVar(&export, "export", false, "write claim_output.json to the export directory")
	cmd.Flags().BoolVar(&rawOnly, "raw", false, "print the raw JSON payload only")
	return cmd
}

func printSummary(w io.Writer, s session.State) {
	missing := s.Missing()
	mandatory := "No"
	if !missing.None() {
		mandatory = "Yes"
	}
	fmt.Fprintf(w, "File:               %s\n", s.Selection.Name)
	fmt.Fprintf(w, "Route:              %s (%s)\n", s.LastResult.RecommendedRoute, s.Tone())
	fmt.Fprintf(w, "Mandatory Missing:  %s\n", mandatory)
	fmt.Fprintf(w, "Missing Fields:     %s\n", missing.Text())
	fmt.Fprintf(w, "Reason:             %s\n", strings.TrimSpace(s.LastResult.Reasoning))
}

// Main runs the CLI with args and returns the exit status.
func Main(ctx context.Context, args []string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrProcessFailed) {
			fmt.Fprintf(os.Stderr, "fnol: %v\n", err)
		}
		return 1
	}
	return 0
}
