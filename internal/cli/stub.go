package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/claimsdesk/fnol/internal/stub"
)

func newStubCmd() *cobra.Command {
	var opts stub.Options

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve a stand-in claims service for local testing",
		Long: `Stub serves GET / and POST /process on the given address and replays a
fixed claim payload for every submitted file. It does no extraction.

Example:
  fnol stub --addr 127.0.0.1:8000
  fnol stub --fixture testdata/claim.json --delay 2s
  fnol stub --status 503 --body "extractor offline"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			return stub.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "127.0.0.1:8000", "listen address")
	cmd.Flags().StringVar(&opts.FixturePath, "fixture", "", "claim JSON to replay (default: built-in sample)")
	cmd.Flags().IntVar(&opts.Status, "status", 0, "force this HTTP status for every submission")
	cmd.Flags().StringVar(&opts.Body, "body", "", "response body sent with --status")
	cmd.Flags().DurationVar(&opts.Delay, "delay", 0, "artificial latency per submission")
	return cmd
}
