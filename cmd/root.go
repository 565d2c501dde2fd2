// Package cmd defines the cusreport command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/cus-report/internal/logging"
)

// rootOptions carries state shared between the command and Execute.
type rootOptions struct {
	cfgFile string
	// development is the logging mode in effect: the flag value, replaced by
	// the loaded configuration once it resolves.
	development bool
}

// newRootCmd creates the root command. Running it without a subcommand
// generates the report.
func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cusreport",
		Short: "Builds a Word report of regulatory bodies for a region.",
		Long: `cusreport downloads the list of regulatory bodies from the contacts API,
keeps the ones belonging to a region, and writes a .docx document with the
totals per body type and a table of the selected bodies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (yaml, toml or json)")
	flags := cmd.Flags()
	flags.String("region", "18", "region code to select")
	flags.String("url", "", "contacts API URL")
	flags.String("output-dir", ".", "directory for the local storage backend")
	flags.String("file-name", "", "document file name (default cus-<region>-<timestamp>.docx)")
	flags.String("storage", "local", "storage backend: local, gcs or memory")
	flags.BoolVar(&opts.development, "development", true, "human readable development logging")

	cmd.AddCommand(newInspectCmd())
	return cmd
}

// Execute runs the CLI and exits non-zero on failure. The failure is logged
// in the same mode as the rest of the run.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := &rootOptions{development: true}
	if err := newRootCmd(opts).ExecuteContext(ctx); err != nil {
		stop()
		logger, lerr := logging.New(opts.development)
		if lerr != nil {
			fmt.Fprintf(os.Stderr, "cusreport: %v\n", err)
			os.Exit(1)
		}
		logger.Fatal("command execution failed", zap.Error(err))
	}
}
