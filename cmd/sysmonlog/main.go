package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/sysmonlog/internal/app"
	"github.com/Dicklesworthstone/sysmonlog/internal/config"
	apperrors "github.com/Dicklesworthstone/sysmonlog/internal/errors"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitSuccess
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sysmonlog",
		Short: "Sample host resource usage, alert on thresholds and export logs",
		Long: `sysmonlog samples CPU, memory, disk and network usage together with the
top CPU and memory consumers, prints a report per sample and alerts when a
threshold is exceeded. Every few samples the whole log is written to CSV and
JSON and a chart is shown. Ctrl+C stops monitoring after a final export.

Every flag can also be set through the environment, e.g.
  SYSMONLOG_CPU_THRESHOLD=90 SYSMONLOG_PLOT=false sysmonlog`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()).Run(ctx)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.NewConfigError("%v", err)
	})
	config.RegisterFlags(cmd.Flags())
	return cmd
}
