package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hnrobert/lumcred/internal/logger"
	"github.com/hnrobert/lumcred/internal/osinfo"
)

func (a *app) osCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "os",
		Short: "Show the operating system type, release and byte order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := osinfo.Collect()
			if err != nil {
				return fmt.Errorf("failed to query the operating system: %w", err)
			}
			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, info)
			}
			fmt.Fprintf(out, "type:       %s\n", info.Type)
			fmt.Fprintf(out, "release:    %s\n", info.Release)
			fmt.Fprintf(out, "endianness: %s\n", info.Endianness)
			return nil
		},
	}
}

func (a *app) abortCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "abort",
		Short: "Terminate abnormally (SIGABRT on POSIX)",
		Long:  "abort ends lumcred immediately without cleanup. On POSIX systems the process dies of SIGABRT, which may produce a core dump.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			log := logger.L()
			log.Warn("aborting", zap.Int("pid", a.acc.Identity().PID))
			_ = log.Sync()
			a.acc.Abort()
			return nil
		},
	}
}
