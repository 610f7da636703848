package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnrobert/lumcred/internal/creds"
)

type umaskResult struct {
	Mask     string `json:"mask"`
	Previous string `json:"previous,omitempty"`
}

func (a *app) umaskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "umask [MASK]",
		Short: "Show the file-creation mask, or set it to the octal MASK",
		Long:  "Without MASK the current mask is printed. With MASK (for example 022 or 0o027) the mask is installed and the previous one is reported.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res umaskResult
			if len(args) == 0 {
				mask, err := a.acc.Umask()
				if err != nil {
					return err
				}
				res.Mask = creds.FormatUmask(mask)
			} else {
				mask, err := creds.ParseUmask(args[0])
				if err != nil {
					return err
				}
				prev, err := a.acc.SetUmask(mask)
				if err != nil {
					return err
				}
				res = umaskResult{Mask: creds.FormatUmask(mask), Previous: creds.FormatUmask(prev)}
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, res)
			}
			if res.Previous != "" {
				fmt.Fprintf(out, "%s (was %s)\n", res.Mask, res.Previous)
				return nil
			}
			fmt.Fprintln(out, res.Mask)
			return nil
		},
	}
}
