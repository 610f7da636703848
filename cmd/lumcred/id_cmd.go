package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnrobert/lumcred/internal/creds"
)

func (a *app) idCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "id",
		Short: "Show the process id and the real and effective user and group ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := a.acc.Identity()
			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, id)
			}
			fmt.Fprintf(out, "pid=%d uid=%s euid=%s gid=%s egid=%s\n",
				id.PID, formatID(id.UID), formatID(id.EUID), formatID(id.GID), formatID(id.EGID))
			return nil
		},
	}
}

func (a *app) uidCommand() *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "uid",
		Short: "Show the real user id, or change it with --set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("set") {
				p := creds.ParsePrincipal(set)
				uid := p.ID
				if !p.IsID() {
					var err error
					if uid, err = a.acc.Resolver().ResolveUserID(p.Name); err != nil {
						return err
					}
				}
				if err := a.acc.SetUserID(uid); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatID(a.acc.Identity().UID))
			return nil
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "Switch to this user (name or uid); needs privilege")
	return cmd
}

func (a *app) gidCommand() *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "gid",
		Short: "Show the real group id, or change it with --set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("set") {
				gid, err := a.acc.Resolver().ResolveGroup(creds.ParsePrincipal(set))
				if err != nil {
					return err
				}
				if err := a.acc.SetGroupID(gid); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatID(a.acc.Identity().GID))
			return nil
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "Switch to this group (name or gid); needs privilege")
	return cmd
}

// formatID prints ids the platform does not have as "unsupported".
func formatID(id int) string {
	if id == creds.Unsupported {
		return "unsupported"
	}
	return fmt.Sprint(id)
}
