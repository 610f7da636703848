package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hnrobert/lumcred/internal/accounts"
	"github.com/hnrobert/lumcred/internal/creds"
)

func (a *app) lookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve users and groups through the configured directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "user NAME|UID",
		Short: "Show the account record of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.acc.Resolver().ResolveUser(creds.ParsePrincipal(args[0]))
			if err != nil {
				return err
			}
			gids, err := a.dir.GroupIDs(u)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, struct {
					accounts.User
					Groups []int `json:"groups"`
				}{u, gids})
			}
			fmt.Fprintf(out, "name:   %s\n", u.Name)
			fmt.Fprintf(out, "uid:    %d\n", u.UID)
			fmt.Fprintf(out, "gid:    %d\n", u.GID)
			if u.Gecos != "" {
				fmt.Fprintf(out, "gecos:  %s\n", u.Gecos)
			}
			fmt.Fprintf(out, "home:   %s\n", u.Home)
			if u.Shell != "" {
				fmt.Fprintf(out, "shell:  %s\n", u.Shell)
			}
			fmt.Fprintf(out, "groups: %s\n", joinInts(gids))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "group NAME|GID",
		Short: "Show the record of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.lookupGroup(creds.ParsePrincipal(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, g)
			}
			fmt.Fprintf(out, "name:    %s\n", g.Name)
			fmt.Fprintf(out, "gid:     %d\n", g.GID)
			fmt.Fprintf(out, "members: %s\n", strings.Join(g.Members, ","))
			return nil
		},
	})

	return cmd
}

func (a *app) lookupGroup(p creds.Principal) (accounts.Group, error) {
	if p.IsID() {
		return a.dir.LookupGroupID(p.ID)
	}
	if p.Name == "" {
		return accounts.Group{}, fmt.Errorf("group name: %w", creds.ErrInvalidArgument)
	}
	return a.dir.LookupGroup(p.Name)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, " ")
}
