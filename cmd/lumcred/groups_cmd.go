package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hnrobert/lumcred/internal/creds"
)

type groupEntry struct {
	GID  int    `json:"gid"`
	Name string `json:"name,omitempty"`
}

func (a *app) groupsCommand() *cobra.Command {
	var names bool

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Show the supplementary groups, effective gid included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printGroupSet(cmd.OutOrStdout(), names)
		},
	}
	cmd.Flags().BoolVarP(&names, "names", "n", false, "Print group names instead of numbers")
	return cmd
}

func (a *app) setgroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setgroups [NAME...]",
		Short: "Replace the supplementary groups with the named groups",
		Long:  "setgroups resolves every NAME first and only then replaces the group list, so a name that does not resolve leaves the list unchanged. Without arguments the list is cleared. Needs privilege.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.acc.SetGroups(args); err != nil {
				return err
			}
			return a.printGroupSet(cmd.OutOrStdout(), false)
		},
	}
}

func (a *app) initgroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "initgroups USER GROUP",
		Short: "Set the supplementary groups to USER's groups plus GROUP",
		Long:  "USER and GROUP are each a name or a numeric id. The list installed is GROUP followed by every group the directory lists for USER. Needs privilege.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, group := creds.ParsePrincipal(args[0]), creds.ParsePrincipal(args[1])
			if err := a.acc.InitGroups(user, group); err != nil {
				return err
			}
			return a.printGroupSet(cmd.OutOrStdout(), false)
		},
	}
}

func (a *app) printGroupSet(w io.Writer, names bool) error {
	gids, err := a.acc.Groups()
	if err != nil {
		return err
	}

	entries := make([]groupEntry, len(gids))
	for i, gid := range gids {
		entries[i].GID = gid
		if !names && !a.jsonOutput {
			continue
		}
		name, err := a.acc.Resolver().ResolveGroupName(gid)
		switch {
		case err == nil:
			entries[i].Name = name
		case errors.Is(err, creds.ErrNotFound):
			// groups without a directory entry print as numbers
		default:
			return err
		}
	}

	if a.jsonOutput {
		return printJSON(w, entries)
	}
	fields := make([]string, len(entries))
	for i, e := range entries {
		fields[i] = strconv.Itoa(e.GID)
		if names && e.Name != "" {
			fields[i] = e.Name
		}
	}
	fmt.Fprintln(w, strings.Join(fields, " "))
	return nil
}
