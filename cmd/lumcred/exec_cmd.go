package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnrobert/lumcred/internal/creds"
)

type execOptions struct {
	user   string
	group  string
	groups []string
}

// execPlan is the fully resolved identity exec switches to. A negative id
// means "leave unchanged".
type execPlan struct {
	user      creds.Principal
	uid       int
	gid       int
	hasUser   bool
	setGroups bool
	groups    []string
}

func (a *app) execCommand() *cobra.Command {
	var opts execOptions

	cmd := &cobra.Command{
		Use:   "exec [--user U] [--group G] [--groups a,b] -- COMMAND [ARG...]",
		Short: "Run COMMAND under a different identity",
		Long: "exec resolves the target identity, installs the supplementary groups " +
			"(--groups, or the initgroups set of --user), then the gid and the uid, " +
			"and replaces lumcred with COMMAND. Nothing is changed if any name fails to resolve.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			plan, err := a.planExec(opts)
			if err != nil {
				return err
			}
			if err := a.applyPlan(plan); err != nil {
				return err
			}
			return execve(args)
		},
	}
	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "User name or uid to run as")
	cmd.Flags().StringVarP(&opts.group, "group", "g", "", "Group name or gid to run as (default: the user's primary group)")
	cmd.Flags().StringSliceVarP(&opts.groups, "groups", "G", nil, "Supplementary group names (default: the user's groups)")
	return cmd
}

// planExec resolves every name in opts without changing the process.
func (a *app) planExec(opts execOptions) (execPlan, error) {
	res := a.acc.Resolver()
	plan := execPlan{uid: -1, gid: -1, groups: opts.groups, setGroups: opts.groups != nil}

	if opts.user != "" {
		u, err := res.ResolveUser(creds.ParsePrincipal(opts.user))
		if err != nil {
			return execPlan{}, fmt.Errorf("exec: %w", err)
		}
		plan.user = creds.ByID(u.UID)
		plan.hasUser = true
		plan.uid = u.UID
		plan.gid = u.GID
	}
	if opts.group != "" {
		gid, err := res.ResolveGroup(creds.ParsePrincipal(opts.group))
		if err != nil {
			return execPlan{}, fmt.Errorf("exec: %w", err)
		}
		plan.gid = gid
	}
	for _, name := range plan.groups {
		if _, err := res.ResolveGroupID(name); err != nil {
			return execPlan{}, fmt.Errorf("exec: %w", err)
		}
	}
	return plan, nil
}

// applyPlan changes groups before the gid and the gid before the uid; once
// the uid is dropped the other two can no longer be changed.
func (a *app) applyPlan(p execPlan) error {
	switch {
	case p.setGroups:
		if err := a.acc.SetGroups(p.groups); err != nil {
			return err
		}
	case p.hasUser:
		if err := a.acc.InitGroups(p.user, creds.ByID(p.gid)); err != nil {
			return err
		}
	}
	if p.gid >= 0 {
		if err := a.acc.SetGroupID(p.gid); err != nil {
			return err
		}
	}
	if p.uid >= 0 {
		if err := a.acc.SetUserID(p.uid); err != nil {
			return err
		}
	}
	return nil
}
