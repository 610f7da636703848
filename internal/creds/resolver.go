package creds

import (
	"errors"
	"fmt"

	"github.com/hnrobert/lumcred/internal/accounts"
)

// Resolver translates names and ids through a directory and reconciles the
// group list the OS reports.
type Resolver struct {
	dir accounts.Directory
	os  Backend
}

func NewResolver(dir accounts.Directory, b Backend) *Resolver {
	return &Resolver{dir: dir, os: b}
}

// ResolveGroupID returns the gid of the group called name.
func (r *Resolver) ResolveGroupID(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("group name: %w", ErrInvalidArgument)
	}
	g, err := r.dir.LookupGroup(name)
	if err != nil {
		return 0, err
	}
	return g.GID, nil
}

func (r *Resolver) ResolveGroupName(gid int) (string, error) {
	g, err := r.dir.LookupGroupID(gid)
	if err != nil {
		return "", err
	}
	return g.Name, nil
}

// ResolveUserName returns the login name of uid.
func (r *Resolver) ResolveUserName(uid int) (string, error) {
	u, err := r.dir.LookupUserID(uid)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}

func (r *Resolver) ResolveUserID(name string) (int, error) {
	u, err := r.ResolveUser(ByName(name))
	if err != nil {
		return 0, err
	}
	return u.UID, nil
}

// ResolveUser returns the account record p refers to.
func (r *Resolver) ResolveUser(p Principal) (accounts.User, error) {
	if p.IsID() {
		return r.dir.LookupUserID(p.ID)
	}
	if p.Name == "" {
		return accounts.User{}, fmt.Errorf("user name: %w", ErrInvalidArgument)
	}
	return r.dir.LookupUser(p.Name)
}

// ResolveGroup returns the gid p refers to. Numeric principals are taken
// as-is, without consulting the directory.
func (r *Resolver) ResolveGroup(p Principal) (int, error) {
	if p.IsID() {
		return p.ID, nil
	}
	return r.ResolveGroupID(p.Name)
}

// EffectiveGroupSet returns the supplementary groups of the process with the
// effective gid guaranteed present. Several systems leave the egid out of
// getgroups(2); when it is missing it is appended after the groups the OS
// reported, whose order is kept.
func (r *Resolver) EffectiveGroupSet() ([]int, error) {
	groups, err := r.os.Getgroups()
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}
	return withEffective(groups, r.os.Getegid()), nil
}

func withEffective(groups []int, egid int) []int {
	for _, g := range groups {
		if g == egid {
			return groups
		}
	}
	out := make([]int, len(groups), len(groups)+1)
	copy(out, groups)
	return append(out, egid)
}

// DefaultGroupSet computes the list initgroups(3) installs for user: extra
// first, then the groups the directory associates with the user, without
// duplicates.
func (r *Resolver) DefaultGroupSet(user accounts.User, extra int) ([]int, error) {
	member, err := r.dir.GroupIDs(user)
	if err != nil {
		return nil, err
	}
	gids := make([]int, 0, len(member)+1)
	gids = append(gids, extra)
	for _, g := range member {
		if g != extra {
			gids = append(gids, g)
		}
	}
	return gids, nil
}
