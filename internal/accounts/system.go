package accounts

import (
	"errors"
	"fmt"
	"os/user"
	"strconv"
)

// System resolves accounts through the platform database. With cgo this is
// the reentrant libc lookup family (getpwnam_r, getgrgid_r, getgrouplist),
// so NSS modules configured on the host are honoured.
//
// os/user grows its lookup buffer on ERANGE up to 1 MiB, so records are
// bounded at 1 MiB here rather than at RecordBufferSize.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (System) LookupUser(name string) (User, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return User{}, classify(err, "user %q", name)
	}
	return fromOSUser(u)
}

func (System) LookupUserID(uid int) (User, error) {
	u, err := user.LookupId(strconv.Itoa(uid))
	if err != nil {
		return User{}, classify(err, "uid %d", uid)
	}
	return fromOSUser(u)
}

func (System) LookupGroup(name string) (Group, error) {
	g, err := user.LookupGroup(name)
	if err != nil {
		return Group{}, classify(err, "group %q", name)
	}
	return fromOSGroup(g)
}

func (System) LookupGroupID(gid int) (Group, error) {
	g, err := user.LookupGroupId(strconv.Itoa(gid))
	if err != nil {
		return Group{}, classify(err, "gid %d", gid)
	}
	return fromOSGroup(g)
}

func (System) GroupIDs(u User) ([]int, error) {
	ou, err := user.Lookup(u.Name)
	if err != nil {
		return nil, classify(err, "user %q", u.Name)
	}
	ids, err := ou.GroupIds()
	if err != nil {
		return nil, fmt.Errorf("%w: group list of %q: %v", ErrLookup, u.Name, err)
	}
	gids := []int{u.GID}
	seen := map[int]bool{u.GID: true}
	for _, s := range ids {
		gid, err := atoi(s, "grouplist")
		if err != nil {
			return nil, err
		}
		if !seen[gid] {
			seen[gid] = true
			gids = append(gids, gid)
		}
	}
	return gids, nil
}

func fromOSUser(u *user.User) (User, error) {
	uid, err := atoi(u.Uid, "passwd.uid")
	if err != nil {
		return User{}, err
	}
	gid, err := atoi(u.Gid, "passwd.gid")
	if err != nil {
		return User{}, err
	}
	return User{Name: u.Username, UID: uid, GID: gid, Gecos: u.Name, Home: u.HomeDir}, nil
}

func fromOSGroup(g *user.Group) (Group, error) {
	gid, err := atoi(g.Gid, "group.gid")
	if err != nil {
		return Group{}, err
	}
	return Group{Name: g.Name, GID: gid, Members: []string{}}, nil
}

func classify(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	var (
		unknownUser    user.UnknownUserError
		unknownUserID  user.UnknownUserIdError
		unknownGroup   user.UnknownGroupError
		unknownGroupID user.UnknownGroupIdError
	)
	switch {
	case errors.As(err, &unknownUser), errors.As(err, &unknownUserID),
		errors.As(err, &unknownGroup), errors.As(err, &unknownGroupID):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	default:
		return fmt.Errorf("%w: %s: %v", ErrLookup, what, err)
	}
}
