package accounts

import (
	"fmt"
	"io"

	"github.com/hnrobert/lumcred/internal/hostfs"
)

// Files reads account records from passwd and group files. NewFiles
// locates them below a root directory.
type Files struct {
	PasswdPath string
	GroupPath  string
}

func NewFiles(root string) (*Files, error) {
	passwd, err := hostfs.Path(root, hostfs.EtcPasswdRel)
	if err != nil {
		return nil, err
	}
	group, err := hostfs.Path(root, hostfs.EtcGroupRel)
	if err != nil {
		return nil, err
	}
	return &Files{PasswdPath: passwd, GroupPath: group}, nil
}

func (f *Files) LookupUser(name string) (User, error) {
	return findUser(f.PasswdPath, func(u User) bool { return u.Name == name }, "user %q", name)
}

func (f *Files) LookupUserID(uid int) (User, error) {
	return findUser(f.PasswdPath, func(u User) bool { return u.UID == uid }, "uid %d", uid)
}

func (f *Files) LookupGroup(name string) (Group, error) {
	return findGroup(f.GroupPath, func(g Group) bool { return g.Name == name }, "group %q", name)
}

func (f *Files) LookupGroupID(gid int) (Group, error) {
	return findGroup(f.GroupPath, func(g Group) bool { return g.GID == gid }, "gid %d", gid)
}

func (f *Files) GroupIDs(u User) ([]int, error) {
	gids := []int{u.GID}
	seen := map[int]bool{u.GID: true}
	err := hostfs.ReadStream(f.GroupPath, func(r io.Reader) error {
		return scanRecords(r, 4, parseGroup, func(g Group) bool {
			if seen[g.GID] {
				return true
			}
			for _, m := range g.Members {
				if m == u.Name {
					gids = append(gids, g.GID)
					seen[g.GID] = true
					break
				}
			}
			return true
		})
	})
	if err != nil {
		return nil, wrapOpen(err, f.GroupPath)
	}
	return gids, nil
}

func findUser(path string, match func(User) bool, format string, args ...any) (User, error) {
	var found *User
	err := hostfs.ReadStream(path, func(r io.Reader) error {
		return scanRecords(r, 7, parsePasswd, func(u User) bool {
			if match(u) {
				found = &u
				return false
			}
			return true
		})
	})
	if err != nil {
		return User{}, wrapOpen(err, path)
	}
	if found == nil {
		return User{}, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
	}
	return *found, nil
}

func findGroup(path string, match func(Group) bool, format string, args ...any) (Group, error) {
	var found *Group
	err := hostfs.ReadStream(path, func(r io.Reader) error {
		return scanRecords(r, 4, parseGroup, func(g Group) bool {
			if match(g) {
				found = &g
				return false
			}
			return true
		})
	})
	if err != nil {
		return Group{}, wrapOpen(err, path)
	}
	if found == nil {
		return Group{}, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
	}
	return *found, nil
}

// wrapOpen leaves scan errors (already ErrLookup) alone and turns open
// failures into ErrLookup: a missing database is not a missing entry.
func wrapOpen(err error, path string) error {
	if isLookup(err) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return fmt.Errorf("%w: %v", ErrLookup, err)
}
