package creds

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hnrobert/lumcred/internal/accounts"
)

// Identity is a snapshot of the process ids. Fields the platform has no
// notion of hold Unsupported.
type Identity struct {
	PID  int `json:"pid"`
	UID  int `json:"uid"`
	EUID int `json:"euid"`
	GID  int `json:"gid"`
	EGID int `json:"egid"`
}

type Accessor struct {
	res *Resolver
	os  Backend
	log *zap.Logger
}

// New returns an Accessor resolving names through dir and issuing syscalls
// through b. A nil logger disables logging.
func New(dir accounts.Directory, b Backend, log *zap.Logger) *Accessor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Accessor{res: NewResolver(dir, b), os: b, log: log.Named("creds")}
}

func (a *Accessor) Resolver() *Resolver {
	return a.res
}

// Identity reads the ids again on every call.
func (a *Accessor) Identity() Identity {
	return Identity{
		PID:  a.os.Getpid(),
		UID:  a.os.Getuid(),
		EUID: a.os.Geteuid(),
		GID:  a.os.Getgid(),
		EGID: a.os.Getegid(),
	}
}

func (a *Accessor) SetUserID(uid int) error {
	if uid < 0 {
		return fmt.Errorf("uid %d: %w", uid, ErrInvalidArgument)
	}
	if err := a.os.Setuid(uid); err != nil {
		a.log.Warn("setuid failed", zap.Int("uid", uid), zap.Error(err))
		return err
	}
	a.log.Info("uid changed", zap.Int("uid", uid))
	return nil
}

func (a *Accessor) SetGroupID(gid int) error {
	if gid < 0 {
		return fmt.Errorf("gid %d: %w", gid, ErrInvalidArgument)
	}
	if err := a.os.Setgid(gid); err != nil {
		a.log.Warn("setgid failed", zap.Int("gid", gid), zap.Error(err))
		return err
	}
	a.log.Info("gid changed", zap.Int("gid", gid))
	return nil
}

// Groups returns the supplementary groups, effective gid included.
func (a *Accessor) Groups() ([]int, error) {
	return a.res.EffectiveGroupSet()
}

// SetGroups replaces the supplementary group list with the named groups.
// All names are resolved before the list is touched; the first name that
// does not resolve aborts the call and the list stays as it was.
func (a *Accessor) SetGroups(names []string) error {
	if len(names) > MaxGroups {
		return fmt.Errorf("%d groups (max %d): %w", len(names), MaxGroups, ErrInvalidArgument)
	}
	gids := make([]int, len(names))
	for i, name := range names {
		gid, err := a.res.ResolveGroupID(name)
		if err != nil {
			return fmt.Errorf("setgroups: %w", err)
		}
		gids[i] = gid
	}
	return a.setgroups(gids)
}

// InitGroups sets the supplementary groups to the default set of user plus
// extra, as initgroups(3) does. Either argument may be a name or an id; all
// resolution happens before the group list is modified.
func (a *Accessor) InitGroups(user, extra Principal) error {
	u, err := a.res.ResolveUser(user)
	if err != nil {
		return fmt.Errorf("initgroups: %w", err)
	}
	gid, err := a.res.ResolveGroup(extra)
	if err != nil {
		return fmt.Errorf("initgroups: %w", err)
	}
	if gid < 0 {
		return fmt.Errorf("initgroups: gid %d: %w", gid, ErrInvalidArgument)
	}
	gids, err := a.res.DefaultGroupSet(u, gid)
	if err != nil {
		return fmt.Errorf("initgroups: %w", err)
	}
	if len(gids) > MaxGroups {
		return fmt.Errorf("initgroups: %d groups (max %d): %w", len(gids), MaxGroups, ErrInvalidArgument)
	}
	return a.setgroups(gids)
}

func (a *Accessor) setgroups(gids []int) error {
	if err := a.os.Setgroups(gids); err != nil {
		a.log.Warn("setgroups failed", zap.Ints("gids", gids), zap.Error(err))
		return err
	}
	a.log.Info("supplementary groups changed", zap.Ints("gids", gids))
	return nil
}

// Abort ends the process at once. Deferred functions do not run and buffered
// log output may be lost.
func (a *Accessor) Abort() {
	a.os.Abort()
}
