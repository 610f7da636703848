package creds

import (
	"fmt"
	"syscall"
)

// fakeBackend records calls instead of touching the process.
type fakeBackend struct {
	pid, uid, euid, gid, egid int

	groups    []int
	groupsErr error
	mask      int

	privileged bool

	setgroupsCalls [][]int
	umaskCalls     []int
	aborted        bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{pid: 4321, uid: 1000, euid: 1000, gid: 1000, egid: 1000, groups: []int{1000}, mask: 0o022}
}

func (f *fakeBackend) Getpid() int  { return f.pid }
func (f *fakeBackend) Getuid() int  { return f.uid }
func (f *fakeBackend) Geteuid() int { return f.euid }
func (f *fakeBackend) Getgid() int  { return f.gid }
func (f *fakeBackend) Getegid() int { return f.egid }

func (f *fakeBackend) Setuid(uid int) error {
	if !f.privileged {
		return syscallErr("setuid", syscall.EPERM)
	}
	f.uid, f.euid = uid, uid
	return nil
}

func (f *fakeBackend) Setgid(gid int) error {
	if !f.privileged {
		return syscallErr("setgid", syscall.EPERM)
	}
	f.gid, f.egid = gid, gid
	return nil
}

func (f *fakeBackend) Getgroups() ([]int, error) {
	if f.groupsErr != nil {
		return nil, syscallErr("getgroups", f.groupsErr)
	}
	out := make([]int, len(f.groups))
	copy(out, f.groups)
	return out, nil
}

func (f *fakeBackend) Setgroups(gids []int) error {
	f.setgroupsCalls = append(f.setgroupsCalls, append([]int(nil), gids...))
	if !f.privileged {
		return syscallErr("setgroups", syscall.EPERM)
	}
	f.groups = append([]int(nil), gids...)
	return nil
}

func (f *fakeBackend) Umask(mask int) (int, error) {
	f.umaskCalls = append(f.umaskCalls, mask)
	old := f.mask
	f.mask = mask
	return old, nil
}

func (f *fakeBackend) Abort() {
	f.aborted = true
}

// unsupportedBackend behaves like a platform without POSIX credentials.
type unsupportedBackend struct{ fakeBackend }

func (unsupportedBackend) Getuid() int  { return Unsupported }
func (unsupportedBackend) Geteuid() int { return Unsupported }
func (unsupportedBackend) Getgid() int  { return Unsupported }
func (unsupportedBackend) Getegid() int { return Unsupported }

func (unsupportedBackend) Getgroups() ([]int, error) {
	return nil, fmt.Errorf("getgroups: %w", ErrUnsupported)
}
