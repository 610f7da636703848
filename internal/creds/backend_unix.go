//go:build unix

package creds

import (
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// abortExitCode is the status a shell reports for SIGABRT, used if the
// signal does not end the process in time.
const abortExitCode = 128 + int(unix.SIGABRT)

type unixBackend struct{}

func newPlatformBackend() Backend {
	return unixBackend{}
}

func (unixBackend) Getpid() int  { return unix.Getpid() }
func (unixBackend) Getuid() int  { return unix.Getuid() }
func (unixBackend) Geteuid() int { return unix.Geteuid() }
func (unixBackend) Getgid() int  { return unix.Getgid() }
func (unixBackend) Getegid() int { return unix.Getegid() }

// The syscall package applies setuid, setgid and setgroups to every thread
// of the process on Linux; the kernel calls are per-thread.

func (unixBackend) Setuid(uid int) error {
	return syscallErr("setuid", syscall.Setuid(uid))
}

func (unixBackend) Setgid(gid int) error {
	return syscallErr("setgid", syscall.Setgid(gid))
}

func (unixBackend) Setgroups(gids []int) error {
	return syscallErr("setgroups", syscall.Setgroups(gids))
}

func (unixBackend) Getgroups() ([]int, error) {
	gids, err := unix.Getgroups()
	if err != nil {
		return nil, syscallErr("getgroups", err)
	}
	return gids, nil
}

func (unixBackend) Umask(mask int) (int, error) {
	return unix.Umask(mask), nil
}

// Abort raises SIGABRT. With the traceback level at "crash" the runtime dumps
// the goroutines and then dies of the signal itself, core dump included.
func (unixBackend) Abort() {
	debug.SetTraceback("crash")
	signal.Reset(unix.SIGABRT)
	_ = unix.Kill(unix.Getpid(), unix.SIGABRT)
	time.Sleep(time.Second)
	os.Exit(abortExitCode)
}
