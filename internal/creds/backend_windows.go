//go:build windows

package creds

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// abortExitCode matches the status abort() produces with the Microsoft C runtime.
const abortExitCode = 3

var (
	modmsvcrt = windows.NewLazySystemDLL("msvcrt.dll")
	procUmask = modmsvcrt.NewProc("_umask")
)

type windowsBackend struct{}

func newPlatformBackend() Backend {
	return windowsBackend{}
}

func (windowsBackend) Getpid() int  { return int(windows.GetCurrentProcessId()) }
func (windowsBackend) Getuid() int  { return Unsupported }
func (windowsBackend) Geteuid() int { return Unsupported }
func (windowsBackend) Getgid() int  { return Unsupported }
func (windowsBackend) Getegid() int { return Unsupported }

func (windowsBackend) Setuid(int) error {
	return fmt.Errorf("setuid: %w", ErrUnsupported)
}

func (windowsBackend) Setgid(int) error {
	return fmt.Errorf("setgid: %w", ErrUnsupported)
}

func (windowsBackend) Getgroups() ([]int, error) {
	return nil, fmt.Errorf("getgroups: %w", ErrUnsupported)
}

func (windowsBackend) Setgroups([]int) error {
	return fmt.Errorf("setgroups: %w", ErrUnsupported)
}

// Umask goes through the C runtime, which applies the mask to files it
// creates with _open/_creat.
func (windowsBackend) Umask(mask int) (int, error) {
	if err := procUmask.Find(); err != nil {
		return 0, fmt.Errorf("_umask: %w: %v", ErrUnsupported, err)
	}
	old, _, _ := procUmask.Call(uintptr(mask))
	return int(old), nil
}

func (windowsBackend) Abort() {
	os.Exit(abortExitCode)
}
