//go:build unix

package osinfo

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func uname() (*unix.Utsname, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return nil, fmt.Errorf("uname: %w", err)
	}
	return &u, nil
}

// Type returns the kernel name, e.g. "Linux" or "Darwin".
func Type() (string, error) {
	u, err := uname()
	if err != nil {
		return "", err
	}
	return unix.ByteSliceToString(u.Sysname[:]), nil
}

// Release returns the kernel release, e.g. "6.8.0-45-generic".
func Release() (string, error) {
	u, err := uname()
	if err != nil {
		return "", err
	}
	return unix.ByteSliceToString(u.Release[:]), nil
}
