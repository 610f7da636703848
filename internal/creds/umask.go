package creds

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxUmask is the largest mask the permission bits allow.
const MaxUmask = 0o777

// umaskTransient is installed briefly by Umask while it reads the current mask.
const umaskTransient = 0

// SetUmask installs mask and returns the mask that was in effect before.
func (a *Accessor) SetUmask(mask int) (int, error) {
	if mask < 0 || mask > MaxUmask {
		return 0, fmt.Errorf("umask %o: %w", mask, ErrInvalidArgument)
	}
	return a.os.Umask(mask)
}

// Umask returns the current mask. The OS only offers "set and return the
// old value", so Umask installs a transient mask and immediately puts the old
// one back.
//
// This is not atomic. A file created by another goroutine between the two
// calls is created with the transient mask (0), i.e. with the full permissions
// it asked for. Callers that create files concurrently and depend on the
// exact mask must serialise Umask against that code.
func (a *Accessor) Umask() (int, error) {
	old, err := a.os.Umask(umaskTransient)
	if err != nil {
		return 0, err
	}
	if _, err := a.os.Umask(old); err != nil {
		return 0, err
	}
	return old, nil
}

// ParseUmask reads an octal mask such as "022", "0022" or "0o022".
func ParseUmask(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	if s == "" {
		return 0, fmt.Errorf("empty umask: %w", ErrInvalidArgument)
	}
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil || n > MaxUmask {
		return 0, fmt.Errorf("umask %q: %w", s, ErrInvalidArgument)
	}
	return int(n), nil
}

func FormatUmask(mask int) string {
	return fmt.Sprintf("%04o", mask)
}
