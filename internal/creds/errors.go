package creds

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/hnrobert/lumcred/internal/accounts"
)

var (
	ErrNotFound        = accounts.ErrNotFound
	ErrLookup          = accounts.ErrLookup
	ErrPermission      = fs.ErrPermission
	ErrUnsupported     = fmt.Errorf("credential operation %w on this platform", errors.ErrUnsupported)
	ErrInvalidArgument = errors.New("invalid argument")
)

// SyscallError records a failed credential syscall and the OS error it
// returned. errors.Is(err, ErrPermission) reports EPERM/EACCES.
type SyscallError struct {
	Op  string
	Err error
}

func (e *SyscallError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SyscallError) Unwrap() error {
	return e.Err
}

func syscallErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SyscallError{Op: op, Err: err}
}
