package main

import (
	"errors"

	"github.com/hnrobert/lumcred/internal/creds"
)

// Exit codes let scripts tell resolution failures from permission problems.
const (
	ExitCodeSuccess         = 0
	ExitCodeGeneralError    = 1
	ExitCodeNotFound        = 2
	ExitCodeLookupError     = 3
	ExitCodePermissionError = 4
	ExitCodeUnsupported     = 5
	ExitCodeInvalidArgument = 6
)

// exitCodeFor maps an error to its exit code. A missing account is reported
// as not found even when the directory wrapped it in a lookup error.
func exitCodeFor(err error) int {
	var serr *creds.SyscallError
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, creds.ErrUnsupported):
		return ExitCodeUnsupported
	case errors.Is(err, creds.ErrNotFound):
		return ExitCodeNotFound
	case errors.Is(err, creds.ErrLookup):
		return ExitCodeLookupError
	case errors.Is(err, creds.ErrInvalidArgument):
		return ExitCodeInvalidArgument
	case errors.Is(err, creds.ErrPermission), errors.As(err, &serr):
		return ExitCodePermissionError
	default:
		return ExitCodeGeneralError
	}
}

func exitCodeDescription(code int) string {
	switch code {
	case ExitCodeSuccess:
		return "Success"
	case ExitCodeGeneralError:
		return "General error"
	case ExitCodeNotFound:
		return "User or group not found"
	case ExitCodeLookupError:
		return "Account directory lookup failed"
	case ExitCodePermissionError:
		return "Credential syscall failed"
	case ExitCodeUnsupported:
		return "Not supported on this platform"
	case ExitCodeInvalidArgument:
		return "Invalid argument"
	default:
		return "Unknown error"
	}
}
