package main

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hnrobert/lumcred/internal/creds"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitCodeSuccess},
		{name: "not found", err: fmt.Errorf("setgroups: %w", creds.ErrNotFound), want: ExitCodeNotFound},
		{name: "not found inside lookup", err: fmt.Errorf("%w: %w", creds.ErrLookup, creds.ErrNotFound), want: ExitCodeNotFound},
		{name: "lookup", err: fmt.Errorf("%w: %w", creds.ErrLookup, syscall.EINVAL), want: ExitCodeLookupError},
		{name: "permission", err: &creds.SyscallError{Op: "setuid", Err: syscall.EPERM}, want: ExitCodePermissionError},
		{name: "other syscall", err: &creds.SyscallError{Op: "setgroups", Err: syscall.EINVAL}, want: ExitCodePermissionError},
		{name: "unsupported", err: fmt.Errorf("setuid: %w", creds.ErrUnsupported), want: ExitCodeUnsupported},
		{name: "invalid", err: fmt.Errorf("umask: %w", creds.ErrInvalidArgument), want: ExitCodeInvalidArgument},
		{name: "other", err: errors.New("boom"), want: ExitCodeGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestExitCodeDescription(t *testing.T) {
	seen := map[string]bool{}
	for code := ExitCodeSuccess; code <= ExitCodeInvalidArgument; code++ {
		d := exitCodeDescription(code)
		assert.NotEqual(t, "Unknown error", d, "code %d", code)
		assert.False(t, seen[d], "duplicate description %q", d)
		seen[d] = true
	}
	assert.Equal(t, "Unknown error", exitCodeDescription(42))
}
