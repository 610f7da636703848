//go:build windows

package main

import (
	"fmt"

	"github.com/hnrobert/lumcred/internal/creds"
)

func execve(argv []string) error {
	return fmt.Errorf("exec %s: %w", argv[0], creds.ErrUnsupported)
}
