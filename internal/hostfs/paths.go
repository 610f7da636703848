package hostfs

import (
	"errors"
	"path/filepath"
	"strings"
)

// DefaultRoot is the root of the running system.
const DefaultRoot = "/"

// Well-known account file locations, relative to a root.
const (
	EtcPasswdRel = "etc/passwd"
	EtcGroupRel  = "etc/group"
)

var ErrInvalidPath = errors.New("invalid host path")

// Path joins root with a relative path (a leading slash is ignored).
// Example: Path("/host", "etc/passwd") -> /host/etc/passwd
func Path(root, rel string) (string, error) {
	if root == "" {
		root = DefaultRoot
	}
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	clean := filepath.Clean(rel)
	if clean == "." || clean == "" {
		return "", ErrInvalidPath
	}
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, `..\`) {
		return "", ErrInvalidPath
	}
	return filepath.Join(root, clean), nil
}
