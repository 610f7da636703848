//go:build windows

package osinfo

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Type returns the family name Windows reports in the OS environment variable.
func Type() (string, error) {
	return "Windows_NT", nil
}

// Release returns major.minor.build. RtlGetVersion is used because
// GetVersionEx lies to processes without a compatibility manifest.
func Release() (string, error) {
	v := windows.RtlGetVersion()
	if v == nil {
		return "", fmt.Errorf("RtlGetVersion returned no data")
	}
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber), nil
}
