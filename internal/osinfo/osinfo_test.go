package osinfo

import (
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndianness(t *testing.T) {
	got := Endianness()
	assert.Contains(t, []string{BigEndian, LittleEndian}, got)

	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 1)
	if buf[0] == 1 {
		assert.Equal(t, LittleEndian, got)
	} else {
		assert.Equal(t, BigEndian, got)
	}

	switch runtime.GOARCH {
	case "amd64", "386", "arm64", "arm", "riscv64", "loong64":
		assert.Equal(t, LittleEndian, got)
	case "s390x", "ppc64":
		assert.Equal(t, BigEndian, got)
	}
}

func TestCollect(t *testing.T) {
	info, err := Collect()
	require.NoError(t, err)
	assert.NotEmpty(t, info.Type)
	assert.NotEmpty(t, info.Release)
	assert.Equal(t, Endianness(), info.Endianness)

	want := map[string]string{
		"linux":   "Linux",
		"darwin":  "Darwin",
		"freebsd": "FreeBSD",
		"windows": "Windows_NT",
	}
	if name, ok := want[runtime.GOOS]; ok {
		assert.Equal(t, name, info.Type)
	}
}
