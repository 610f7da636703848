//go:build unix

package creds

import (
	"os"
	"os/exec"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/lumcred/internal/accounts"
)

func liveAccessor(t *testing.T) *Accessor {
	t.Helper()
	return New(accounts.NewSystem(), DefaultBackend(), nil)
}

func TestLiveIdentity(t *testing.T) {
	id := liveAccessor(t).Identity()
	assert.Equal(t, os.Getpid(), id.PID)
	assert.Equal(t, os.Getuid(), id.UID)
	assert.Equal(t, os.Geteuid(), id.EUID)
	assert.Equal(t, os.Getgid(), id.GID)
	assert.Equal(t, os.Getegid(), id.EGID)
}

func TestLiveGroupsContainEffectiveGID(t *testing.T) {
	groups, err := liveAccessor(t).Groups()
	require.NoError(t, err)
	assert.Contains(t, groups, os.Getegid())
}

func TestLiveUmask(t *testing.T) {
	a := liveAccessor(t)

	orig, err := a.SetUmask(0o027)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = a.SetUmask(orig) })

	first, err := a.Umask()
	require.NoError(t, err)
	second, err := a.Umask()
	require.NoError(t, err)
	assert.Equal(t, 0o027, first)
	assert.Equal(t, first, second)

	prev, err := a.SetUmask(0o077)
	require.NoError(t, err)
	assert.Equal(t, 0o027, prev)

	now, err := a.Umask()
	require.NoError(t, err)
	assert.Equal(t, 0o077, now)
}

func TestLiveSetUserIDWithoutPrivilege(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root; setuid would succeed")
	}
	a := liveAccessor(t)

	err := a.SetUserID(0)
	var serr *SyscallError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "setuid", serr.Op)
	assert.ErrorIs(t, err, ErrPermission)
	assert.Equal(t, os.Getuid(), a.Identity().UID)
}

func TestLiveSetGroupsUnresolvableLeavesGroupsUnchanged(t *testing.T) {
	a := liveAccessor(t)
	before, err := a.Groups()
	require.NoError(t, err)

	err = a.SetGroups([]string{"root", "nonexistent-group-xyz"})
	require.Error(t, err)

	after, err := a.Groups()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLiveAbort(t *testing.T) {
	if os.Getenv("LUMCRED_ABORT_CHILD") == "1" {
		liveAccessor(t).Abort()
		t.Fatal("Abort returned")
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestLiveAbort$")
	cmd.Env = append(os.Environ(), "LUMCRED_ABORT_CHILD=1")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "child output: %s", out)
	assert.False(t, exitErr.Success())
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		assert.Equal(t, syscall.SIGABRT, ws.Signal())
	}
	assert.NotContains(t, string(out), "Abort returned")
}
