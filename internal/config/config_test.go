package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/lumcred/internal/accounts"
	"github.com/hnrobert/lumcred/internal/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LUMCRED_DIRECTORY", "LUMCRED_HOST_ROOT",
		"LUMCRED_LOG_LEVEL", "LUMCRED_LOG_DIR", "LUMCRED_LOG_FILE",
		"LUMCRED_LOG_MAX_SIZE_MB", "LUMCRED_LOG_MAX_BACKUPS", "LUMCRED_LOG_MAX_AGE_DAYS",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func isolateConfigHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	return home
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	isolateConfigHome(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
directory: files
host_root: /srv/chroot
log:
  level: info
  dir: /var/log/lumcred
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DirectoryFiles, cfg.Directory)
	assert.Equal(t, "/srv/chroot", cfg.HostRoot)
	assert.Equal(t, logger.LevelInfo, cfg.Log.Level)
	assert.Equal(t, "lumcred.log", cfg.Log.File, "unset keys keep their defaults")

	t.Setenv("LUMCRED_HOST_ROOT", "/mnt/image")
	t.Setenv("LUMCRED_LOG_LEVEL", "debug")
	t.Setenv("LUMCRED_LOG_MAX_BACKUPS", "2")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/image", cfg.HostRoot)
	assert.Equal(t, logger.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "/var/log/lumcred", cfg.Log.Dir)
	assert.Equal(t, 2, cfg.Log.MaxBackups)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "unknown directory", body: "directory: ldap\n"},
		{name: "unknown level", body: "log:\n  level: chatty\n"},
		{name: "files without root", body: "directory: files\nhost_root: \"\"\n"},
		{name: "env directory", body: "", env: map[string]string{"LUMCRED_DIRECTORY": "nis"}},
		{name: "malformed yaml", body: "directory: [system\n"},
		{name: "negative rotation", body: "log:\n  max_age_days: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestOpenDirectory(t *testing.T) {
	cfg := Default()
	dir, err := cfg.OpenDirectory()
	require.NoError(t, err)
	assert.IsType(t, &accounts.System{}, dir)

	cfg.Directory = DirectoryFiles
	cfg.HostRoot = t.TempDir()
	dir, err = cfg.OpenDirectory()
	require.NoError(t, err)
	files, ok := dir.(*accounts.Files)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(cfg.HostRoot, "etc", "group"), files.GroupPath)
}

func TestLoggerOptions(t *testing.T) {
	cfg := Default()
	cfg.Log.Dir = "/tmp/x"
	cfg.Log.MaxSizeMB = 1
	assert.Equal(t, logger.Options{
		Level:      logger.LevelWarn,
		Dir:        "/tmp/x",
		File:       "lumcred.log",
		MaxSizeMB:  1,
		MaxBackups: 5,
		MaxAgeDays: 30,
	}, cfg.LoggerOptions())
}

func TestConfigSet(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Set("directory", "files"))
	require.NoError(t, cfg.Set("host_root", "/host"))
	require.NoError(t, cfg.Set("log.level", "debug"))
	require.NoError(t, cfg.Set("log.max_size_mb", "25"))
	require.NoError(t, cfg.Set("log.max_age_days", "7"))

	assert.Equal(t, DirectoryFiles, cfg.Directory)
	assert.Equal(t, "/host", cfg.HostRoot)
	assert.Equal(t, logger.LevelDebug, cfg.Log.Level)
	assert.Equal(t, 25, cfg.Log.MaxSizeMB)
	assert.Equal(t, 7, cfg.Log.MaxAgeDays)
	require.NoError(t, cfg.Validate())

	assert.Error(t, cfg.Set("log.max_backups", "many"))
	assert.Error(t, cfg.Set("colour", "blue"))
}
