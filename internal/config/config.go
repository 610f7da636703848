// Package config loads lumcred settings from a YAML file and LUMCRED_*
// environment variables.
//
// Precedence, lowest first: Default(), the YAML file, the environment,
// command-line flags (applied by the caller).
//
// Environment variables:
//   - LUMCRED_DIRECTORY   system | files
//   - LUMCRED_HOST_ROOT   root of etc/passwd and etc/group for "files"
//   - LUMCRED_LOG_LEVEL, LUMCRED_LOG_DIR, LUMCRED_LOG_FILE
//   - LUMCRED_LOG_MAX_SIZE_MB, LUMCRED_LOG_MAX_BACKUPS, LUMCRED_LOG_MAX_AGE_DAYS
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/hnrobert/lumcred/internal/accounts"
	"github.com/hnrobert/lumcred/internal/hostfs"
	"github.com/hnrobert/lumcred/internal/logger"
)

const EnvPrefix = "LUMCRED"

type DirectoryKind string

const (
	DirectorySystem DirectoryKind = "system"
	DirectoryFiles  DirectoryKind = "files"
)

type Config struct {
	Directory DirectoryKind `yaml:"directory" json:"directory" envconfig:"DIRECTORY"`
	HostRoot  string        `yaml:"host_root" json:"host_root" envconfig:"HOST_ROOT"`
	Log       LogConfig     `yaml:"log" json:"log" envconfig:"LOG"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level" envconfig:"LEVEL"`
	Dir   string `yaml:"dir,omitempty" json:"dir,omitempty" envconfig:"DIR"`
	File  string `yaml:"file,omitempty" json:"file,omitempty" envconfig:"FILE"`

	// Rotation of the log file.
	MaxSizeMB  int `yaml:"max_size_mb" json:"max_size_mb" envconfig:"MAX_SIZE_MB"`
	MaxBackups int `yaml:"max_backups" json:"max_backups" envconfig:"MAX_BACKUPS"`
	MaxAgeDays int `yaml:"max_age_days" json:"max_age_days" envconfig:"MAX_AGE_DAYS"`
}

func Default() *Config {
	return &Config{
		Directory: DirectorySystem,
		HostRoot:  hostfs.DefaultRoot,
		Log: LogConfig{
			Level:      logger.LevelWarn,
			File:       "lumcred.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/lumcred/config.yaml or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".lumcred", "config.yaml")
	}
	return filepath.Join(dir, "lumcred", "config.yaml")
}

// Load builds the configuration. An explicit path must exist; with an empty
// path DefaultPath is read when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := loadFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := hostfs.ReadFile(path)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return yaml.Unmarshal(b, cfg)
}

func (c *Config) Validate() error {
	switch c.Directory {
	case DirectorySystem, DirectoryFiles:
	case "":
		c.Directory = DirectorySystem
	default:
		return fmt.Errorf("unknown directory %q (want %q or %q)", c.Directory, DirectorySystem, DirectoryFiles)
	}
	if c.Directory == DirectoryFiles && c.HostRoot == "" {
		return errors.New("host_root is required for the files directory")
	}
	switch c.Log.Level {
	case "", logger.LevelDebug, logger.LevelInfo, logger.LevelWarn, logger.LevelError:
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return errors.New("log rotation limits must not be negative")
	}
	return nil
}

// Set assigns one setting by its YAML key, e.g. "host_root" or "log.level".
// The result is not validated.
func (c *Config) Set(key, value string) error {
	switch key {
	case "directory":
		c.Directory = DirectoryKind(value)
	case "host_root":
		c.HostRoot = value
	case "log.level":
		c.Log.Level = value
	case "log.dir":
		c.Log.Dir = value
	case "log.file":
		c.Log.File = value
	case "log.max_size_mb":
		return setInt(&c.Log.MaxSizeMB, key, value)
	case "log.max_backups":
		return setInt(&c.Log.MaxBackups, key, value)
	case "log.max_age_days":
		return setInt(&c.Log.MaxAgeDays, key, value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", key, value)
	}
	*dst = n
	return nil
}

// OpenDirectory returns the accounts directory the configuration selects.
func (c *Config) OpenDirectory() (accounts.Directory, error) {
	switch c.Directory {
	case DirectoryFiles:
		return accounts.NewFiles(c.HostRoot)
	case DirectorySystem, "":
		return accounts.NewSystem(), nil
	default:
		return nil, fmt.Errorf("unknown directory %q", c.Directory)
	}
}

// LoggerOptions maps the log section to logger.Options.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Log.Level,
		Dir:        c.Log.Dir,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}
