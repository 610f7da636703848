package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hnrobert/lumcred/internal/hostfs"
)

const header = "# lumcred configuration. LUMCRED_* environment variables override these values.\n"

// Store reads and writes the YAML file backing Config. It does not apply
// environment overrides; use Load for the effective configuration.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Ensure writes Default() to the store path unless a file already exists.
// It reports whether a file was created.
func (s *Store) Ensure() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := s.saveLocked(Default()); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the file contents layered over Default(). A missing file
// yields Default().
func (s *Store) Get() (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := Default()
	if err := loadFile(s.path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

func (s *Store) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(cfg)
}

func (s *Store) saveLocked(cfg *Config) error {
	if err := hostfs.EnsureDir(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return hostfs.WriteFileAtomic(s.path, append([]byte(header), b...), 0o644)
}
