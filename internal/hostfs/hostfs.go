package hostfs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/hnrobert/lumcred/internal/logger"
)

// pathLocks hands out one mutex per path.
var pathLocks sync.Map

func lock(path string) func() {
	v, _ := pathLocks.LoadOrStore(filepath.Clean(path), &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func ReadFile(path string) ([]byte, error) {
	defer lock(path)()
	return os.ReadFile(path)
}

// ReadStream opens path and hands the open file to fn. The file is closed
// when fn returns; fn must not keep the reader.
func ReadStream(path string, fn func(r io.Reader) error) error {
	defer lock(path)()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return fn(f)
}

// WriteFileAtomic replaces path with data through a temporary file in the
// same directory. Targets that cannot be renamed over (bind mounts) are
// rewritten in place instead.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	defer lock(path)()

	dir := filepath.Dir(path)
	tmpName, err := writeTemp(dir, data, perm)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmpName) }()

	if err := os.Rename(tmpName, path); err != nil {
		if !renameBlocked(err) {
			return err
		}
		logger.Warn("atomic replace of %s not possible (%v); rewriting in place", path, err)
		return rewriteInPlace(path, data, perm)
	}
	syncDir(dir)
	return nil
}

func writeTemp(dir string, data []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, ".lumcred-*")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	err = func() error {
		if _, err := tmp.Write(data); err != nil {
			return err
		}
		if err := tmp.Chmod(perm); err != nil {
			return err
		}
		return tmp.Sync()
	}()
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

func renameBlocked(err error) bool {
	return errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.EXDEV) || errors.Is(err, syscall.EPERM)
}

func rewriteInPlace(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	_ = f.Sync()
	return f.Close()
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}

func EnsureDir(path string, perm os.FileMode) error {
	defer lock(path)()
	return os.MkdirAll(path, perm)
}
