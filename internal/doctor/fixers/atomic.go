// Package fixers provides auto-fix implementations for health check issues.
package fixers

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const (
	defaultDirPermissions  = 0o755
	defaultFilePermissions = 0o644
)

// AtomicWriteFile writes data to path through a temp file and a rename, so
// a reader never sees a partial file. Missing parent directories are created.
func AtomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, defaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}

	perm := os.FileMode(defaultFilePermissions)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return errors.Wrap(err, "failed to write temp file")
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return errors.Wrap(err, "failed to close temp file")
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)

		return errors.Wrap(err, "failed to set permissions")
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)

		return errors.Wrap(err, "failed to rename temp file")
	}

	return nil
}
