package layout

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrVerifyPath marks every layout verification failure.
	ErrVerifyPath = errors.New("repository layout mismatch")

	// ErrNotRegularFile is returned when a file leaf exists but is not a
	// regular file.
	ErrNotRegularFile = errors.New("is not a regular file")

	// ErrFileNotFound is returned when a file leaf is missing.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotDirectory is returned when a directory node exists but is not
	// a directory.
	ErrNotDirectory = errors.New("is not a directory")

	// ErrDirectoryNotFound is returned when a directory node is missing.
	ErrDirectoryNotFound = errors.New("directory not found")
)

// Verify checks that root matches spec. It stops at the first mismatch and
// returns a *PathError. Device directories that are
// hidden or not named like a hostname are ignored.
func Verify(root string, spec Spec) error {
	for _, n := range spec {
		if err := verifyNode(root, n); err != nil {
			return err
		}
	}

	return nil
}

func verifyNode(dir string, n Node) error {
	switch n.Kind {
	case NodeFile:
		p := filepath.Join(dir, n.Name)

		info, err := os.Stat(p)
		if err != nil {
			return verifyError(ErrFileNotFound, p)
		}

		if !info.Mode().IsRegular() {
			return verifyError(ErrNotRegularFile, p)
		}

		return nil
	case NodeDevices:
		return verifyDevices(dir, n.Children)
	default:
		p := filepath.Join(dir, n.Name)

		info, err := os.Stat(p)
		if err != nil {
			return verifyError(ErrDirectoryNotFound, p)
		}

		if !info.IsDir() {
			return verifyError(ErrNotDirectory, p)
		}

		return Verify(p, n.Children)
	}
}

func verifyDevices(dir string, host Spec) error {
	names, err := DeviceDirs(dir)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := Verify(filepath.Join(dir, name), host); err != nil {
			return err
		}
	}

	return nil
}

// DeviceDirs lists the entries of dir the device wildcard applies to:
// directories (or links to them) that are not hidden and whose name is a
// valid hostname. Names are returned sorted.
func DeviceDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &PathError{Path: dir, Err: err}
	}

	var names []string

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || !ValidHostname(name) {
			continue
		}

		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || !info.IsDir() {
			continue
		}

		names = append(names, name)
	}

	return names, nil
}

func verifyError(sentinel error, path string) error {
	return &PathError{Path: path, Err: sentinel}
}

// PathError is a layout mismatch at Path. It matches both Err and
// ErrVerifyPath.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Unwrap returns the specific cause and ErrVerifyPath.
func (e *PathError) Unwrap() []error {
	return []error{e.Err, ErrVerifyPath}
}
