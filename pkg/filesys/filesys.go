// Package filesys provides the small set of filesystem utilities the engine
// actually needs: preparing the data directory and checking whether a path
// exists.
package filesys

import (
	"errors"
	"os"
)

// ErrIsNotDir is returned when a path that must be a directory turns out to
// be a regular file.
var ErrIsNotDir = errors.New("path isn't a directory")

// CreateDir creates a directory at dirPath with the given permission.
//
// If the path already exists:
//   - If force is true, it proceeds without error (as long as the existing
//     path is itself a directory).
//   - If force is false, it returns os.ErrExist.
//
// It returns ErrIsNotDir if the existing path is a regular file. A stat
// failure other than "does not exist" is returned as-is when force is false.
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	if !force && !os.IsNotExist(err) {
		if err == nil {
			return os.ErrExist
		}
		return err
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	return os.Chmod(dirPath, permission)
}

// Exists reports whether a file or directory exists at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
