// Package fsops holds the small file helpers shared by the note reader, the
// draft writer and the config store.
package fsops

import (
	"errors"
	"os"

	"github.com/petasbytes/letter-blog/internal/apperr"
)

// ReadFile returns the contents of the regular file at path. A missing path
// is an apperr.NotFound error and a directory an apperr.NotAFile error.
func ReadFile(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperr.WithPath(apperr.NotFound, "file not found", path)
		}
		return "", err
	}
	if fi.IsDir() {
		return "", apperr.WithPath(apperr.NotAFile, "path is a directory", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", err // standard error for I/O issues
	}
	return string(b), nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
