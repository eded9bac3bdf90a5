// Package fsutil contains filesystem helpers.
package fsutil

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/ohsu-comp-bio/simbatch/logger"
)

var log = logger.NewSubLogger("fsutil")

// DirectoryCreationError is returned by CreateFolder when the directory
// could not be made.
type DirectoryCreationError struct {
	Path string
	Err  error
}

func (e *DirectoryCreationError) Error() string {
	return fmt.Sprintf("could not create %s: %v", e.Path, e.Err)
}

func (e *DirectoryCreationError) Unwrap() error {
	return e.Err
}

// exists returns whether the given path exists or not.
func exists(p string) (bool, error) {
	_, err := os.Lstat(p)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// CreateFolder creates the directory p if nothing exists at that path yet.
// Parent directories are not created.
//
// Creation is best-effort: a failure is logged and returned as a
// *DirectoryCreationError, and callers are free to ignore it.
func CreateFolder(p string) error {
	e, err := exists(p)
	if err == nil && e {
		return nil
	}
	if err == nil {
		err = os.Mkdir(p, 0755)
		// Lost a race with another creator.
		if os.IsExist(err) {
			return nil
		}
	}
	if err != nil {
		log.Error(fmt.Sprintf("Could not create %s", p), "path", p, "error", err)
		return &DirectoryCreationError{Path: p, Err: err}
	}
	return nil
}

// EnsureFolders calls CreateFolder for each path, in order, and returns
// all failures together.
func EnsureFolders(paths ...string) error {
	var errs *multierror.Error
	for _, p := range paths {
		if err := CreateFolder(p); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}
