// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrMissingSource = errors.New("source file does not exist")
	ErrUnsupported   = errors.New("operation not supported")
	ErrNotFolder     = errors.New("file is not a folder")
	ErrNotFile       = errors.New("file is not a regular file")
	ErrUnknownScheme = errors.New("no provider registered for scheme")
)

// CopyError is returned when copying a single entry of a tree fails.
// Entries copied before the failure are left in place.
type CopyError struct {
	Source      string
	Destination string
	Err         error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("error copying %q to %q: %v", e.Source, e.Destination, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

func newCopyError(src FileObject, dst FileObject, err error) error {
	var copyError *CopyError
	if errors.As(err, &copyError) {
		return err
	}
	return &CopyError{
		Source:      src.Name().URI(),
		Destination: dst.Name().URI(),
		Err:         err,
	}
}
