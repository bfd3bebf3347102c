// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("blob not found")
	ErrSizeMismatch = errors.New("content length does not match the declared size")
)

func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotFound)
}
