// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

import (
	"context"
	"fmt"
)

// DeleteTree deletes the files below f that the selector includes, descendants first.
// Returns the number of files deleted.
func DeleteTree(ctx context.Context, f FileObject, selector Selector) (int, error) {
	files, err := FindFiles(ctx, f, selector, true)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, file := range files {
		deleted, err := file.Delete(ctx)
		if err != nil {
			return count, fmt.Errorf("error deleting %q: %w", file.Name().URI(), err)
		}
		if deleted {
			count++
		}
	}
	return count, nil
}
