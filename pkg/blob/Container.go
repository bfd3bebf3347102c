// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

import (
	"context"
)

type Container interface {
	Name() string
	// Blob returns a reference to the blob with the key.  No remote call is made.
	Blob(key string) Blob
	// ListBlobs lists the blobs and prefixes directly below prefix using "/" as the delimiter.
	// A blob whose key equals the prefix is included.
	// If maxResults is less than 1, then every item is returned.
	ListBlobs(ctx context.Context, prefix string, maxResults int) ([]ListItem, error)
}
