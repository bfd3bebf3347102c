// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

import (
	"context"
	"io"
)

type Blob interface {
	Container() string
	Key() string
	Exists(ctx context.Context) (bool, error)
	// Properties returns an error wrapping ErrNotFound if the blob does not exist.
	Properties(ctx context.Context) (*Properties, error)
	DeleteIfExists(ctx context.Context) (bool, error)
	OpenRead(ctx context.Context) (io.ReadCloser, error)
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// OpenWrite returns a writer that uploads the content.  The upload completes when the writer is closed.
	OpenWrite(ctx context.Context, properties *Properties) (io.WriteCloser, error)
	// Upload uploads the content of r.  If the size is unknown, then size is -1.
	Upload(ctx context.Context, r io.Reader, size int64, properties *Properties) error
	// StartCopy copies src into this blob within the store.
	StartCopy(ctx context.Context, src Blob) error
}
