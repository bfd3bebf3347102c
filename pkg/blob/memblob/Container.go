// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package memblob

import (
	"context"

	"github.com/deptofdefense/blobvfs/pkg/blob"
)

type Container struct {
	client *Client
	name   string
}

func (c *Container) Name() string {
	return c.name
}

func (c *Container) Blob(key string) blob.Blob {
	return &Blob{container: c, key: key}
}

func (c *Container) ListBlobs(ctx context.Context, prefix string, maxResults int) ([]blob.ListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := c.client.store.list(c.name, prefix, maxResults)
	c.client.log("List blobs", map[string]interface{}{
		"container": c.name,
		"prefix":    prefix,
		"items":     len(items),
	})
	return items, nil
}
