// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package minioblob

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/deptofdefense/blobvfs/pkg/blob"
)

type MinioContainer struct {
	client *MinioClient
	name   string
}

func (c *MinioContainer) Name() string {
	return c.name
}

func (c *MinioContainer) Blob(key string) blob.Blob {
	return &MinioBlob{container: c, key: key}
}

func listItem(prefix string, object minio.ObjectInfo) blob.ListItem {
	if object.Key != prefix && strings.HasSuffix(object.Key, "/") {
		return blob.ListItem{Key: object.Key, Kind: blob.KindPrefix}
	}
	return blob.ListItem{
		Key:          object.Key,
		Kind:         blob.KindBlob,
		Size:         object.Size,
		LastModified: object.LastModified,
	}
}

func (c *MinioContainer) ListBlobs(ctx context.Context, prefix string, maxResults int) ([]blob.ListItem, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := make([]blob.ListItem, 0)
	for object := range c.client.client.ListObjects(ctx, c.name, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing bucket %q with prefix %q: %w", c.name, prefix, object.Err)
		}
		items = append(items, listItem(prefix, object))
		if maxResults > 0 && len(items) == maxResults {
			break
		}
	}

	c.client.log("Listed bucket", map[string]interface{}{
		"bucket": c.name,
		"prefix": prefix,
		"items":  len(items),
	})

	return items, nil
}
