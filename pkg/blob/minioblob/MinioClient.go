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

	"github.com/minio/minio-go/v7"

	"github.com/deptofdefense/blobvfs/pkg/blob"
	"github.com/deptofdefense/blobvfs/pkg/log"
)

type MinioClient struct {
	client  *minio.Client
	account string
	options blob.Options
	logger  *log.SimpleLogger
}

func (c *MinioClient) Account() string {
	return c.account
}

func (c *MinioClient) Options() blob.Options {
	return c.options
}

func (c *MinioClient) log(msg string, fields map[string]interface{}) {
	if c.options.Verbose {
		_ = c.logger.Log(msg, fields)
	}
}

func (c *MinioClient) Container(ctx context.Context, name string) (blob.Container, error) {
	exists, err := c.client.BucketExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q: %w", name, blob.ErrNotFound)
	}
	return &MinioContainer{client: c, name: name}, nil
}

func (c *MinioClient) Close() error {
	return nil
}
