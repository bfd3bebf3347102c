// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3blob

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/deptofdefense/blobvfs/pkg/blob"
	"github.com/deptofdefense/blobvfs/pkg/log"
)

type S3Client struct {
	api     API
	account string
	options blob.Options
	logger  *log.SimpleLogger
}

func (c *S3Client) Account() string {
	return c.account
}

func (c *S3Client) Options() blob.Options {
	return c.options
}

func (c *S3Client) log(msg string, fields map[string]interface{}) {
	if c.options.Verbose {
		_ = c.logger.Log(msg, fields)
	}
}

// Container checks the bucket exists and is accessible with a HeadBucket request.
// Errors are returned unmodified.
func (c *S3Client) Container(ctx context.Context, name string) (blob.Container, error) {
	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		c.log("Error accessing bucket", map[string]interface{}{
			"bucket": name,
			"error":  err,
		})
		return nil, err
	}
	return &S3Container{client: c, name: name}, nil
}

func (c *S3Client) Close() error {
	return nil
}

func NewS3Client(api API, account string, options blob.Options, logger *log.SimpleLogger) *S3Client {
	return &S3Client{
		api:     api,
		account: account,
		options: options,
		logger:  logger,
	}
}
