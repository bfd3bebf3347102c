// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3blob

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/deptofdefense/blobvfs/pkg/blob"
)

const (
	maxKeysPerPage = 1000
)

type S3Container struct {
	client *S3Client
	name   string
}

func (c *S3Container) Name() string {
	return c.name
}

func (c *S3Container) Blob(key string) blob.Blob {
	return &S3Blob{container: c, key: key}
}

func (c *S3Container) ListBlobs(ctx context.Context, prefix string, maxResults int) ([]blob.ListItem, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(c.name),
		Delimiter: aws.String("/"),
		Prefix:    aws.String(prefix),
	}
	if maxResults > 0 && maxResults < maxKeysPerPage {
		input.MaxKeys = aws.Int32(int32(maxResults))
	}

	items := make([]blob.ListItem, 0)
	paginator := s3.NewListObjectsV2Paginator(c.client.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing bucket %q with prefix %q: %w", c.name, prefix, err)
		}
		pageItems := make([]blob.ListItem, 0, len(page.CommonPrefixes)+len(page.Contents))
		for _, commonPrefix := range page.CommonPrefixes {
			pageItems = append(pageItems, blob.ListItem{
				Key:  aws.ToString(commonPrefix.Prefix),
				Kind: blob.KindPrefix,
			})
		}
		for _, object := range page.Contents {
			pageItems = append(pageItems, blob.ListItem{
				Key:          aws.ToString(object.Key),
				Kind:         blob.KindBlob,
				Size:         aws.ToInt64(object.Size),
				LastModified: aws.ToTime(object.LastModified),
			})
		}
		sort.Slice(pageItems, func(i, j int) bool {
			return pageItems[i].Key < pageItems[j].Key
		})
		for _, item := range pageItems {
			items = append(items, item)
			if maxResults > 0 && len(items) == maxResults {
				return items, nil
			}
		}
	}

	c.client.log("Listed bucket", map[string]interface{}{
		"bucket": c.name,
		"prefix": prefix,
		"items":  len(items),
	})

	return items, nil
}
