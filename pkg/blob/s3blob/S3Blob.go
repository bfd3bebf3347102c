// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"

	"cloudeng.io/errors"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/errgroup"

	"github.com/deptofdefense/blobvfs/pkg/blob"
)

type S3Blob struct {
	container *S3Container
	key       string
}

func (b *S3Blob) Container() string {
	return b.container.name
}

func (b *S3Blob) Key() string {
	return b.key
}

func (b *S3Blob) api() API {
	return b.container.client.api
}

func (b *S3Blob) notFound(err error) error {
	return fmt.Errorf("object %q in bucket %q: %w: %w", b.key, b.container.name, blob.ErrNotFound, err)
}

func (b *S3Blob) Exists(ctx context.Context) (bool, error) {
	_, err := b.api().HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.container.name),
		Key:    aws.String(b.key),
	})
	if err != nil {
		if IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("error checking object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	return true, nil
}

func (b *S3Blob) Properties(ctx context.Context) (*blob.Properties, error) {
	headObjectOutput, err := b.api().HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.container.name),
		Key:    aws.String(b.key),
	})
	if err != nil {
		if IsNotExist(err) {
			return nil, b.notFound(err)
		}
		return nil, fmt.Errorf("error getting properties of object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	return &blob.Properties{
		Size:         aws.ToInt64(headObjectOutput.ContentLength),
		LastModified: aws.ToTime(headObjectOutput.LastModified),
		ContentType:  aws.ToString(headObjectOutput.ContentType),
		ETag:         aws.ToString(headObjectOutput.ETag),
	}, nil
}

func (b *S3Blob) DeleteIfExists(ctx context.Context) (bool, error) {
	exists, err := b.Exists(ctx)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	_, err = b.api().DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.container.name),
		Key:    aws.String(b.key),
	})
	if err != nil {
		if IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("error deleting object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	b.container.client.log("Deleted object", map[string]interface{}{
		"bucket": b.container.name,
		"key":    b.key,
	})
	return true, nil
}

func (b *S3Blob) OpenRead(ctx context.Context) (io.ReadCloser, error) {
	getObjectOutput, err := b.api().GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.container.name),
		Key:    aws.String(b.key),
	})
	if err != nil {
		if IsNotExist(err) {
			return nil, b.notFound(err)
		}
		return nil, fmt.Errorf("error getting object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	return getObjectOutput.Body, nil
}

func (b *S3Blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	getObjectOutput, err := b.api().GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.container.name),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, off+int64(len(p))-1)),
	})
	if err != nil {
		if isInvalidRange(err) {
			return 0, io.EOF
		}
		if IsNotExist(err) {
			return 0, b.notFound(err)
		}
		return 0, fmt.Errorf("error getting range of object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	defer getObjectOutput.Body.Close()
	return blob.ReadRange(getObjectOutput.Body, p)
}

func (b *S3Blob) OpenWrite(ctx context.Context, properties *blob.Properties) (io.WriteCloser, error) {
	return blob.NewPipeWriter(func(r io.Reader) error {
		return b.Upload(ctx, r, -1, properties)
	}), nil
}

// Upload puts content up to the single put threshold with one request and larger content with a multipart upload.
func (b *S3Blob) Upload(ctx context.Context, r io.Reader, size int64, properties *blob.Properties) error {
	options := b.container.client.options
	threshold := options.PutThreshold()
	if threshold < 1 {
		threshold = blob.MinimumPartSize
	}
	if size >= 0 && size <= threshold {
		data := make([]byte, size)
		if _, err := io.ReadFull(blob.NewSizeReader(r, size), data); err != nil {
			return fmt.Errorf("error reading content for object %q: %w", b.key, err)
		}
		return b.put(ctx, data, properties)
	}
	head := make([]byte, threshold+1)
	n, err := io.ReadFull(r, head)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return b.put(ctx, head[:n], properties)
		}
		return fmt.Errorf("error reading content for object %q: %w", b.key, err)
	}
	return b.multipart(ctx, io.MultiReader(bytes.NewReader(head), r), properties)
}

func (b *S3Blob) put(ctx context.Context, data []byte, properties *blob.Properties) error {
	_, err := b.api().PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.container.name),
		Key:           aws.String(b.key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(properties.GetContentType()),
	})
	if err != nil {
		return fmt.Errorf("error putting object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	b.container.client.log("Put object", map[string]interface{}{
		"bucket": b.container.name,
		"key":    b.key,
		"size":   len(data),
	})
	return nil
}

func (b *S3Blob) multipart(ctx context.Context, r io.Reader, properties *blob.Properties) error {
	options := b.container.client.options

	createOutput, err := b.api().CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(b.container.name),
		Key:         aws.String(b.key),
		ContentType: aws.String(properties.GetContentType()),
	})
	if err != nil {
		return fmt.Errorf("error creating multipart upload for object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	uploadID := createOutput.UploadId

	partSize := options.PartSize(blob.MinimumPartSize)
	completed := make([]types.CompletedPart, 0)
	mutex := &sync.Mutex{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(options.Workers())

	var readErr error
	partNumber := int32(0)
	for gctx.Err() == nil {
		buf := make([]byte, partSize)
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			partNumber++
			number := partNumber
			data := buf[:n]
			g.Go(func() error {
				uploadPartOutput, err := b.api().UploadPart(gctx, &s3.UploadPartInput{
					Bucket:        aws.String(b.container.name),
					Key:           aws.String(b.key),
					UploadId:      uploadID,
					PartNumber:    aws.Int32(number),
					Body:          bytes.NewReader(data),
					ContentLength: aws.Int64(int64(len(data))),
				})
				if err != nil {
					return fmt.Errorf("error uploading part %d of object %q: %w", number, b.key, err)
				}
				mutex.Lock()
				completed = append(completed, types.CompletedPart{
					ETag:       uploadPartOutput.ETag,
					PartNumber: aws.Int32(number),
				})
				mutex.Unlock()
				return nil
			})
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			readErr = fmt.Errorf("error reading content for object %q: %w", b.key, err)
			break
		}
	}

	waitErr := g.Wait()
	if readErr == nil && waitErr == nil {
		if err := ctx.Err(); err != nil {
			readErr = err
		}
	}
	if readErr != nil || waitErr != nil {
		_, abortErr := b.api().AbortMultipartUpload(context.WithoutCancel(ctx), &s3.AbortMultipartUploadInput{
			Bucket:   aws.String(b.container.name),
			Key:      aws.String(b.key),
			UploadId: uploadID,
		})
		errs := &errors.M{}
		errs.Append(readErr, waitErr, abortErr)
		return errs.Err()
	}

	sort.Slice(completed, func(i, j int) bool {
		return aws.ToInt32(completed[i].PartNumber) < aws.ToInt32(completed[j].PartNumber)
	})

	_, err = b.api().CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(b.container.name),
		Key:             aws.String(b.key),
		UploadId:        uploadID,
		MultipartUpload: &types.CompletedMultipartUpload{Parts: completed},
	})
	if err != nil {
		return fmt.Errorf("error completing multipart upload for object %q in bucket %q: %w", b.key, b.container.name, err)
	}

	b.container.client.log("Uploaded object", map[string]interface{}{
		"bucket": b.container.name,
		"key":    b.key,
		"parts":  len(completed),
	})
	return nil
}

func copySource(bucket string, key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

func (b *S3Blob) StartCopy(ctx context.Context, src blob.Blob) error {
	source, ok := src.(*S3Blob)
	if !ok {
		return fmt.Errorf("error copying %q: source is not an s3 object", src.Key())
	}
	_, err := b.api().CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(b.container.name),
		Key:        aws.String(b.key),
		CopySource: aws.String(copySource(source.container.name, source.key)),
	})
	if err != nil {
		if IsNotExist(err) {
			return source.notFound(err)
		}
		return fmt.Errorf("error copying object %q to %q in bucket %q: %w", source.key, b.key, b.container.name, err)
	}
	b.container.client.log("Copied object", map[string]interface{}{
		"src":    source.container.name + "/" + source.key,
		"bucket": b.container.name,
		"key":    b.key,
	})
	return nil
}
