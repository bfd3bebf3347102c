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
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/deptofdefense/blobvfs/pkg/blob"
)

type MinioBlob struct {
	container *MinioContainer
	key       string
}

func (b *MinioBlob) Container() string {
	return b.container.name
}

func (b *MinioBlob) Key() string {
	return b.key
}

func (b *MinioBlob) client() *minio.Client {
	return b.container.client.client
}

func (b *MinioBlob) notFound(err error) error {
	return fmt.Errorf("object %q in bucket %q: %w: %w", b.key, b.container.name, blob.ErrNotFound, err)
}

func (b *MinioBlob) Exists(ctx context.Context) (bool, error) {
	_, err := b.client().StatObject(ctx, b.container.name, b.key, minio.StatObjectOptions{})
	if err != nil {
		if IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("error checking object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	return true, nil
}

func (b *MinioBlob) Properties(ctx context.Context) (*blob.Properties, error) {
	info, err := b.client().StatObject(ctx, b.container.name, b.key, minio.StatObjectOptions{})
	if err != nil {
		if IsNotExist(err) {
			return nil, b.notFound(err)
		}
		return nil, fmt.Errorf("error getting properties of object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	return &blob.Properties{
		Size:         info.Size,
		LastModified: info.LastModified,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
	}, nil
}

func (b *MinioBlob) DeleteIfExists(ctx context.Context) (bool, error) {
	exists, err := b.Exists(ctx)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	if err := b.client().RemoveObject(ctx, b.container.name, b.key, minio.RemoveObjectOptions{}); err != nil {
		if IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("error removing object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	b.container.client.log("Removed object", map[string]interface{}{
		"bucket": b.container.name,
		"key":    b.key,
	})
	return true, nil
}

func (b *MinioBlob) OpenRead(ctx context.Context) (io.ReadCloser, error) {
	if _, err := b.Properties(ctx); err != nil {
		return nil, err
	}
	obj, err := b.client().GetObject(ctx, b.container.name, b.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("error getting object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	return obj, nil
}

func (b *MinioBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, off+int64(len(p))-1); err != nil {
		return 0, err
	}
	obj, err := b.client().GetObject(ctx, b.container.name, b.key, opts)
	if err != nil {
		return 0, fmt.Errorf("error getting range of object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	defer obj.Close()
	n, err := blob.ReadRange(obj, p)
	if err != nil && err != io.EOF {
		if isInvalidRange(err) {
			return 0, io.EOF
		}
		if IsNotExist(err) {
			return 0, b.notFound(err)
		}
		return n, err
	}
	return n, err
}

func (b *MinioBlob) OpenWrite(ctx context.Context, properties *blob.Properties) (io.WriteCloser, error) {
	return blob.NewPipeWriter(func(r io.Reader) error {
		return b.Upload(ctx, r, -1, properties)
	}), nil
}

func putObjectOptions(options blob.Options, size int64, properties *blob.Properties) minio.PutObjectOptions {
	workers := options.Workers()
	return minio.PutObjectOptions{
		ContentType:           properties.GetContentType(),
		PartSize:              uint64(options.PartSize(blob.MinimumPartSize)),
		NumThreads:            uint(workers),
		ConcurrentStreamParts: workers > 1,
		DisableMultipart:      size >= 0 && size <= options.PutThreshold(),
	}
}

func (b *MinioBlob) Upload(ctx context.Context, r io.Reader, size int64, properties *blob.Properties) error {
	if size >= 0 {
		r = blob.NewSizeReader(r, size)
	}
	info, err := b.client().PutObject(
		ctx,
		b.container.name,
		b.key,
		r,
		size,
		putObjectOptions(b.container.client.options, size, properties),
	)
	if err != nil {
		return fmt.Errorf("error putting object %q in bucket %q: %w", b.key, b.container.name, err)
	}
	b.container.client.log("Put object", map[string]interface{}{
		"bucket": b.container.name,
		"key":    b.key,
		"size":   info.Size,
	})
	return nil
}

func (b *MinioBlob) StartCopy(ctx context.Context, src blob.Blob) error {
	source, ok := src.(*MinioBlob)
	if !ok {
		return fmt.Errorf("error copying %q: source is not a minio object", src.Key())
	}
	_, err := b.client().CopyObject(
		ctx,
		minio.CopyDestOptions{Bucket: b.container.name, Object: b.key},
		minio.CopySrcOptions{Bucket: source.container.name, Object: source.key},
	)
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
