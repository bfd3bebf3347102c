// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package memblob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/deptofdefense/blobvfs/pkg/blob"
)

type Blob struct {
	container *Container
	key       string
}

func (b *Blob) Container() string {
	return b.container.name
}

func (b *Blob) Key() string {
	return b.key
}

func (b *Blob) store() *Store {
	return b.container.client.store
}

func (b *Blob) notFound() error {
	return fmt.Errorf("blob %q in container %q: %w", b.key, b.container.name, blob.ErrNotFound)
}

func (b *Blob) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := b.store().object(b.container.name, b.key)
	return ok, nil
}

func (b *Blob) Properties(ctx context.Context) (*blob.Properties, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	obj, ok := b.store().object(b.container.name, b.key)
	if !ok {
		return nil, b.notFound()
	}
	properties := obj.properties
	return &properties, nil
}

func (b *Blob) DeleteIfExists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	deleted := b.store().remove(b.container.name, b.key)
	b.container.client.log("Delete blob", map[string]interface{}{
		"container": b.container.name,
		"key":       b.key,
		"deleted":   deleted,
	})
	return deleted, nil
}

func (b *Blob) OpenRead(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	obj, ok := b.store().object(b.container.name, b.key)
	if !ok {
		return nil, b.notFound()
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (b *Blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	obj, ok := b.store().object(b.container.name, b.key)
	if !ok {
		return 0, b.notFound()
	}
	return bytes.NewReader(obj.data).ReadAt(p, off)
}

func (b *Blob) OpenWrite(ctx context.Context, properties *blob.Properties) (io.WriteCloser, error) {
	return blob.NewPipeWriter(func(r io.Reader) error {
		return b.Upload(ctx, r, -1, properties)
	}), nil
}

// Upload reads the content in blocks of the configured block size and commits the blob once every block is read.
func (b *Blob) Upload(ctx context.Context, r io.Reader, size int64, properties *blob.Properties) error {
	blockSize := b.container.client.options.BlockSize
	if blockSize < 1 {
		blockSize = blob.MegabytesToBytes
	}
	if size >= 0 {
		r = blob.NewSizeReader(r, size)
	}
	data := make([]byte, 0)
	parts := 0
	block := make([]byte, blockSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := io.ReadFull(r, block)
		if n > 0 {
			data = append(data, block[:n]...)
			parts++
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading content for blob %q: %w", b.key, err)
		}
	}
	if parts == 0 {
		parts = 1
	}
	if err := b.store().failure(b.container.name, b.key); err != nil {
		return err
	}
	if err := b.store().commit(b.container.name, b.key, newObject(data, properties.GetContentType(), parts)); err != nil {
		return err
	}
	b.container.client.log("Upload blob", map[string]interface{}{
		"container": b.container.name,
		"key":       b.key,
		"size":      len(data),
		"parts":     parts,
	})
	return nil
}

func (b *Blob) StartCopy(ctx context.Context, src blob.Blob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	source, ok := src.(*Blob)
	if !ok || source.store() != b.store() {
		return fmt.Errorf("error copying %q: source is not in the same account", src.Key())
	}
	obj, ok := b.store().object(source.container.name, source.key)
	if !ok {
		return source.notFound()
	}
	if err := b.store().failure(b.container.name, b.key); err != nil {
		return err
	}
	if err := b.store().commit(b.container.name, b.key, newObject(obj.data, obj.properties.ContentType, obj.parts)); err != nil {
		return err
	}
	b.store().mutex.Lock()
	b.store().copies++
	b.store().mutex.Unlock()
	b.container.client.log("Copy blob", map[string]interface{}{
		"src":       source.container.name + "/" + source.key,
		"container": b.container.name,
		"key":       b.key,
	})
	return nil
}
