// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blobfs

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/deptofdefense/blobvfs/pkg/blob"
	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

// BlobFileObject is a file object for a key in a container.
// The container and blob references are attached on first use and released by Close.
// The properties of the blob are fetched once per attachment.
type BlobFileObject struct {
	fs            *BlobFileSystem
	name          *vfs.FileName
	containerName string
	key           string
	container     blob.Container
	blob          blob.Blob
	properties    *blob.Properties
}

func (o *BlobFileObject) Name() *vfs.FileName {
	return o.name
}

func (o *BlobFileObject) FileSystem() vfs.FileSystem {
	return o.fs
}

func (o *BlobFileObject) ContainerName() string {
	return o.containerName
}

func (o *BlobFileObject) Key() string {
	return o.key
}

func (o *BlobFileObject) isRoot() bool {
	return o.key == vfs.RootKey
}

// prefix returns the prefix of the children of the file object.
func (o *BlobFileObject) prefix() string {
	if o.isRoot() {
		return ""
	}
	return o.key + "/"
}

func (o *BlobFileObject) attach(ctx context.Context) error {
	if o.container != nil {
		return nil
	}
	container, err := o.fs.client.Container(ctx, o.containerName)
	if err != nil {
		return err
	}
	o.container = container
	if !o.isRoot() {
		o.blob = container.Blob(o.key)
	}
	return nil
}

func (o *BlobFileObject) errRootContent() error {
	return fmt.Errorf("cannot write content to the root of container %q: %w", o.containerName, vfs.ErrUnsupported)
}

// Close detaches the file object.
func (o *BlobFileObject) Close() error {
	o.container = nil
	o.blob = nil
	o.properties = nil
	return nil
}

// Type returns Folder for the root of a container, File if a blob exists at the key,
// Folder if any blob exists below the key, and otherwise Imaginary.
func (o *BlobFileObject) Type(ctx context.Context) (vfs.FileType, error) {
	if err := o.attach(ctx); err != nil {
		return vfs.Imaginary, err
	}
	if o.isRoot() {
		return vfs.Folder, nil
	}
	exists, err := o.blob.Exists(ctx)
	if err != nil {
		return vfs.Imaginary, err
	}
	if exists {
		return vfs.File, nil
	}
	items, err := o.container.ListBlobs(ctx, o.prefix(), 1)
	if err != nil {
		return vfs.Imaginary, err
	}
	if len(items) > 0 {
		return vfs.Folder, nil
	}
	return vfs.Imaginary, nil
}

func (o *BlobFileObject) Exists(ctx context.Context) (bool, error) {
	t, err := o.Type(ctx)
	if err != nil {
		return false, err
	}
	return t != vfs.Imaginary, nil
}

// ListChildren returns the names of the blobs and prefixes directly below the file object.
func (o *BlobFileObject) ListChildren(ctx context.Context) ([]string, error) {
	if err := o.attach(ctx); err != nil {
		return nil, err
	}
	prefix := o.prefix()
	items, err := o.container.ListBlobs(ctx, prefix, 0)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if name := item.Name(prefix); len(name) > 0 {
			names = append(names, name)
		}
	}
	return names, nil
}

func (o *BlobFileObject) Children(ctx context.Context) ([]vfs.FileObject, error) {
	t, err := o.Type(ctx)
	if err != nil {
		return nil, err
	}
	if !t.HasChildren() {
		return nil, fmt.Errorf("%q is a %s: %w", o.name.URI(), t, vfs.ErrNotFolder)
	}
	names, err := o.ListChildren(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing children of %q: %w", o.name.URI(), err)
	}
	children := make([]vfs.FileObject, 0, len(names))
	for _, name := range names {
		child, err := o.fs.Resolve(o.name.Child(name))
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (o *BlobFileObject) Resolve(rel string) (vfs.FileObject, error) {
	name, err := o.name.Descendant(rel)
	if err != nil {
		return nil, err
	}
	return o.fs.Resolve(name)
}

func (o *BlobFileObject) getProperties(ctx context.Context) (*blob.Properties, error) {
	if err := o.attach(ctx); err != nil {
		return nil, err
	}
	if o.isRoot() {
		return nil, fmt.Errorf("%q is the root of a container: %w", o.name.URI(), vfs.ErrNotFile)
	}
	if o.properties == nil {
		properties, err := o.blob.Properties(ctx)
		if err != nil {
			return nil, fmt.Errorf("error getting properties of %q: %w", o.name.URI(), err)
		}
		o.properties = properties
	}
	return o.properties, nil
}

func (o *BlobFileObject) Size(ctx context.Context) (int64, error) {
	properties, err := o.getProperties(ctx)
	if err != nil {
		return 0, err
	}
	return properties.Size, nil
}

func (o *BlobFileObject) ModTime(ctx context.Context) (time.Time, error) {
	properties, err := o.getProperties(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return properties.LastModified, nil
}

func (o *BlobFileObject) ContentType(ctx context.Context) (string, error) {
	properties, err := o.getProperties(ctx)
	if err != nil {
		return "", err
	}
	return properties.GetContentType(), nil
}

// SetModTime does nothing.  The last modified time is set by the store.
func (o *BlobFileObject) SetModTime(ctx context.Context, t time.Time) error {
	return nil
}

func (o *BlobFileObject) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := o.attach(ctx); err != nil {
		return nil, err
	}
	if o.isRoot() {
		return nil, fmt.Errorf("%q is the root of a container: %w", o.name.URI(), vfs.ErrNotFile)
	}
	r, err := o.blob.OpenRead(ctx)
	if err != nil {
		if blob.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w: %w", o.name.URI(), vfs.ErrNotFile, err)
		}
		return nil, fmt.Errorf("error opening %q: %w", o.name.URI(), err)
	}
	return r, nil
}

func (o *BlobFileObject) OpenSeeker(ctx context.Context) (io.ReadSeeker, error) {
	size, err := o.Size(ctx)
	if err != nil {
		return nil, err
	}
	b := o.blob
	return blob.NewReadSeeker(0, size, func(offset int64, p []byte) (int, error) {
		return b.ReadAt(ctx, p, offset)
	}), nil
}

type blobWriter struct {
	io.WriteCloser
	object *BlobFileObject
}

func (w *blobWriter) Close() error {
	w.object.properties = nil
	return w.WriteCloser.Close()
}

func (w *blobWriter) CloseWithError(err error) error {
	w.object.properties = nil
	if c, ok := w.WriteCloser.(interface{ CloseWithError(error) error }); ok {
		return c.CloseWithError(err)
	}
	return w.WriteCloser.Close()
}

// Create returns a writer for the blob.  If append is true, then the existing content is written first.
func (o *BlobFileObject) Create(ctx context.Context, append bool) (io.WriteCloser, error) {
	if err := o.attach(ctx); err != nil {
		return nil, err
	}
	if o.isRoot() {
		return nil, o.errRootContent()
	}

	properties := &blob.Properties{}
	properties.SetContentType(DetectContentType(o.name.BaseName()))

	w, err := o.blob.OpenWrite(ctx, properties)
	if err != nil {
		return nil, fmt.Errorf("error opening %q for writing: %w", o.name.URI(), err)
	}
	writer := &blobWriter{WriteCloser: w, object: o}
	o.properties = nil

	if append {
		existing, err := o.blob.OpenRead(ctx)
		if err != nil && !blob.IsNotExist(err) {
			_ = writer.CloseWithError(err)
			return nil, fmt.Errorf("error reading %q to append: %w", o.name.URI(), err)
		}
		if err == nil {
			_, err := io.Copy(writer, existing)
			_ = existing.Close()
			if err != nil {
				_ = writer.CloseWithError(err)
				return nil, fmt.Errorf("error copying existing content of %q: %w", o.name.URI(), err)
			}
		}
	}

	return writer, nil
}

// CreateFolder does nothing.  Folders exist while any blob has their prefix.
func (o *BlobFileObject) CreateFolder(ctx context.Context) error {
	return nil
}

// Delete deletes the blob if it exists.  The root of a container is never deleted.
func (o *BlobFileObject) Delete(ctx context.Context) (bool, error) {
	if err := o.attach(ctx); err != nil {
		return false, err
	}
	if o.isRoot() {
		return false, nil
	}
	o.properties = nil
	deleted, err := o.blob.DeleteIfExists(ctx)
	if err != nil {
		return false, fmt.Errorf("error deleting %q: %w", o.name.URI(), err)
	}
	o.fs.log("Deleted file", map[string]interface{}{
		"uri":     o.name.URI(),
		"deleted": deleted,
	})
	return deleted, nil
}

// CanRenameTo returns false.  A move is a copy followed by a delete.
func (o *BlobFileObject) CanRenameTo(dst vfs.FileObject) bool {
	return false
}

// canCopyServerSide returns true if the store can copy src to this file object without streaming the content.
func (o *BlobFileObject) canCopyServerSide(src *BlobFileObject) bool {
	return src.fs == o.fs &&
		strings.EqualFold(src.fs.Account(), o.fs.Account()) &&
		strings.EqualFold(src.containerName, o.containerName)
}

func (o *BlobFileObject) startCopy(ctx context.Context, src *BlobFileObject) error {
	if err := src.attach(ctx); err != nil {
		return err
	}
	if err := o.attach(ctx); err != nil {
		return err
	}
	if o.isRoot() {
		return o.errRootContent()
	}
	o.properties = nil
	if err := o.blob.StartCopy(ctx, src.blob); err != nil {
		return err
	}
	o.fs.log("Copied file in store", map[string]interface{}{
		"src": src.name.URI(),
		"dst": o.name.URI(),
	})
	return nil
}

// upload streams the content of src into the blob.
// The size is left unknown since the size cached by src may be older than its content.
func (o *BlobFileObject) upload(ctx context.Context, src vfs.FileObject) error {
	if err := o.attach(ctx); err != nil {
		return err
	}
	if o.isRoot() {
		return o.errRootContent()
	}
	r, err := src.Open(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	properties := &blob.Properties{}
	properties.SetContentType(DetectContentType(src.Name().BaseName()))

	o.properties = nil
	if err := o.blob.Upload(ctx, r, -1, properties); err != nil {
		return err
	}
	o.fs.log("Uploaded file", map[string]interface{}{
		"src": src.Name().URI(),
		"dst": o.name.URI(),
	})
	return nil
}

func copyBlobEntry(ctx context.Context, src vfs.FileObject, dst vfs.FileObject) error {
	target, ok := dst.(*BlobFileObject)
	if !ok {
		return vfs.StreamCopyEntry(ctx, src, dst)
	}
	t, err := src.Type(ctx)
	if err != nil {
		return err
	}
	switch {
	case t.HasChildren():
		return target.CreateFolder(ctx)
	case t.HasContent():
		if source, ok := src.(*BlobFileObject); ok && target.canCopyServerSide(source) {
			return target.startCopy(ctx, source)
		}
		return target.upload(ctx, src)
	}
	return fmt.Errorf("cannot copy %s %q: %w", t, src.Name().URI(), vfs.ErrUnsupported)
}

// CopyFrom copies the files of src selected by the selector to this file object.
// Blobs in the same container of the same file system are copied by the store.
// Copying stops at the first failure and the files already copied are not removed.
// The root of a container only accepts folders, so a file is never copied onto it.
func (o *BlobFileObject) CopyFrom(ctx context.Context, src vfs.FileObject, selector vfs.Selector) error {
	if o.isRoot() {
		t, err := src.Type(ctx)
		if err != nil {
			return &vfs.CopyError{Source: src.Name().URI(), Destination: o.name.URI(), Err: err}
		}
		if t.HasContent() {
			return &vfs.CopyError{Source: src.Name().URI(), Destination: o.name.URI(), Err: o.errRootContent()}
		}
	}
	return vfs.CopyTree(ctx, o, src, selector, copyBlobEntry)
}
