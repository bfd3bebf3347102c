// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package lfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

type LocalFileObject struct {
	lfs  *LocalFileSystem
	name *vfs.FileName
}

func (o *LocalFileObject) Name() *vfs.FileName {
	return o.name
}

func (o *LocalFileObject) FileSystem() vfs.FileSystem {
	return o.lfs
}

func (o *LocalFileObject) path() string {
	return filepath.FromSlash(o.name.Path)
}

func (o *LocalFileObject) Type(ctx context.Context) (vfs.FileType, error) {
	fi, err := o.lfs.fs.Stat(o.path())
	if err != nil {
		if os.IsNotExist(err) {
			return vfs.Imaginary, nil
		}
		return vfs.Imaginary, fmt.Errorf("error stating %q: %w", o.path(), err)
	}
	if fi.IsDir() {
		return vfs.Folder, nil
	}
	return vfs.File, nil
}

func (o *LocalFileObject) Exists(ctx context.Context) (bool, error) {
	t, err := o.Type(ctx)
	if err != nil {
		return false, err
	}
	return t != vfs.Imaginary, nil
}

func (o *LocalFileObject) Children(ctx context.Context) ([]vfs.FileObject, error) {
	t, err := o.Type(ctx)
	if err != nil {
		return nil, err
	}
	if !t.HasChildren() {
		return nil, fmt.Errorf("%q is a %s: %w", o.name.URI(), t, vfs.ErrNotFolder)
	}
	entries, err := afero.ReadDir(o.lfs.fs, o.path())
	if err != nil {
		return nil, fmt.Errorf("error reading directory %q: %w", o.path(), err)
	}
	children := make([]vfs.FileObject, 0, len(entries))
	for _, entry := range entries {
		children = append(children, &LocalFileObject{lfs: o.lfs, name: o.name.Child(entry.Name())})
	}
	return children, nil
}

func (o *LocalFileObject) Resolve(rel string) (vfs.FileObject, error) {
	name, err := o.name.Descendant(rel)
	if err != nil {
		return nil, err
	}
	return &LocalFileObject{lfs: o.lfs, name: name}, nil
}

func (o *LocalFileObject) Size(ctx context.Context) (int64, error) {
	fi, err := o.lfs.fs.Stat(o.path())
	if err != nil {
		return int64(0), err
	}
	return fi.Size(), nil
}

func (o *LocalFileObject) ModTime(ctx context.Context) (time.Time, error) {
	fi, err := o.lfs.fs.Stat(o.path())
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}

func (o *LocalFileObject) SetModTime(ctx context.Context, t time.Time) error {
	return o.lfs.fs.Chtimes(o.path(), t, t)
}

func (o *LocalFileObject) Open(ctx context.Context) (io.ReadCloser, error) {
	return o.open()
}

func (o *LocalFileObject) OpenSeeker(ctx context.Context) (io.ReadSeeker, error) {
	return o.open()
}

type readSeekCloser interface {
	io.ReadSeeker
	io.Closer
}

func (o *LocalFileObject) open() (readSeekCloser, error) {
	fi, err := o.lfs.fs.Stat(o.path())
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%q is a directory: %w", o.path(), vfs.ErrNotFile)
	}
	f, err := o.lfs.fs.Open(o.path())
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (o *LocalFileObject) Create(ctx context.Context, append bool) (io.WriteCloser, error) {
	if err := o.lfs.fs.MkdirAll(filepath.Dir(o.path()), 0755); err != nil {
		return nil, fmt.Errorf("error creating parent directory of %q: %w", o.path(), err)
	}
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if append {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := o.lfs.fs.OpenFile(o.path(), flag, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", o.path(), err)
	}
	return f, nil
}

func (o *LocalFileObject) CreateFolder(ctx context.Context) error {
	return o.lfs.fs.MkdirAll(o.path(), 0755)
}

func (o *LocalFileObject) Delete(ctx context.Context) (bool, error) {
	exists, err := o.Exists(ctx)
	if err != nil || !exists {
		return false, err
	}
	if err := o.lfs.fs.Remove(o.path()); err != nil {
		return false, fmt.Errorf("error removing %q: %w", o.path(), err)
	}
	return true, nil
}

func (o *LocalFileObject) CopyFrom(ctx context.Context, src vfs.FileObject, selector vfs.Selector) error {
	return vfs.CopyTree(ctx, o, src, selector, vfs.StreamCopyEntry)
}

func (o *LocalFileObject) Close() error {
	return nil
}
