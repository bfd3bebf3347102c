// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package lfs

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

func newTestFileSystem(t *testing.T) (afero.Fs, vfs.FileSystem) {
	t.Helper()
	fs := afero.NewMemMapFs()
	root, err := vfs.ParseURI("file:///")
	require.NoError(t, err)
	lfs, err := NewLocalFileProvider(fs).CreateFileSystem(context.Background(), root, nil)
	require.NoError(t, err)
	return fs, lfs
}

func resolve(t *testing.T, fs vfs.FileSystem, uri string) vfs.FileObject {
	t.Helper()
	name, err := vfs.ParseURI(uri)
	require.NoError(t, err)
	f, err := fs.Resolve(name)
	require.NoError(t, err)
	return f
}

func TestType(t *testing.T) {
	fs, lfs := newTestFileSystem(t)
	require.NoError(t, afero.WriteFile(fs, "/a/b.txt", []byte("b"), 0644))

	tests := map[string]vfs.FileType{
		"file:///":        vfs.Folder,
		"file:///a":       vfs.Folder,
		"file:///a/b.txt": vfs.File,
		"file:///a/c":     vfs.Imaginary,
	}
	for uri, expected := range tests {
		ft, err := resolve(t, lfs, uri).Type(context.Background())
		require.NoError(t, err)
		assert.Equal(t, expected, ft, uri)
	}
}

func TestChildren(t *testing.T) {
	fs, lfs := newTestFileSystem(t)
	require.NoError(t, afero.WriteFile(fs, "/a/2.txt", []byte("2"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/a/1/x.txt", []byte("x"), 0644))

	children, err := resolve(t, lfs, "file:///a").Children(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, child.Name().Path)
	}
	assert.Equal(t, []string{"/a/1", "/a/2.txt"}, names)

	_, err = resolve(t, lfs, "file:///a/2.txt").Children(context.Background())
	assert.ErrorIs(t, err, vfs.ErrNotFolder)
}

func TestContent(t *testing.T) {
	_, lfs := newTestFileSystem(t)
	f := resolve(t, lfs, "file:///dir/sub/file.txt")

	w, err := f.Create(context.Background(), false)
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = f.Create(context.Background(), true)
	require.NoError(t, err)
	_, err = w.Write([]byte(" world"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	size, err := f.Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)

	rs, err := f.OpenSeeker(context.Background())
	require.NoError(t, err)
	_, err = rs.Seek(6, io.SeekStart)
	require.NoError(t, err)
	data, err := io.ReadAll(rs)
	require.NoError(t, err)
	assert.Equal(t, "world", string(data))

	modTime := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.SetModTime(context.Background(), modTime))
	got, err := f.ModTime(context.Background())
	require.NoError(t, err)
	assert.True(t, modTime.Equal(got))

	_, err = resolve(t, lfs, "file:///dir").Open(context.Background())
	assert.ErrorIs(t, err, vfs.ErrNotFile)
}

func TestDelete(t *testing.T) {
	fs, lfs := newTestFileSystem(t)
	require.NoError(t, afero.WriteFile(fs, "/a/b.txt", []byte("b"), 0644))

	f := resolve(t, lfs, "file:///a/b.txt")
	deleted, err := f.Delete(context.Background())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.Delete(context.Background())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCopyFrom(t *testing.T) {
	fs, lfs := newTestFileSystem(t)
	require.NoError(t, afero.WriteFile(fs, "/a/1.txt", []byte("one"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/a/2/3.txt", []byte("three"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/b/2", []byte("replaced"), 0644))

	require.NoError(t, resolve(t, lfs, "file:///b").CopyFrom(context.Background(), resolve(t, lfs, "file:///a"), vfs.SelectAll))

	data, err := afero.ReadFile(fs, "/b/1.txt")
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
	data, err = afero.ReadFile(fs, "/b/2/3.txt")
	require.NoError(t, err)
	assert.Equal(t, "three", string(data))

	err = resolve(t, lfs, "file:///c").CopyFrom(context.Background(), resolve(t, lfs, "file:///missing"), vfs.SelectAll)
	assert.ErrorIs(t, err, vfs.ErrMissingSource)
}
