// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package lfs

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

type LocalFileSystem struct {
	root *vfs.FileName
	fs   afero.Fs
}

func (lfs *LocalFileSystem) Root() *vfs.FileName {
	return lfs.root
}

func (lfs *LocalFileSystem) Capabilities() vfs.CapabilitySet {
	return Capabilities
}

func (lfs *LocalFileSystem) Resolve(name *vfs.FileName) (vfs.FileObject, error) {
	if !lfs.root.SameRoot(name) {
		return nil, fmt.Errorf("%q is not in file system %q: %w", name.URI(), lfs.root.RootURI(), vfs.ErrInvalidPath)
	}
	return &LocalFileObject{lfs: lfs, name: name}, nil
}

func (lfs *LocalFileSystem) Close() error {
	return nil
}

func NewLocalFileSystem(root *vfs.FileName, fs afero.Fs) *LocalFileSystem {
	return &LocalFileSystem{
		root: root,
		fs:   fs,
	}
}
