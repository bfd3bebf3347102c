// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package lfs

import (
	"context"

	"github.com/spf13/afero"

	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

var (
	Capabilities = vfs.NewCapabilitySet(
		vfs.CapabilityGetType,
		vfs.CapabilityReadContent,
		vfs.CapabilityAppendContent,
		vfs.CapabilityURI,
		vfs.CapabilityAttributes,
		vfs.CapabilityRandomAccessRead,
		vfs.CapabilityListChildren,
		vfs.CapabilityLastModified,
		vfs.CapabilityGetLastModified,
		vfs.CapabilityCreate,
		vfs.CapabilityDelete,
	)
)

type LocalFileProvider struct {
	fs afero.Fs
}

func (p *LocalFileProvider) Capabilities() vfs.CapabilitySet {
	return Capabilities
}

func (p *LocalFileProvider) CreateFileSystem(ctx context.Context, root *vfs.FileName, options *vfs.FileSystemOptions) (vfs.FileSystem, error) {
	return NewLocalFileSystem(root, p.fs), nil
}

// NewLocalFileProvider returns a provider for the files of fs.  If fs is nil, then the operating system is used.
func NewLocalFileProvider(fs afero.Fs) *LocalFileProvider {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &LocalFileProvider{fs: fs}
}
