// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blobfs

import (
	"fmt"

	"github.com/deptofdefense/blobvfs/pkg/blob"
	"github.com/deptofdefense/blobvfs/pkg/log"
	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

// BlobFileSystem is a session with one account.  Every file object it resolves shares its client.
type BlobFileSystem struct {
	root   *vfs.FileName
	client blob.Client
	logger *log.SimpleLogger
}

func (fs *BlobFileSystem) Root() *vfs.FileName {
	return fs.root
}

func (fs *BlobFileSystem) Capabilities() vfs.CapabilitySet {
	return Capabilities
}

func (fs *BlobFileSystem) Account() string {
	return fs.client.Account()
}

func (fs *BlobFileSystem) Client() blob.Client {
	return fs.client
}

func (fs *BlobFileSystem) log(msg string, fields map[string]interface{}) {
	if fs.client.Options().Verbose {
		_ = fs.logger.Log(msg, fields)
	}
}

// Resolve returns the file object for the name.  The path of the name must start with a container.
func (fs *BlobFileSystem) Resolve(name *vfs.FileName) (vfs.FileObject, error) {
	if !fs.root.SameRoot(name) {
		return nil, fmt.Errorf("%q is not in file system %q: %w", name.URI(), fs.root.RootURI(), vfs.ErrInvalidPath)
	}
	container, key, err := vfs.ContainerAndKey(name.Path)
	if err != nil {
		return nil, err
	}
	return &BlobFileObject{
		fs:            fs,
		name:          name,
		containerName: container,
		key:           key,
	}, nil
}

func (fs *BlobFileSystem) Close() error {
	return fs.client.Close()
}

func NewBlobFileSystem(root *vfs.FileName, client blob.Client, logger *log.SimpleLogger) *BlobFileSystem {
	return &BlobFileSystem{
		root:   root,
		client: client,
		logger: logger,
	}
}
