// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

import (
	"context"
)

type FileSystem interface {
	Root() *FileName
	Capabilities() CapabilitySet
	Resolve(name *FileName) (FileObject, error)
	Close() error
}

type FileSystemOptions struct {
	Authenticator UserAuthenticator
}

// Provider creates file systems for the roots of a single scheme.
type Provider interface {
	CreateFileSystem(ctx context.Context, root *FileName, options *FileSystemOptions) (FileSystem, error)
	Capabilities() CapabilitySet
}
