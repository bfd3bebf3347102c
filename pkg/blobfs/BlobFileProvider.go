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

	"github.com/deptofdefense/blobvfs/pkg/blob"
	"github.com/deptofdefense/blobvfs/pkg/log"
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
		vfs.CapabilityDirectoryReadContent,
		vfs.CapabilityLastModified,
		vfs.CapabilityGetLastModified,
		vfs.CapabilityCreate,
		vfs.CapabilityDelete,
	)
	AuthenticatorTypes = []vfs.AuthDataType{
		vfs.AuthUserName,
		vfs.AuthPassword,
	}
)

type BlobFileProvider struct {
	// Authenticator is used when the file system options do not include one.
	Authenticator vfs.UserAuthenticator
	factory       blob.ClientFactory
	config        *Config
	logger        *log.SimpleLogger
}

func NewBlobFileProvider(factory blob.ClientFactory, config *Config, logger *log.SimpleLogger) (*BlobFileProvider, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &BlobFileProvider{
		factory: factory,
		config:  config,
		logger:  logger,
	}, nil
}

func (p *BlobFileProvider) Capabilities() vfs.CapabilitySet {
	return Capabilities
}

func (p *BlobFileProvider) authenticator(options *vfs.FileSystemOptions) vfs.UserAuthenticator {
	if options != nil && options.Authenticator != nil {
		return options.Authenticator
	}
	return p.Authenticator
}

// CreateFileSystem connects to the account of the root.
// Credentials from the authenticator take precedence over credentials in the root uri.
func (p *BlobFileProvider) CreateFileSystem(ctx context.Context, root *vfs.FileName, options *vfs.FileSystemOptions) (vfs.FileSystem, error) {
	var authData *vfs.AuthData
	defer func() {
		authData.Cleanup()
	}()

	if authenticator := p.authenticator(options); authenticator != nil {
		data, err := authenticator.RequestAuthentication(AuthenticatorTypes)
		if err != nil {
			return nil, fmt.Errorf("error requesting credentials for %q: %w", root.RootURI(), err)
		}
		authData = data
	}

	creds := blob.Credentials{
		AccountName: authData.GetString(vfs.AuthUserName, root.UserName),
		AccountKey:  authData.GetString(vfs.AuthPassword, root.Password),
	}
	defer creds.Zero()

	client, err := p.factory.NewClient(ctx, root.Host, creds, p.config.Options())
	if err != nil {
		return nil, fmt.Errorf("error creating client for %q: %w", root.RootURI(), err)
	}

	if p.config.Verbose {
		_ = p.logger.Log("Created file system", map[string]interface{}{
			"root":    root.RootURI(),
			"account": client.Account(),
		})
	}

	return NewBlobFileSystem(root, client, p.logger), nil
}
