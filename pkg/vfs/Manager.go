// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cloudeng.io/errors"
)

// Manager resolves uris to file objects using the provider registered for each scheme.
// One file system is created for each root and reused until the manager is closed.
type Manager struct {
	options     *FileSystemOptions
	providers   map[string]Provider
	fileSystems map[string]FileSystem
	mutex       *sync.Mutex
}

func NewManager(options *FileSystemOptions) *Manager {
	return &Manager{
		options:     options,
		providers:   map[string]Provider{},
		fileSystems: map[string]FileSystem{},
		mutex:       &sync.Mutex{},
	}
}

func (m *Manager) AddProvider(scheme string, provider Provider) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.providers[strings.ToLower(scheme)] = provider
}

func (m *Manager) Schemes() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	schemes := make([]string, 0, len(m.providers))
	for scheme := range m.providers {
		schemes = append(schemes, scheme)
	}
	return schemes
}

func (m *Manager) Capabilities(scheme string) (CapabilitySet, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	provider, ok := m.providers[strings.ToLower(scheme)]
	if !ok {
		return CapabilitySet{}, fmt.Errorf("%q: %w", scheme, ErrUnknownScheme)
	}
	return provider.Capabilities(), nil
}

func (m *Manager) fileSystem(ctx context.Context, name *FileName) (FileSystem, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	rootURI := name.RootURI()
	if fs, ok := m.fileSystems[rootURI]; ok {
		return fs, nil
	}

	provider, ok := m.providers[name.Scheme]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name.Scheme, ErrUnknownScheme)
	}

	root := name.withPath("/")
	fs, err := provider.CreateFileSystem(ctx, root, m.options)
	if err != nil {
		return nil, fmt.Errorf("error creating file system for %q: %w", rootURI, err)
	}
	m.fileSystems[rootURI] = fs
	return fs, nil
}

// ResolveName returns the file object for a parsed file name.
func (m *Manager) ResolveName(ctx context.Context, name *FileName) (FileObject, error) {
	fs, err := m.fileSystem(ctx, name)
	if err != nil {
		return nil, err
	}
	return fs.Resolve(name)
}

// Resolve returns the file object for the uri.
func (m *Manager) Resolve(ctx context.Context, uri string) (FileObject, error) {
	name, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	return m.ResolveName(ctx, name)
}

// ResolveFrom resolves ref as an absolute uri if it has a scheme, otherwise as a path relative to base.
func (m *Manager) ResolveFrom(ctx context.Context, base FileObject, ref string) (FileObject, error) {
	if strings.Contains(ref, "://") {
		return m.Resolve(ctx, ref)
	}
	return m.ResolveName(ctx, base.Name().Join(ref))
}

// Close closes every file system created by the manager.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	errs := &errors.M{}
	for rootURI, fs := range m.fileSystems {
		if err := fs.Close(); err != nil {
			errs.Append(fmt.Errorf("error closing file system %q: %w", rootURI, err))
		}
		delete(m.fileSystems, rootURI)
	}
	return errs.Err()
}
