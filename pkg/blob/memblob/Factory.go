// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package memblob

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/deptofdefense/blobvfs/pkg/blob"
	"github.com/deptofdefense/blobvfs/pkg/log"
)

// Factory creates clients for in-memory accounts addressed by host.
type Factory struct {
	// CreateStores creates an empty store the first time an unknown host is used.
	CreateStores bool
	Logger       *log.SimpleLogger
	stores       map[string]*Store
	mutex        *sync.Mutex
}

func NewFactory(logger *log.SimpleLogger) *Factory {
	return &Factory{
		Logger: logger,
		stores: map[string]*Store{},
		mutex:  &sync.Mutex{},
	}
}

func (f *Factory) AddStore(host string, store *Store) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.stores[strings.ToLower(host)] = store
}

func (f *Factory) Store(host string) (*Store, bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	store, ok := f.stores[strings.ToLower(host)]
	if !ok && f.CreateStores {
		store = NewStore()
		store.AutoCreateContainers = true
		f.stores[strings.ToLower(host)] = store
		ok = true
	}
	return store, ok
}

func (f *Factory) NewClient(ctx context.Context, host string, creds blob.Credentials, options blob.Options) (blob.Client, error) {
	store, ok := f.Store(host)
	if !ok {
		return nil, fmt.Errorf("error connecting to account host %q: no such host", host)
	}
	account := creds.AccountName
	if len(account) == 0 {
		account = host
	}
	return &Client{
		account:    account,
		accountKey: creds.AccountKey,
		options:    options,
		store:      store,
		logger:     f.Logger,
	}, nil
}
