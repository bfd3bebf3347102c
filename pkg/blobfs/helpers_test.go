// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blobfs_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deptofdefense/blobvfs/pkg/blob/memblob"
	"github.com/deptofdefense/blobvfs/pkg/blobfs"
	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

type testEnv struct {
	manager  *vfs.Manager
	factory  *memblob.Factory
	accounts map[string]*memblob.Store
}

func newTestEnv(t *testing.T, config *blobfs.Config, accounts ...string) *testEnv {
	t.Helper()
	factory := memblob.NewFactory(nil)
	env := &testEnv{
		manager:  vfs.NewManager(nil),
		factory:  factory,
		accounts: map[string]*memblob.Store{},
	}
	for _, account := range accounts {
		store := memblob.NewStore()
		factory.AddStore(account, store)
		env.accounts[account] = store
	}
	provider, err := blobfs.NewBlobFileProvider(factory, config, nil)
	require.NoError(t, err)
	env.manager.AddProvider("mem", provider)
	t.Cleanup(func() {
		_ = env.manager.Close()
	})
	return env
}

func (env *testEnv) resolve(t *testing.T, uri string) vfs.FileObject {
	t.Helper()
	f, err := env.manager.Resolve(context.Background(), uri)
	require.NoError(t, err)
	return f
}

func readAll(t *testing.T, f vfs.FileObject) []byte {
	t.Helper()
	r, err := f.Open(context.Background())
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return data
}

func writeAll(t *testing.T, f vfs.FileObject, data []byte, append bool) {
	t.Helper()
	w, err := f.Create(context.Background(), append)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}
