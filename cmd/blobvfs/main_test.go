// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package main

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deptofdefense/blobvfs/pkg/log"
	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	initFlags(cmd.Flags())
	return cmd
}

func TestCheckConfig(t *testing.T) {
	v, err := initViper(newTestCommand(t))
	require.NoError(t, err)
	require.NoError(t, checkConfig(v))

	v.Set(flagLogPerm, "999")
	assert.Error(t, checkConfig(v))

	v.Set(flagLogPerm, "0600")
	v.Set(flagUploadBlockSize, 0)
	assert.Error(t, checkConfig(v))

	v.Set(flagUploadBlockSize, 4)
	v.Set(flagParallelUploadThreads, 0)
	assert.Error(t, checkConfig(v))
}

func TestInitViperEnvironment(t *testing.T) {
	t.Setenv("BLOBVFS_UPLOAD_BLOCK_SIZE", "8")
	t.Setenv("BLOBVFS_ACCOUNT_NAME", "account")
	v, err := initViper(newTestCommand(t))
	require.NoError(t, err)

	config := initConfig(v)
	assert.Equal(t, 8, config.BlockSizeMB)
	assert.Equal(t, 2, config.Parallelism)

	authenticator := initAuthenticator(v)
	require.NotNil(t, authenticator)
	data, err := authenticator.RequestAuthentication([]vfs.AuthDataType{vfs.AuthUserName, vfs.AuthPassword})
	require.NoError(t, err)
	assert.Equal(t, "account", data.GetString(vfs.AuthUserName, ""))
	assert.Nil(t, data.Get(vfs.AuthPassword))
}

func TestInitManager(t *testing.T) {
	v, err := initViper(newTestCommand(t))
	require.NoError(t, err)
	assert.Nil(t, initAuthenticator(v))

	manager, err := initManager(v, log.NewNopLogger())
	require.NoError(t, err)
	defer manager.Close()

	assert.ElementsMatch(t, []string{SchemeS3, SchemeMinio, SchemeMem, SchemeFile}, manager.Schemes())

	ctx := context.Background()
	f, err := manager.Resolve(ctx, "mem://account/c1/a.txt")
	require.NoError(t, err)
	require.NoError(t, putFile(ctx, f, strings.NewReader("hello"), false))
	require.NoError(t, putFile(ctx, f, strings.NewReader(" world"), true))

	g, err := manager.Resolve(ctx, "mem://account/c1/a.txt")
	require.NoError(t, err)
	size, err := g.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)
}
