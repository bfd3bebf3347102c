// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deptofdefense/blobvfs/pkg/blob/memblob"
	"github.com/deptofdefense/blobvfs/pkg/blobfs"
	"github.com/deptofdefense/blobvfs/pkg/log"
	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

func newTestShell(t *testing.T) (*Shell, *memblob.Store, *bytes.Buffer) {
	t.Helper()
	store := memblob.NewStore()
	store.Put("c1", "a.txt", []byte("hello"), "text/plain")
	store.Put("c1", "dir/b.txt", []byte("b"), "text/plain")
	store.Put("c1", "dir/sub/c.txt", []byte("c"), "text/plain")

	factory := memblob.NewFactory(nil)
	factory.AddStore("account", store)
	provider, err := blobfs.NewBlobFileProvider(factory, nil, nil)
	require.NoError(t, err)

	manager := vfs.NewManager(nil)
	manager.AddProvider(SchemeMem, provider)
	t.Cleanup(func() {
		_ = manager.Close()
	})

	cwd, err := manager.Resolve(context.Background(), "mem://account/c1")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return NewShell(manager, log.NewNopLogger(), cwd, out), store, out
}

func TestShellRun(t *testing.T) {
	shell, store, out := newTestShell(t)

	script := strings.Join([]string{
		"pwd",
		"ls",
		"cat a.txt",
		"cd dir",
		"ls -R",
		"bogus",
		"cp ../a.txt sub",
		"cd",
		"rm -r dir/sub",
		"touch new.txt",
		"exit",
		"rm a.txt",
	}, "\n")

	err := shell.Run(context.Background(), strings.NewReader(script))
	require.NoError(t, err)

	output := out.String()
	assert.Equal(t, 11, strings.Count(output, ShellPrompt))
	assert.Contains(t, output, "mem://account/c1\n")
	assert.Contains(t, output, "a.txt\ndir/\n")
	assert.Contains(t, output, "hello")
	assert.Contains(t, output, "b.txt\nsub/\nsub/c.txt\n")
	assert.Contains(t, output, "error: unknown command \"bogus\"")

	assert.Equal(t, 1, store.Copies())
	assert.Equal(t, []string{"a.txt", "dir/b.txt", "new.txt"}, store.Keys("c1"))
	assert.Equal(t, "/c1", shell.Cwd().Name().Path)
}

func TestShellCopyIntoFolder(t *testing.T) {
	shell, store, _ := newTestShell(t)
	ctx := context.Background()

	_, err := shell.Execute(ctx, "cp dir /c1/copy")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "copy/b.txt", "copy/sub/c.txt", "dir/b.txt", "dir/sub/c.txt"}, store.Keys("c1"))

	_, err = shell.Execute(ctx, "cp a.txt copy")
	require.NoError(t, err)
	data, ok := store.Get("c1", "copy/a.txt")
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), data)
}

func TestShellErrors(t *testing.T) {
	shell, _, out := newTestShell(t)
	ctx := context.Background()

	_, err := shell.Execute(ctx, "cd a.txt")
	assert.ErrorIs(t, err, vfs.ErrNotFolder)

	_, err = shell.Execute(ctx, "cd missing")
	assert.ErrorIs(t, err, vfs.ErrNotFolder)
	assert.Equal(t, "/c1", shell.Cwd().Name().Path)

	_, err = shell.Execute(ctx, "cat dir")
	assert.ErrorIs(t, err, vfs.ErrNotFile)

	_, err = shell.Execute(ctx, "rm dir")
	assert.ErrorIs(t, err, vfs.ErrNotFile)

	_, err = shell.Execute(ctx, "cp a.txt")
	assert.Error(t, err)

	_, err = shell.Execute(ctx, "cat")
	assert.Error(t, err)

	exit, err := shell.Execute(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, exit)

	exit, err = shell.Execute(ctx, "quit")
	require.NoError(t, err)
	assert.True(t, exit)

	assert.Empty(t, out.String())
}

func TestShellStat(t *testing.T) {
	shell, _, out := newTestShell(t)

	_, err := shell.Execute(context.Background(), "stat a.txt")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "uri: mem://account/c1/a.txt\n")
	assert.Contains(t, out.String(), "type: file\n")
	assert.Contains(t, out.String(), "size: 5\n")
	assert.Contains(t, out.String(), "content-type: text/plain\n")

	out.Reset()
	_, err = shell.Execute(context.Background(), "stat dir")
	require.NoError(t, err)
	assert.Equal(t, "uri: mem://account/c1/dir\ntype: folder\n", out.String())
}
