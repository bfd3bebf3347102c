// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

import (
	"context"
	"io"
	"time"
)

// FileObject is a handle for a single path within a file system.
// A FileObject is not safe for concurrent use.
type FileObject interface {
	Name() *FileName
	FileSystem() FileSystem
	// Type is evaluated on every call.
	Type(ctx context.Context) (FileType, error)
	Exists(ctx context.Context) (bool, error)
	// Children returns a handle for every child of a folder.
	Children(ctx context.Context) ([]FileObject, error)
	// Resolve returns the handle for a path relative to this one.  The path must not escape this handle.
	Resolve(rel string) (FileObject, error)
	Size(ctx context.Context) (int64, error)
	ModTime(ctx context.Context) (time.Time, error)
	SetModTime(ctx context.Context, t time.Time) error
	Open(ctx context.Context) (io.ReadCloser, error)
	OpenSeeker(ctx context.Context) (io.ReadSeeker, error)
	// Create returns a writer for the content of the file.  The content is committed when the writer is closed.
	Create(ctx context.Context, append bool) (io.WriteCloser, error)
	CreateFolder(ctx context.Context) error
	// Delete deletes only this file and returns true if anything was removed.
	Delete(ctx context.Context) (bool, error)
	CopyFrom(ctx context.Context, src FileObject, selector Selector) error
	// Close releases any cached state.  The handle can be used again afterwards.
	Close() error
}
