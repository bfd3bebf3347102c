// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

type contentTyper interface {
	ContentType(ctx context.Context) (string, error)
}

func displayName(ctx context.Context, name string, f vfs.FileObject) (string, error) {
	t, err := f.Type(ctx)
	if err != nil {
		return "", err
	}
	if t == vfs.Folder {
		return name + "/", nil
	}
	return name, nil
}

// listFiles writes the names of the children of f, or every descendant relative to f if recursive.
// Folder names end with a slash.
func listFiles(ctx context.Context, w io.Writer, f vfs.FileObject, recursive bool) error {
	t, err := f.Type(ctx)
	if err != nil {
		return err
	}
	switch t {
	case vfs.Imaginary:
		return fmt.Errorf("%q: %w", f.Name().URI(), os.ErrNotExist)
	case vfs.File:
		_, err := fmt.Fprintln(w, f.Name().BaseName())
		return err
	}

	if recursive {
		files, err := vfs.FindFiles(ctx, f, vfs.SelectAll, false)
		if err != nil {
			return err
		}
		for _, file := range files[1:] {
			rel, err := f.Name().RelativeName(file.Name())
			if err != nil {
				return err
			}
			line, err := displayName(ctx, rel, file)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}

	children, err := f.Children(ctx)
	if err != nil {
		return err
	}
	for _, child := range children {
		line, err := displayName(ctx, child.Name().BaseName(), child)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func catFile(ctx context.Context, w io.Writer, f vfs.FileObject) error {
	r, err := f.Open(ctx)
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = io.Copy(w, r)
	if err != nil {
		return fmt.Errorf("error reading %q: %w", f.Name().URI(), err)
	}
	return nil
}

// copyFile copies src to dst.  If dst is an existing folder, src is copied into it.
func copyFile(ctx context.Context, src vfs.FileObject, dst vfs.FileObject) error {
	t, err := dst.Type(ctx)
	if err != nil {
		return err
	}
	if t == vfs.Folder && !src.Name().IsRoot() {
		target, err := dst.Resolve(src.Name().BaseName())
		if err != nil {
			return err
		}
		defer target.Close()
		return target.CopyFrom(ctx, src, vfs.SelectAll)
	}
	return dst.CopyFrom(ctx, src, vfs.SelectAll)
}

// removeFile deletes f, or f and its descendants if recursive.
// Returns the number of files deleted.
func removeFile(ctx context.Context, f vfs.FileObject, recursive bool) (int, error) {
	if recursive {
		return vfs.DeleteTree(ctx, f, vfs.SelectAll)
	}
	t, err := f.Type(ctx)
	if err != nil {
		return 0, err
	}
	if t == vfs.Folder {
		return 0, fmt.Errorf("%q is a folder: %w", f.Name().URI(), vfs.ErrNotFile)
	}
	deleted, err := f.Delete(ctx)
	if err != nil {
		return 0, err
	}
	if deleted {
		return 1, nil
	}
	return 0, nil
}

func touchFile(ctx context.Context, f vfs.FileObject) error {
	exists, err := f.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return f.SetModTime(ctx, time.Now())
	}
	w, err := f.Create(ctx, false)
	if err != nil {
		return err
	}
	return w.Close()
}

func statFile(ctx context.Context, w io.Writer, f vfs.FileObject) error {
	t, err := f.Type(ctx)
	if err != nil {
		return err
	}
	if t == vfs.Imaginary {
		return fmt.Errorf("%q: %w", f.Name().URI(), os.ErrNotExist)
	}
	_, _ = fmt.Fprintf(w, "uri: %s\n", f.Name().URI())
	_, _ = fmt.Fprintf(w, "type: %s\n", t)
	if t != vfs.File {
		return nil
	}
	size, err := f.Size(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "size: %d\n", size)
	modTime, err := f.ModTime(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "modified: %s\n", modTime.UTC().Format(time.RFC3339))
	if c, ok := f.(contentTyper); ok {
		contentType, err := c.ContentType(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "content-type: %s\n", contentType)
	}
	return nil
}

func putFile(ctx context.Context, f vfs.FileObject, r io.Reader, append bool) error {
	w, err := f.Create(ctx, append)
	if err != nil {
		return err
	}
	if _, err := vfs.StreamCopy(w, r); err != nil {
		return fmt.Errorf("error writing %q: %w", f.Name().URI(), err)
	}
	return nil
}
