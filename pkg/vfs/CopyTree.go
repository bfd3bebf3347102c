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
	"io"
)

// CopyEntryFunc copies a single selected file to its destination.
type CopyEntryFunc func(ctx context.Context, src FileObject, dst FileObject) error

// CopyTree copies the files below src that the selector includes to the matching paths below dst.
// Folders are copied before their contents.  A destination whose type differs from its source is deleted first.
// Copying stops at the first failure and the files already copied are left in place.
func CopyTree(ctx context.Context, dst FileObject, src FileObject, selector Selector, copyEntry CopyEntryFunc) error {
	exists, err := src.Exists(ctx)
	if err != nil {
		return newCopyError(src, dst, err)
	}
	if !exists {
		return newCopyError(src, dst, fmt.Errorf("%q: %w", src.Name().URI(), ErrMissingSource))
	}

	files, err := FindFiles(ctx, src, selector, false)
	if err != nil {
		return newCopyError(src, dst, err)
	}

	for _, file := range files {
		if err := copyTreeEntry(ctx, dst, src, file, copyEntry); err != nil {
			return err
		}
	}
	return nil
}

func copyTreeEntry(ctx context.Context, dst FileObject, src FileObject, file FileObject, copyEntry CopyEntryFunc) error {
	rel, err := src.Name().RelativeName(file.Name())
	if err != nil {
		return newCopyError(file, dst, err)
	}

	target, err := dst.Resolve(rel)
	if err != nil {
		return newCopyError(file, dst, err)
	}
	defer target.Close()

	sourceType, err := file.Type(ctx)
	if err != nil {
		return newCopyError(file, target, err)
	}

	targetType, err := target.Type(ctx)
	if err != nil {
		return newCopyError(file, target, err)
	}

	if targetType != Imaginary && targetType != sourceType {
		if _, err := DeleteTree(ctx, target, SelectAll); err != nil {
			return newCopyError(file, target, err)
		}
	}

	if err := copyEntry(ctx, file, target); err != nil {
		return newCopyError(file, target, err)
	}
	return nil
}

type closeWithError interface {
	CloseWithError(err error) error
}

// StreamCopy copies the content of src into dst.  If the copy fails and dst supports aborting, the write is aborted.
func StreamCopy(dst io.WriteCloser, src io.Reader) (int64, error) {
	n, err := io.Copy(dst, src)
	if err != nil {
		if c, ok := dst.(closeWithError); ok {
			_ = c.CloseWithError(err)
		} else {
			_ = dst.Close()
		}
		return n, err
	}
	if err := dst.Close(); err != nil {
		return n, err
	}
	return n, nil
}

// StreamCopyEntry copies a single entry by reading the source and writing the destination.
func StreamCopyEntry(ctx context.Context, src FileObject, dst FileObject) error {
	t, err := src.Type(ctx)
	if err != nil {
		return err
	}
	switch t {
	case Folder:
		return dst.CreateFolder(ctx)
	case File:
		r, err := src.Open(ctx)
		if err != nil {
			return fmt.Errorf("error opening %q: %w", src.Name().URI(), err)
		}
		defer r.Close()
		w, err := dst.Create(ctx, false)
		if err != nil {
			return fmt.Errorf("error creating %q: %w", dst.Name().URI(), err)
		}
		if _, err := StreamCopy(w, r); err != nil {
			return fmt.Errorf("error streaming %q: %w", src.Name().URI(), err)
		}
		return nil
	}
	return fmt.Errorf("cannot copy %s %q: %w", t, src.Name().URI(), ErrUnsupported)
}
