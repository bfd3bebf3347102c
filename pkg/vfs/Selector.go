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

// FileSelectInfo describes a file visited during a traversal.
type FileSelectInfo struct {
	BaseFolder FileObject
	File       FileObject
	Depth      int
}

// Selector decides which files a traversal visits and returns.
type Selector interface {
	IncludeFile(ctx context.Context, info *FileSelectInfo) (bool, error)
	TraverseDescendants(ctx context.Context, info *FileSelectInfo) (bool, error)
}

// DepthSelector includes files between MinDepth and MaxDepth, inclusive.
type DepthSelector struct {
	MinDepth int
	MaxDepth int
}

func (s *DepthSelector) IncludeFile(ctx context.Context, info *FileSelectInfo) (bool, error) {
	return info.Depth >= s.MinDepth && info.Depth <= s.MaxDepth, nil
}

func (s *DepthSelector) TraverseDescendants(ctx context.Context, info *FileSelectInfo) (bool, error) {
	return info.Depth < s.MaxDepth, nil
}

// TypeSelector includes every file of the given type at any depth.
type TypeSelector struct {
	Type FileType
}

func (s *TypeSelector) IncludeFile(ctx context.Context, info *FileSelectInfo) (bool, error) {
	t, err := info.File.Type(ctx)
	if err != nil {
		return false, err
	}
	return t == s.Type, nil
}

func (s *TypeSelector) TraverseDescendants(ctx context.Context, info *FileSelectInfo) (bool, error) {
	return true, nil
}

// SelectorFunc includes the files for which the function returns true and traverses every folder.
type SelectorFunc func(ctx context.Context, info *FileSelectInfo) (bool, error)

func (f SelectorFunc) IncludeFile(ctx context.Context, info *FileSelectInfo) (bool, error) {
	return f(ctx, info)
}

func (f SelectorFunc) TraverseDescendants(ctx context.Context, info *FileSelectInfo) (bool, error) {
	return true, nil
}

const maxDepth = int(^uint(0) >> 1)

var (
	SelectAll             Selector = &DepthSelector{MinDepth: 0, MaxDepth: maxDepth}
	SelectSelf            Selector = &DepthSelector{MinDepth: 0, MaxDepth: 0}
	SelectSelfAndChildren Selector = &DepthSelector{MinDepth: 0, MaxDepth: 1}
	SelectChildren        Selector = &DepthSelector{MinDepth: 1, MaxDepth: 1}
	SelectFiles           Selector = &TypeSelector{Type: File}
	SelectFolders         Selector = &TypeSelector{Type: Folder}
)
