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
)

// FindFiles returns the files below base that the selector includes.
// If depthwise is false, every folder is returned before its descendants.
// If depthwise is true, every folder is returned after its descendants.
// If base does not exist, then returns an empty slice.
func FindFiles(ctx context.Context, base FileObject, selector Selector, depthwise bool) ([]FileObject, error) {
	exists, err := base.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("error checking if %q exists: %w", base.Name().URI(), err)
	}
	selected := make([]FileObject, 0)
	if !exists {
		return selected, nil
	}
	info := &FileSelectInfo{BaseFolder: base, File: base, Depth: 0}
	if err := traverse(ctx, info, selector, depthwise, &selected); err != nil {
		return nil, err
	}
	return selected, nil
}

func traverse(ctx context.Context, info *FileSelectInfo, selector Selector, depthwise bool, selected *[]FileObject) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file := info.File
	index := len(*selected)

	t, err := file.Type(ctx)
	if err != nil {
		return fmt.Errorf("error getting type of %q: %w", file.Name().URI(), err)
	}

	if t.HasChildren() {
		descend, err := selector.TraverseDescendants(ctx, info)
		if err != nil {
			return err
		}
		if descend {
			children, err := file.Children(ctx)
			if err != nil {
				return fmt.Errorf("error listing children of %q: %w", file.Name().URI(), err)
			}
			for _, child := range children {
				childInfo := &FileSelectInfo{BaseFolder: info.BaseFolder, File: child, Depth: info.Depth + 1}
				if err := traverse(ctx, childInfo, selector, depthwise, selected); err != nil {
					return err
				}
			}
		}
	}

	include, err := selector.IncludeFile(ctx, info)
	if err != nil {
		return err
	}
	if include {
		if depthwise {
			*selected = append(*selected, file)
		} else {
			*selected = append(*selected, nil)
			copy((*selected)[index+1:], (*selected)[index:])
			(*selected)[index] = file
		}
	}
	return nil
}
