// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

import (
	"fmt"
	"strings"
)

// RootKey is the key of the root of a container.
const RootKey = "/"

// ContainerAndKey splits a path into the container name and the key within the container.
// A path that names only a container returns RootKey as the key.
func ContainerAndKey(p string) (string, string, error) {
	trimmed := strings.TrimLeft(p, "/")
	if len(strings.TrimSpace(trimmed)) == 0 {
		return "", "", fmt.Errorf("path %q does not contain a container: %w", p, ErrInvalidPath)
	}
	i := strings.Index(trimmed, "/")
	if i == -1 {
		return trimmed, RootKey, nil
	}
	key := trimmed[i+1:]
	if len(key) == 0 {
		return trimmed[:i], RootKey, nil
	}
	return trimmed[:i], key, nil
}
