// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

import (
	"strings"
	"time"
)

type Kind int

const (
	KindBlob Kind = iota
	KindPrefix
)

type ListItem struct {
	Key          string
	Kind         Kind
	Size         int64
	LastModified time.Time
}

// Name returns the key relative to the listed prefix, without a trailing delimiter.
func (i ListItem) Name(prefix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(i.Key, prefix), "/")
}
