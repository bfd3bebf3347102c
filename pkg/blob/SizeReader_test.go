// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeReader(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		size     int64
		mismatch bool
	}{
		{name: "exact", content: "hello", size: 5},
		{name: "empty", content: "", size: 0},
		{name: "longer", content: "changed", size: 2, mismatch: true},
		{name: "shorter", content: "ab", size: 7, mismatch: true},
		{name: "empty but declared", content: "", size: 3, mismatch: true},
		{name: "content but declared empty", content: "a", size: 0, mismatch: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := io.ReadAll(NewSizeReader(strings.NewReader(test.content), test.size))
			if test.mismatch {
				assert.ErrorIs(t, err, ErrSizeMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.content, string(data))
		})
	}
}

func TestSizeReaderReadFull(t *testing.T) {
	buf := make([]byte, 2)
	_, err := io.ReadFull(NewSizeReader(strings.NewReader("changed"), 2), buf)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = io.ReadFull(NewSizeReader(strings.NewReader("ok"), 2), buf)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(buf))
}
