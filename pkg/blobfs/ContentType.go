// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blobfs

import (
	"mime"
	"path"
	"strings"

	"github.com/deptofdefense/blobvfs/pkg/blob"
)

// DetectContentType returns the media type for the extension of the file name.
func DetectContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if len(ext) == 0 {
		return blob.DefaultContentType
	}
	contentType := mime.TypeByExtension(ext)
	if len(contentType) == 0 {
		return blob.DefaultContentType
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return blob.DefaultContentType
	}
	return mediaType
}
