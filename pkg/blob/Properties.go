// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

import (
	"time"
)

const DefaultContentType = "application/octet-stream"

type Properties struct {
	Size         int64
	LastModified time.Time
	ContentType  string
	ETag         string
}

func (p *Properties) SetContentType(contentType string) {
	p.ContentType = contentType
}

func (p *Properties) SetLastModified(t time.Time) {
	p.LastModified = t
}

// GetContentType returns the content type, or DefaultContentType if none is set.
func (p *Properties) GetContentType() string {
	if p == nil || len(p.ContentType) == 0 {
		return DefaultContentType
	}
	return p.ContentType
}
