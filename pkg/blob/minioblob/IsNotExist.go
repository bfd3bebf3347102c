// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package minioblob

import (
	"github.com/minio/minio-go/v7"
)

func IsNotExist(err error) bool {
	if err == nil {
		return false
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	}
	return false
}

func isInvalidRange(err error) bool {
	return err != nil && minio.ToErrorResponse(err).Code == "InvalidRange"
}
