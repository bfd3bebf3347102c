// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

const (
	MegabytesToBytes = int64(1 << 20)
	// MinimumPartSize is the smallest part accepted by S3 compatible multipart uploads.
	MinimumPartSize = 5 * MegabytesToBytes
)

// Options are the request options shared by every blob of a client.
type Options struct {
	BlockSize          int64
	SinglePutThreshold int64
	Parallelism        int
	Verbose            bool
}

// PutThreshold returns the largest size uploaded with a single request.
func (o Options) PutThreshold() int64 {
	if o.SinglePutThreshold > 0 {
		return o.SinglePutThreshold
	}
	return o.BlockSize
}

// PartSize returns the block size, raised to min if smaller.
func (o Options) PartSize(min int64) int64 {
	if o.BlockSize < min {
		return min
	}
	return o.BlockSize
}

func (o Options) Workers() int {
	if o.Parallelism < 1 {
		return 1
	}
	return o.Parallelism
}
