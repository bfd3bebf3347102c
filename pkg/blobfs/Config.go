// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blobfs

import (
	"fmt"

	"github.com/deptofdefense/blobvfs/pkg/blob"
)

const (
	DefaultBlockSizeMB = 3
	DefaultParallelism = 2
)

// Config holds the request options shared by every file system created by a provider.
type Config struct {
	// BlockSizeMB is the size of each uploaded block in megabytes.
	BlockSizeMB int
	// SinglePutThresholdMB is the largest upload sent in one request.  Zero uses the block size.
	SinglePutThresholdMB int
	Parallelism          int
	Verbose              bool
}

func DefaultConfig() *Config {
	return &Config{
		BlockSizeMB:          DefaultBlockSizeMB,
		SinglePutThresholdMB: 0,
		Parallelism:          DefaultParallelism,
		Verbose:              false,
	}
}

func (c *Config) Validate() error {
	if c.BlockSizeMB < 1 {
		return fmt.Errorf("upload block size must be at least 1 megabyte, found %d", c.BlockSizeMB)
	}
	if c.SinglePutThresholdMB < 0 {
		return fmt.Errorf("single upload block size cannot be negative, found %d", c.SinglePutThresholdMB)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallel upload threads must be at least 1, found %d", c.Parallelism)
	}
	return nil
}

func (c *Config) Options() blob.Options {
	return blob.Options{
		BlockSize:          int64(c.BlockSizeMB) * blob.MegabytesToBytes,
		SinglePutThreshold: int64(c.SinglePutThresholdMB) * blob.MegabytesToBytes,
		Parallelism:        c.Parallelism,
		Verbose:            c.Verbose,
	}
}
