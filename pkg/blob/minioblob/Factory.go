// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package minioblob

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/deptofdefense/blobvfs/pkg/blob"
	"github.com/deptofdefense/blobvfs/pkg/log"
)

// Factory creates clients for MinIO servers.
type Factory struct {
	UseSSL bool
	Region string
	Logger *log.SimpleLogger
}

func (f *Factory) NewClient(ctx context.Context, host string, creds blob.Credentials, options blob.Options) (blob.Client, error) {
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(creds.AccountName, creds.AccountKey, creds.SessionToken),
		Secure: f.UseSSL,
		Region: f.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating minio client for host %q: %w", host, err)
	}
	account := creds.AccountName
	if len(account) == 0 {
		account = host
	}
	return &MinioClient{
		client:  client,
		account: account,
		options: options,
		logger:  f.Logger,
	}, nil
}
