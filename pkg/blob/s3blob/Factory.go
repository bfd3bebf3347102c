// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3blob

import (
	"context"
	"crypto/tls"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/deptofdefense/blobvfs/pkg/blob"
	"github.com/deptofdefense/blobvfs/pkg/log"
)

const (
	DefaultRegion = "us-east-1"
)

// Factory creates clients for S3 and S3 compatible endpoints.
type Factory struct {
	Region             string
	UsePathStyle       bool
	Insecure           bool
	InsecureSkipVerify bool
	Logger             *log.SimpleLogger
}

func (f *Factory) endpoint(host string) string {
	if len(host) == 0 || host == "s3.amazonaws.com" || strings.HasSuffix(host, ".amazonaws.com") {
		return ""
	}
	if f.Insecure {
		return "http://" + host
	}
	return "https://" + host
}

func (f *Factory) NewClient(ctx context.Context, host string, creds blob.Credentials, options blob.Options) (blob.Client, error) {
	region := f.Region
	if len(region) == 0 {
		region = DefaultRegion
	}

	config := aws.Config{
		RetryMaxAttempts: 3,
		Region:           region,
	}

	if len(creds.AccountName) > 0 && len(creds.AccountKey) > 0 {
		config.Credentials = credentials.NewStaticCredentialsProvider(
			creds.AccountName,
			creds.AccountKey,
			creds.SessionToken)
	} else {
		config.Credentials = aws.AnonymousCredentials{}
	}

	if f.InsecureSkipVerify {
		config.HTTPClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
			},
		}
	}

	endpoint := f.endpoint(host)
	client := s3.NewFromConfig(config, func(o *s3.Options) {
		o.UsePathStyle = f.UsePathStyle
		if len(endpoint) > 0 {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	account := creds.AccountName
	if len(account) == 0 {
		account = host
	}

	if options.Verbose {
		_ = f.Logger.Log("Created S3 client", map[string]interface{}{
			"account":  account,
			"endpoint": endpoint,
			"region":   region,
		})
	}

	return NewS3Client(client, account, options, f.Logger), nil
}
