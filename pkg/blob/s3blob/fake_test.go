// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type fakeObject struct {
	data        []byte
	contentType string
}

type fakeUpload struct {
	contentType string
	parts       map[int32][]byte
}

// fakeAPI is an in-memory bucket store answering the S3 requests used by the adapter.
type fakeAPI struct {
	mutex       sync.Mutex
	buckets     map[string]map[string]*fakeObject
	uploads     map[string]*fakeUpload
	nextUpload  int
	puts        int
	parts       int
	aborts      int
	copySources []string
	failParts   bool
	pageSize    int
}

func newFakeAPI(buckets ...string) *fakeAPI {
	f := &fakeAPI{
		buckets: map[string]map[string]*fakeObject{},
		uploads: map[string]*fakeUpload{},
	}
	for _, b := range buckets {
		f.buckets[b] = map[string]*fakeObject{}
	}
	return f
}

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

func (f *fakeAPI) object(bucket *string, key *string) (*fakeObject, error) {
	objects, ok := f.buckets[aws.ToString(bucket)]
	if !ok {
		return nil, apiError("NoSuchBucket")
	}
	obj, ok := objects[aws.ToString(key)]
	if !ok {
		return nil, apiError("NoSuchKey")
	}
	return obj, nil
}

func (f *fakeAPI) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if _, ok := f.buckets[aws.ToString(params.Bucket)]; !ok {
		return nil, apiError("NotFound")
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeAPI) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	obj, err := f.object(params.Bucket, params.Key)
	if err != nil {
		return nil, apiError("NotFound")
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(obj.data))),
		ContentType:   aws.String(obj.contentType),
	}, nil
}

func (f *fakeAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	obj, err := f.object(params.Bucket, params.Key)
	if err != nil {
		return nil, err
	}
	data := obj.data
	if r := aws.ToString(params.Range); len(r) > 0 {
		var start, end int
		if _, err := fmt.Sscanf(r, "bytes=%d-%d", &start, &end); err != nil {
			return nil, err
		}
		if start >= len(data) {
			return nil, apiError("InvalidRange")
		}
		if end >= len(data) {
			end = len(data) - 1
		}
		data = data[start : end+1]
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeAPI) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	objects, ok := f.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, apiError("NoSuchBucket")
	}
	prefix := aws.ToString(params.Prefix)
	delimiter := aws.ToString(params.Delimiter)
	maxKeys := 1000
	if params.MaxKeys != nil {
		maxKeys = int(aws.ToInt32(params.MaxKeys))
	} else if f.pageSize > 0 {
		maxKeys = f.pageSize
	}
	after := aws.ToString(params.ContinuationToken)

	keys := make([]string, 0)
	for k := range objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	output := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	seen := map[string]struct{}{}
	count := 0
	last := ""
	for _, k := range keys {
		entry := k
		rest := k[len(prefix):]
		if i := strings.Index(rest, delimiter); len(delimiter) > 0 && i != -1 {
			entry = prefix + rest[:i+len(delimiter)]
		}
		if entry <= after {
			continue
		}
		if _, ok := seen[entry]; ok {
			continue
		}
		if count == maxKeys {
			output.IsTruncated = aws.Bool(true)
			output.NextContinuationToken = aws.String(last)
			break
		}
		seen[entry] = struct{}{}
		if entry != k {
			output.CommonPrefixes = append(output.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(entry)})
		} else {
			output.Contents = append(output.Contents, types.Object{
				Key:  aws.String(k),
				Size: aws.Int64(int64(len(objects[k].data))),
			})
		}
		count++
		last = entry
	}
	return output, nil
}

func (f *fakeAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	objects, ok := f.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, apiError("NoSuchBucket")
	}
	objects[aws.ToString(params.Key)] = &fakeObject{data: data, contentType: aws.ToString(params.ContentType)}
	f.puts++
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	delete(f.buckets[aws.ToString(params.Bucket)], aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeAPI) CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	source := aws.ToString(params.CopySource)
	f.copySources = append(f.copySources, source)
	parts := strings.SplitN(source, "/", 2)
	obj, err := f.object(aws.String(parts[0]), aws.String(strings.ReplaceAll(parts[1], "%20", " ")))
	if err != nil {
		return nil, err
	}
	f.buckets[aws.ToString(params.Bucket)][aws.ToString(params.Key)] = &fakeObject{data: obj.data, contentType: obj.contentType}
	return &s3.CopyObjectOutput{}, nil
}

func (f *fakeAPI) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.nextUpload++
	id := strconv.Itoa(f.nextUpload)
	f.uploads[id] = &fakeUpload{contentType: aws.ToString(params.ContentType), parts: map[int32][]byte{}}
	return &s3.CreateMultipartUploadOutput{UploadId: aws.String(id)}, nil
}

func (f *fakeAPI) UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.failParts {
		return nil, apiError("InternalError")
	}
	number := aws.ToInt32(params.PartNumber)
	f.uploads[aws.ToString(params.UploadId)].parts[number] = data
	f.parts++
	return &s3.UploadPartOutput{ETag: aws.String(fmt.Sprintf("etag-%d", number))}, nil
}

func (f *fakeAPI) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	upload := f.uploads[aws.ToString(params.UploadId)]
	data := make([]byte, 0)
	for i, part := range params.MultipartUpload.Parts {
		if aws.ToInt32(part.PartNumber) != int32(i+1) {
			return nil, apiError("InvalidPartOrder")
		}
		data = append(data, upload.parts[aws.ToInt32(part.PartNumber)]...)
	}
	f.buckets[aws.ToString(params.Bucket)][aws.ToString(params.Key)] = &fakeObject{data: data, contentType: upload.contentType}
	delete(f.uploads, aws.ToString(params.UploadId))
	return &s3.CompleteMultipartUploadOutput{}, nil
}

func (f *fakeAPI) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	delete(f.uploads, aws.ToString(params.UploadId))
	f.aborts++
	return &s3.AbortMultipartUploadOutput{}, nil
}
