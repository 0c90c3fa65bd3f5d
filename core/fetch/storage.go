package fetch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"scene-toolkit/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageFetcher reads s3://<key> URLs from one bucket.
type StorageFetcher struct {
	client storage.Client
	bucket string
}

// NewStorageFetcher creates a fetcher for bucket.
func NewStorageFetcher(client storage.Client, bucket string) *StorageFetcher {
	return &StorageFetcher{client: client, bucket: bucket}
}

// ObjectKey strips the s3:// scheme from url.
func ObjectKey(url string) string {
	return strings.TrimPrefix(strings.TrimPrefix(url, "s3://"), "/")
}

// Fetch downloads the object.
func (f *StorageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := ObjectKey(url)

	obj, err := f.client.GetObject(ctx, f.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapStorageErr(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, wrapStorageErr(key, err)
	}
	return data, nil
}

func wrapStorageErr(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: s3://%s", ErrNotFound, key)
	}
	return fmt.Errorf("failed to get object %s: %w", key, err)
}
