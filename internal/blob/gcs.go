package blob

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSUploader writes public objects to a Cloud Storage bucket (the bucket
// behind Firebase Storage).
type GCSUploader struct {
	bucket     *storage.BucketHandle
	bucketName string
}

func NewGCSUploader(bucket *storage.BucketHandle, bucketName string) *GCSUploader {
	return &GCSUploader{bucket: bucket, bucketName: bucketName}
}

func (u *GCSUploader) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	obj := u.bucket.Object(path)

	w := obj.NewWriter(ctx)
	w.ContentType = contentTypeOrDefault(contentType)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", path, err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to make object %s public: %w", path, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucketName, escapePath(path)), nil
}
