// Package storage holds complaint attachments in an object store. The
// Store interface keeps services testable; the production implementation
// is MinIO-backed.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	minioSDK "github.com/minio/minio-go/v7"
)

// Store is the attachment persistence contract.
type Store interface {
	Put(ctx context.Context, objectName, contentType string, r io.Reader, size int64) error
	// Get returns the object content and its content type.
	Get(ctx context.Context, objectName string) (io.ReadCloser, string, error)
	Remove(ctx context.Context, objectName string) error
}

// ObjectName derives a collision-free stored name from the uploaded
// filename, keeping its extension.
func ObjectName(original string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), filepath.Ext(original))
}

// MinioStore implements Store on the shared MinIO client.
type MinioStore struct{}

func NewMinioStore() *MinioStore {
	return &MinioStore{}
}

func (s *MinioStore) Put(ctx context.Context, objectName, contentType string, r io.Reader, size int64) error {
	_, err := Client.PutObject(ctx, BucketName, objectName, r, size, minioSDK.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *MinioStore) Get(ctx context.Context, objectName string) (io.ReadCloser, string, error) {
	obj, err := Client.GetObject(ctx, BucketName, objectName, minioSDK.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, "", err
	}
	return obj, stat.ContentType, nil
}

func (s *MinioStore) Remove(ctx context.Context, objectName string) error {
	return Client.RemoveObject(ctx, BucketName, objectName, minioSDK.RemoveObjectOptions{})
}
