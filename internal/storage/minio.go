package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// keyPrefix groups every product image under one folder in the bucket.
const keyPrefix = "products/"

// Config holds object-store connection details.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStorage implements Uploader on top of a MinIO (S3-compatible) bucket.
// The bucket is expected to carry a public-read policy so the returned URLs
// stay readable indefinitely.
type MinioStorage struct {
	client *minio.Client
	cfg    Config
}

// NewMinioStorage connects to the object store and returns an Uploader.
func NewMinioStorage(cfg Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object store: %w", err)
	}
	log.Printf("Object store client connected to %s (bucket %s)", cfg.Endpoint, cfg.Bucket)
	return &MinioStorage{client: client, cfg: cfg}, nil
}

// Upload stores the buffer under a collision-free key and returns its public
// URL. The key keeps the original file name so uploads stay traceable to
// their source.
func (s *MinioStorage) Upload(data []byte, originalName, contentType string) (string, error) {
	key := ObjectKey(originalName)

	_, err := s.client.PutObject(context.Background(), s.cfg.Bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, key), nil
}

// ObjectKey builds a storage key from a fixed prefix, an 8-character random
// identifier, and the original file name.
func ObjectKey(originalName string) string {
	return fmt.Sprintf("%s%s-%s", keyPrefix, uuid.New().String()[:8], originalName)
}
