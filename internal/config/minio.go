package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrMinIONotConfigured = errors.New("minio endpoint not configured")

// NewMinIOClient connects to the attachment store and makes sure the bucket exists. The bucket
// stays private; objects are read through presigned URLs.
func NewMinIOClient(cfg *Config) (*minio.Client, error) {
	if cfg.MinIOEndpoint == "" {
		return nil, ErrMinIONotConfigured
	}

	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinIOBucket, err)
	}
	if exists {
		return client, nil
	}

	if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
		return nil, fmt.Errorf("create bucket %s: %w", cfg.MinIOBucket, err)
	}
	log.Printf("[Media] created bucket %s", cfg.MinIOBucket)

	return client, nil
}
