package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const pdfContentType = "application/pdf"

// MinIOConfig configures an S3-compatible bucket.
type MinIOConfig struct {
	Endpoint         string `yaml:"endpoint"`
	AccessKeyID      string `yaml:"access_key_id"`
	SecretAccessKey  string `yaml:"secret_access_key"`
	Bucket           string `yaml:"bucket"`
	Region           string `yaml:"region"`
	Prefix           string `yaml:"prefix"`
	UseSSL           bool   `yaml:"use_ssl"`
	BucketLookup     string `yaml:"bucket_lookup"` // auto, dns or path
	AutoCreateBucket bool   `yaml:"auto_create_bucket"`
}

// Validate reports missing connection settings.
func (c MinIOConfig) Validate() error {
	switch {
	case c.Endpoint == "":
		return fmt.Errorf("minio: endpoint is required")
	case c.Bucket == "":
		return fmt.Errorf("minio: bucket is required")
	}
	if _, err := bucketLookup(c.BucketLookup); err != nil {
		return err
	}
	return nil
}

func bucketLookup(s string) (minio.BucketLookupType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return minio.BucketLookupAuto, nil
	case "dns":
		return minio.BucketLookupDNS, nil
	case "path":
		return minio.BucketLookupPath, nil
	default:
		return minio.BucketLookupAuto, fmt.Errorf("minio: invalid bucket lookup %q", s)
	}
}

// MinIOStore uploads objects to a bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIOStore connects and makes sure the bucket exists.
func NewMinIOStore(ctx context.Context, cfg MinIOConfig) (*MinIOStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lookup, _ := bucketLookup(cfg.BucketLookup)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if !cfg.AutoCreateBucket {
			return nil, fmt.Errorf("bucket %q does not exist (auto create disabled)", cfg.Bucket)
		}
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

// ObjectKey returns the bucket key for name.
func (s *MinIOStore) ObjectKey(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Put uploads data and returns its s3:// URI.
func (s *MinIOStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyData
	}
	key := s.ObjectKey(name)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: pdfContentType})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}
