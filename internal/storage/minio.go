package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"applicantpool/internal/config"
)

const bucketCheckTimeout = 10 * time.Second

// minioStorage archives uploads in an S3-compatible bucket (MinIO, AWS S3, etc.).
type minioStorage struct {
	client *minio.Client
	bucket string
	prefix string
}

func missingMinIOSettings(cfg config.MinIOConfig) []string {
	var missing []string
	for _, s := range []struct{ env, val string }{
		{"MINIO_ENDPOINT", cfg.Endpoint},
		{"MINIO_ACCESS_KEY", cfg.AccessKey},
		{"MINIO_SECRET_KEY", cfg.SecretKey},
		{"MINIO_BUCKET", cfg.Bucket},
	} {
		if s.val == "" {
			missing = append(missing, s.env)
		}
	}
	return missing
}

// NewMinIO connects to the bucket named in cfg, creating it in cfg.Region when absent.
func NewMinIO(ctx context.Context, cfg config.MinIOConfig) (Storage, error) {
	if missing := missingMinIOSettings(cfg); len(missing) > 0 {
		return nil, fmt.Errorf("minio storage: missing %s", strings.Join(missing, ", "))
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &minioStorage{client: cli, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (m *minioStorage) objectName(key string) string {
	if m.prefix == "" {
		return key
	}
	return path.Join(m.prefix, key)
}

func (m *minioStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	info, err := m.client.PutObject(ctx, m.bucket, m.objectName(key), r, opt.Size, minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("put object %s: %w", key, err)
	}

	modified := info.LastModified
	if modified.IsZero() {
		modified = time.Now()
	}
	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  opt.ContentType,
		LastModified: modified,
	}, nil
}

func (m *minioStorage) Delete(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucket, m.objectName(key), minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}
