package storage

import (
	"context"
	"fmt"
	"io"
	"itembox/itembox/config"
	"itembox/itembox/utils/logging"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinIOStore keeps uploads as objects <owner>/<filename> in a bucket. Like
// LocalStore it spools the stream to a temporary file before uploading.
type MinIOStore struct {
	client  *minio.Client
	bucket  string
	tempDir string
}

func NewMinIOStore(ctx context.Context, cfg config.Config) (*MinIOStore, error) {
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: cfg.MinIOUseSSL,
		},
	)
	if err != nil {
		return nil, err
	}
	// Create bucket if not exists
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinIOStore{client: client, bucket: cfg.MinIOBucket, tempDir: cfg.UploadTmpDir}, nil
}

func (m *MinIOStore) Store(ctx context.Context, owner, filename string, r io.Reader) (string, error) {
	defer logging.LogDuration(ctx, "MinIOStore.Store")()

	name, err := cleanName(filename)
	if err != nil {
		return "", err
	}
	owner, err = cleanOwner(owner)
	if err != nil {
		return "", err
	}

	tmpPath, err := spool(ctx, m.tempDir, name, r)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpPath)

	key := path.Join(owner, name)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	info, err := m.client.FPutObject(ctx, m.bucket, key, tmpPath, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	logging.AppLogger.Info("Stored upload",
		zap.String("bucket", m.bucket),
		zap.String("key", key),
		zap.Int64("size", info.Size),
	)
	return name, nil
}
