package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"itembox/itembox/config"
	"itembox/itembox/utils/apperrors"
	"os"
	"path/filepath"
	"strings"
)

// ErrSameFile reports that the temporary file and the destination are the
// same file. Callers treat it as a no-op success.
var ErrSameFile = errors.New("source and destination are the same file")

// FileStore persists an uploaded stream for an owner and returns the stored
// filename.
type FileStore interface {
	Store(ctx context.Context, owner, filename string, r io.Reader) (string, error)
}

// NewFileStore picks the backend named in the configuration.
func NewFileStore(ctx context.Context, cfg config.Config) (FileStore, error) {
	switch cfg.StorageBackend {
	case "minio":
		return NewMinIOStore(ctx, cfg)
	case "local", "":
		return NewLocalStore(cfg.UploadDir, cfg.UploadTmpDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// cleanName strips directory components from a client-supplied name.
func cleanName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("%w: invalid filename %q", apperrors.ErrValidation, name)
	}
	return base, nil
}

func cleanOwner(owner string) (string, error) {
	if owner == "" || owner == "." || owner == ".." || strings.ContainsAny(owner, `/\`) {
		return "", fmt.Errorf("%w: invalid owner %q", apperrors.ErrValidation, owner)
	}
	return owner, nil
}

// spool copies r into a new temporary file in dir and returns its path. The
// file is synced and closed; on error nothing is left behind.
func spool(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	tmp, err := os.CreateTemp(dir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()

	_, err = io.Copy(tmp, readerWithContext(ctx, r))
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return path, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}
