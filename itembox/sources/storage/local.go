package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"itembox/itembox/utils/logging"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalStore writes uploads to Root/<owner>/<filename>. The stream lands in
// TempDir first and is moved into place once fully written.
type LocalStore struct {
	Root    string
	TempDir string
}

func NewLocalStore(root, tempDir string) *LocalStore {
	return &LocalStore{Root: root, TempDir: tempDir}
}

func (s *LocalStore) Store(ctx context.Context, owner, filename string, r io.Reader) (string, error) {
	defer logging.LogDuration(ctx, "LocalStore.Store")()

	name, err := cleanName(filename)
	if err != nil {
		return "", err
	}
	owner, err = cleanOwner(owner)
	if err != nil {
		return "", err
	}

	tmpPath, err := spool(ctx, s.TempDir, name, r)
	if err != nil {
		return "", err
	}
	keepTmp := false
	defer func() {
		if !keepTmp {
			os.Remove(tmpPath)
		}
	}()

	dir := filepath.Join(s.Root, owner)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	dest := filepath.Join(dir, name)

	if err := checkSameFile(tmpPath, dest); err != nil {
		if errors.Is(err, ErrSameFile) {
			keepTmp = true
			return name, err
		}
		return "", err
	}
	if err := move(tmpPath, dest); err != nil {
		return "", err
	}

	logging.AppLogger.Info("Stored upload",
		zap.String("owner", owner),
		zap.String("path", dest),
	)
	return name, nil
}

func checkSameFile(src, dest string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	destInfo, err := os.Stat(dest)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if os.SameFile(srcInfo, destInfo) {
		return ErrSameFile
	}
	return nil
}

// move renames src to dest, falling back to copy and remove when the two
// paths are on different filesystems.
func move(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("move upload: %w", err)
	}

	if err := copyFile(src, dest); err != nil {
		return fmt.Errorf("move upload: %w", err)
	}
	return os.Remove(src)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}
