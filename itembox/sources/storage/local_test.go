package storage

import (
	"context"
	"errors"
	"itembox/itembox/config"
	"itembox/itembox/utils/apperrors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestLocalStore_StoresUnderOwner(t *testing.T) {
	root := filepath.Join(t.TempDir(), "images")
	tmp := t.TempDir()
	s := NewLocalStore(root, tmp)

	name, err := s.Store(context.Background(), "alice", "a.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "a.png", name)

	data, err := os.ReadFile(filepath.Join(root, "alice", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	assert.Empty(t, entries(t, tmp), "temporary file should be gone")
}

func TestLocalStore_OverwritesExisting(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, t.TempDir())

	_, err := s.Store(context.Background(), "bob", "notes.txt", strings.NewReader("v1"))
	require.NoError(t, err)
	_, err = s.Store(context.Background(), "bob", "notes.txt", strings.NewReader("v2"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "bob", "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestLocalStore_StripsDirectories(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, t.TempDir())

	name, err := s.Store(context.Background(), "carol", "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", name)
	_, err = os.Stat(filepath.Join(root, "carol", "passwd"))
	assert.NoError(t, err)
}

func TestLocalStore_RejectsBadNames(t *testing.T) {
	s := NewLocalStore(t.TempDir(), t.TempDir())

	for _, name := range []string{"", ".", ".."} {
		_, err := s.Store(context.Background(), "dave", name, strings.NewReader("x"))
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "name %q", name)
	}
	_, err := s.Store(context.Background(), "../dave", "a.png", strings.NewReader("x"))
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestLocalStore_CanceledContext(t *testing.T) {
	tmp := t.TempDir()
	s := NewLocalStore(t.TempDir(), tmp)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Store(ctx, "erin", "a.png", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, entries(t, tmp))
}

func TestLocalStore_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	root := t.TempDir()
	require.NoError(t, os.Chmod(root, 0o500))
	t.Cleanup(func() { os.Chmod(root, 0o700) })

	s := NewLocalStore(root, t.TempDir())
	_, err := s.Store(context.Background(), "frank", "a.png", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestCheckSameFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o600))

	assert.NoError(t, checkSameFile(src, filepath.Join(dir, "missing")))

	link := filepath.Join(dir, "link")
	require.NoError(t, os.Link(src, link))
	assert.ErrorIs(t, checkSameFile(src, link), ErrSameFile)

	other := filepath.Join(dir, "other")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	assert.NoError(t, checkSameFile(src, other))
}

func TestMove(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src.bin")
	dest := filepath.Join(t.TempDir(), "dest.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o600))

	require.NoError(t, move(src, dest))
	_, err := os.Stat(src)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestNewFileStore(t *testing.T) {
	fs, err := NewFileStore(context.Background(), config.Config{StorageBackend: "local", UploadDir: "images"})
	require.NoError(t, err)
	local, ok := fs.(*LocalStore)
	require.True(t, ok)
	assert.Equal(t, "images", local.Root)

	_, err = NewFileStore(context.Background(), config.Config{StorageBackend: "ftp"})
	assert.Error(t, err)
}
