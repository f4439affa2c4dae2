package osfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	origHostname := osHostname
	defer func() { osHostname = origHostname }()

	t.Run("local_suffix_trimmed", func(t *testing.T) {
		osHostname = func() (string, error) {
			return "test-host.local", nil
		}
		s := NewStore()
		assert.NotNil(t, s)
		assert.Equal(t, "test-host", s.RootTitle())
	})

	t.Run("hostname_error", func(t *testing.T) {
		osHostname = func() (string, error) {
			return "", errors.New("hostname error")
		}
		assert.Equal(t, defaultTitle, NewStore().RootTitle())
	})

	t.Run("empty_hostname", func(t *testing.T) {
		osHostname = func() (string, error) {
			return "", nil
		}
		assert.Equal(t, defaultTitle, NewStore().RootTitle())
	})
}

func TestStore_IsDirAndExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	dangling := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), dangling))

	s := NewStore()
	assert.True(t, s.IsDir(dir))
	assert.False(t, s.IsDir(file))
	assert.False(t, s.IsDir(dangling))
	assert.False(t, s.IsDir(filepath.Join(dir, "missing")))

	assert.True(t, s.Exists(file))
	assert.True(t, s.Exists(dangling))
	assert.False(t, s.Exists(filepath.Join(dir, "missing")))

	info, err := s.Lstat(dangling)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink)
	_, err = s.Lstat(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestStore_ReadDir(t *testing.T) {
	origReadDir := osReadDir
	defer func() { osReadDir = origReadDir }()

	s := NewStore()

	t.Run("success", func(t *testing.T) {
		osReadDir = func(name string) ([]os.DirEntry, error) {
			return []os.DirEntry{}, nil
		}
		entries, err := s.ReadDir(context.Background(), "/tmp")
		assert.NoError(t, err)
		assert.NotNil(t, entries)
	})

	t.Run("context_cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		entries, err := s.ReadDir(ctx, "/tmp")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, entries)
	})

	t.Run("read_error", func(t *testing.T) {
		osReadDir = func(name string) ([]os.DirEntry, error) {
			return nil, errors.New("read error")
		}
		entries, err := s.ReadDir(context.Background(), "/tmp")
		assert.Error(t, err)
		assert.Nil(t, entries)
	})
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "f.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		s := NewStore()
		require.NoError(t, s.Delete(ctx, file))
		assert.NoFileExists(t, file)
	})

	t.Run("directory_tree", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(sub, "f"), nil, 0o644))
		s := NewStore()
		require.NoError(t, s.Delete(ctx, filepath.Join(dir, "a")))
		assert.NoDirExists(t, filepath.Join(dir, "a"))
	})

	t.Run("symlink_to_dir_keeps_target", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "target")
		require.NoError(t, os.Mkdir(target, 0o755))
		link := filepath.Join(dir, "link")
		require.NoError(t, os.Symlink(target, link))
		s := NewStore()
		require.NoError(t, s.Delete(ctx, link))
		assert.DirExists(t, target)
		assert.False(t, s.Exists(link))
	})

	t.Run("missing", func(t *testing.T) {
		s := NewStore()
		err := s.Delete(ctx, filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("context_cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		s := NewStore()
		assert.ErrorIs(t, s.Delete(cctx, "/tmp/whatever"), context.Canceled)
	})
}

func TestStore_ReadFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello world"), 0o644))
	s := NewStore()

	t.Run("limited", func(t *testing.T) {
		data, err := s.ReadFile(ctx, file, 5)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("zero_limit", func(t *testing.T) {
		data, err := s.ReadFile(ctx, file, 0)
		assert.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := s.ReadFile(ctx, dir, 10)
		assert.ErrorIs(t, err, fs.ErrInvalid)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.ReadFile(ctx, filepath.Join(dir, "none.txt"), 10)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("read_error", func(t *testing.T) {
		origReadFileData := readFileData
		defer func() { readFileData = origReadFileData }()
		var gotMax int
		readFileData = func(filePath string, max int) ([]byte, error) {
			gotMax = max
			return nil, errors.New("read error")
		}
		_, err := s.ReadFile(ctx, file, 10)
		assert.EqualError(t, err, "failed to read "+file+": read error")
		assert.Equal(t, 10, gotMax)
	})

	t.Run("cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.ReadFile(cancelled, file, 10)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
