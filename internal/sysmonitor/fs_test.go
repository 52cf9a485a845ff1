package sysmonitor

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem(t *testing.T) {
	fsys := OSFileSystem{}
	path := filepath.Join(t.TempDir(), "stat")
	require.NoError(t, os.WriteFile(path, []byte("test content"), 0o600))

	t.Run("read existing file", func(t *testing.T) {
		content, err := fsys.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "test content", string(content))
	})

	t.Run("open existing file", func(t *testing.T) {
		f, err := fsys.Open(path)
		require.NoError(t, err)
		defer f.Close()

		stat, err := f.Stat()
		require.NoError(t, err)
		assert.Equal(t, int64(len("test content")), stat.Size())
	})

	t.Run("non-existent file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing")
		_, err := fsys.ReadFile(missing)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		_, err = fsys.Open(missing)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestMapFileSystem(t *testing.T) {
	fsys := MapFileSystem{"/proc/1/stat": "1 (init) S"}

	data, err := fsys.ReadFile("/proc/1/stat")
	require.NoError(t, err)
	assert.Equal(t, "1 (init) S", string(data))

	f, err := fsys.Open("/proc/1/stat")
	require.NoError(t, err)
	read, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "1 (init) S", string(read))
	require.NoError(t, f.Close())

	_, err = fsys.ReadFile("/proc/2/stat")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = fsys.Open("/proc/2/stat")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
